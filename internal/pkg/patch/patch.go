package patch

import "time"

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// TimeOrZero treats an omitted timestamp as the zero time ("absent").
func TimeOrZero(ptr *time.Time) time.Time {
	return Coalesce(ptr, time.Time{})
}
