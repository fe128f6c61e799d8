package commands

import (
	"fmt"
	"sort"
	"strings"

	"parkvue/internal/domain/booking"
	"parkvue/internal/pkg/errs"
)

var (
	ErrRoomNotFound        = errs.New("room not found")
	ErrRoomUnavailable     = errs.New("room is not available")
	ErrInvalidRoom         = errs.New("invalid room")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrNotReservationOwner = errs.New("reservation belongs to another user")
	ErrAlreadyCanceled     = errs.New("reservation already canceled")
	ErrInvalidRating       = errs.New("invalid rating")
	ErrRatingConflict      = errs.New("rating update kept conflicting")
	ErrPaymentFailed       = errs.New("payment failed")
)

// ValidationError reports every booking form field that failed.
type ValidationError struct {
	Fields map[booking.Field]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		keys = append(keys, string(f))
	}
	sort.Strings(keys)
	return fmt.Sprintf("booking form invalid: %s", strings.Join(keys, ", "))
}

// Detail returns the field map keyed the way clients send the form.
func (e *ValidationError) Detail() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for f, msg := range e.Fields {
		out[string(f)] = msg
	}
	return out
}
