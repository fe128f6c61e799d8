package booking

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var expiryPattern = regexp.MustCompile(`^(\d{2})/(\d{2}|\d{4})$`)

// ValidateExpiry accepts MM/YY or MM/YYYY. A card stays valid through the
// last day of its expiry month.
func ValidateExpiry(raw string, asOf time.Time) bool {
	m := expiryPattern.FindStringSubmatch(removeSpaces(raw))
	if m == nil {
		return false
	}

	month, err := strconv.Atoi(m[1])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return false
	}
	if len(m[2]) == 2 {
		year += 2000
	}

	firstAfterExpiry := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	currentMonth := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstAfterExpiry.After(currentMonth)
}

func removeSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
