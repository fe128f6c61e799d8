package booking

import (
	"regexp"
	"strings"
	"time"
)

type Field string

const (
	FieldCardName     Field = "cardName"
	FieldCardNumber   Field = "cardNumber"
	FieldCardExpiry   Field = "cardExpiry"
	FieldCardCvc      Field = "cardCvc"
	FieldBookingStart Field = "bookingStart"
	FieldBookingEnd   Field = "bookingEnd"
)

var cvcPattern = regexp.MustCompile(`^\d{3,4}$`)

// BookingForm is the payment and booking submission. Zero times mean the
// date was not selected.
type BookingForm struct {
	CardName     string
	CardNumber   string
	CardExpiry   string
	CardCvc      string
	BookingStart time.Time
	BookingEnd   time.Time
}

// AvailabilityWindow bounds when a room can be booked. Zero bounds are open.
type AvailabilityWindow struct {
	From time.Time
	To   time.Time
}

type ValidationResult struct {
	Valid  bool
	Errors map[Field]string
}

func (r ValidationResult) Has(f Field) bool {
	_, ok := r.Errors[f]
	return ok
}

// ValidateBookingForm checks every field and reports all failures at once.
func ValidateBookingForm(form BookingForm, window AvailabilityWindow, asOf time.Time) ValidationResult {
	errs := make(map[Field]string)

	if strings.TrimSpace(form.CardName) == "" {
		errs[FieldCardName] = "Cardholder name is required"
	}
	if !ValidateCardNumber(form.CardNumber).Valid {
		errs[FieldCardNumber] = "Invalid card number"
	}
	if !ValidateExpiry(form.CardExpiry, asOf) {
		errs[FieldCardExpiry] = "Invalid or expired card"
	}
	if !cvcPattern.MatchString(form.CardCvc) {
		errs[FieldCardCvc] = "Invalid CVC"
	}

	hasStart := !form.BookingStart.IsZero()
	hasEnd := !form.BookingEnd.IsZero()
	if !hasStart {
		errs[FieldBookingStart] = "Start date is required"
	}
	if !hasEnd {
		errs[FieldBookingEnd] = "End date is required"
	}

	if hasStart && hasEnd {
		if !form.BookingEnd.After(form.BookingStart) {
			errs[FieldBookingEnd] = "End date must be after start date"
		}
		if !window.Contains(form.BookingStart, form.BookingEnd) {
			errs[FieldBookingStart] = "Selected dates are outside the listing's availability"
		}
	}

	return ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

func (w AvailabilityWindow) Contains(start, end time.Time) bool {
	if !w.From.IsZero() && start.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && end.After(w.To) {
		return false
	}
	return true
}
