package request

import (
	"time"

	"parkvue/internal/domain/booking"
	"parkvue/internal/pkg/patch"

	"github.com/google/uuid"
)

// CreateBookingRequest leaves field checks to the booking form validator so
// that every invalid field is reported together.
type CreateBookingRequest struct {
	RoomID       uuid.UUID  `json:"roomId" binding:"required"`
	CardName     string     `json:"cardName"`
	CardNumber   string     `json:"cardNumber"`
	CardExpiry   string     `json:"cardExpiry"`
	CardCvc      string     `json:"cardCvc"`
	BookingStart *time.Time `json:"bookingStart"`
	BookingEnd   *time.Time `json:"bookingEnd"`
}

func (r CreateBookingRequest) ToForm() booking.BookingForm {
	return booking.BookingForm{
		CardName:     r.CardName,
		CardNumber:   r.CardNumber,
		CardExpiry:   r.CardExpiry,
		CardCvc:      r.CardCvc,
		BookingStart: patch.TimeOrZero(r.BookingStart),
		BookingEnd:   patch.TimeOrZero(r.BookingEnd),
	}
}
