//go:build unit || e2e

package builder

import (
	"time"

	"parkvue/internal/domain/booking"
	"parkvue/internal/domain/reservation"
	reqdto "parkvue/internal/handler/dto/request"
	"parkvue/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID           uuid.UUID
	RoomID       uuid.UUID
	RoomTitle    string
	UserID       uuid.UUID
	CardName     string
	CardNumber   string
	CardExpiry   string
	CardCvc      string
	BookingStart time.Time
	BookingEnd   time.Time
	DailyRate    float64
	Status       reservation.Status
	Now          time.Time
}

func NewBookingBuilder() *BookingBuilder {
	start := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:           uuid.New(),
		RoomID:       uuid.New(),
		RoomTitle:    "Covered spot near the station",
		UserID:       uuid.New(),
		CardName:     "Jamie Doe",
		CardNumber:   "4242 4242 4242 4242",
		CardExpiry:   "04/39",
		CardCvc:      "123",
		BookingStart: start,
		BookingEnd:   start.Add(3 * time.Hour),
		DailyRate:    48,
		Status:       reservation.StatusConfirmed,
		Now:          time.Date(2025, 1, 17, 12, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) Quote() booking.PriceQuote {
	return booking.ComputeQuote(b.DailyRate, b.BookingStart, b.BookingEnd)
}

func (b *BookingBuilder) BuildForm() booking.BookingForm {
	return booking.BookingForm{
		CardName:     b.CardName,
		CardNumber:   b.CardNumber,
		CardExpiry:   b.CardExpiry,
		CardCvc:      b.CardCvc,
		BookingStart: b.BookingStart,
		BookingEnd:   b.BookingEnd,
	}
}

func (b *BookingBuilder) BuildDomain() (*reservation.Reservation, error) {
	card := booking.ValidateCardNumber(b.CardNumber)
	return reservation.NewReservation(
		b.RoomID,
		b.UserID,
		b.BookingStart,
		b.BookingEnd,
		b.Quote(),
		reservation.PaymentCard{Brand: string(card.Brand), LastFour: card.LastFour()},
		"ch_test",
		b.Now,
	)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	start, end := b.BookingStart, b.BookingEnd
	return reqdto.CreateBookingRequest{
		RoomID:       b.RoomID,
		CardName:     b.CardName,
		CardNumber:   b.CardNumber,
		CardExpiry:   b.CardExpiry,
		CardCvc:      b.CardCvc,
		BookingStart: &start,
		BookingEnd:   &end,
	}
}

func (b *BookingBuilder) BuildView() *queries.ReservationView {
	q := b.Quote()
	card := booking.ValidateCardNumber(b.CardNumber)
	return &queries.ReservationView{
		ID:            b.ID,
		RoomID:        b.RoomID,
		RoomTitle:     b.RoomTitle,
		UserID:        b.UserID,
		BookingStart:  b.BookingStart,
		BookingEnd:    b.BookingEnd,
		Status:        b.Status.String(),
		DurationHours: q.DurationHours,
		HourlyRate:    q.HourlyRate,
		Subtotal:      q.Subtotal,
		ServiceFee:    q.ServiceFee,
		Total:         q.Total,
		CardBrand:     string(card.Brand),
		CardLastFour:  card.LastFour(),
		CreatedAt:     b.Now,
		UpdatedAt:     b.Now,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:           b.ID,
		RoomID:       b.RoomID,
		RoomTitle:    b.RoomTitle,
		BookingStart: b.BookingStart,
		BookingEnd:   b.BookingEnd,
		Status:       b.Status.String(),
		Total:        b.Quote().Total,
		CreatedAt:    b.Now,
	}
}

func (b *BookingBuilder) WithRoomID(roomID uuid.UUID) *BookingBuilder {
	b.RoomID = roomID
	return b
}

func (b *BookingBuilder) WithUserID(userID uuid.UUID) *BookingBuilder {
	b.UserID = userID
	return b
}

func (b *BookingBuilder) WithPeriod(start, end time.Time) *BookingBuilder {
	b.BookingStart = start
	b.BookingEnd = end
	return b
}

func (b *BookingBuilder) WithCardNumber(number string) *BookingBuilder {
	b.CardNumber = number
	return b
}

func (b *BookingBuilder) AsCanceled() *BookingBuilder {
	b.Status = reservation.StatusCanceled
	return b
}
