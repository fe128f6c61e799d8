package reservation

import (
	"errors"
	"time"

	"parkvue/internal/domain/booking"

	"github.com/google/uuid"
)

var (
	ErrInvalidPeriod       = errors.New("booking end must be after booking start")
	ErrNegativeTotal       = errors.New("total cannot be negative")
	ErrReservationCanceled = errors.New("reservation is already canceled")
	ErrInvalidStatus       = errors.New("invalid reservation status")
	ErrNotOwner            = errors.New("reservation belongs to another user")
)

type Reservation struct {
	id        uuid.UUID
	roomID    uuid.UUID
	userID    uuid.UUID
	start     time.Time
	end       time.Time
	status    Status
	quote     booking.PriceQuote
	card      PaymentCard
	chargeID  string
	createdAt time.Time
	updatedAt time.Time
}

// NewReservation records a paid booking. The quote total is the amount that
// was charged and is persisted as-is.
func NewReservation(
	roomID, userID uuid.UUID,
	start, end time.Time,
	quote booking.PriceQuote,
	card PaymentCard,
	chargeID string,
	now time.Time,
) (*Reservation, error) {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return nil, ErrInvalidPeriod
	}
	if quote.Total < 0 {
		return nil, ErrNegativeTotal
	}

	return &Reservation{
		id:        uuid.New(),
		roomID:    roomID,
		userID:    userID,
		start:     start,
		end:       end,
		status:    StatusConfirmed,
		quote:     quote,
		card:      card,
		chargeID:  chargeID,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructReservation(
	id, roomID, userID uuid.UUID,
	start, end time.Time,
	status Status,
	quote booking.PriceQuote,
	card PaymentCard,
	chargeID string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		roomID:    roomID,
		userID:    userID,
		start:     start,
		end:       end,
		status:    status,
		quote:     quote,
		card:      card,
		chargeID:  chargeID,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Cancel moves a confirmed reservation to canceled. Only the booker may do so.
func (r *Reservation) Cancel(actorID uuid.UUID, now time.Time) error {
	if actorID != r.userID {
		return ErrNotOwner
	}
	switch r.status {
	case StatusCanceled:
		return ErrReservationCanceled
	case StatusConfirmed:
		r.status = StatusCanceled
		r.updatedAt = now
		return nil
	default:
		return ErrInvalidStatus
	}
}

func (r *Reservation) ID() uuid.UUID             { return r.id }
func (r *Reservation) RoomID() uuid.UUID         { return r.roomID }
func (r *Reservation) UserID() uuid.UUID         { return r.userID }
func (r *Reservation) Start() time.Time          { return r.start }
func (r *Reservation) End() time.Time            { return r.end }
func (r *Reservation) Status() Status            { return r.status }
func (r *Reservation) Quote() booking.PriceQuote { return r.quote }
func (r *Reservation) Total() float64            { return r.quote.Total }
func (r *Reservation) Card() PaymentCard         { return r.card }
func (r *Reservation) ChargeID() string          { return r.chargeID }
func (r *Reservation) CreatedAt() time.Time      { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time      { return r.updatedAt }
