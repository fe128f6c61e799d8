package repository

import (
	"context"
	"time"

	"parkvue/internal/domain/booking"
	"parkvue/internal/domain/reservation"
	"parkvue/internal/infra"
	"parkvue/internal/infra/db"
	"parkvue/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	insertReservationSQL = `
		INSERT INTO reservations (
			id, room_id, user_id, booking_start, booking_end, status,
			duration_hours, hourly_rate, subtotal, service_fee_rate, service_fee, total,
			card_brand, card_last_four, charge_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	lockReservationSQL = `
		SELECT id, room_id, user_id, booking_start, booking_end, status,
		       duration_hours, hourly_rate, subtotal, service_fee_rate, service_fee, total,
		       card_brand, card_last_four, charge_id, created_at, updated_at
		FROM reservations
		WHERE id = $1
		FOR UPDATE`

	updateReservationStatusSQL = `
		UPDATE reservations SET status = $2, updated_at = $3
		WHERE id = $1`
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	q := res.Quote()
	card := res.Card()
	_, err := r.db.Exec(ctx, insertReservationSQL,
		res.ID(),
		res.RoomID(),
		res.UserID(),
		res.Start(),
		res.End(),
		res.Status().String(),
		q.DurationHours,
		q.HourlyRate,
		q.Subtotal,
		q.ServiceFeeRate,
		q.ServiceFee,
		q.Total,
		card.Brand,
		card.LastFour,
		res.ChargeID(),
		res.CreatedAt(),
		res.UpdatedAt(),
	)
	if err != nil {
		switch {
		case pgconv.IsUniqueViolation(err):
			// uq_reservations_confirmed_room: the room already has a confirmed booking
			return infra.WrapRepoErr("room already booked", err, infra.KindConflict)
		case pgconv.IsForeignKeyViolation(err):
			return infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		default:
			return infra.WrapRepoErr("failed to create reservation", err)
		}
	}
	return nil
}

func (r *ReservationRepository) LockByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var (
		resID, roomID, userID uuid.UUID
		start, end            time.Time
		createdAt, updatedAt  time.Time
		status, chargeID      string
		q                     booking.PriceQuote
		card                  reservation.PaymentCard
	)
	err := r.db.QueryRow(ctx, lockReservationSQL, id).Scan(
		&resID,
		&roomID,
		&userID,
		&start,
		&end,
		&status,
		&q.DurationHours,
		&q.HourlyRate,
		&q.Subtotal,
		&q.ServiceFeeRate,
		&q.ServiceFee,
		&q.Total,
		&card.Brand,
		&card.LastFour,
		&chargeID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}

	st, err := reservation.ParseStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has unknown status", err)
	}

	return reservation.ReconstructReservation(
		resID, roomID, userID,
		start, end,
		st, q, card, chargeID,
		createdAt, updatedAt,
	), nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, res *reservation.Reservation) error {
	tag, err := r.db.Exec(ctx, updateReservationStatusSQL, res.ID(), res.Status().String(), res.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}
