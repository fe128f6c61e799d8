package readstore

import (
	"context"

	"parkvue/internal/infra"
	"parkvue/internal/infra/db"
	"parkvue/internal/pkg/pgconv"
	"parkvue/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	getReservationByIDSQL = `
		SELECT r.id, r.room_id, rm.title, r.user_id, r.booking_start, r.booking_end, r.status,
		       r.duration_hours, r.hourly_rate, r.subtotal, r.service_fee, r.total,
		       r.card_brand, r.card_last_four, r.created_at, r.updated_at
		FROM reservations r
		JOIN rooms rm ON rm.id = r.room_id
		WHERE r.id = $1`

	listReservationsFirstPageSQL = `
		SELECT r.id, r.room_id, rm.title, r.booking_start, r.booking_end, r.status, r.total, r.created_at
		FROM reservations r
		JOIN rooms rm ON rm.id = r.room_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2`

	listReservationsKeysetSQL = `
		SELECT r.id, r.room_id, rm.title, r.booking_start, r.booking_end, r.status, r.total, r.created_at
		FROM reservations r
		JOIN rooms rm ON rm.id = r.room_id
		WHERE r.user_id = $1 AND (r.created_at, r.id) < ($2, $3)
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $4`
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	var v queries.ReservationView
	err := r.db.QueryRow(ctx, getReservationByIDSQL, id).Scan(
		&v.ID,
		&v.RoomID,
		&v.RoomTitle,
		&v.UserID,
		&v.BookingStart,
		&v.BookingEnd,
		&v.Status,
		&v.DurationHours,
		&v.HourlyRate,
		&v.Subtotal,
		&v.ServiceFee,
		&v.Total,
		&v.CardBrand,
		&v.CardLastFour,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return &v, nil
}

func (r *ReservationReadStore) ListByUser(ctx context.Context, userID uuid.UUID, page queries.KeysetPage) ([]*queries.ReservationListItem, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if page.After == nil {
		rows, err = r.db.Query(ctx, listReservationsFirstPageSQL, userID, page.Limit)
	} else {
		rows, err = r.db.Query(ctx, listReservationsKeysetSQL, userID, page.After.CreatedAt, page.After.ID, page.Limit)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ReservationListItem, error) {
		var item queries.ReservationListItem
		scanErr := row.Scan(
			&item.ID,
			&item.RoomID,
			&item.RoomTitle,
			&item.BookingStart,
			&item.BookingEnd,
			&item.Status,
			&item.Total,
			&item.CreatedAt,
		)
		return &item, scanErr
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read reservations", err)
	}
	return items, nil
}
