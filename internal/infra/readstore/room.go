package readstore

import (
	"context"
	"time"

	"parkvue/internal/domain/booking"
	"parkvue/internal/domain/rating"
	"parkvue/internal/infra"
	"parkvue/internal/infra/db"
	"parkvue/internal/pkg/pgconv"
	"parkvue/internal/usecase/queries"
	"parkvue/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const roomColumns = `
	id, owner_id, title, address, lat, lng, daily_rate,
	available_from, available_to, available,
	rating_count, average_rating, rating_version, created_at, updated_at`

const (
	getRoomByIDSQL = `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	// NULL $1 lists every room
	listRoomsSQL = `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE ($1::boolean IS NULL OR available = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
)

type RoomReadStore struct {
	db db.DBTX
}

func NewRoomReadStore(dbtx db.DBTX) *RoomReadStore {
	return &RoomReadStore{db: dbtx}
}

type roomRow struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Title         string
	Address       string
	Lat           float64
	Lng           float64
	DailyRate     float64
	AvailableFrom pgtype.Timestamptz
	AvailableTo   pgtype.Timestamptz
	Available     bool
	RatingCount   int
	AverageRating float64
	RatingVersion int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func scanRoom(row pgx.Row) (roomRow, error) {
	var r roomRow
	err := row.Scan(
		&r.ID,
		&r.OwnerID,
		&r.Title,
		&r.Address,
		&r.Lat,
		&r.Lng,
		&r.DailyRate,
		&r.AvailableFrom,
		&r.AvailableTo,
		&r.Available,
		&r.RatingCount,
		&r.AverageRating,
		&r.RatingVersion,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

func (r *RoomReadStore) findRow(ctx context.Context, id uuid.UUID) (roomRow, error) {
	row, err := scanRoom(r.db.QueryRow(ctx, getRoomByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return roomRow{}, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return roomRow{}, infra.WrapRepoErr("failed to find room by ID", err)
	}
	return row, nil
}

func (r *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	row, err := r.findRow(ctx, id)
	if err != nil {
		return nil, err
	}
	return rowToRoomView(row), nil
}

// SnapshotByID serves the write side's pre-transaction validation reads.
func (r *RoomReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	row, err := r.findRow(ctx, id)
	if err != nil {
		return nil, err
	}
	return &shared.RoomSnapshot{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		DailyRate: row.DailyRate,
		Window: booking.AvailabilityWindow{
			From: pgconv.TimeOrZero(row.AvailableFrom),
			To:   pgconv.TimeOrZero(row.AvailableTo),
		},
		Available:     row.Available,
		Rating:        rating.Aggregate{Count: row.RatingCount, Average: row.AverageRating},
		RatingVersion: row.RatingVersion,
	}, nil
}

func (r *RoomReadStore) List(ctx context.Context, filter queries.RoomFilter, limit int) ([]*queries.RoomView, error) {
	rows, err := r.db.Query(ctx, listRoomsSQL, filter.Available, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}

	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.RoomView, error) {
		rr, scanErr := scanRoom(row)
		if scanErr != nil {
			return nil, scanErr
		}
		return rowToRoomView(rr), nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read rooms", err)
	}
	return list, nil
}

func rowToRoomView(row roomRow) *queries.RoomView {
	return &queries.RoomView{
		ID:            row.ID,
		OwnerID:       row.OwnerID,
		Title:         row.Title,
		Address:       row.Address,
		Lat:           row.Lat,
		Lng:           row.Lng,
		Price:         row.DailyRate,
		AvailableFrom: pgconv.TimePtr(row.AvailableFrom),
		AvailableTo:   pgconv.TimePtr(row.AvailableTo),
		Available:     row.Available,
		RatingCount:   row.RatingCount,
		AverageRating: row.AverageRating,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
