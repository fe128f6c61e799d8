package repository

import (
	"context"
	"time"

	"parkvue/internal/domain/booking"
	"parkvue/internal/domain/rating"
	"parkvue/internal/domain/room"
	"parkvue/internal/infra"
	"parkvue/internal/infra/db"
	"parkvue/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	insertRoomSQL = `
		INSERT INTO rooms (
			id, owner_id, title, address, lat, lng, daily_rate,
			available_from, available_to, available,
			rating_count, average_rating, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	lockRoomSQL = `
		SELECT id, owner_id, title, address, lat, lng, daily_rate,
		       available_from, available_to, available,
		       rating_count, average_rating, created_at, updated_at
		FROM rooms
		WHERE id = $1
		FOR UPDATE`

	setRoomAvailableSQL = `
		UPDATE rooms SET available = $2, updated_at = $3
		WHERE id = $1`

	// the version predicate is the optimistic lock for the running average
	updateRoomRatingSQL = `
		UPDATE rooms
		SET rating_count = $2, average_rating = $3, rating_version = rating_version + 1, updated_at = $5
		WHERE id = $1 AND rating_version = $4`
)

type RoomRepository struct {
	db db.DBTX
}

func NewRoomRepository(dbtx db.DBTX) *RoomRepository {
	return &RoomRepository{db: dbtx}
}

func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	window := rm.Window()
	agg := rm.Rating()
	_, err := r.db.Exec(ctx, insertRoomSQL,
		rm.ID(),
		rm.OwnerID(),
		rm.Title(),
		rm.Address(),
		rm.Location().Lat,
		rm.Location().Lng,
		rm.DailyRate(),
		pgconv.OptionalTime(window.From),
		pgconv.OptionalTime(window.To),
		rm.IsAvailable(),
		agg.Count,
		agg.Average,
		rm.CreatedAt(),
		rm.UpdatedAt(),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("room already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create room", err)
	}
	return nil
}

func (r *RoomRepository) LockByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	var (
		roomID, ownerID      uuid.UUID
		title, address       string
		loc                  room.Location
		dailyRate            float64
		from, to             pgtype.Timestamptz
		available            bool
		agg                  rating.Aggregate
		createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, lockRoomSQL, id).Scan(
		&roomID,
		&ownerID,
		&title,
		&address,
		&loc.Lat,
		&loc.Lng,
		&dailyRate,
		&from,
		&to,
		&available,
		&agg.Count,
		&agg.Average,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock room", err)
	}

	window := booking.AvailabilityWindow{From: pgconv.TimeOrZero(from), To: pgconv.TimeOrZero(to)}
	return room.ReconstructRoom(
		roomID, ownerID,
		title, address,
		loc, dailyRate, window,
		available, agg,
		createdAt, updatedAt,
	), nil
}

func (r *RoomRepository) SaveAvailability(ctx context.Context, rm *room.Room) error {
	tag, err := r.db.Exec(ctx, setRoomAvailableSQL, rm.ID(), rm.IsAvailable(), rm.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update room availability", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

// UpdateRating reports false when rating_version moved past expectedVersion.
func (r *RoomRepository) UpdateRating(ctx context.Context, id uuid.UUID, agg rating.Aggregate, expectedVersion int64, now time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, updateRoomRatingSQL, id, agg.Count, agg.Average, expectedVersion, now)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update room rating", err)
	}
	return tag.RowsAffected() == 1, nil
}
