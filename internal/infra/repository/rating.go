package repository

import (
	"context"
	"time"

	"parkvue/internal/domain/rating"
	"parkvue/internal/infra"
	"parkvue/internal/infra/db"
	"parkvue/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	findUserRatingSQL = `
		SELECT value FROM room_ratings
		WHERE room_id = $1 AND user_id = $2`

	upsertUserRatingSQL = `
		INSERT INTO room_ratings (room_id, user_id, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (room_id, user_id)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

// RatingRepository keeps the per-user marker that decides whether a
// submission is a first rating or a replacement.
type RatingRepository struct {
	db db.DBTX
}

func NewRatingRepository(dbtx db.DBTX) *RatingRepository {
	return &RatingRepository{db: dbtx}
}

func (r *RatingRepository) FindUserRating(ctx context.Context, roomID, userID uuid.UUID) (*rating.Value, error) {
	var raw int
	err := r.db.QueryRow(ctx, findUserRatingSQL, roomID, userID).Scan(&raw)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find user rating", err)
	}

	v, err := rating.NewValue(raw)
	if err != nil {
		return nil, infra.WrapRepoErr("stored rating out of range", err)
	}
	return &v, nil
}

func (r *RatingRepository) Upsert(ctx context.Context, roomID, userID uuid.UUID, v rating.Value, now time.Time) error {
	_, err := r.db.Exec(ctx, upsertUserRatingSQL, roomID, userID, v.Int(), now)
	if err != nil {
		if pgconv.IsForeignKeyViolation(err) {
			return infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to save user rating", err)
	}
	return nil
}
