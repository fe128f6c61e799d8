package commands

//go:generate mockgen -source=rating.go -destination=../../../tests/mock/commands/rating.go -package=commandsmock

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parkvue/internal/domain/rating"
	"parkvue/internal/pkg/clock"
	"parkvue/internal/pkg/config"
	"parkvue/internal/pkg/errs"
	"parkvue/internal/usecase/shared"

	"github.com/google/uuid"
)

var errVersionConflict = errs.New("room rating version changed")

type RateRoomResult struct {
	RoomID        uuid.UUID
	Value         int
	RatingCount   int
	AverageRating float64
}

type RatingCommands interface {
	// RateRoom records the caller's rating and folds it into the room's
	// running average. A repeat rating replaces the caller's previous one.
	RateRoom(ctx context.Context, roomID, userID uuid.UUID, value int) (*RateRoomResult, error)
}

type ratingUseCaseImpl struct {
	uow         shared.UnitOfWork
	clock       clock.Clock
	maxAttempts int
	backoff     time.Duration
}

func NewRatingUseCase(uow shared.UnitOfWork, clk clock.Clock, cfg config.RatingConfig) RatingCommands {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &ratingUseCaseImpl{
		uow:         uow,
		clock:       clk,
		maxAttempts: maxAttempts,
		backoff:     cfg.Backoff,
	}
}

func (uc *ratingUseCaseImpl) RateRoom(ctx context.Context, roomID, userID uuid.UUID, value int) (*RateRoomResult, error) {
	v, err := rating.NewValue(value)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRating)
	}

	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		result, err := uc.rateOnce(ctx, roomID, userID, v)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, errVersionConflict) {
			return nil, err
		}

		slog.Debug("rating version conflict",
			slog.String("room_id", roomID.String()),
			slog.Int("attempt", attempt),
		)
		if attempt == uc.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * uc.backoff):
		}
	}

	return nil, ErrRatingConflict
}

// rateOnce runs one read-compute-write cycle. The aggregate write only lands
// if nobody bumped rating_version since the read.
func (uc *ratingUseCaseImpl) rateOnce(ctx context.Context, roomID, userID uuid.UUID, v rating.Value) (*RateRoomResult, error) {
	var result *RateRoomResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().RoomByID(ctx, roomID)
		if derr != nil {
			return mapRoomErr(derr)
		}

		previous, derr := tx.Ratings().FindUserRating(ctx, roomID, userID)
		if derr != nil {
			return derr
		}
		submission := rating.Submission{Value: v, Previous: previous}
		if submission.IsUpdate() && snap.Rating.Count == 0 {
			return errs.Newf("room %s has a rating marker but no ratings", roomID)
		}

		now := uc.clock.Now()
		next := rating.Apply(snap.Rating, submission)

		ok, derr := tx.Rooms().UpdateRating(ctx, roomID, next, snap.RatingVersion, now)
		if derr != nil {
			return derr
		}
		if !ok {
			return errVersionConflict
		}

		if derr = tx.Ratings().Upsert(ctx, roomID, userID, v, now); derr != nil {
			return derr
		}

		event := RoomRatedEvent{
			RoomID:        roomID,
			UserID:        userID,
			Value:         v.Int(),
			IsUpdate:      submission.IsUpdate(),
			RatingCount:   next.Count,
			AverageRating: next.Average,
			OccurredAt:    now,
		}
		if derr = enqueueEvent(ctx, tx, shared.TopicRoomRated, event, now); derr != nil {
			return derr
		}

		result = &RateRoomResult{
			RoomID:        roomID,
			Value:         v.Int(),
			RatingCount:   next.Count,
			AverageRating: next.Average,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
