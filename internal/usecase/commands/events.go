package commands

import (
	"context"
	"encoding/json"
	"time"

	"parkvue/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	RoomID        uuid.UUID `json:"room_id"`
	UserID        uuid.UUID `json:"user_id"`
	Status        string    `json:"status"`
	Total         float64   `json:"total"`
	BookingStart  time.Time `json:"booking_start"`
	BookingEnd    time.Time `json:"booking_end"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type RoomRatedEvent struct {
	RoomID        uuid.UUID `json:"room_id"`
	UserID        uuid.UUID `json:"user_id"`
	Value         int       `json:"value"`
	IsUpdate      bool      `json:"is_update"`
	RatingCount   int       `json:"rating_count"`
	AverageRating float64   `json:"average_rating"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// enqueueEvent writes the event as an outbox job on the caller's transaction.
func enqueueEvent(ctx context.Context, tx shared.Tx, topic string, event any, now time.Time) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, shared.JobKindEvent, topic, payload, now)
}
