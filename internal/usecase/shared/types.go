package shared

import (
	"parkvue/internal/domain/booking"
	"parkvue/internal/domain/rating"

	"github.com/google/uuid"
)

// RoomSnapshot is the write side's view of a room.
type RoomSnapshot struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	DailyRate     float64
	Window        booking.AvailabilityWindow
	Available     bool
	Rating        rating.Aggregate
	RatingVersion int64
}

// Notification kinds and the topics they are published to.
const (
	JobKindEvent = "event"

	TopicReservationCreated  = "reservation_created"
	TopicReservationCanceled = "reservation_canceled"
	TopicRoomRated           = "room_rated"
)
