package shared

import (
	"context"
	"time"

	"parkvue/internal/domain/rating"
	"parkvue/internal/domain/reservation"
	"parkvue/internal/domain/room"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations, retried on serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

// Every repository handed out by a Tx runs on that transaction.
type Tx interface {
	Rooms() RoomRepository
	Reservations() ReservationRepository
	Ratings() RatingRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

type CommandReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
}

type RoomRepository interface {
	Create(ctx context.Context, r *room.Room) error
	// LockByID reads the room with SELECT ... FOR UPDATE.
	LockByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	// SaveAvailability persists the room's availability flag and updated_at.
	SaveAvailability(ctx context.Context, r *room.Room) error
	// UpdateRating writes the aggregate only if rating_version still equals
	// expectedVersion. It reports false when another writer got there first.
	UpdateRating(ctx context.Context, id uuid.UUID, agg rating.Aggregate, expectedVersion int64, now time.Time) (bool, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, r *reservation.Reservation) error
	LockByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	UpdateStatus(ctx context.Context, r *reservation.Reservation) error
}

type RatingRepository interface {
	// FindUserRating returns nil when the user has not rated the room yet.
	FindUserRating(ctx context.Context, roomID, userID uuid.UUID) (*rating.Value, error)
	Upsert(ctx context.Context, roomID, userID uuid.UUID, v rating.Value, now time.Time) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
