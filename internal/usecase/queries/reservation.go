package queries

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation.go -package=queriesmock

import (
	"context"
	"time"

	"parkvue/internal/infra"
	"parkvue/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrReservationAccess   = errs.New("reservation belongs to another user")
	ErrInvalidCursor       = errs.New("invalid cursor")
)

// Read models (DTO for read side)
type ReservationView struct {
	ID            uuid.UUID
	RoomID        uuid.UUID
	RoomTitle     string
	UserID        uuid.UUID
	BookingStart  time.Time
	BookingEnd    time.Time
	Status        string
	DurationHours int64
	HourlyRate    float64
	Subtotal      float64
	ServiceFee    float64
	Total         float64
	CardBrand     string
	CardLastFour  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ReservationListItem struct {
	ID           uuid.UUID
	RoomID       uuid.UUID
	RoomTitle    string
	BookingStart time.Time
	BookingEnd   time.Time
	Status       string
	Total        float64
	CreatedAt    time.Time
}

// KeysetPage asks for items strictly older than (CreatedAt, ID), newest first.
// A nil After starts at the newest item.
type KeysetPage struct {
	After *Keyset
	Limit int
}

type Keyset struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*ReservationView, error)
	// GetByIDSystem skips the ownership check for reads that follow a write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page KeysetPage) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*ReservationView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.UserID != actor {
		return nil, ErrReservationAccess
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Wrap(err, "failed to get reservation")
	}
	return view, nil
}

// ListByUser pages one extra row to learn whether a next cursor is needed.
func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	page := KeysetPage{Limit: limit + 1}
	if after != nil && after.After != "" {
		createdAt, id, err := DecodeAfterCursor(after.After)
		if err != nil {
			return nil, nil, errs.Mark(err, ErrInvalidCursor)
		}
		page.After = &Keyset{CreatedAt: createdAt, ID: id}
	}

	items, err := q.store.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to list reservations")
	}

	if len(items) <= limit {
		return items, nil, nil
	}

	items = items[:limit]
	last := items[len(items)-1]
	return items, &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}, nil
}
