package queries

//go:generate mockgen -source=room.go -destination=../../../tests/mock/queries/room.go -package=queriesmock

import (
	"context"
	"time"

	"parkvue/internal/domain/booking"
	"parkvue/internal/infra"
	"parkvue/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrRoomNotFound = errs.New("room not found")

type RoomView struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Title         string
	Address       string
	Lat           float64
	Lng           float64
	Price         float64
	AvailableFrom *time.Time
	AvailableTo   *time.Time
	Available     bool
	RatingCount   int
	AverageRating float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type QuoteView struct {
	RoomID         uuid.UUID
	BookingStart   time.Time
	BookingEnd     time.Time
	DurationHours  int64
	HourlyRate     float64
	Subtotal       float64
	ServiceFeeRate float64
	ServiceFee     float64
	Total          float64
}

// RoomFilter narrows a listing. A nil Available lists every room.
type RoomFilter struct {
	Available *bool
}

type RoomReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	List(ctx context.Context, filter RoomFilter, limit int) ([]*RoomView, error)
}

type RoomQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	List(ctx context.Context, filter RoomFilter, limit int) ([]*RoomView, error)
	// Quote prices [start, end) for the room. Unset or inverted dates yield the zero quote.
	Quote(ctx context.Context, roomID uuid.UUID, start, end time.Time) (*QuoteView, error)
}

type roomQueriesImpl struct {
	store RoomReadStore
}

func NewRoomQueries(store RoomReadStore) RoomQueries {
	return &roomQueriesImpl{store: store}
}

func (q *roomQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Wrap(err, "failed to get room")
	}
	return view, nil
}

func (q *roomQueriesImpl) List(ctx context.Context, filter RoomFilter, limit int) ([]*RoomView, error) {
	rooms, err := q.store.List(ctx, filter, ValidateLimit(limit))
	if err != nil {
		return nil, errs.Wrap(err, "failed to list rooms")
	}
	return rooms, nil
}

func (q *roomQueriesImpl) Quote(ctx context.Context, roomID uuid.UUID, start, end time.Time) (*QuoteView, error) {
	view, err := q.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	quote := booking.ComputeQuote(view.Price, start, end)
	return &QuoteView{
		RoomID:         roomID,
		BookingStart:   start,
		BookingEnd:     end,
		DurationHours:  quote.DurationHours,
		HourlyRate:     quote.HourlyRate,
		Subtotal:       quote.Subtotal,
		ServiceFeeRate: quote.ServiceFeeRate,
		ServiceFee:     quote.ServiceFee,
		Total:          quote.Total,
	}, nil
}
