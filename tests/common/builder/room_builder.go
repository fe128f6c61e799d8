//go:build unit || e2e

package builder

import (
	"time"

	"parkvue/internal/domain/booking"
	"parkvue/internal/domain/rating"
	"parkvue/internal/domain/room"
	reqdto "parkvue/internal/handler/dto/request"
	"parkvue/internal/usecase/queries"
	"parkvue/internal/usecase/shared"

	"github.com/google/uuid"
)

type RoomBuilder struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Title         string
	Address       string
	Lat           float64
	Lng           float64
	DailyRate     float64
	AvailableFrom time.Time
	AvailableTo   time.Time
	Available     bool
	RatingCount   int
	AverageRating float64
	RatingVersion int64
	Now           time.Time
}

func NewRoomBuilder() *RoomBuilder {
	now := time.Date(2025, 1, 17, 12, 0, 0, 0, time.UTC)
	return &RoomBuilder{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		Title:     "Covered spot near the station",
		Address:   "1-2-3 Shibuya, Tokyo",
		Lat:       35.658,
		Lng:       139.7016,
		DailyRate: 48,
		Available: true,
		Now:       now,
	}
}

func (b *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(b)
	return b
}

func (b *RoomBuilder) Window() booking.AvailabilityWindow {
	return booking.AvailabilityWindow{From: b.AvailableFrom, To: b.AvailableTo}
}

func (b *RoomBuilder) BuildDomain() (*room.Room, error) {
	loc, err := room.NewLocation(b.Lat, b.Lng)
	if err != nil {
		return nil, err
	}
	return room.NewRoom(b.OwnerID, b.Title, b.Address, loc, b.DailyRate, b.Window(), b.Now)
}

func (b *RoomBuilder) BuildCreateRequestDTO() reqdto.CreateRoomRequest {
	lat, lng, price := b.Lat, b.Lng, b.DailyRate
	req := reqdto.CreateRoomRequest{
		Title:   b.Title,
		Address: b.Address,
		Lat:     &lat,
		Lng:     &lng,
		Price:   &price,
	}
	if !b.AvailableFrom.IsZero() {
		from := b.AvailableFrom
		req.AvailableFrom = &from
	}
	if !b.AvailableTo.IsZero() {
		to := b.AvailableTo
		req.AvailableTo = &to
	}
	return req
}

func (b *RoomBuilder) BuildView() *queries.RoomView {
	view := &queries.RoomView{
		ID:            b.ID,
		OwnerID:       b.OwnerID,
		Title:         b.Title,
		Address:       b.Address,
		Lat:           b.Lat,
		Lng:           b.Lng,
		Price:         b.DailyRate,
		Available:     b.Available,
		RatingCount:   b.RatingCount,
		AverageRating: b.AverageRating,
		CreatedAt:     b.Now,
		UpdatedAt:     b.Now,
	}
	if !b.AvailableFrom.IsZero() {
		from := b.AvailableFrom
		view.AvailableFrom = &from
	}
	if !b.AvailableTo.IsZero() {
		to := b.AvailableTo
		view.AvailableTo = &to
	}
	return view
}

func (b *RoomBuilder) BuildSnapshot() *shared.RoomSnapshot {
	return &shared.RoomSnapshot{
		ID:            b.ID,
		OwnerID:       b.OwnerID,
		DailyRate:     b.DailyRate,
		Window:        b.Window(),
		Available:     b.Available,
		Rating:        rating.Aggregate{Count: b.RatingCount, Average: b.AverageRating},
		RatingVersion: b.RatingVersion,
	}
}

func (b *RoomBuilder) WithOwnerID(ownerID uuid.UUID) *RoomBuilder {
	b.OwnerID = ownerID
	return b
}

func (b *RoomBuilder) WithDailyRate(rate float64) *RoomBuilder {
	b.DailyRate = rate
	return b
}

func (b *RoomBuilder) WithWindow(from, to time.Time) *RoomBuilder {
	b.AvailableFrom = from
	b.AvailableTo = to
	return b
}

func (b *RoomBuilder) WithRating(count int, average float64) *RoomBuilder {
	b.RatingCount = count
	b.AverageRating = average
	return b
}

func (b *RoomBuilder) AsReserved() *RoomBuilder {
	b.Available = false
	return b
}
