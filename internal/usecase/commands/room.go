package commands

//go:generate mockgen -source=room.go -destination=../../../tests/mock/commands/room.go -package=commandsmock

import (
	"context"
	"time"

	"parkvue/internal/domain/booking"
	"parkvue/internal/domain/room"
	"parkvue/internal/pkg/clock"
	"parkvue/internal/pkg/errs"
	"parkvue/internal/usecase/queries"
	"parkvue/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateRoomInput struct {
	Title         string
	Address       string
	Lat           float64
	Lng           float64
	DailyRate     float64
	AvailableFrom time.Time
	AvailableTo   time.Time
}

type RoomCommands interface {
	CreateRoom(ctx context.Context, input CreateRoomInput, ownerID uuid.UUID) (*queries.RoomView, error)
}

type roomUseCaseImpl struct {
	uow         shared.UnitOfWork
	roomQueries queries.RoomQueries
	clock       clock.Clock
}

func NewRoomUseCase(uow shared.UnitOfWork, roomQueries queries.RoomQueries, clk clock.Clock) RoomCommands {
	return &roomUseCaseImpl{uow: uow, roomQueries: roomQueries, clock: clk}
}

func (uc *roomUseCaseImpl) CreateRoom(ctx context.Context, input CreateRoomInput, ownerID uuid.UUID) (*queries.RoomView, error) {
	location, err := room.NewLocation(input.Lat, input.Lng)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRoom)
	}

	window := booking.AvailabilityWindow{From: input.AvailableFrom, To: input.AvailableTo}
	entity, err := room.NewRoom(ownerID, input.Title, input.Address, location, input.DailyRate, window, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRoom)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Rooms().Create(ctx, entity)
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write
	return uc.roomQueries.GetByID(ctx, entity.ID())
}
