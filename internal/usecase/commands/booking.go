package commands

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/booking.go -package=commandsmock

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parkvue/internal/domain/booking"
	"parkvue/internal/domain/reservation"
	"parkvue/internal/domain/room"
	"parkvue/internal/infra"
	"parkvue/internal/pkg/clock"
	"parkvue/internal/pkg/errs"
	"parkvue/internal/usecase/queries"
	"parkvue/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingCommands interface {
	CreateBooking(ctx context.Context, form booking.BookingForm, roomID, userID uuid.UUID) (*queries.ReservationView, error)
	CancelBooking(ctx context.Context, reservationID, userID uuid.UUID) (*queries.ReservationView, error)
}

type bookingUseCaseImpl struct {
	uow                shared.UnitOfWork
	payments           PaymentGateway
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	payments PaymentGateway,
	reservationQueries queries.ReservationQueries,
	clk clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:                uow,
		payments:           payments,
		reservationQueries: reservationQueries,
		clock:              clk,
	}
}

func (uc *bookingUseCaseImpl) CreateBooking(
	ctx context.Context,
	form booking.BookingForm,
	roomID, userID uuid.UUID,
) (*queries.ReservationView, error) {
	snap, err := uc.uow.CommandReads().RoomByID(ctx, roomID)
	if err != nil {
		return nil, mapRoomErr(err)
	}

	now := uc.clock.Now()
	if result := booking.ValidateBookingForm(form, snap.Window, now); !result.Valid {
		return nil, &ValidationError{Fields: result.Errors}
	}
	if !snap.Available {
		return nil, ErrRoomUnavailable
	}

	quote := booking.ComputeQuote(snap.DailyRate, form.BookingStart, form.BookingEnd)
	card := booking.ValidateCardNumber(form.CardNumber)

	receipt, err := uc.payments.Charge(ctx, ChargeRequest{
		Amount:     quote.Total,
		CardName:   form.CardName,
		CardDigits: card.Digits,
		Reference:  roomID.String(),
	})
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentFailed)
	}

	entity, err := reservation.NewReservation(
		roomID,
		userID,
		form.BookingStart,
		form.BookingEnd,
		quote,
		reservation.PaymentCard{Brand: card.Brand.String(), LastFour: card.LastFour()},
		receipt.ChargeID,
		now,
	)
	if err != nil {
		uc.refund(ctx, receipt.ChargeID)
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rm, derr := tx.Rooms().LockByID(ctx, roomID)
		if derr != nil {
			return mapRoomErr(derr)
		}
		if derr = rm.Reserve(now); derr != nil {
			if errors.Is(derr, room.ErrNotAvailable) {
				return ErrRoomUnavailable
			}
			return derr
		}

		if derr = tx.Reservations().Create(ctx, entity); derr != nil {
			if infra.IsKind(derr, infra.KindConflict) {
				return ErrRoomUnavailable
			}
			return derr
		}
		if derr = tx.Rooms().SaveAvailability(ctx, rm); derr != nil {
			return derr
		}
		return enqueueEvent(ctx, tx, shared.TopicReservationCreated, reservationEvent(entity, now), now)
	})
	if err != nil {
		uc.refund(ctx, receipt.ChargeID)
		return nil, err
	}

	// Read-after-write: Get the complete reservation view from read store
	return uc.reservationQueries.GetByIDSystem(ctx, entity.ID())
}

func (uc *bookingUseCaseImpl) CancelBooking(ctx context.Context, reservationID, userID uuid.UUID) (*queries.ReservationView, error) {
	now := uc.clock.Now()

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, derr := tx.Reservations().LockByID(ctx, reservationID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return derr
		}

		if derr = entity.Cancel(userID, now); derr != nil {
			switch {
			case errors.Is(derr, reservation.ErrNotOwner):
				return ErrNotReservationOwner
			case errors.Is(derr, reservation.ErrReservationCanceled):
				return ErrAlreadyCanceled
			default:
				return derr
			}
		}

		if derr = tx.Reservations().UpdateStatus(ctx, entity); derr != nil {
			return derr
		}
		rm, derr := tx.Rooms().LockByID(ctx, entity.RoomID())
		if derr != nil {
			return derr
		}
		rm.Release(now)
		if derr = tx.Rooms().SaveAvailability(ctx, rm); derr != nil {
			return derr
		}
		return enqueueEvent(ctx, tx, shared.TopicReservationCanceled, reservationEvent(entity, now), now)
	})
	if err != nil {
		return nil, err
	}

	return uc.reservationQueries.GetByIDSystem(ctx, reservationID)
}

// refund runs even when the request context is already canceled.
func (uc *bookingUseCaseImpl) refund(ctx context.Context, chargeID string) {
	if err := uc.payments.Refund(context.WithoutCancel(ctx), chargeID); err != nil {
		slog.Error("failed to refund charge",
			slog.String("charge_id", chargeID),
			slog.String("error", err.Error()),
		)
	}
}

func reservationEvent(r *reservation.Reservation, now time.Time) ReservationEvent {
	return ReservationEvent{
		ReservationID: r.ID(),
		RoomID:        r.RoomID(),
		UserID:        r.UserID(),
		Status:        r.Status().String(),
		Total:         r.Total(),
		BookingStart:  r.Start(),
		BookingEnd:    r.End(),
		OccurredAt:    now,
	}
}

func mapRoomErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return ErrRoomNotFound
	}
	return err
}
