//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"parkvue/internal/domain/rating"
	"parkvue/internal/domain/reservation"
	"parkvue/internal/domain/room"
	"parkvue/internal/infra"
	"parkvue/internal/usecase/commands"
	"parkvue/internal/usecase/queries"
	"parkvue/internal/usecase/shared"

	"github.com/google/uuid"
)

type job struct {
	kind    string
	topic   string
	payload []byte
}

// memStore is an in-memory stand-in for the database. Within applies the
// callback's writes only when it returns nil.
type memStore struct {
	mu           sync.Mutex
	rooms        map[uuid.UUID]*shared.RoomSnapshot
	created      []*room.Room
	reservations map[uuid.UUID]*reservation.Reservation
	ratings      map[[2]uuid.UUID]rating.Value
	jobs         []job

	// beforeRatingWrite runs inside UpdateRating before the version check.
	beforeRatingWrite func(s *memStore)
	withinCalls       int
}

func newMemStore() *memStore {
	return &memStore{
		rooms:        make(map[uuid.UUID]*shared.RoomSnapshot),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
		ratings:      make(map[[2]uuid.UUID]rating.Value),
	}
}

func (s *memStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	s.withinCalls++
	s.mu.Unlock()

	tx := &memTx{store: s}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for _, apply := range tx.pending {
		apply()
	}
	return nil
}

func (s *memStore) CommandReads() shared.CommandReads { return memReads{store: s} }

func (s *memStore) room(id uuid.UUID) (*shared.RoomSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.rooms[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	cp := *snap
	return &cp, nil
}

type memReads struct{ store *memStore }

func (r memReads) RoomByID(_ context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	return r.store.room(id)
}

type memTx struct {
	store   *memStore
	pending []func()
}

func (t *memTx) stage(f func()) { t.pending = append(t.pending, f) }

func (t *memTx) Rooms() shared.RoomRepository               { return memRooms{t} }
func (t *memTx) Reservations() shared.ReservationRepository { return memReservations{t} }
func (t *memTx) Ratings() shared.RatingRepository           { return memRatings{t} }
func (t *memTx) Notifications() shared.NotificationRepository {
	return memNotifications{t}
}
func (t *memTx) Reads() shared.CommandReads { return memReads{store: t.store} }

type memRooms struct{ tx *memTx }

func (r memRooms) Create(_ context.Context, rm *room.Room) error {
	r.tx.stage(func() {
		s := r.tx.store
		s.mu.Lock()
		defer s.mu.Unlock()
		s.created = append(s.created, rm)
		s.rooms[rm.ID()] = &shared.RoomSnapshot{
			ID:        rm.ID(),
			OwnerID:   rm.OwnerID(),
			DailyRate: rm.DailyRate(),
			Window:    rm.Window(),
			Available: rm.IsAvailable(),
		}
	})
	return nil
}

func (r memRooms) LockByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	snap, err := r.tx.store.room(id)
	if err != nil {
		return nil, err
	}
	return room.ReconstructRoom(
		snap.ID, snap.OwnerID,
		"", "",
		room.Location{}, snap.DailyRate, snap.Window,
		snap.Available, snap.Rating,
		time.Time{}, time.Time{},
	), nil
}

func (r memRooms) SaveAvailability(_ context.Context, rm *room.Room) error {
	r.tx.stage(func() {
		s := r.tx.store
		s.mu.Lock()
		defer s.mu.Unlock()
		s.rooms[rm.ID()].Available = rm.IsAvailable()
	})
	return nil
}

func (r memRooms) UpdateRating(_ context.Context, id uuid.UUID, agg rating.Aggregate, expectedVersion int64, _ time.Time) (bool, error) {
	s := r.tx.store
	if s.beforeRatingWrite != nil {
		s.beforeRatingWrite(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.rooms[id]
	if !ok || snap.RatingVersion != expectedVersion {
		return false, nil
	}
	// applied eagerly so a losing concurrent writer sees the bump
	snap.Rating = agg
	snap.RatingVersion++
	return true, nil
}

type memReservations struct{ tx *memTx }

func (r memReservations) Create(_ context.Context, res *reservation.Reservation) error {
	r.tx.stage(func() {
		s := r.tx.store
		s.mu.Lock()
		defer s.mu.Unlock()
		s.reservations[res.ID()] = res
	})
	return nil
}

func (r memReservations) LockByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return reservation.ReconstructReservation(
		res.ID(), res.RoomID(), res.UserID(), res.Start(), res.End(), res.Status(),
		res.Quote(), res.Card(), res.ChargeID(), res.CreatedAt(), res.UpdatedAt(),
	), nil
}

func (r memReservations) UpdateStatus(_ context.Context, res *reservation.Reservation) error {
	r.tx.stage(func() {
		s := r.tx.store
		s.mu.Lock()
		defer s.mu.Unlock()
		s.reservations[res.ID()] = res
	})
	return nil
}

type memRatings struct{ tx *memTx }

func (r memRatings) FindUserRating(_ context.Context, roomID, userID uuid.UUID) (*rating.Value, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.ratings[[2]uuid.UUID{roomID, userID}]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r memRatings) Upsert(_ context.Context, roomID, userID uuid.UUID, v rating.Value, _ time.Time) error {
	r.tx.stage(func() {
		s := r.tx.store
		s.mu.Lock()
		defer s.mu.Unlock()
		s.ratings[[2]uuid.UUID{roomID, userID}] = v
	})
	return nil
}

type memNotifications struct{ tx *memTx }

func (n memNotifications) CreateJob(_ context.Context, kind, topic string, payload []byte, _ time.Time) error {
	n.tx.stage(func() {
		s := n.tx.store
		s.mu.Lock()
		defer s.mu.Unlock()
		s.jobs = append(s.jobs, job{kind: kind, topic: topic, payload: payload})
	})
	return nil
}

type fakeGateway struct {
	charges   []commands.ChargeRequest
	refunds   []string
	chargeErr error
	// onCharge runs while the charge is in flight.
	onCharge func()
}

func (g *fakeGateway) Charge(_ context.Context, req commands.ChargeRequest) (*commands.ChargeReceipt, error) {
	if g.chargeErr != nil {
		return nil, g.chargeErr
	}
	if g.onCharge != nil {
		g.onCharge()
	}
	g.charges = append(g.charges, req)
	return &commands.ChargeReceipt{ChargeID: "ch_fake", Amount: req.Amount}, nil
}

func (g *fakeGateway) Refund(_ context.Context, chargeID string) error {
	g.refunds = append(g.refunds, chargeID)
	return nil
}

// reservationReads serves read-after-write lookups from the memStore.
type reservationReads struct{ store *memStore }

func (r reservationReads) GetByID(ctx context.Context, _ uuid.UUID, id uuid.UUID) (*queries.ReservationView, error) {
	return r.GetByIDSystem(ctx, id)
}

func (r reservationReads) GetByIDSystem(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	res, ok := r.store.reservations[id]
	if !ok {
		return nil, queries.ErrReservationNotFound
	}
	return &queries.ReservationView{
		ID:            res.ID(),
		RoomID:        res.RoomID(),
		UserID:        res.UserID(),
		BookingStart:  res.Start(),
		BookingEnd:    res.End(),
		Status:        res.Status().String(),
		DurationHours: res.Quote().DurationHours,
		Total:         res.Total(),
		CardBrand:     res.Card().Brand,
		CardLastFour:  res.Card().LastFour,
	}, nil
}

func (r reservationReads) ListByUser(context.Context, uuid.UUID, *queries.Cursor, int) ([]*queries.ReservationListItem, *queries.Cursor, error) {
	return nil, nil, nil
}

type roomReads struct{ store *memStore }

func (r roomReads) GetByID(_ context.Context, id uuid.UUID) (*queries.RoomView, error) {
	snap, err := r.store.room(id)
	if err != nil {
		return nil, queries.ErrRoomNotFound
	}
	return &queries.RoomView{ID: snap.ID, OwnerID: snap.OwnerID, Price: snap.DailyRate, Available: snap.Available}, nil
}

func (r roomReads) List(context.Context, queries.RoomFilter, int) ([]*queries.RoomView, error) {
	return nil, nil
}

func (r roomReads) Quote(context.Context, uuid.UUID, time.Time, time.Time) (*queries.QuoteView, error) {
	return nil, nil
}
