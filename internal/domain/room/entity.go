package room

import (
	"errors"
	"strings"
	"time"

	"parkvue/internal/domain/booking"
	"parkvue/internal/domain/rating"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle      = errors.New("room title cannot be empty")
	ErrTitleTooLong    = errors.New("room title is too long (max 255 characters)")
	ErrEmptyAddress    = errors.New("room address cannot be empty")
	ErrNegativePrice   = errors.New("daily price cannot be negative")
	ErrInvalidWindow   = errors.New("available to must be after available from")
	ErrInvalidLocation = errors.New("latitude must be within [-90, 90] and longitude within [-180, 180]")
	ErrNotAvailable    = errors.New("room is not available")
)

const MaxTitleLength = 255

type Location struct {
	Lat float64
	Lng float64
}

func NewLocation(lat, lng float64) (Location, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Location{}, ErrInvalidLocation
	}
	return Location{Lat: lat, Lng: lng}, nil
}

type Room struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	title     string
	address   string
	location  Location
	dailyRate float64
	window    booking.AvailabilityWindow
	available bool
	rating    rating.Aggregate
	createdAt time.Time
	updatedAt time.Time
}

// NewRoom creates a reservable room with no ratings.
func NewRoom(
	ownerID uuid.UUID,
	title, address string,
	location Location,
	dailyRate float64,
	window booking.AvailabilityWindow,
	now time.Time,
) (*Room, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return nil, ErrTitleTooLong
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}
	if dailyRate < 0 {
		return nil, ErrNegativePrice
	}
	if !window.From.IsZero() && !window.To.IsZero() && !window.To.After(window.From) {
		return nil, ErrInvalidWindow
	}

	return &Room{
		id:        uuid.New(),
		ownerID:   ownerID,
		title:     title,
		address:   address,
		location:  location,
		dailyRate: dailyRate,
		window:    window,
		available: true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructRoom(
	id, ownerID uuid.UUID,
	title, address string,
	location Location,
	dailyRate float64,
	window booking.AvailabilityWindow,
	available bool,
	agg rating.Aggregate,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:        id,
		ownerID:   ownerID,
		title:     title,
		address:   address,
		location:  location,
		dailyRate: dailyRate,
		window:    window,
		available: available,
		rating:    agg,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Reserve marks the room as taken by a confirmed booking.
func (r *Room) Reserve(now time.Time) error {
	if !r.available {
		return ErrNotAvailable
	}
	r.available = false
	r.updatedAt = now
	return nil
}

func (r *Room) Release(now time.Time) {
	r.available = true
	r.updatedAt = now
}

func (r *Room) ID() uuid.UUID                      { return r.id }
func (r *Room) OwnerID() uuid.UUID                 { return r.ownerID }
func (r *Room) Title() string                      { return r.title }
func (r *Room) Address() string                    { return r.address }
func (r *Room) Location() Location                 { return r.location }
func (r *Room) DailyRate() float64                 { return r.dailyRate }
func (r *Room) Window() booking.AvailabilityWindow { return r.window }
func (r *Room) IsAvailable() bool                  { return r.available }
func (r *Room) Rating() rating.Aggregate           { return r.rating }
func (r *Room) CreatedAt() time.Time               { return r.createdAt }
func (r *Room) UpdatedAt() time.Time               { return r.updatedAt }
