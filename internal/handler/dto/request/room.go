package request

import (
	"strings"
	"time"

	"parkvue/internal/pkg/patch"
	"parkvue/internal/usecase/commands"
)

// Lat and Lng come from the map provider's geocoder on the client.
type CreateRoomRequest struct {
	Title         string     `json:"title" binding:"required,max=200"`
	Address       string     `json:"address" binding:"required,max=500"`
	Lat           *float64   `json:"lat" binding:"required,min=-90,max=90"`
	Lng           *float64   `json:"lng" binding:"required,min=-180,max=180"`
	Price         *float64   `json:"price" binding:"required,min=0"`
	AvailableFrom *time.Time `json:"availableFrom,omitempty"`
	AvailableTo   *time.Time `json:"availableTo,omitempty"`
}

func (r CreateRoomRequest) ToInput() commands.CreateRoomInput {
	return commands.CreateRoomInput{
		Title:         strings.TrimSpace(r.Title),
		Address:       strings.TrimSpace(r.Address),
		Lat:           patch.Coalesce(r.Lat, 0),
		Lng:           patch.Coalesce(r.Lng, 0),
		DailyRate:     patch.Coalesce(r.Price, 0),
		AvailableFrom: patch.TimeOrZero(r.AvailableFrom),
		AvailableTo:   patch.TimeOrZero(r.AvailableTo),
	}
}

type RateRoomRequest struct {
	Value *int `json:"value" binding:"required"`
}
