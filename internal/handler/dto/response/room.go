package response

import (
	"time"

	"parkvue/internal/usecase/commands"
	"parkvue/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RoomResponse struct {
	ID            uuid.UUID  `json:"id"`
	OwnerID       uuid.UUID  `json:"ownerId"`
	Title         string     `json:"title"`
	Address       string     `json:"address"`
	Lat           float64    `json:"lat"`
	Lng           float64    `json:"lng"`
	Price         float64    `json:"price"`
	AvailableFrom *time.Time `json:"availableFrom,omitempty"`
	AvailableTo   *time.Time `json:"availableTo,omitempty"`
	Available     bool       `json:"available"`
	RatingCount   int        `json:"ratingCount"`
	AverageRating float64    `json:"averageRating"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type QuoteResponse struct {
	RoomID         uuid.UUID `json:"roomId"`
	BookingStart   time.Time `json:"bookingStart"`
	BookingEnd     time.Time `json:"bookingEnd"`
	DurationHours  int64     `json:"durationHours"`
	HourlyRate     float64   `json:"hourlyRate"`
	Subtotal       float64   `json:"subtotal"`
	ServiceFeeRate float64   `json:"serviceFeeRate"`
	ServiceFee     float64   `json:"serviceFee"`
	Total          float64   `json:"total"`
}

type RatingResponse struct {
	RoomID        uuid.UUID `json:"roomId"`
	Value         int       `json:"value"`
	RatingCount   int       `json:"ratingCount"`
	AverageRating float64   `json:"averageRating"`
}

func FromRoomView(v *queries.RoomView) (*RoomResponse, error) {
	var res RoomResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromRoomList(views []*queries.RoomView) ([]*RoomResponse, error) {
	res := make([]*RoomResponse, 0, len(views))
	for _, v := range views {
		item, err := FromRoomView(v)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, nil
}

func FromQuoteView(v *queries.QuoteView) (*QuoteResponse, error) {
	var res QuoteResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromRateResult(r *commands.RateRoomResult) *RatingResponse {
	return &RatingResponse{
		RoomID:        r.RoomID,
		Value:         r.Value,
		RatingCount:   r.RatingCount,
		AverageRating: r.AverageRating,
	}
}
