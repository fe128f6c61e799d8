package response

import (
	"time"

	"parkvue/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	RoomID        uuid.UUID `json:"roomId"`
	RoomTitle     string    `json:"roomTitle"`
	UserID        uuid.UUID `json:"userId"`
	BookingStart  time.Time `json:"bookingStart"`
	BookingEnd    time.Time `json:"bookingEnd"`
	Status        string    `json:"status"`
	DurationHours int64     `json:"durationHours"`
	HourlyRate    float64   `json:"hourlyRate"`
	Subtotal      float64   `json:"subtotal"`
	ServiceFee    float64   `json:"serviceFee"`
	Total         float64   `json:"total"`
	CardBrand     string    `json:"cardBrand"`
	CardLastFour  string    `json:"cardLastFour"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type BookingListItemResponse struct {
	ID           uuid.UUID `json:"id"`
	RoomID       uuid.UUID `json:"roomId"`
	RoomTitle    string    `json:"roomTitle"`
	BookingStart time.Time `json:"bookingStart"`
	BookingEnd   time.Time `json:"bookingEnd"`
	Status       string    `json:"status"`
	Total        float64   `json:"total"`
	CreatedAt    time.Time `json:"createdAt"`
}

type BookingListResponse struct {
	Items      []*BookingListItemResponse `json:"items"`
	NextCursor *string                    `json:"nextCursor,omitempty"`
}

func FromReservationView(v *queries.ReservationView) (*BookingResponse, error) {
	var res BookingResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromReservationList(items []*queries.ReservationListItem, next *queries.Cursor) (*BookingListResponse, error) {
	res := &BookingListResponse{Items: make([]*BookingListItemResponse, 0, len(items))}
	for _, item := range items {
		var out BookingListItemResponse
		if err := copier.Copy(&out, item); err != nil {
			return nil, err
		}
		res.Items = append(res.Items, &out)
	}
	if next != nil {
		after := next.After
		res.NextCursor = &after
	}
	return res, nil
}
