//go:build unit

package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"parkvue/internal/handler/dto/response"
	"parkvue/internal/usecase/queries"
	"parkvue/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRoomView(t *testing.T) {
	b := builder.NewRoomBuilder().WithRating(3, 4.5)
	b.AvailableFrom = b.Now
	b.AvailableTo = b.Now.AddDate(0, 1, 0)
	view := b.BuildView()

	got, err := response.FromRoomView(view)
	require.NoError(t, err)

	want := &response.RoomResponse{
		ID:            view.ID,
		OwnerID:       view.OwnerID,
		Title:         view.Title,
		Address:       view.Address,
		Lat:           view.Lat,
		Lng:           view.Lng,
		Price:         view.Price,
		AvailableFrom: view.AvailableFrom,
		AvailableTo:   view.AvailableTo,
		Available:     true,
		RatingCount:   3,
		AverageRating: 4.5,
		CreatedAt:     view.CreatedAt,
		UpdatedAt:     view.UpdatedAt,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromRoomView mismatch (-want +got):\n%s", diff)
	}
}

func TestFromReservationList(t *testing.T) {
	first := builder.NewBookingBuilder().BuildListItem()
	second := builder.NewBookingBuilder().AsCanceled().BuildListItem()

	t.Run("with next cursor", func(t *testing.T) {
		got, err := response.FromReservationList(
			[]*queries.ReservationListItem{first, second},
			&queries.Cursor{After: "abc"},
		)
		require.NoError(t, err)

		require.Len(t, got.Items, 2)
		require.NotNil(t, got.NextCursor)
		if diff := cmp.Diff("abc", *got.NextCursor); diff != "" {
			t.Errorf("cursor mismatch (-want +got):\n%s", diff)
		}
		want := &response.BookingListItemResponse{
			ID:           second.ID,
			RoomID:       second.RoomID,
			RoomTitle:    second.RoomTitle,
			BookingStart: second.BookingStart,
			BookingEnd:   second.BookingEnd,
			Status:       "canceled",
			Total:        second.Total,
			CreatedAt:    second.CreatedAt,
		}
		if diff := cmp.Diff(want, got.Items[1]); diff != "" {
			t.Errorf("item mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("last page", func(t *testing.T) {
		got, err := response.FromReservationList(nil, nil)
		require.NoError(t, err)
		require.NotNil(t, got.Items)
		require.Empty(t, got.Items)
		require.Nil(t, got.NextCursor)
	})
}

func TestFromQuoteView_WireNames(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	view := &queries.QuoteView{
		RoomID:         uuid.New(),
		BookingStart:   start,
		BookingEnd:     start.Add(3 * time.Hour),
		DurationHours:  3,
		HourlyRate:     2,
		Subtotal:       6,
		ServiceFeeRate: 0.1,
		ServiceFee:     0.6,
		Total:          6.6,
	}

	got, err := response.FromQuoteView(view)
	require.NoError(t, err)
	raw, err := json.Marshal(got)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.InDelta(t, 0.1, body["serviceFeeRate"], 1e-9)
	assert.InDelta(t, 6.6, body["total"], 1e-9)
	assert.EqualValues(t, 3, body["durationHours"])
	assert.NotContains(t, body, "service_fee_rate")
	assert.NotContains(t, body, "duration_hours")
}
