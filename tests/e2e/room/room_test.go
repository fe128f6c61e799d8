//go:build e2e

package room

import (
	"net/http"
	"testing"
	"time"

	"parkvue/internal/domain/user"
	resdto "parkvue/internal/handler/dto/response"
	"parkvue/tests/common/authtest"
	"parkvue/tests/common/builder"
	"parkvue/tests/common/dbtest"
	"parkvue/tests/common/httptest"
	"parkvue/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type roomSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func TestRoomSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(roomSuite))
}

func (s *roomSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *roomSuite) TestCreateRoom() {
	s.Run("host creates a room that can be read back", func() {
		hostID := uuid.New()
		token := s.jwt.GenerateToken(s.T(), hostID, user.RoleHost)
		from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		b := builder.NewRoomBuilder().WithWindow(from, from.AddDate(0, 1, 0))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/rooms", b.BuildCreateRequestDTO(), token)

		var created resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/rooms/" + created.ID.String()})

		want := resdto.RoomResponse{
			OwnerID:       hostID,
			Title:         b.Title,
			Address:       b.Address,
			Lat:           b.Lat,
			Lng:           b.Lng,
			Price:         b.DailyRate,
			AvailableFrom: &b.AvailableFrom,
			AvailableTo:   &b.AvailableTo,
			Available:     true,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(resdto.RoomResponse{}, "ID", "CreatedAt", "UpdatedAt"),
			cmpopts.EquateApproxTime(time.Second),
		}
		if diff := cmp.Diff(want, created, opts...); diff != "" {
			s.T().Errorf("room mismatch (-want +got):\n%s", diff)
		}

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/rooms/"+created.ID.String(), nil, "")
		var fetched resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &fetched)
		if diff := cmp.Diff(created, fetched, cmpopts.EquateApproxTime(time.Millisecond)); diff != "" {
			s.T().Errorf("fetched room mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("guest is forbidden", func() {
		token := s.jwt.GenerateToken(s.T(), uuid.New(), user.RoleGuest)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/rooms",
			builder.NewRoomBuilder().BuildCreateRequestDTO(), token)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("missing fields are a bad request", func() {
		token := s.jwt.GenerateToken(s.T(), uuid.New(), user.RoleAdmin)
		req := builder.NewRoomBuilder().BuildCreateRequestDTO()
		req.Lat = nil

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/rooms", req, token)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("inverted window is unprocessable", func() {
		token := s.jwt.GenerateToken(s.T(), uuid.New(), user.RoleHost)
		from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		b := builder.NewRoomBuilder().WithWindow(from, from.AddDate(0, 0, -1))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/rooms", b.BuildCreateRequestDTO(), token)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "")
	})
}

func (s *roomSuite) TestListRooms() {
	s.Run("filters on availability, newest first", func() {
		base := time.Date(2025, 1, 17, 12, 0, 0, 0, time.UTC)
		older := dbtest.InsertRoom(s.T(), s.DB, builder.NewRoomBuilder().With(func(b *builder.RoomBuilder) { b.Now = base }))
		newer := dbtest.InsertRoom(s.T(), s.DB, builder.NewRoomBuilder().With(func(b *builder.RoomBuilder) { b.Now = base.Add(time.Hour) }))
		reserved := dbtest.InsertRoom(s.T(), s.DB, builder.NewRoomBuilder().AsReserved())

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/rooms?available=true", nil, "")
		var open []resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &open)
		require.Len(s.T(), open, 2)
		assert.Equal(s.T(), []uuid.UUID{newer, older}, []uuid.UUID{open[0].ID, open[1].ID})

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/rooms?available=false", nil, "")
		var taken []resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &taken)
		require.Len(s.T(), taken, 1)
		assert.Equal(s.T(), reserved, taken[0].ID)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/rooms?limit=1", nil, "")
		var limited []resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &limited)
		assert.Len(s.T(), limited, 1)
	})

	s.Run("rejects a bad filter", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/rooms?available=maybe", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid available filter")
	})
}

func (s *roomSuite) TestQuote() {
	s.Run("prices the requested period", func() {
		roomID := dbtest.InsertRoom(s.T(), s.DB, builder.NewRoomBuilder().WithDailyRate(48))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			"/api/rooms/"+roomID.String()+"/quote?start=2025-02-01T09:00:00Z&end=2025-02-01T11:30:00Z", nil, "")

		var got resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		assert.Equal(s.T(), int64(3), got.DurationHours)
		assert.InDelta(s.T(), 2.0, got.HourlyRate, 1e-9)
		assert.InDelta(s.T(), 6.0, got.Subtotal, 1e-9)
		assert.InDelta(s.T(), 0.6, got.ServiceFee, 1e-9)
		assert.InDelta(s.T(), 6.6, got.Total, 1e-9)
	})

	s.Run("missing dates give a zero quote", func() {
		roomID := dbtest.InsertRoom(s.T(), s.DB, builder.NewRoomBuilder())

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/rooms/"+roomID.String()+"/quote", nil, "")

		var got resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		assert.Zero(s.T(), got.DurationHours)
		assert.Zero(s.T(), got.Total)
		assert.InDelta(s.T(), 0.10, got.ServiceFeeRate, 1e-9)
	})

	s.Run("unknown room", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/rooms/"+uuid.NewString()+"/quote", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Room not found")
	})
}
