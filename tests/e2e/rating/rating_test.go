//go:build e2e

package rating

import (
	"net/http"
	"testing"

	"parkvue/internal/domain/user"
	reqdto "parkvue/internal/handler/dto/request"
	resdto "parkvue/internal/handler/dto/response"
	"parkvue/internal/usecase/shared"
	"parkvue/tests/common/authtest"
	"parkvue/tests/common/builder"
	"parkvue/tests/common/dbtest"
	"parkvue/tests/common/httptest"
	"parkvue/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ratingSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func TestRatingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ratingSuite))
}

func (s *ratingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *ratingSuite) rate(token string, roomID uuid.UUID, value int) resdto.RatingResponse {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, "/api/rooms/"+roomID.String()+"/rating",
		reqdto.RateRoomRequest{Value: &value}, token)
	var body resdto.RatingResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	return body
}

func (s *ratingSuite) TestRateRoom() {
	s.Run("first rating folds into the existing average", func() {
		roomID := dbtest.InsertRoom(s.T(), s.DB, builder.NewRoomBuilder().WithRating(2, 4))
		token := s.jwt.GenerateToken(s.T(), uuid.New(), user.RoleGuest)

		got := s.rate(token, roomID, 1)

		want := resdto.RatingResponse{RoomID: roomID, Value: 1, RatingCount: 3, AverageRating: 3}
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			s.T().Errorf("rating mismatch (-want +got):\n%s", diff)
		}
		row := dbtest.GetRoomRow(s.T(), s.DB, roomID)
		assert.Equal(s.T(), 3, row.RatingCount)
		assert.InDelta(s.T(), 3.0, row.AverageRating, 1e-9)
		assert.Equal(s.T(), int64(1), row.RatingVersion)
		assert.Equal(s.T(), 1, dbtest.CountJobs(s.T(), s.DB, shared.TopicRoomRated, "queued"))
	})

	s.Run("repeat rating replaces the previous value", func() {
		roomID := dbtest.InsertRoom(s.T(), s.DB, builder.NewRoomBuilder())
		alice := s.jwt.GenerateToken(s.T(), uuid.New(), user.RoleGuest)
		bob := s.jwt.GenerateToken(s.T(), uuid.New(), user.RoleGuest)

		s.rate(alice, roomID, 5)
		s.rate(bob, roomID, 3)
		got := s.rate(alice, roomID, 1)

		assert.Equal(s.T(), 2, got.RatingCount)
		assert.InDelta(s.T(), 2.0, got.AverageRating, 1e-9)
		row := dbtest.GetRoomRow(s.T(), s.DB, roomID)
		assert.Equal(s.T(), 2, row.RatingCount)
		assert.Equal(s.T(), int64(3), row.RatingVersion)
	})

	s.Run("out of range value", func() {
		roomID := dbtest.InsertRoom(s.T(), s.DB, builder.NewRoomBuilder())
		token := s.jwt.GenerateToken(s.T(), uuid.New(), user.RoleGuest)
		value := 6

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, "/api/rooms/"+roomID.String()+"/rating",
			reqdto.RateRoomRequest{Value: &value}, token)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "between 1 and 5")
		assert.Zero(s.T(), dbtest.GetRoomRow(s.T(), s.DB, roomID).RatingCount)
	})

	s.Run("unknown room", func() {
		token := s.jwt.GenerateToken(s.T(), uuid.New(), user.RoleGuest)
		value := 4

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, "/api/rooms/"+uuid.NewString()+"/rating",
			reqdto.RateRoomRequest{Value: &value}, token)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Room not found")
	})

	s.Run("requires a token", func() {
		value := 4
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, "/api/rooms/"+uuid.NewString()+"/rating",
			reqdto.RateRoomRequest{Value: &value}, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}
