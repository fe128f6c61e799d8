//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"parkvue/internal/domain/booking"
	"parkvue/internal/domain/user"
	"parkvue/internal/handler/api"
	resdto "parkvue/internal/handler/dto/response"
	"parkvue/internal/pkg/errs"
	"parkvue/internal/usecase/commands"
	"parkvue/internal/usecase/queries"
	"parkvue/tests/common/builder"
	"parkvue/tests/common/httptest"
	"parkvue/tests/common/testutil"
	commandsmock "parkvue/tests/mock/commands"
	queriesmock "parkvue/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockReservationQueries
	userID       uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.userID = uuid.New()
	h := api.NewBookingHandler(s.mockCommands, s.mockQueries)

	auth := fakeAuth(s.userID, user.RoleGuest)
	s.router.POST("/api/bookings", auth, h.Create)
	s.router.GET("/api/bookings", auth, h.ListMine)
	s.router.GET("/api/bookings/:id", auth, h.Get)
	s.router.POST("/api/bookings/:id/cancel", auth, h.Cancel)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/api/bookings"
	b := builder.NewBookingBuilder().WithUserID(s.userID)
	reqBody := b.BuildCreateRequestDTO()
	view := b.BuildView()

	s.Run("success: form and ids reach the use case untouched", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any(), b.RoomID, s.userID).
			DoAndReturn(func(_ any, form booking.BookingForm, _, _ uuid.UUID) (*queries.ReservationView, error) {
				if diff := cmp.Diff(b.BuildForm(), form); diff != "" {
					s.T().Errorf("form mismatch (-want +got):\n%s", diff)
				}
				return view, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("confirmed", body.Status)
		s.InDelta(view.Total, body.Total, 1e-9)
		s.Equal("4242", body.CardLastFour)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/bookings/" + view.ID.String()})
	})

	s.Run("missing dates reach the validator as absent", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any(), b.RoomID, s.userID).
			DoAndReturn(func(_ any, form booking.BookingForm, _, _ uuid.UUID) (*queries.ReservationView, error) {
				s.True(form.BookingStart.IsZero())
				s.True(form.BookingEnd.IsZero())
				return nil, &commands.ValidationError{Fields: map[booking.Field]string{
					booking.FieldBookingStart: "Start date is required",
					booking.FieldBookingEnd:   "End date is required",
				}}
			})

		requestMap := testutil.DtoMap(s.T(), reqBody,
			testutil.Field("bookingStart", nil), testutil.Field("bookingEnd", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")

		fields := httptest.AssertValidationResponse(s.T(), rec, "bookingStart", "bookingEnd")
		s.Len(fields, 2)
	})

	s.Run("error: 400 on malformed payload", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing roomId", mutate: testutil.Field("roomId", nil)},
			{name: "roomId not a uuid", mutate: testutil.Field("roomId", "room-1")},
			{name: "bookingStart not a timestamp", mutate: testutil.Field("bookingStart", "next friday")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, `{"roomId":`, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error mapping", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
			expectMsg  string
		}{
			{name: "room not found", err: commands.ErrRoomNotFound, expectCode: http.StatusNotFound, expectMsg: "Room not found"},
			{name: "room unavailable", err: commands.ErrRoomUnavailable, expectCode: http.StatusConflict, expectMsg: "Room is not available"},
			{name: "payment failed", err: errs.Mark(errors.New("card declined"), commands.ErrPaymentFailed), expectCode: http.StatusPaymentRequired, expectMsg: "Payment failed"},
			{name: "unexpected", err: errors.New("db down"), expectCode: http.StatusInternalServerError, expectMsg: "Failed to create booking"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
			})
		}
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestGet / TestListMine
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	view := builder.NewBookingBuilder().WithUserID(s.userID).BuildView()
	path := "/api/bookings/" + view.ID.String()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.RoomTitle, body.RoomTitle)
	})

	s.Run("error: 403 for another user's booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, view.ID).Return(nil, queries.ErrReservationAccess)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})

	s.Run("error: 404 when missing", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, view.ID).Return(nil, queries.ErrReservationNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/42", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking id")
	})
}

func (s *BookingHandlerTestSuite) TestListMine() {
	items := []*queries.ReservationListItem{
		builder.NewBookingBuilder().WithUserID(s.userID).BuildListItem(),
	}

	s.Run("first page returns the next cursor", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, nil, 5).
			Return(items, &queries.Cursor{After: "next-page"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?limit=5", nil, "bearer-token")

		var body resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 1)
		s.Require().NotNil(body.NextCursor)
		s.Equal("next-page", *body.NextCursor)
	})

	s.Run("cursor is passed through", func() {
		s.mockQueries.EXPECT().
			ListByUser(gomock.Any(), s.userID, &queries.Cursor{After: "abc"}, queries.DefaultListLimit).
			Return([]*queries.ReservationListItem{}, nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?after=abc", nil, "bearer-token")

		var body resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Items)
		s.Nil(body.NextCursor)
	})

	s.Run("error: 400 on invalid cursor", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, errs.Mark(errors.New("bad base64"), queries.ErrInvalidCursor))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?after=bogus", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	view := builder.NewBookingBuilder().WithUserID(s.userID).AsCanceled().BuildView()
	path := "/api/bookings/" + view.ID.String() + "/cancel"

	s.Run("success", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), view.ID, s.userID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, nil, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("canceled", body.Status)
	})

	s.Run("error mapping", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "not found", err: commands.ErrReservationNotFound, expectCode: http.StatusNotFound},
			{name: "not owner", err: commands.ErrNotReservationOwner, expectCode: http.StatusForbidden},
			{name: "already canceled", err: commands.ErrAlreadyCanceled, expectCode: http.StatusConflict},
			{name: "unexpected", err: errors.New("db down"), expectCode: http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CancelBooking(gomock.Any(), view.ID, s.userID).Return(nil, tc.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})
}
