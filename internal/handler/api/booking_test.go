//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"ticketgo/internal/domain/user"
	"ticketgo/internal/handler/api"
	"ticketgo/internal/usecase/commands"
	"ticketgo/internal/usecase/queries"
	"ticketgo/tests/common/builder"
	"ticketgo/tests/common/httptest"
	"ticketgo/tests/common/testutil"
	commandsmock "ticketgo/tests/mock/commands"
	queriesmock "ticketgo/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler

	authedUserID uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.authedUserID = uuid.New()

	requireAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.authedUserID)
		c.Set("user_role", user.RoleTraveller)
		c.Next()
	}
	optionalAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.authedUserID)
			c.Set("user_role", user.RoleTraveller)
		}
		c.Next()
	}

	s.router.POST("/bookings", optionalAuth, s.handler.CreateBooking)
	s.router.GET("/bookings", requireAuth, s.handler.ListMyBookings)
	s.router.GET("/bookings/:id", requireAuth, s.handler.GetBooking)
	s.router.POST("/bookings/:id/cancel", requireAuth, s.handler.CancelBooking)
	s.router.GET("/bookings/ref/:reference", s.handler.GetBookingByReference)
	s.router.GET("/bookings/ref/:reference/eticket", s.handler.GetETicket)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func sampleBookingView() *queries.BookingView {
	userID := uuid.New()
	return &queries.BookingView{
		ID:                uuid.New(),
		Reference:         "TG48215093",
		TripID:            uuid.New(),
		TripName:          "Harare Express",
		TripCode:          "HRE-BYO-001",
		FromCity:          "Harare",
		ToCity:            "Bulawayo",
		DepartureAt:       time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC),
		SeatID:            uuid.New(),
		SeatNumber:        "1A",
		UserID:            &userID,
		PassengerFullName: "Tinashe Moyo",
		PassengerIDNumber: "63-123456A70",
		PassengerPhone:    "+263771234567",
		NextOfKinName:     "Rudo Moyo",
		NextOfKinPhone:    "+263772345678",
		PaymentMethod:     "ecocash",
		PaymentStatus:     "completed",
		AmountCents:       2500,
		Status:            "confirmed",
		CreatedAt:         time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"
	reqBody := builder.NewBookingRequestBuilder().BuildDTO()
	returnView := sampleBookingView()

	s.Run("success: 201 Created for a new booking", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any(), uuid.Nil).
			Return(&commands.CreateBookingResult{Booking: returnView, IsReplayed: false}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.Reference, body["reference"])
		s.Equal(returnView.SeatNumber, body["seatNumber"])
	})

	s.Run("success: 200 OK when the idempotency key replays", func() {
		key := uuid.New()
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any(), key).
			Return(&commands.CreateBookingResult{Booking: returnView, IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, map[string]string{
			"Idempotency-Key": key.String(),
		})

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(returnView.Reference, body["reference"])
	})

	s.Run("success: anonymous request is accepted", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Nil(), uuid.Nil).
			Return(&commands.CreateBookingResult{Booking: returnView}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 on malformed Idempotency-Key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, map[string]string{
			"Idempotency-Key": "not-a-uuid",
		})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid Idempotency-Key header")
	})

	s.Run("error: 400 on missing required fields", func() {
		missing := []string{"trip_id", "seat_id", "passenger_name", "passenger_id_number", "passenger_phone", "next_of_kin_name", "next_of_kin_phone", "payment_method"}
		for _, field := range missing {
			s.Run("missing "+field, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "trip not found", commandsError: commands.ErrTripNotFound, expectedStatus: http.StatusNotFound},
			{name: "seat not found", commandsError: commands.ErrSeatNotFound, expectedStatus: http.StatusNotFound},
			{name: "seat taken", commandsError: commands.ErrSeatUnavailable, expectedStatus: http.StatusConflict},
			{name: "key reused with different payload", commandsError: commands.ErrDuplicateBooking, expectedStatus: http.StatusConflict},
			{name: "request still processing", commandsError: commands.ErrIdempotencyInProgress, expectedStatus: http.StatusConflict},
			{name: "domain validation failed", commandsError: commands.ErrInvalidBookingRequest, expectedStatus: http.StatusUnprocessableEntity},
			{name: "reference space exhausted", commandsError: commands.ErrReferenceExhausted, expectedStatus: http.StatusInternalServerError},
			{name: "unexpected failure", commandsError: errors.New("database down"), expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestCancelBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/cancel"

	s.Run("success: 204 No Content", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, s.authedUserID, user.RoleTraveller).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 401 when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 400 on malformed booking ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/not-a-uuid/cancel", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "not found", commandsError: commands.ErrBookingNotFound, expectedStatus: http.StatusNotFound},
			{name: "not the owner", commandsError: commands.ErrBookingAccessDenied, expectedStatus: http.StatusForbidden},
			{name: "already cancelled", commandsError: commands.ErrBookingNotCancellable, expectedStatus: http.StatusConflict},
			{name: "unexpected failure", commandsError: errors.New("database down"), expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, gomock.Any(), gomock.Any()).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestGetBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetBooking() {
	returnView := sampleBookingView()
	url := "/bookings/" + returnView.ID.String()

	s.Run("success: 200 OK", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.authedUserID, user.RoleTraveller, returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(returnView.ID.String(), body["id"])
		s.Equal(returnView.Reference, body["reference"])
	})

	s.Run("error: 401 when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 404 when not found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), gomock.Any(), returnView.ID).
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 403 when booking belongs to someone else", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), gomock.Any(), returnView.ID).
			Return(nil, queries.ErrBookingAccess).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

// ================================================================================
// TestGetBookingByReference
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetBookingByReference() {
	returnView := sampleBookingView()
	url := "/bookings/ref/" + returnView.Reference

	s.Run("success: 200 OK without authentication", func() {
		s.mockQueries.EXPECT().GetByReference(gomock.Any(), returnView.Reference).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(returnView.Reference, body["reference"])
	})

	s.Run("error: 404 for unknown reference", func() {
		s.mockQueries.EXPECT().GetByReference(gomock.Any(), "TG00000000").
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/ref/TG00000000", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

// ================================================================================
// TestGetETicket
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetETicket() {
	returnView := sampleBookingView()
	url := "/bookings/ref/" + returnView.Reference + "/eticket"

	s.Run("success: 200 OK with a PDF attachment", func() {
		s.mockQueries.EXPECT().GetByReference(gomock.Any(), returnView.Reference).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("application/pdf", rec.Header().Get("Content-Type"))
		s.Contains(rec.Header().Get("Content-Disposition"), "ETICKET_"+returnView.Reference+".pdf")
		s.NotEmpty(rec.Body.Bytes())
	})

	s.Run("error: 404 for unknown reference", func() {
		s.mockQueries.EXPECT().GetByReference(gomock.Any(), returnView.Reference).
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

// ================================================================================
// TestListMyBookings
// ================================================================================

func (s *BookingHandlerTestSuite) TestListMyBookings() {
	url := "/bookings"

	items := []*queries.BookingListItem{
		{ID: uuid.New(), Reference: "TG48215093", TripName: "Harare Express", SeatNumber: "1A", AmountCents: 2500, Status: "confirmed"},
		{ID: uuid.New(), Reference: "TG48215094", TripName: "Harare Express", SeatNumber: "1B", AmountCents: 2500, Status: "cancelled"},
	}

	s.Run("success: 200 OK with the default limit", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.authedUserID, 50).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
		s.Equal("TG48215093", body[0]["reference"])
	})

	s.Run("success: explicit limit is passed through", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.authedUserID, 5).
			Return(items[:1], nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=5", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: junk limit falls back to the default", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.authedUserID, 50).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=abc", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 401 when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}
