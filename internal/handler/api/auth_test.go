//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"ticketgo/internal/domain/user"
	"ticketgo/internal/handler/api"
	reqdto "ticketgo/internal/handler/dto/request"
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

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler

	authedUserID uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries)

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

	s.router.POST("/auth/register", s.handler.Register)
	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/refresh", s.handler.Refresh)
	s.router.GET("/auth/me", requireAuth, s.handler.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func sampleLoginResult() *commands.LoginResult {
	return &commands.LoginResult{
		UserID: uuid.New(),
		TokenPair: &commands.TokenPair{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
		},
	}
}

func sampleUserView(id uuid.UUID) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:          id,
		Email:       "test@example.com",
		FullName:    "Tinashe Moyo",
		PhoneNumber: "+263771234567",
		Role:        "traveller",
		IsActive:    true,
	}
}

func (s *AuthHandlerTestSuite) TestRegister() {
	url := "/auth/register"
	reqBody := reqdto.RegisterRequest{
		Email:       "test@example.com",
		Password:    "password123",
		FullName:    "Tinashe Moyo",
		PhoneNumber: "+263771234567",
	}

	s.Run("success: 201 with a token pair", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), reqBody).
			Return(sampleLoginResult(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("access-token", body["access_token"])
		s.Equal("refresh-token", body["refresh_token"])
	})

	s.Run("error: 400 on validation failures", func() {
		testCases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "bad email", mutate: testutil.Field("email", "not-an-email")},
			{name: "short password", mutate: testutil.Field("password", "short")},
			{name: "short name", mutate: testutil.Field("full_name", "T")},
			{name: "short phone", mutate: testutil.Field("phone_number", "12345")},
			{name: "missing email", mutate: testutil.Field("email", nil)},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 409 when email is taken", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrEmailTaken).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Email already registered")
	})
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := builder.NewAuthBuilder().BuildDTO()

	s.Run("success: 200 with tokens and profile", func() {
		result := sampleLoginResult()
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody).
			Return(result, nil).Times(1)
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), result.UserID).
			Return(sampleUserView(result.UserID), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("access-token", body["access_token"])
		s.NotNil(body["user"])
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "wrong password", commandsError: commands.ErrInvalidCredentials, expectedStatus: http.StatusUnauthorized},
			{name: "unknown email", commandsError: commands.ErrUserNotFound, expectedStatus: http.StatusUnauthorized},
			{name: "deactivated account", commandsError: commands.ErrUserInactive, expectedStatus: http.StatusForbidden},
			{name: "unexpected failure", commandsError: errors.New("database down"), expectedStatus: http.StatusInternalServerError},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})

	s.Run("error: 400 on malformed body", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"email": "x"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *AuthHandlerTestSuite) TestRefresh() {
	url := "/auth/refresh"
	reqBody := reqdto.RefreshRequest{RefreshToken: "refresh-token"}

	s.Run("success: 200 with a fresh pair", func() {
		s.mockCommands.EXPECT().RefreshToken(gomock.Any(), "refresh-token").
			Return(&commands.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("new-access", body["access_token"])
		s.Equal("new-refresh", body["refresh_token"])
	})

	s.Run("error: 401 on an invalid token", func() {
		s.mockCommands.EXPECT().RefreshToken(gomock.Any(), "refresh-token").
			Return(nil, commands.ErrTokenValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired refresh token")
	})

	s.Run("error: 400 when the token is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"

	s.Run("success: 200 with the profile", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.authedUserID).
			Return(sampleUserView(s.authedUserID), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("test@example.com", body["email"])
	})

	s.Run("error: 401 when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 404 when the account vanished", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.authedUserID).
			Return(nil, queries.ErrUserNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "User not found")
	})
}
