package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finfam/family_finance_app/internal/core/domain"
	portssvc "github.com/finfam/family_finance_app/internal/core/ports/services"
	"github.com/finfam/family_finance_app/internal/handlers"
	"github.com/finfam/family_finance_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// --- Mock GoogleOAuthService ---

type MockGoogleOAuthService struct {
	mock.Mock
}

var _ portssvc.GoogleOAuthSvcFacade = (*MockGoogleOAuthService)(nil)

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	args := m.Called(ctx, state)
	return args.String(0)
}

func (m *MockGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockGoogleOAuthService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleUserInfo), args.Error(1)
}

func (m *MockGoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}

func TestGoogleLogin_RedirectsWithStateCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockOAuth := new(MockGoogleOAuthService)
	h := handlers.NewGoogleOAuthHandler(mockOAuth, nil, nil, &config.Config{})

	mockOAuth.On("GenerateStateString", mock.Anything).Return("random-state", nil).Once()
	mockOAuth.On("GetGoogleLoginURL", mock.Anything, "random-state").
		Return("https://accounts.google.com/o/oauth2/auth?state=random-state").Once()

	router := gin.New()
	router.GET("/api/v1/auth/google/login", h.GoogleLogin)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/google/login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/auth?state=random-state", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	var stateCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == "oauthstate" {
			stateCookie = c
		}
	}
	require.NotNil(t, stateCookie, "state cookie not set")
	assert.Equal(t, "random-state", stateCookie.Value)
	assert.True(t, stateCookie.HttpOnly)
	mockOAuth.AssertExpectations(t)
}
