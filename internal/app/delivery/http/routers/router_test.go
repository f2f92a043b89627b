package routers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/delivery/http/controllers"
	"telehealth-service/internal/app/delivery/http/middlewares"
	"telehealth-service/internal/app/mocks"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/app/services/shared/jwtmanager"
	"telehealth-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type routerFixture struct {
	router   *chi.Mux
	token    string
	webhooks *mocks.WebhookUsecaseMock
	sessions *mocks.HealthSessionUsecaseMock
}

func newRouterFixture(t *testing.T) *routerFixture {
	cfg := &config.InternalConfig{}
	cfg.App.EndpointPrefix = "api"
	cfg.App.Version = "v1"
	cfg.App.MaxRequests = 1000
	cfg.JWT.Secret = "router-secret"
	cfg.JWT.Issuer = "telehealth-service"

	log := zap.NewNop()
	manager, err := jwtmanager.NewJWTManager(cfg, log)
	require.NoError(t, err)
	token, err := manager.CreateToken(context.Background(), &jwtmanager.CreateTokenInput{Subject: "pat-1"})
	require.NoError(t, err)

	fixture := &routerFixture{
		router:   chi.NewRouter(),
		token:    token.Token,
		webhooks: new(mocks.WebhookUsecaseMock),
		sessions: new(mocks.HealthSessionUsecaseMock),
	}
	SetupRoutes(
		fixture.router,
		cfg,
		middlewares.NewMiddlewares(log, manager, cfg),
		controllers.NewWebhookController(log, fixture.webhooks, cfg),
		controllers.NewHealthSessionController(log, new(mocks.BookingUsecaseMock), fixture.sessions, cfg),
		controllers.NewHealthController(cfg),
	)
	return fixture
}

func TestSetupRoutes(t *testing.T) {
	t.Run("Health check is public", func(t *testing.T) {
		f := newRouterFixture(t)
		rec := httptest.NewRecorder()

		f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Webhooks need no authentication", func(t *testing.T) {
		f := newRouterFixture(t)
		f.webhooks.On("ValidateAndCompleteTransaction", mock.Anything, []byte(`{}`), "paystack").Return()
		rec := httptest.NewRecorder()

		f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/paystack", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
		f.webhooks.AssertExpectations(t)
	})

	t.Run("Session routes require a token", func(t *testing.T) {
		f := newRouterFixture(t)
		rec := httptest.NewRecorder()

		f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/v1/health-sessions/HS-1/cancel", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		f.sessions.AssertNotCalled(t, "CancelSession", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Authenticated cancel reaches the usecase with the member id", func(t *testing.T) {
		f := newRouterFixture(t)
		f.sessions.On("CancelSession", mock.Anything, "HS-1", "pat-1").
			Return(&models.HealthSession{Reference: "HS-1", Status: models.SessionStatusCanceled}, nil)
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/health-sessions/HS-1/cancel", nil)
		req.Header.Set("Authorization", "Bearer "+f.token)
		rec := httptest.NewRecorder()

		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		f.sessions.AssertExpectations(t)
	})
}
