package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/security"
	"sisdisfraz-backend/internal/service"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	tokens := security.NewTokenManager("test-secret-key-0123456789-0123456789", 15, 60)
	mw := NewAuthMiddleware(tokens)

	probe := func(captured *service.Identity) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := identityFrom(r.Context())
			assert.True(t, ok)
			*captured = id
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("Valid access token passes identity through", func(t *testing.T) {
		profile := &domain.Profile{ID: "pr-1", Name: "Rosa", Role: domain.RoleOperator}
		access, err := tokens.GenerateAccessToken(profile)
		assert.NoError(t, err)

		var got service.Identity
		req := httptest.NewRequest(http.MethodGet, "/api/v1/rentals", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		rr := httptest.NewRecorder()
		mw.Authenticate(probe(&got)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "pr-1", got.ProfileID)
		assert.Equal(t, domain.RoleOperator, got.Role)
	})

	t.Run("Missing header is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/rentals", nil)
		rr := httptest.NewRecorder()
		mw.Authenticate(http.NotFoundHandler()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Refresh token cannot reach the API", func(t *testing.T) {
		refresh, err := tokens.GenerateRefreshToken(&domain.Profile{ID: "pr-1"})
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/rentals", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		rr := httptest.NewRecorder()
		mw.Authenticate(http.NotFoundHandler()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Garbage token is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/rentals", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		rr := httptest.NewRecorder()
		mw.Authenticate(http.NotFoundHandler()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
