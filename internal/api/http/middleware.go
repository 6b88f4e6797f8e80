package http

import (
	"context"
	"net/http"
	"strings"

	"sisdisfraz-backend/internal/security"
	"sisdisfraz-backend/internal/service"
)

type contextKey string

const identityKey contextKey = "identity"

// identityFrom returns the caller placed in the context by Authenticate.
func identityFrom(ctx context.Context) (service.Identity, bool) {
	id, ok := ctx.Value(identityKey).(service.Identity)
	return id, ok
}

// AuthMiddleware validates the bearer token on every protected route
// and injects the caller's identity into the request context. Identity
// never lives anywhere but the request.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeJSON(w, http.StatusUnauthorized, service.Unauthorized("missing access token"))
			return
		}
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			writeJSON(w, http.StatusUnauthorized, service.Unauthorized("authorization header must be 'Bearer <token>'"))
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, service.Unauthorized("invalid or expired access token"))
			return
		}
		if claims.Type != security.TokenTypeAccess {
			writeJSON(w, http.StatusUnauthorized, service.Unauthorized("invalid or expired access token"))
			return
		}

		identity := service.Identity{
			ProfileID: claims.ProfileID,
			Name:      claims.Name,
			Role:      claims.Role,
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, identity)))
	})
}
