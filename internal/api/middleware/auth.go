package middleware

import (
	"net/http"
	"strings"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api/apierr"
	"github.com/taichi6930/race-schedule-api-sub006/internal/services/auth"
)

// RequireAPIKey rejects requests without a valid bearer API key. When the
// server has no key configured every request is refused.
func RequireAPIKey(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authService.Enabled() {
				apierr.WriteError(w, auth.ErrAuthNotConfigured)
				return
			}

			key := extractToken(r)
			if key == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			if err := authService.Authenticate(key); err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the API key from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}
