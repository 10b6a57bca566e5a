package middleware

import (
	"net/http"
	"strings"

	"github.com/forgeline/storefront/internal/http/response"
	"github.com/forgeline/storefront/internal/platform/auth"
)

// BearerToken extracts the session token from the Authorization header.
func BearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimPrefix(authz, "Bearer ")
	}
	return ""
}

// RequireAdminSession rejects requests whose bearer token does not name
// a live admin session. Each successful check bumps the session's
// last-activity timestamp.
func RequireAdminSession(sessions *auth.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				response.Unauthorized(w, "Missing session token")
				return
			}

			if !sessions.Verify(token).Valid {
				response.Unauthorized(w, "Invalid or expired session")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
