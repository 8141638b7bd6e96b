package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mhollis/vitrine/internal/models"
	pkghttp "github.com/mhollis/vitrine/pkg/http"
)

// contextKey is a custom type for context keys
type contextKey string

const (
	// UserContextKey is the key for storing the authenticated user in context
	UserContextKey contextKey = "user"
)

// SessionStore defines the session lookups the middleware needs
type SessionStore interface {
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)
	Delete(ctx context.Context, tokenHash string) error
}

// UserStore defines the user lookup the middleware needs
type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// RequireAuth validates the session cookie and injects the user into context.
// Missing, unknown, or expired sessions are rejected with 401. Expired
// sessions are deleted on sight rather than waiting for the background sweep.
func RequireAuth(sessions SessionStore, users UserStore) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := GetSessionCookie(r)
			if err != nil || token == "" {
				pkghttp.WriteUnauthorized(w, "authentication required")
				return
			}

			session, err := sessions.GetByTokenHash(r.Context(), HashSessionToken(token))
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					pkghttp.WriteUnauthorized(w, "invalid session")
					return
				}
				pkghttp.WriteInternalError(w, "internal server error")
				return
			}

			if session.Expired(time.Now()) {
				_ = sessions.Delete(r.Context(), session.TokenHash)
				pkghttp.WriteUnauthorized(w, "session expired")
				return
			}

			user, err := users.GetByID(r.Context(), session.UserID)
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					// Account deleted while the session was live
					_ = sessions.Delete(r.Context(), session.TokenHash)
					pkghttp.WriteUnauthorized(w, "invalid session")
					return
				}
				pkghttp.WriteInternalError(w, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole enforces role-based access control. Must be used after RequireAuth.
func RequireRole(role string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUserFromContext(r)
			if user == nil {
				pkghttp.WriteUnauthorized(w, "authentication required")
				return
			}

			if user.Role != role {
				pkghttp.WriteForbidden(w, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext extracts the authenticated user from the request context.
// Returns nil when the request did not pass through RequireAuth.
func GetUserFromContext(r *http.Request) *models.User {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
