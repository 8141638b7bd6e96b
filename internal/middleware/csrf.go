package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mhollis/vitrine/internal/auth"
	pkghttp "github.com/mhollis/vitrine/pkg/http"
)

// CSRFProtection validates CSRF tokens on state-changing dashboard requests.
// Must be mounted after RequireAuth: the token is validated against the
// authenticated user it was issued to. The frontend reads the token from the
// CSRF cookie and sends it back in the X-CSRF-Token header.
func CSRFProtection(csrfManager *auth.CSRFTokenManager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isStateChangingMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			user := auth.GetUserFromContext(r)
			if user == nil {
				pkghttp.WriteUnauthorized(w, "authentication required")
				return
			}

			csrfToken := r.Header.Get("X-CSRF-Token")
			if csrfToken == "" {
				if cookieToken, err := auth.GetCSRFCookie(r); err == nil {
					csrfToken = cookieToken
				}
			}

			if csrfToken == "" {
				logger.Warn("CSRF token missing",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("user_id", user.ID))
				pkghttp.WriteForbidden(w, "CSRF token missing")
				return
			}

			if !csrfManager.ValidateToken(csrfToken, user.ID) {
				logger.Warn("CSRF token validation failed",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("user_id", user.ID))
				pkghttp.WriteForbidden(w, "CSRF token invalid")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isStateChangingMethod checks if the HTTP method modifies state
func isStateChangingMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		return true
	default:
		return false
	}
}
