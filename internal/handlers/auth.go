package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mhollis/vitrine/internal/auth"
	"github.com/mhollis/vitrine/internal/models"
	pkghttp "github.com/mhollis/vitrine/pkg/http"
)

// AuthServiceInterface defines the interface for login/logout business logic
type AuthServiceInterface interface {
	Login(ctx context.Context, username, password, ipAddress, userAgent string) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	service      AuthServiceInterface
	csrf         *auth.CSRFTokenManager
	cookieConfig auth.CookieConfig
	sessionTTL   time.Duration
	ipConfig     *pkghttp.IPConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service AuthServiceInterface, csrf *auth.CSRFTokenManager, cookieConfig auth.CookieConfig, sessionTTL time.Duration, ipConfig *pkghttp.IPConfig) *AuthHandler {
	return &AuthHandler{
		service:      service,
		csrf:         csrf,
		cookieConfig: cookieConfig,
		sessionTTL:   sessionTTL,
		ipConfig:     ipConfig,
	}
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates a user and sets the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	ipAddress := pkghttp.ExtractClientIP(r, h.ipConfig)
	userAgent := r.Header.Get("User-Agent")

	user, token, err := h.service.Login(r.Context(), req.Username, req.Password, ipAddress, userAgent)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAccountLocked):
			pkghttp.WriteTooManyRequests(w, "Too many failed login attempts. Please try again later.")
		case errors.Is(err, models.ErrUnauthorized):
			// Same answer for unknown usernames and wrong passwords
			pkghttp.WriteUnauthorized(w, "Invalid username or password")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	auth.SetSessionCookie(w, token, h.sessionTTL, h.cookieConfig)

	csrfToken, err := h.csrf.GenerateToken(user.ID)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}
	auth.SetCSRFCookie(w, csrfToken, h.sessionTTL, h.cookieConfig)

	pkghttp.WriteJSON(w, http.StatusOK, userModelToResponse(user))
}

// Logout destroys the current session and clears the cookie. Succeeds even
// when no session cookie is present.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := auth.GetSessionCookie(r)
	if err == nil && token != "" {
		if err := h.service.Logout(r.Context(), token); err != nil {
			pkghttp.WriteInternalError(w, "Internal server error")
			return
		}
	}

	if csrfToken, err := auth.GetCSRFCookie(r); err == nil && csrfToken != "" {
		h.csrf.RevokeToken(csrfToken)
	}

	auth.ClearSessionCookie(w, h.cookieConfig)
	auth.ClearCSRFCookie(w, h.cookieConfig)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user. Mounted behind RequireAuth.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromContext(r)
	if user == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, userModelToResponse(user))
}
