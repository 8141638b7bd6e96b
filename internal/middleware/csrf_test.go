package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mhollis/vitrine/internal/auth"
	"github.com/mhollis/vitrine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfTestSetup(t *testing.T) (*auth.CSRFTokenManager, http.Handler) {
	t.Helper()
	manager := auth.NewCSRFTokenManager()
	t.Cleanup(manager.Stop)
	handler := CSRFProtection(manager, slog.Default())(passthrough())
	return manager, handler
}

func authenticatedRequest(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	user := &models.User{ID: "user-1", Username: "carol", Role: models.RoleAdmin}
	return req.WithContext(context.WithValue(req.Context(), auth.UserContextKey, user))
}

func TestCSRFProtection_AllowsSafeMethods(t *testing.T) {
	_, handler := csrfTestSetup(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, authenticatedRequest(http.MethodGet, "/api/admin/products"))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCSRFProtection_RejectsMissingToken(t *testing.T) {
	_, handler := csrfTestSetup(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, authenticatedRequest(http.MethodPost, "/api/admin/products"))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCSRFProtection_AcceptsValidHeaderToken(t *testing.T) {
	manager, handler := csrfTestSetup(t)

	token, err := manager.GenerateToken("user-1")
	require.NoError(t, err)

	req := authenticatedRequest(http.MethodPost, "/api/admin/products")
	req.Header.Set("X-CSRF-Token", token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCSRFProtection_AcceptsValidCookieToken(t *testing.T) {
	manager, handler := csrfTestSetup(t)

	token, err := manager.GenerateToken("user-1")
	require.NoError(t, err)

	req := authenticatedRequest(http.MethodDelete, "/api/admin/products/prod-1")
	req.AddCookie(&http.Cookie{Name: auth.CSRFCookieName, Value: token})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCSRFProtection_RejectsTokenOfAnotherUser(t *testing.T) {
	manager, handler := csrfTestSetup(t)

	token, err := manager.GenerateToken("user-2")
	require.NoError(t, err)

	req := authenticatedRequest(http.MethodPut, "/api/admin/settings")
	req.Header.Set("X-CSRF-Token", token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCSRFProtection_RejectsUnauthenticated(t *testing.T) {
	_, handler := csrfTestSetup(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/products", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
