package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mhollis/vitrine/internal/models"
	"github.com/stretchr/testify/assert"
)

type mockSessionStore struct {
	sessions map[string]*models.Session
	deleted  []string
}

func (m *mockSessionStore) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	if s, ok := m.sessions[tokenHash]; ok {
		return s, nil
	}
	return nil, models.ErrNotFound
}

func (m *mockSessionStore) Delete(ctx context.Context, tokenHash string) error {
	m.deleted = append(m.deleted, tokenHash)
	delete(m.sessions, tokenHash)
	return nil
}

type mockUserStore struct {
	users map[string]*models.User
}

func (m *mockUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, models.ErrNotFound
}

func okHandler(captured **models.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			*captured = GetUserFromContext(r)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func newSessionFixture(t *testing.T, userID string, expiresAt time.Time) (string, *models.Session) {
	t.Helper()
	token, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token, &models.Session{
		TokenHash: HashSessionToken(token),
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
}

func TestRequireAuth_NoCookie(t *testing.T) {
	sessions := &mockSessionStore{sessions: map[string]*models.Session{}}
	users := &mockUserStore{users: map[string]*models.User{}}

	req := httptest.NewRequest("GET", "/api/admin/categories", nil)
	w := httptest.NewRecorder()

	RequireAuth(sessions, users)(okHandler(nil)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_UnknownToken(t *testing.T) {
	sessions := &mockSessionStore{sessions: map[string]*models.Session{}}
	users := &mockUserStore{users: map[string]*models.User{}}

	req := httptest.NewRequest("GET", "/api/admin/categories", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "bogus"})
	w := httptest.NewRecorder()

	RequireAuth(sessions, users)(okHandler(nil)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ExpiredSessionDeleted(t *testing.T) {
	token, session := newSessionFixture(t, "user-1", time.Now().Add(-time.Minute))
	sessions := &mockSessionStore{sessions: map[string]*models.Session{session.TokenHash: session}}
	users := &mockUserStore{users: map[string]*models.User{}}

	req := httptest.NewRequest("GET", "/api/admin/categories", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	w := httptest.NewRecorder()

	RequireAuth(sessions, users)(okHandler(nil)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, sessions.deleted, session.TokenHash)
}

func TestRequireAuth_ValidSession(t *testing.T) {
	token, session := newSessionFixture(t, "user-1", time.Now().Add(time.Hour))
	sessions := &mockSessionStore{sessions: map[string]*models.Session{session.TokenHash: session}}
	users := &mockUserStore{users: map[string]*models.User{
		"user-1": {ID: "user-1", Username: "jess", Role: models.RoleAdmin},
	}}

	var got *models.User
	req := httptest.NewRequest("GET", "/api/admin/categories", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	w := httptest.NewRecorder()

	RequireAuth(sessions, users)(okHandler(&got)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, got)
	assert.Equal(t, "jess", got.Username)
}

func TestRequireAuth_DeletedUserInvalidatesSession(t *testing.T) {
	token, session := newSessionFixture(t, "gone", time.Now().Add(time.Hour))
	sessions := &mockSessionStore{sessions: map[string]*models.Session{session.TokenHash: session}}
	users := &mockUserStore{users: map[string]*models.User{}}

	req := httptest.NewRequest("GET", "/api/admin/categories", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	w := httptest.NewRecorder()

	RequireAuth(sessions, users)(okHandler(nil)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, sessions.deleted, session.TokenHash)
}

func TestRequireRole_Mismatch(t *testing.T) {
	user := &models.User{ID: "user-1", Username: "jess", Role: models.RoleAdmin}

	req := httptest.NewRequest("GET", "/api/admin/users", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserContextKey, user))
	w := httptest.NewRecorder()

	RequireRole(models.RoleSuperAdmin)(okHandler(nil)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_Match(t *testing.T) {
	user := &models.User{ID: "user-1", Username: "root", Role: models.RoleSuperAdmin}

	req := httptest.NewRequest("GET", "/api/admin/users", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserContextKey, user))
	w := httptest.NewRecorder()

	RequireRole(models.RoleSuperAdmin)(okHandler(nil)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_NoUserInContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/admin/users", nil)
	w := httptest.NewRecorder()

	RequireRole(models.RoleSuperAdmin)(okHandler(nil)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerateSessionToken_Unique(t *testing.T) {
	a, err := GenerateSessionToken()
	assert.NoError(t, err)
	b, err := GenerateSessionToken()
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, HashSessionToken(a), HashSessionToken(b))
}
