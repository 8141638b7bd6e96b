package services_test

import (
	"context"
	"time"

	"github.com/mhollis/vitrine/internal/models"
)

// MockUserRepository implements UserRepository and UserAdminRepository for testing
type MockUserRepository struct {
	GetByIDFunc       func(ctx context.Context, id string) (*models.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
	ListFunc          func(ctx context.Context) ([]*models.User, error)
	CreateFunc        func(ctx context.Context, user *models.User) (*models.User, error)
	UpdateFunc        func(ctx context.Context, id string, user *models.User) (*models.User, error)
	DeleteFunc        func(ctx context.Context, id string) error
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.User{}, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) Update(ctx context.Context, id string, user *models.User) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockSessionRepository is an in-memory session store keyed by token hash
type MockSessionRepository struct {
	sessions      map[string]*models.Session
	deletedByUser []string
	CreateErr     error
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{sessions: make(map[string]*models.Session)}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *models.Session) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.sessions[session.TokenHash] = session
	return nil
}

func (m *MockSessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	session, ok := m.sessions[tokenHash]
	if !ok {
		return nil, models.ErrNotFound
	}
	return session, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, tokenHash string) error {
	if _, ok := m.sessions[tokenHash]; !ok {
		return models.ErrNotFound
	}
	delete(m.sessions, tokenHash)
	return nil
}

func (m *MockSessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	m.deletedByUser = append(m.deletedByUser, userID)
	for hash, session := range m.sessions {
		if session.UserID == userID {
			delete(m.sessions, hash)
		}
	}
	return nil
}

// MockLoginAttemptRepository is an in-memory failed-login tracker
type MockLoginAttemptRepository struct {
	attempts map[string]*models.LoginAttempt
}

func NewMockLoginAttemptRepository() *MockLoginAttemptRepository {
	return &MockLoginAttemptRepository{attempts: make(map[string]*models.LoginAttempt)}
}

func (m *MockLoginAttemptRepository) Get(ctx context.Context, username string) (*models.LoginAttempt, error) {
	attempt, ok := m.attempts[username]
	if !ok {
		return nil, nil
	}
	copied := *attempt
	return &copied, nil
}

func (m *MockLoginAttemptRepository) IncrementFailures(ctx context.Context, username string) (*models.LoginAttempt, error) {
	attempt, ok := m.attempts[username]
	if !ok {
		attempt = &models.LoginAttempt{Username: username}
		m.attempts[username] = attempt
	}
	attempt.FailedCount++
	attempt.UpdatedAt = time.Now()
	copied := *attempt
	return &copied, nil
}

func (m *MockLoginAttemptRepository) SetLockout(ctx context.Context, username string, until time.Time) error {
	attempt, ok := m.attempts[username]
	if !ok {
		attempt = &models.LoginAttempt{Username: username}
		m.attempts[username] = attempt
	}
	attempt.LockedUntil = &until
	return nil
}

func (m *MockLoginAttemptRepository) Reset(ctx context.Context, username string) error {
	delete(m.attempts, username)
	return nil
}
