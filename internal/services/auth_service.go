package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mhollis/vitrine/internal/auth"
	"github.com/mhollis/vitrine/internal/metrics"
	"github.com/mhollis/vitrine/internal/models"
	pkgauth "github.com/mhollis/vitrine/pkg/auth"
	pkglogger "github.com/mhollis/vitrine/pkg/logger"
)

// UserRepository defines the user lookups auth needs
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// SessionRepository defines the session storage operations auth needs
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)
	Delete(ctx context.Context, tokenHash string) error
}

// Lockout defines the failed-login tracking operations auth needs
type Lockout interface {
	IsLocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) (bool, error)
	Reset(ctx context.Context, username string) error
}

// AuthService handles login, logout, and session establishment
type AuthService struct {
	users       UserRepository
	sessions    SessionRepository
	lockout     Lockout
	sessionTTL  time.Duration
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
	metrics     *metrics.Metrics
}

func NewAuthService(
	users UserRepository,
	sessions SessionRepository,
	lockout Lockout,
	sessionTTL time.Duration,
	logger *slog.Logger,
	auditLogger *pkglogger.AuditLogger,
	m *metrics.Metrics,
) *AuthService {
	return &AuthService{
		users:       users,
		sessions:    sessions,
		lockout:     lockout,
		sessionTTL:  sessionTTL,
		logger:      logger,
		auditLogger: auditLogger,
		metrics:     m,
	}
}

// Login authenticates a user and establishes a session. Returns the user and
// the raw session token to be set as a cookie.
//
// Lockout is checked before credentials: a locked username is rejected even
// with a correct password. A successful login clears the failure counter.
func (s *AuthService) Login(ctx context.Context, username, password, ipAddress, userAgent string) (*models.User, string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return nil, "", models.ErrUnauthorized
	}

	locked, err := s.lockout.IsLocked(ctx, username)
	if err != nil {
		s.logger.Error("failed to check lockout state", slog.Any("error", err))
		return nil, "", models.ErrInternalServer
	}
	if locked {
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login_blocked",
			Username:      username,
			IPAddress:     ipAddress,
			FailureReason: "locked_out",
			Success:       false,
		})
		return nil, "", models.ErrAccountLocked
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// Burn the same bcrypt cost a real comparison would, so response
			// time does not reveal whether the username exists
			pkgauth.CompareDummyPassword(password)
			// Count the failure for unknown usernames too, so probing a
			// username locks it out the same as guessing passwords does
			return nil, "", s.failLogin(ctx, username, ipAddress, "invalid_credentials")
		}
		s.logger.Error("failed to get user by username", slog.Any("error", err))
		return nil, "", models.ErrInternalServer
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", s.failLogin(ctx, username, ipAddress, "invalid_credentials")
	}

	if err := s.lockout.Reset(ctx, username); err != nil {
		// Non-fatal: the login still succeeds, the stale counter just lingers
		s.logger.Error("failed to reset login attempts", slog.String("username", username), slog.Any("error", err))
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		s.logger.Error("failed to generate session token", slog.Any("error", err))
		return nil, "", models.ErrInternalServer
	}

	session := &models.Session{
		TokenHash: auth.HashSessionToken(token),
		UserID:    user.ID,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		ExpiresAt: time.Now().Add(s.sessionTTL),
		CreatedAt: time.Now(),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.Error("failed to create session", slog.String("user_id", user.ID), slog.Any("error", err))
		return nil, "", models.ErrInternalServer
	}

	if s.metrics != nil {
		s.metrics.SessionsCreated.Inc()
	}

	s.logger.Info("user logged in", slog.String("user_id", user.ID))
	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "login_success",
		UserID:    user.ID,
		Username:  username,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Success:   true,
	})

	return user, token, nil
}

// failLogin records a failed attempt and returns the error for the caller.
func (s *AuthService) failLogin(ctx context.Context, username, ipAddress, reason string) error {
	lockedOut, err := s.lockout.RecordFailure(ctx, username)
	if err != nil {
		s.logger.Error("failed to record login failure", slog.String("username", username), slog.Any("error", err))
	}

	if s.metrics != nil {
		s.metrics.FailedLogins.Inc()
		if lockedOut {
			s.metrics.Lockouts.Inc()
		}
	}

	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType:     "login_failed",
		Username:      username,
		IPAddress:     ipAddress,
		FailureReason: reason,
		Success:       false,
	})

	return models.ErrUnauthorized
}

// Logout destroys the session identified by the raw cookie token. Unknown
// tokens are not an error; logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, auth.HashSessionToken(token)); err != nil && !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to delete session", slog.Any("error", err))
		return models.ErrInternalServer
	}

	return nil
}
