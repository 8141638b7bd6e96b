package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/mhollis/vitrine/internal/models"
)

// LoginAttemptRepository defines the storage operations for the failed login tracker
type LoginAttemptRepository interface {
	Get(ctx context.Context, username string) (*models.LoginAttempt, error)
	IncrementFailures(ctx context.Context, username string) (*models.LoginAttempt, error)
	SetLockout(ctx context.Context, username string, until time.Time) error
	Reset(ctx context.Context, username string) error
}

// LockoutConfig holds lockout behavior configuration
type LockoutConfig struct {
	MaxFailedAttempts int
	LockoutDuration   time.Duration
}

// LockoutService tracks consecutive failed logins per username and applies
// a temporary lockout once the threshold is reached. Lockouts expire lazily;
// nothing sweeps them besides the staleness cleanup.
type LockoutService struct {
	repo   LoginAttemptRepository
	config LockoutConfig
	logger *slog.Logger
}

func NewLockoutService(repo LoginAttemptRepository, config LockoutConfig, logger *slog.Logger) *LockoutService {
	return &LockoutService{
		repo:   repo,
		config: config,
		logger: logger,
	}
}

// IsLocked reports whether the username is currently locked out.
func (s *LockoutService) IsLocked(ctx context.Context, username string) (bool, error) {
	attempt, err := s.repo.Get(ctx, username)
	if err != nil {
		return false, err
	}
	if attempt == nil {
		return false, nil
	}
	return attempt.Locked(time.Now()), nil
}

// RecordFailure increments the failure counter for a username. Reaching the
// threshold sets a lockout expiring after the configured duration. Returns
// whether this failure triggered a lockout.
func (s *LockoutService) RecordFailure(ctx context.Context, username string) (bool, error) {
	attempt, err := s.repo.IncrementFailures(ctx, username)
	if err != nil {
		return false, err
	}

	if attempt.FailedCount < s.config.MaxFailedAttempts {
		return false, nil
	}

	until := time.Now().Add(s.config.LockoutDuration)
	if err := s.repo.SetLockout(ctx, username, until); err != nil {
		return false, err
	}

	s.logger.Warn("login lockout triggered",
		slog.String("username", username),
		slog.Int("failed_count", attempt.FailedCount),
		slog.Time("locked_until", until))

	return true, nil
}

// Reset clears the failure record entirely. Called after a successful login.
func (s *LockoutService) Reset(ctx context.Context, username string) error {
	return s.repo.Reset(ctx, username)
}
