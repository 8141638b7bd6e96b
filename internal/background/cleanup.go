package background

import (
	"context"
	"log/slog"
	"time"
)

// StaleAttemptAge is how long a failed-login record may sit untouched before
// the sweep removes it. Comfortably longer than any lockout window.
const StaleAttemptAge = 24 * time.Hour

// SessionSweeper deletes expired sessions, returning the number removed
type SessionSweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// AttemptSweeper deletes failed-login records untouched since the cutoff
type AttemptSweeper interface {
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// CleanupManager periodically removes expired sessions and stale login
// attempt records from the database.
type CleanupManager struct {
	sessions SessionSweeper
	attempts AttemptSweeper
	logger   *slog.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewCleanupManager creates a new cleanup manager
func NewCleanupManager(
	sessions SessionSweeper,
	attempts AttemptSweeper,
	logger *slog.Logger,
	interval time.Duration,
) *CleanupManager {
	return &CleanupManager{
		sessions: sessions,
		attempts: attempts,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic cleanup task. Blocks until Stop is called or the
// context is cancelled; run it in its own goroutine.
func (cm *CleanupManager) Start(ctx context.Context) {
	ticker := time.NewTicker(cm.interval)
	defer ticker.Stop()

	// Run immediately on startup
	cm.runCleanup(ctx)

	for {
		select {
		case <-ticker.C:
			cm.runCleanup(ctx)
		case <-cm.stopCh:
			cm.logger.Info("cleanup manager stopped")
			return
		case <-ctx.Done():
			cm.logger.Info("cleanup manager context cancelled")
			return
		}
	}
}

func (cm *CleanupManager) runCleanup(ctx context.Context) {
	cleanupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	sessionsDeleted, err := cm.sessions.DeleteExpired(cleanupCtx)
	if err != nil {
		cm.logger.Error("failed to cleanup expired sessions", slog.Any("error", err))
	} else if sessionsDeleted > 0 {
		cm.logger.Info("expired session cleanup completed", slog.Int64("rows_deleted", sessionsDeleted))
	}

	attemptsDeleted, err := cm.attempts.DeleteStale(cleanupCtx, time.Now().Add(-StaleAttemptAge))
	if err != nil {
		cm.logger.Error("failed to cleanup stale login attempts", slog.Any("error", err))
	} else if attemptsDeleted > 0 {
		cm.logger.Info("stale login attempt cleanup completed", slog.Int64("rows_deleted", attemptsDeleted))
	}
}

// Stop signals the cleanup manager to stop
func (cm *CleanupManager) Stop() {
	close(cm.stopCh)
}
