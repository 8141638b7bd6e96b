package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mhollis/vitrine/internal/database"
	"github.com/mhollis/vitrine/internal/models"
)

// LoginAttemptRepository handles database operations for the per-username
// failed login tracker. One row per username, upserted on each failure.
type LoginAttemptRepository struct {
	db *database.DB
}

func NewLoginAttemptRepository(db *database.DB) *LoginAttemptRepository {
	return &LoginAttemptRepository{db: db}
}

// Get returns the attempt record for a username, or nil when none exists.
func (r *LoginAttemptRepository) Get(ctx context.Context, username string) (*models.LoginAttempt, error) {
	query := `
		SELECT username, failed_count, locked_until, updated_at
		FROM login_attempts WHERE username = $1
	`

	var attempt models.LoginAttempt
	err := r.db.Pool.QueryRow(ctx, query, username).Scan(
		&attempt.Username, &attempt.FailedCount, &attempt.LockedUntil, &attempt.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &attempt, nil
}

// IncrementFailures bumps the failure counter for a username and returns the
// updated record. The row is created on the first failure.
func (r *LoginAttemptRepository) IncrementFailures(ctx context.Context, username string) (*models.LoginAttempt, error) {
	query := `
		INSERT INTO login_attempts (username, failed_count, updated_at)
		VALUES ($1, 1, $2)
		ON CONFLICT (username) DO UPDATE
		SET failed_count = login_attempts.failed_count + 1, updated_at = $2
		RETURNING username, failed_count, locked_until, updated_at
	`

	var attempt models.LoginAttempt
	err := r.db.Pool.QueryRow(ctx, query, username, time.Now()).Scan(
		&attempt.Username, &attempt.FailedCount, &attempt.LockedUntil, &attempt.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &attempt, nil
}

// SetLockout records the lockout expiry for a username.
func (r *LoginAttemptRepository) SetLockout(ctx context.Context, username string, until time.Time) error {
	query := `
		UPDATE login_attempts SET locked_until = $2, updated_at = $3
		WHERE username = $1
	`

	_, err := r.db.Pool.Exec(ctx, query, username, until, time.Now())
	return database.MapPostgresError(err)
}

// Reset removes the attempt record entirely. Called after a successful login.
func (r *LoginAttemptRepository) Reset(ctx context.Context, username string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM login_attempts WHERE username = $1`, username)
	return database.MapPostgresError(err)
}

// DeleteStale removes records not touched since the cutoff and returns the
// count removed. Keeps the table from accumulating one row per typo'd username.
func (r *LoginAttemptRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM login_attempts WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}
	return tag.RowsAffected(), nil
}
