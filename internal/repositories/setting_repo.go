package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/mhollis/vitrine/internal/database"
	"github.com/mhollis/vitrine/internal/models"
)

type SettingRepository struct {
	db *database.DB
}

func NewSettingRepository(db *database.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	query := `SELECT key, value, updated_at FROM settings WHERE key = $1`

	var s models.Setting
	err := r.db.Pool.QueryRow(ctx, query, key).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &s, nil
}

func (r *SettingRepository) List(ctx context.Context) ([]*models.Setting, error) {
	query := `SELECT key, value, updated_at FROM settings ORDER BY key ASC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings := make([]*models.Setting, 0)
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return settings, nil
}

// Upsert writes a setting, inserting or overwriting as needed.
func (r *SettingRepository) Upsert(ctx context.Context, key, value string) (*models.Setting, error) {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = $3
		RETURNING key, value, updated_at
	`

	var s models.Setting
	err := r.db.Pool.QueryRow(ctx, query, key, value, time.Now()).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &s, nil
}

func (r *SettingRepository) Delete(ctx context.Context, key string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM settings WHERE key = $1`, key)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
