package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mhollis/vitrine/internal/database"
	"github.com/mhollis/vitrine/internal/models"
)

type CategoryRepository struct {
	db *database.DB
}

func NewCategoryRepository(db *database.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func scanCategoryRow(scanner rowScanner) (*models.Category, error) {
	var c models.Category

	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Position,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &c, nil
}

func scanCategoryRows(rows pgx.Rows) ([]*models.Category, error) {
	defer rows.Close()

	categories := make([]*models.Category, 0)

	for rows.Next() {
		c, err := scanCategoryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	query := `
		SELECT id, name, slug, description, position, created_at, updated_at
		FROM categories WHERE id = $1
	`

	return scanCategoryRow(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `
		SELECT id, name, slug, description, position, created_at, updated_at
		FROM categories WHERE slug = $1
	`

	return scanCategoryRow(r.db.Pool.QueryRow(ctx, query, slug))
}

func (r *CategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	query := `
		SELECT id, name, slug, description, position, created_at, updated_at
		FROM categories ORDER BY position ASC, name ASC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	return scanCategoryRows(rows)
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	category.ID = uuid.New().String()

	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	query := `
		INSERT INTO categories (id, name, slug, description, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, slug, description, position, created_at, updated_at
	`

	return scanCategoryRow(r.db.Pool.QueryRow(ctx, query,
		category.ID, category.Name, category.Slug, category.Description,
		category.Position, category.CreatedAt, category.UpdatedAt,
	))
}

func (r *CategoryRepository) Update(ctx context.Context, id string, category *models.Category) (*models.Category, error) {
	query := `
		UPDATE categories
		SET name = COALESCE(NULLIF($2, ''), name),
		    slug = COALESCE(NULLIF($3, ''), slug),
		    description = $4,
		    position = $5,
		    updated_at = $6
		WHERE id = $1
		RETURNING id, name, slug, description, position, created_at, updated_at
	`

	return scanCategoryRow(r.db.Pool.QueryRow(ctx, query,
		id, category.Name, category.Slug, category.Description,
		category.Position, time.Now(),
	))
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
