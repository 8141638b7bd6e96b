package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mhollis/vitrine/internal/database"
	"github.com/mhollis/vitrine/internal/models"
)

type HeroImageRepository struct {
	db *database.DB
}

func NewHeroImageRepository(db *database.DB) *HeroImageRepository {
	return &HeroImageRepository{db: db}
}

func scanHeroImageRow(scanner rowScanner) (*models.HeroImage, error) {
	var img models.HeroImage

	err := scanner.Scan(
		&img.ID, &img.Path, &img.Title, &img.Subtitle, &img.LinkURL,
		&img.Position, &img.Active, &img.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &img, nil
}

func (r *HeroImageRepository) GetByID(ctx context.Context, id string) (*models.HeroImage, error) {
	query := `
		SELECT id, path, title, subtitle, link_url, position, active, created_at
		FROM hero_images WHERE id = $1
	`

	return scanHeroImageRow(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *HeroImageRepository) List(ctx context.Context, activeOnly bool) ([]*models.HeroImage, error) {
	query := `
		SELECT id, path, title, subtitle, link_url, position, active, created_at
		FROM hero_images
		WHERE NOT $1 OR active
		ORDER BY position ASC, created_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query hero images: %w", err)
	}
	defer rows.Close()

	images := make([]*models.HeroImage, 0)
	for rows.Next() {
		img, err := scanHeroImageRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hero image: %w", err)
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return images, nil
}

func (r *HeroImageRepository) Create(ctx context.Context, image *models.HeroImage) (*models.HeroImage, error) {
	image.ID = uuid.New().String()
	image.CreatedAt = time.Now()

	query := `
		INSERT INTO hero_images (id, path, title, subtitle, link_url, position, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, path, title, subtitle, link_url, position, active, created_at
	`

	return scanHeroImageRow(r.db.Pool.QueryRow(ctx, query,
		image.ID, image.Path, image.Title, image.Subtitle, image.LinkURL,
		image.Position, image.Active, image.CreatedAt,
	))
}

func (r *HeroImageRepository) Update(ctx context.Context, id string, image *models.HeroImage) (*models.HeroImage, error) {
	query := `
		UPDATE hero_images
		SET title = $2, subtitle = $3, link_url = $4, position = $5, active = $6
		WHERE id = $1
		RETURNING id, path, title, subtitle, link_url, position, active, created_at
	`

	return scanHeroImageRow(r.db.Pool.QueryRow(ctx, query,
		id, image.Title, image.Subtitle, image.LinkURL, image.Position, image.Active,
	))
}

func (r *HeroImageRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM hero_images WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
