package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mhollis/vitrine/internal/database"
	"github.com/mhollis/vitrine/internal/models"
)

type ProductImageRepository struct {
	db *database.DB
}

func NewProductImageRepository(db *database.DB) *ProductImageRepository {
	return &ProductImageRepository{db: db}
}

func scanProductImageRow(scanner rowScanner) (*models.ProductImage, error) {
	var img models.ProductImage

	err := scanner.Scan(
		&img.ID, &img.ProductID, &img.Path, &img.AltText, &img.Position, &img.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &img, nil
}

func (r *ProductImageRepository) GetByID(ctx context.Context, id string) (*models.ProductImage, error) {
	query := `
		SELECT id, product_id, path, alt_text, position, created_at
		FROM product_images WHERE id = $1
	`

	return scanProductImageRow(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *ProductImageRepository) ListByProduct(ctx context.Context, productID string) ([]*models.ProductImage, error) {
	query := `
		SELECT id, product_id, path, alt_text, position, created_at
		FROM product_images WHERE product_id = $1
		ORDER BY position ASC, created_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query product images: %w", err)
	}
	defer rows.Close()

	images := make([]*models.ProductImage, 0)
	for rows.Next() {
		img, err := scanProductImageRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product image: %w", err)
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return images, nil
}

func (r *ProductImageRepository) Create(ctx context.Context, image *models.ProductImage) (*models.ProductImage, error) {
	image.ID = uuid.New().String()
	image.CreatedAt = time.Now()

	query := `
		INSERT INTO product_images (id, product_id, path, alt_text, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, product_id, path, alt_text, position, created_at
	`

	return scanProductImageRow(r.db.Pool.QueryRow(ctx, query,
		image.ID, image.ProductID, image.Path, image.AltText, image.Position, image.CreatedAt,
	))
}

func (r *ProductImageRepository) Update(ctx context.Context, id string, image *models.ProductImage) (*models.ProductImage, error) {
	query := `
		UPDATE product_images
		SET alt_text = $2, position = $3
		WHERE id = $1
		RETURNING id, product_id, path, alt_text, position, created_at
	`

	return scanProductImageRow(r.db.Pool.QueryRow(ctx, query, id, image.AltText, image.Position))
}

func (r *ProductImageRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM product_images WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
