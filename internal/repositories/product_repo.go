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

type ProductRepository struct {
	db *database.DB
}

func NewProductRepository(db *database.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductFilter narrows product listings. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID string
	ActiveOnly bool
	Featured   bool
}

func scanProductRow(scanner rowScanner) (*models.Product, error) {
	var p models.Product

	err := scanner.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description,
		&p.PriceCents, &p.Featured, &p.Active, &p.Position,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &p, nil
}

func scanProductRows(rows pgx.Rows) ([]*models.Product, error) {
	defer rows.Close()

	products := make([]*models.Product, 0)

	for rows.Next() {
		p, err := scanProductRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `
		SELECT id, category_id, name, slug, description, price_cents, featured, active, position, created_at, updated_at
		FROM products WHERE id = $1
	`

	return scanProductRow(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	query := `
		SELECT id, category_id, name, slug, description, price_cents, featured, active, position, created_at, updated_at
		FROM products WHERE slug = $1
	`

	return scanProductRow(r.db.Pool.QueryRow(ctx, query, slug))
}

func (r *ProductRepository) List(ctx context.Context, filter ProductFilter) ([]*models.Product, error) {
	query := `
		SELECT id, category_id, name, slug, description, price_cents, featured, active, position, created_at, updated_at
		FROM products
		WHERE ($1 = '' OR category_id::text = $1)
		  AND (NOT $2 OR active)
		  AND (NOT $3 OR featured)
		ORDER BY position ASC, name ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, filter.CategoryID, filter.ActiveOnly, filter.Featured)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	return scanProductRows(rows)
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = uuid.New().String()

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `
		INSERT INTO products (id, category_id, name, slug, description, price_cents, featured, active, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, category_id, name, slug, description, price_cents, featured, active, position, created_at, updated_at
	`

	return scanProductRow(r.db.Pool.QueryRow(ctx, query,
		product.ID, product.CategoryID, product.Name, product.Slug, product.Description,
		product.PriceCents, product.Featured, product.Active, product.Position,
		product.CreatedAt, product.UpdatedAt,
	))
}

func (r *ProductRepository) Update(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	query := `
		UPDATE products
		SET category_id = COALESCE(NULLIF($2, '')::uuid, category_id),
		    name = COALESCE(NULLIF($3, ''), name),
		    slug = COALESCE(NULLIF($4, ''), slug),
		    description = $5,
		    price_cents = $6,
		    featured = $7,
		    active = $8,
		    position = $9,
		    updated_at = $10
		WHERE id = $1
		RETURNING id, category_id, name, slug, description, price_cents, featured, active, position, created_at, updated_at
	`

	return scanProductRow(r.db.Pool.QueryRow(ctx, query,
		id, product.CategoryID, product.Name, product.Slug, product.Description,
		product.PriceCents, product.Featured, product.Active, product.Position,
		time.Now(),
	))
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// CountByCategory reports how many products reference a category. Used to
// refuse deleting a category that still has products.
func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID,
	).Scan(&count)
	return count, database.MapPostgresError(err)
}
