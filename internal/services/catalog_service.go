package services

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/mhollis/vitrine/internal/models"
	"github.com/mhollis/vitrine/internal/repositories"
)

// CategoryRepository defines the storage operations for categories
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	Update(ctx context.Context, id string, category *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

// ProductRepository defines the storage operations for products
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	List(ctx context.Context, filter repositories.ProductFilter) ([]*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, id string, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	CountByCategory(ctx context.Context, categoryID string) (int, error)
}

// ProductImageRepository defines the storage operations for product images
type ProductImageRepository interface {
	GetByID(ctx context.Context, id string) (*models.ProductImage, error)
	ListByProduct(ctx context.Context, productID string) ([]*models.ProductImage, error)
	Create(ctx context.Context, image *models.ProductImage) (*models.ProductImage, error)
	Update(ctx context.Context, id string, image *models.ProductImage) (*models.ProductImage, error)
	Delete(ctx context.Context, id string) error
}

// FileRemover deletes a stored upload by its public path
type FileRemover interface {
	Remove(publicPath string) error
}

// CatalogService handles categories, products, and product images
type CatalogService struct {
	categories CategoryRepository
	products   ProductRepository
	images     ProductImageRepository
	files      FileRemover
	logger     *slog.Logger
}

func NewCatalogService(
	categories CategoryRepository,
	products ProductRepository,
	images ProductImageRepository,
	files FileRemover,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		products:   products,
		images:     images,
		files:      files,
		logger:     logger,
	}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a display name.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Categories

func (s *CatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// GetCategoryBySlug looks a category up by its URL slug, for the public site.
func (s *CatalogService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.categories.GetBySlug(ctx, slug)
}

func (s *CatalogService) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category.Slug == "" {
		category.Slug = Slugify(category.Name)
	}
	if category.Slug == "" {
		return nil, models.ErrBadRequest
	}

	created, err := s.categories.Create(ctx, category)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create category", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return created, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, category *models.Category) (*models.Category, error) {
	updated, err := s.categories.Update(ctx, id, category)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrConflict) {
			return nil, err
		}
		s.logger.Error("failed to update category", slog.String("category_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return updated, nil
}

// DeleteCategory refuses to delete a category that still has products.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		s.logger.Error("failed to count products in category", slog.String("category_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}
	if count > 0 {
		return models.ErrConflict
	}

	return s.categories.Delete(ctx, id)
}

// Products

func (s *CatalogService) ListProducts(ctx context.Context, filter repositories.ProductFilter) ([]*models.Product, error) {
	return s.products.List(ctx, filter)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// GetProductBySlug looks a product up by its URL slug, for the public site.
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return s.products.GetBySlug(ctx, slug)
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	// The category must exist; the schema enforces this too, but checking
	// here turns a 500 into a useful 400
	if _, err := s.categories.GetByID(ctx, product.CategoryID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrBadRequest
		}
		return nil, models.ErrInternalServer
	}

	if product.Slug == "" {
		product.Slug = Slugify(product.Name)
	}
	if product.Slug == "" {
		return nil, models.ErrBadRequest
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create product", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return created, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	if product.CategoryID != "" {
		if _, err := s.categories.GetByID(ctx, product.CategoryID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, models.ErrBadRequest
			}
			return nil, models.ErrInternalServer
		}
	}

	updated, err := s.products.Update(ctx, id, product)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrConflict) {
			return nil, err
		}
		s.logger.Error("failed to update product", slog.String("product_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return updated, nil
}

// DeleteProduct removes the product, its image records, and their files.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	images, err := s.images.ListByProduct(ctx, id)
	if err != nil {
		s.logger.Error("failed to list product images", slog.String("product_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	// Image rows cascade with the product; the files need explicit removal
	for _, img := range images {
		if err := s.files.Remove(img.Path); err != nil {
			s.logger.Error("failed to remove image file", slog.String("path", img.Path), slog.Any("error", err))
		}
	}

	return nil
}

// Product images

func (s *CatalogService) ListProductImages(ctx context.Context, productID string) ([]*models.ProductImage, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.images.ListByProduct(ctx, productID)
}

func (s *CatalogService) AddProductImage(ctx context.Context, image *models.ProductImage) (*models.ProductImage, error) {
	if _, err := s.products.GetByID(ctx, image.ProductID); err != nil {
		return nil, err
	}

	created, err := s.images.Create(ctx, image)
	if err != nil {
		s.logger.Error("failed to create product image", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return created, nil
}

func (s *CatalogService) UpdateProductImage(ctx context.Context, id string, image *models.ProductImage) (*models.ProductImage, error) {
	updated, err := s.images.Update(ctx, id, image)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to update product image", slog.String("image_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return updated, nil
}

func (s *CatalogService) DeleteProductImage(ctx context.Context, id string) error {
	image, err := s.images.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.images.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.files.Remove(image.Path); err != nil {
		s.logger.Error("failed to remove image file", slog.String("path", image.Path), slog.Any("error", err))
	}

	return nil
}
