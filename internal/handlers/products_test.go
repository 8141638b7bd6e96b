package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mhollis/vitrine/internal/models"
	"github.com/mhollis/vitrine/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockProductService implements ProductServiceInterface for testing
type MockProductService struct {
	ListProductsFunc       func(ctx context.Context, filter repositories.ProductFilter) ([]*models.Product, error)
	GetProductFunc         func(ctx context.Context, id string) (*models.Product, error)
	GetProductBySlugFunc   func(ctx context.Context, slug string) (*models.Product, error)
	CreateProductFunc      func(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProductFunc      func(ctx context.Context, id string, product *models.Product) (*models.Product, error)
	DeleteProductFunc      func(ctx context.Context, id string) error
	ListProductImagesFunc  func(ctx context.Context, productID string) ([]*models.ProductImage, error)
	AddProductImageFunc    func(ctx context.Context, image *models.ProductImage) (*models.ProductImage, error)
	UpdateProductImageFunc func(ctx context.Context, id string, image *models.ProductImage) (*models.ProductImage, error)
	DeleteProductImageFunc func(ctx context.Context, id string) error
}

func (m *MockProductService) ListProducts(ctx context.Context, filter repositories.ProductFilter) ([]*models.Product, error) {
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx, filter)
	}
	return []*models.Product{}, nil
}

func (m *MockProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if m.GetProductFunc != nil {
		return m.GetProductFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockProductService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if m.GetProductBySlugFunc != nil {
		return m.GetProductBySlugFunc(ctx, slug)
	}
	return nil, models.ErrNotFound
}

func (m *MockProductService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if m.CreateProductFunc != nil {
		return m.CreateProductFunc(ctx, product)
	}
	return nil, models.ErrInternalServer
}

func (m *MockProductService) UpdateProduct(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	if m.UpdateProductFunc != nil {
		return m.UpdateProductFunc(ctx, id, product)
	}
	return nil, models.ErrInternalServer
}

func (m *MockProductService) DeleteProduct(ctx context.Context, id string) error {
	if m.DeleteProductFunc != nil {
		return m.DeleteProductFunc(ctx, id)
	}
	return nil
}

func (m *MockProductService) ListProductImages(ctx context.Context, productID string) ([]*models.ProductImage, error) {
	if m.ListProductImagesFunc != nil {
		return m.ListProductImagesFunc(ctx, productID)
	}
	return []*models.ProductImage{}, nil
}

func (m *MockProductService) AddProductImage(ctx context.Context, image *models.ProductImage) (*models.ProductImage, error) {
	if m.AddProductImageFunc != nil {
		return m.AddProductImageFunc(ctx, image)
	}
	return nil, models.ErrInternalServer
}

func (m *MockProductService) UpdateProductImage(ctx context.Context, id string, image *models.ProductImage) (*models.ProductImage, error) {
	if m.UpdateProductImageFunc != nil {
		return m.UpdateProductImageFunc(ctx, id, image)
	}
	return nil, models.ErrInternalServer
}

func (m *MockProductService) DeleteProductImage(ctx context.Context, id string) error {
	if m.DeleteProductImageFunc != nil {
		return m.DeleteProductImageFunc(ctx, id)
	}
	return nil
}

type mockFileStore struct {
	path    string
	err     error
	removed []string
}

func (m *mockFileStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	return m.path, m.err
}

func (m *mockFileStore) Remove(publicPath string) error {
	m.removed = append(m.removed, publicPath)
	return nil
}

func TestProductHandler_PublicListIsActiveOnly(t *testing.T) {
	var gotFilter repositories.ProductFilter
	service := &MockProductService{
		ListProductsFunc: func(ctx context.Context, filter repositories.ProductFilter) ([]*models.Product, error) {
			gotFilter = filter
			return []*models.Product{}, nil
		},
	}
	handler := NewProductHandler(service, &mockFileStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/products?category_id=cat-1", nil)
	w := httptest.NewRecorder()
	handler.ListPublicProducts(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotFilter.ActiveOnly, "public listing must be restricted to active products")
	assert.Equal(t, "cat-1", gotFilter.CategoryID)
}

func TestProductHandler_InactiveProductHiddenFromStorefront(t *testing.T) {
	service := &MockProductService{
		GetProductBySlugFunc: func(ctx context.Context, slug string) (*models.Product, error) {
			return &models.Product{ID: "prod-1", Slug: slug, Active: false}, nil
		},
	}
	handler := NewProductHandler(service, &mockFileStore{})

	req := WithURLParam(httptest.NewRequest(http.MethodGet, "/api/products/gold-band", nil), "slug", "gold-band")
	w := httptest.NewRecorder()
	handler.GetProductBySlug(w, req)

	AssertErrorResponse(t, w, http.StatusNotFound, "not_found")
}

func TestProductHandler_UploadImageMissingFile(t *testing.T) {
	handler := NewProductHandler(&MockProductService{}, &mockFileStore{})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("alt_text", "side view"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products/prod-1/images", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req = WithURLParam(req, "id", "prod-1")
	w := httptest.NewRecorder()
	handler.UploadProductImage(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestProductHandler_UploadImageRemovesFileWhenProductMissing(t *testing.T) {
	service := &MockProductService{
		AddProductImageFunc: func(ctx context.Context, image *models.ProductImage) (*models.ProductImage, error) {
			return nil, models.ErrNotFound
		},
	}
	files := &mockFileStore{path: "/uploads/orphan.png"}
	handler := NewProductHandler(service, files)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products/missing/images", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req = WithURLParam(req, "id", "missing")
	w := httptest.NewRecorder()
	handler.UploadProductImage(w, req)

	AssertErrorResponse(t, w, http.StatusNotFound, "not_found")
	assert.Equal(t, []string{"/uploads/orphan.png"}, files.removed, "stored file must be cleaned up")
}

func TestProductHandler_UploadImage(t *testing.T) {
	service := &MockProductService{
		AddProductImageFunc: func(ctx context.Context, image *models.ProductImage) (*models.ProductImage, error) {
			assert.Equal(t, "prod-1", image.ProductID)
			assert.Equal(t, "/uploads/abc.png", image.Path)
			created := *image
			created.ID = "img-1"
			return &created, nil
		},
	}
	handler := NewProductHandler(service, &mockFileStore{path: "/uploads/abc.png"})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("alt_text", "front view"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products/prod-1/images", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req = WithURLParam(req, "id", "prod-1")
	w := httptest.NewRecorder()
	handler.UploadProductImage(w, req)

	var resp ProductImageResponse
	AssertJSONResponse(t, w, http.StatusCreated, &resp)
	assert.Equal(t, "img-1", resp.ID)
	assert.Equal(t, "front view", resp.AltText)
}
