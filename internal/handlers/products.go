package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mhollis/vitrine/internal/models"
	"github.com/mhollis/vitrine/internal/repositories"
	"github.com/mhollis/vitrine/internal/uploads"
	pkghttp "github.com/mhollis/vitrine/pkg/http"
)

// ProductServiceInterface defines the interface for product business logic
type ProductServiceInterface interface {
	ListProducts(ctx context.Context, filter repositories.ProductFilter) ([]*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProductImages(ctx context.Context, productID string) ([]*models.ProductImage, error)
	AddProductImage(ctx context.Context, image *models.ProductImage) (*models.ProductImage, error)
	UpdateProductImage(ctx context.Context, id string, image *models.ProductImage) (*models.ProductImage, error)
	DeleteProductImage(ctx context.Context, id string) error
}

// FileStore stores uploaded files and deletes them by their public path
type FileStore interface {
	Save(file multipart.File, header *multipart.FileHeader) (string, error)
	Remove(publicPath string) error
}

// ProductHandler handles product and product image HTTP requests
type ProductHandler struct {
	service ProductServiceInterface
	files   FileStore
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service ProductServiceInterface, files FileStore) *ProductHandler {
	return &ProductHandler{service: service, files: files}
}

// ProductRequest represents the request body for creating or updating a product
type ProductRequest struct {
	CategoryID  string `json:"category_id" validate:"required"`
	Name        string `json:"name" validate:"required,min=1,max=256"`
	Slug        string `json:"slug" validate:"omitempty,max=256"`
	Description string `json:"description" validate:"omitempty,max=8192"`
	PriceCents  int64  `json:"price_cents" validate:"gte=0"`
	Featured    bool   `json:"featured"`
	Active      bool   `json:"active"`
	Position    int    `json:"position" validate:"gte=0"`
}

// ProductImageUpdateRequest represents the request body for updating image metadata
type ProductImageUpdateRequest struct {
	AltText  string `json:"alt_text" validate:"omitempty,max=256"`
	Position int    `json:"position" validate:"gte=0"`
}

// ProductResponse represents a product in the HTTP response
type ProductResponse struct {
	ID          string `json:"id"`
	CategoryID  string `json:"category_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents"`
	Featured    bool   `json:"featured"`
	Active      bool   `json:"active"`
	Position    int    `json:"position"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ProductImageResponse represents a product image in the HTTP response
type ProductImageResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Path      string `json:"path"`
	AltText   string `json:"alt_text,omitempty"`
	Position  int    `json:"position"`
	CreatedAt string `json:"created_at"`
}

func productModelToResponse(product *models.Product) *ProductResponse {
	return &ProductResponse{
		ID:          product.ID,
		CategoryID:  product.CategoryID,
		Name:        product.Name,
		Slug:        product.Slug,
		Description: product.Description,
		PriceCents:  product.PriceCents,
		Featured:    product.Featured,
		Active:      product.Active,
		Position:    product.Position,
		CreatedAt:   product.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   product.UpdatedAt.Format(time.RFC3339),
	}
}

func productImageModelToResponse(image *models.ProductImage) *ProductImageResponse {
	return &ProductImageResponse{
		ID:        image.ID,
		ProductID: image.ProductID,
		Path:      image.Path,
		AltText:   image.AltText,
		Position:  image.Position,
		CreatedAt: image.CreatedAt.Format(time.RFC3339),
	}
}

// RegisterPublicRoutes registers the read-only storefront routes.
// The public listing only ever sees active products.
func (h *ProductHandler) RegisterPublicRoutes(router chi.Router) {
	router.Get("/products", h.ListPublicProducts)
	router.Get("/products/{slug}", h.GetProductBySlug)
}

// RegisterAdminRoutes registers the dashboard CRUD routes
func (h *ProductHandler) RegisterAdminRoutes(router chi.Router) {
	router.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/{id}", h.GetProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
		r.Get("/{id}/images", h.ListProductImages)
		r.Post("/{id}/images", h.UploadProductImage)
	})
	router.Route("/product-images", func(r chi.Router) {
		r.Put("/{id}", h.UpdateProductImage)
		r.Delete("/{id}", h.DeleteProductImage)
	})
}

// ListPublicProducts lists active products, optionally filtered by category
// or restricted to featured ones.
func (h *ProductHandler) ListPublicProducts(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ProductFilter{
		CategoryID: r.URL.Query().Get("category_id"),
		Featured:   r.URL.Query().Get("featured") == "true",
		ActiveOnly: true,
	}
	h.listProducts(w, r, filter)
}

// ListProducts lists all products for the dashboard, including inactive ones.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ProductFilter{
		CategoryID: r.URL.Query().Get("category_id"),
		Featured:   r.URL.Query().Get("featured") == "true",
	}
	h.listProducts(w, r, filter)
}

func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request, filter repositories.ProductFilter) {
	products, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	response := make([]*ProductResponse, len(products))
	for i, product := range products {
		response[i] = productModelToResponse(product)
	}
	pkghttp.WriteJSON(w, http.StatusOK, response)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, productModelToResponse(product))
}

func (h *ProductHandler) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	// Inactive products are invisible on the storefront
	if !product.Active {
		pkghttp.WriteNotFound(w, "Not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, productModelToResponse(product))
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	created, err := h.service.CreateProduct(r.Context(), productRequestToModel(&req))
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, productModelToResponse(created))
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	updated, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), productRequestToModel(&req))
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, productModelToResponse(updated))
}

func productRequestToModel(req *ProductRequest) *models.Product {
	return &models.Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Featured:    req.Featured,
		Active:      req.Active,
		Position:    req.Position,
	}
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeCatalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) ListProductImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.ListProductImages(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	response := make([]*ProductImageResponse, len(images))
	for i, image := range images {
		response[i] = productImageModelToResponse(image)
	}
	pkghttp.WriteJSON(w, http.StatusOK, response)
}

// UploadProductImage accepts a multipart form with an "image" file part and
// optional "alt_text" and "position" fields.
func (h *ProductHandler) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("image")
	if err != nil {
		pkghttp.WriteBadRequest(w, "Missing image file")
		return
	}
	defer file.Close()

	path, err := h.files.Save(file, header)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	position, _ := strconv.Atoi(r.FormValue("position"))

	created, err := h.service.AddProductImage(r.Context(), &models.ProductImage{
		ProductID: chi.URLParam(r, "id"),
		Path:      path,
		AltText:   r.FormValue("alt_text"),
		Position:  position,
	})
	if err != nil {
		// Don't leave the stored file orphaned when the product lookup fails
		_ = h.files.Remove(path)
		writeCatalogError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, productImageModelToResponse(created))
}

func (h *ProductHandler) UpdateProductImage(w http.ResponseWriter, r *http.Request) {
	var req ProductImageUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	updated, err := h.service.UpdateProductImage(r.Context(), chi.URLParam(r, "id"), &models.ProductImage{
		AltText:  req.AltText,
		Position: req.Position,
	})
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, productImageModelToResponse(updated))
}

func (h *ProductHandler) DeleteProductImage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProductImage(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeCatalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeUploadError maps upload failures onto HTTP status codes
func writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, uploads.ErrFileTooLarge):
		pkghttp.WriteBadRequest(w, "File exceeds the maximum upload size")
	case errors.Is(err, uploads.ErrUnsupportedType):
		pkghttp.WriteBadRequest(w, "Unsupported image type")
	default:
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}
