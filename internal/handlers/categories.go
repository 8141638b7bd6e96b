package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mhollis/vitrine/internal/models"
	pkghttp "github.com/mhollis/vitrine/pkg/http"
)

// CategoryServiceInterface defines the interface for category business logic
type CategoryServiceInterface interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, category *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	service CategoryServiceInterface
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(service CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// CategoryRequest represents the request body for creating or updating a category
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=128"`
	Slug        string `json:"slug" validate:"omitempty,max=128"`
	Description string `json:"description" validate:"omitempty,max=2048"`
	Position    int    `json:"position" validate:"gte=0"`
}

// CategoryResponse represents a category in the HTTP response
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func categoryModelToResponse(category *models.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		Position:    category.Position,
		CreatedAt:   category.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   category.UpdatedAt.Format(time.RFC3339),
	}
}

// RegisterPublicRoutes registers the read-only storefront routes
func (h *CategoryHandler) RegisterPublicRoutes(router chi.Router) {
	router.Get("/categories", h.ListCategories)
	router.Get("/categories/{slug}", h.GetCategoryBySlug)
}

// RegisterAdminRoutes registers the dashboard CRUD routes
func (h *CategoryHandler) RegisterAdminRoutes(router chi.Router) {
	router.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Get("/{id}", h.GetCategory)
		r.Put("/{id}", h.UpdateCategory)
		r.Delete("/{id}", h.DeleteCategory)
	})
}

func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	response := make([]*CategoryResponse, len(categories))
	for i, category := range categories {
		response[i] = categoryModelToResponse(category)
	}
	pkghttp.WriteJSON(w, http.StatusOK, response)
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, categoryModelToResponse(category))
}

func (h *CategoryHandler) GetCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, categoryModelToResponse(category))
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	created, err := h.service.CreateCategory(r.Context(), &models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Position:    req.Position,
	})
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, categoryModelToResponse(created))
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	updated, err := h.service.UpdateCategory(r.Context(), chi.URLParam(r, "id"), &models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Position:    req.Position,
	})
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, categoryModelToResponse(updated))
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, models.ErrConflict) {
			pkghttp.WriteConflict(w, "Category still contains products")
			return
		}
		writeCatalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeCatalogError maps catalog errors onto HTTP status codes
func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "Not found")
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteConflict(w, "A resource with this slug already exists")
	case errors.Is(err, models.ErrBadRequest):
		pkghttp.WriteBadRequest(w, "Invalid request")
	default:
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}
