package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mhollis/vitrine/internal/models"
	pkghttp "github.com/mhollis/vitrine/pkg/http"
)

// ContentServiceInterface defines the interface for hero banner and settings logic
type ContentServiceInterface interface {
	ListHeroImages(ctx context.Context, activeOnly bool) ([]*models.HeroImage, error)
	CreateHeroImage(ctx context.Context, image *models.HeroImage) (*models.HeroImage, error)
	UpdateHeroImage(ctx context.Context, id string, image *models.HeroImage) (*models.HeroImage, error)
	DeleteHeroImage(ctx context.Context, id string) error
	GetSettings(ctx context.Context) (map[string]string, error)
	UpdateSettings(ctx context.Context, values map[string]string) (map[string]string, error)
}

// HeroImageHandler handles hero banner HTTP requests
type HeroImageHandler struct {
	service ContentServiceInterface
	files   FileStore
}

// NewHeroImageHandler creates a new HeroImageHandler
func NewHeroImageHandler(service ContentServiceInterface, files FileStore) *HeroImageHandler {
	return &HeroImageHandler{service: service, files: files}
}

// HeroImageUpdateRequest represents the request body for updating a hero banner
type HeroImageUpdateRequest struct {
	Title    string `json:"title" validate:"omitempty,max=256"`
	Subtitle string `json:"subtitle" validate:"omitempty,max=512"`
	LinkURL  string `json:"link_url" validate:"omitempty,url"`
	Position int    `json:"position" validate:"gte=0"`
	Active   bool   `json:"active"`
}

// HeroImageResponse represents a hero banner in the HTTP response
type HeroImageResponse struct {
	ID        string `json:"id"`
	Path      string `json:"path"`
	Title     string `json:"title,omitempty"`
	Subtitle  string `json:"subtitle,omitempty"`
	LinkURL   string `json:"link_url,omitempty"`
	Position  int    `json:"position"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

func heroImageModelToResponse(image *models.HeroImage) *HeroImageResponse {
	return &HeroImageResponse{
		ID:        image.ID,
		Path:      image.Path,
		Title:     image.Title,
		Subtitle:  image.Subtitle,
		LinkURL:   image.LinkURL,
		Position:  image.Position,
		Active:    image.Active,
		CreatedAt: image.CreatedAt.Format(time.RFC3339),
	}
}

// RegisterPublicRoutes registers the storefront route; only active banners
// are returned there.
func (h *HeroImageHandler) RegisterPublicRoutes(router chi.Router) {
	router.Get("/hero-images", h.ListPublicHeroImages)
}

// RegisterAdminRoutes registers the dashboard CRUD routes
func (h *HeroImageHandler) RegisterAdminRoutes(router chi.Router) {
	router.Route("/hero-images", func(r chi.Router) {
		r.Get("/", h.ListHeroImages)
		r.Post("/", h.UploadHeroImage)
		r.Put("/{id}", h.UpdateHeroImage)
		r.Delete("/{id}", h.DeleteHeroImage)
	})
}

func (h *HeroImageHandler) ListPublicHeroImages(w http.ResponseWriter, r *http.Request) {
	h.listHeroImages(w, r, true)
}

func (h *HeroImageHandler) ListHeroImages(w http.ResponseWriter, r *http.Request) {
	h.listHeroImages(w, r, false)
}

func (h *HeroImageHandler) listHeroImages(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	images, err := h.service.ListHeroImages(r.Context(), activeOnly)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	response := make([]*HeroImageResponse, len(images))
	for i, image := range images {
		response[i] = heroImageModelToResponse(image)
	}
	pkghttp.WriteJSON(w, http.StatusOK, response)
}

// UploadHeroImage accepts a multipart form with an "image" file part and
// optional "title", "subtitle", "link_url", "position", and "active" fields.
func (h *HeroImageHandler) UploadHeroImage(w http.ResponseWriter, r *http.Request) {
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

	created, err := h.service.CreateHeroImage(r.Context(), &models.HeroImage{
		Path:     path,
		Title:    r.FormValue("title"),
		Subtitle: r.FormValue("subtitle"),
		LinkURL:  r.FormValue("link_url"),
		Position: position,
		Active:   r.FormValue("active") != "false",
	})
	if err != nil {
		// Don't leave the stored file orphaned when creation fails
		_ = h.files.Remove(path)
		writeCatalogError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, heroImageModelToResponse(created))
}

func (h *HeroImageHandler) UpdateHeroImage(w http.ResponseWriter, r *http.Request) {
	var req HeroImageUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	updated, err := h.service.UpdateHeroImage(r.Context(), chi.URLParam(r, "id"), &models.HeroImage{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		LinkURL:  req.LinkURL,
		Position: req.Position,
		Active:   req.Active,
	})
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, heroImageModelToResponse(updated))
}

func (h *HeroImageHandler) DeleteHeroImage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteHeroImage(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeCatalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
