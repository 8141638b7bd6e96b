package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mhollis/vitrine/internal/models"
	pkghttp "github.com/mhollis/vitrine/pkg/http"
)

// ContactServiceInterface defines the interface for contact form logic
type ContactServiceInterface interface {
	Submit(ctx context.Context, request *models.ContactRequest) (*models.ContactRequest, error)
	List(ctx context.Context, limit, offset int) ([]*models.ContactRequest, error)
	Delete(ctx context.Context, id string) error
}

// ContactHandler handles contact form HTTP requests
type ContactHandler struct {
	service ContactServiceInterface
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(service ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// ContactSubmitRequest represents the public contact form body
type ContactSubmitRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=128"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
	Message string `json:"message" validate:"required,min=1,max=4096"`
}

// ContactResponse represents a stored contact request in the HTTP response
type ContactResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

func contactModelToResponse(request *models.ContactRequest) *ContactResponse {
	return &ContactResponse{
		ID:        request.ID,
		Name:      request.Name,
		Email:     request.Email,
		Phone:     request.Phone,
		Message:   request.Message,
		CreatedAt: request.CreatedAt.Format(time.RFC3339),
	}
}

// RegisterAdminRoutes registers the dashboard inbox routes
func (h *ContactHandler) RegisterAdminRoutes(router chi.Router) {
	router.Route("/contact-requests", func(r chi.Router) {
		r.Get("/", h.ListContactRequests)
		r.Delete("/{id}", h.DeleteContactRequest)
	})
}

// Submit accepts a public contact form submission
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	created, err := h.service.Submit(r.Context(), &models.ContactRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, contactModelToResponse(created))
}

// ListContactRequests lists submissions newest first, with limit/offset paging
func (h *ContactHandler) ListContactRequests(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	requests, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	response := make([]*ContactResponse, len(requests))
	for i, request := range requests {
		response[i] = contactModelToResponse(request)
	}
	pkghttp.WriteJSON(w, http.StatusOK, response)
}

func (h *ContactHandler) DeleteContactRequest(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Contact request not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
