package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	pkghttp "github.com/mhollis/vitrine/pkg/http"
)

// SettingsHandler handles site settings HTTP requests
type SettingsHandler struct {
	service ContentServiceInterface
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(service ContentServiceInterface) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// RegisterPublicRoutes registers the storefront settings route
func (h *SettingsHandler) RegisterPublicRoutes(router chi.Router) {
	router.Get("/settings", h.GetSettings)
}

// RegisterAdminRoutes registers the dashboard settings routes
func (h *SettingsHandler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/settings", h.GetSettings)
	router.Put("/settings", h.UpdateSettings)
}

// GetSettings returns every setting as a flat key/value object
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, settings)
}

// UpdateSettings upserts the submitted keys and returns the full settings map
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if len(values) == 0 {
		pkghttp.WriteBadRequest(w, "No settings provided")
		return
	}

	for key := range values {
		if key == "" {
			pkghttp.WriteBadRequest(w, "Setting keys must not be empty")
			return
		}
	}

	settings, err := h.service.UpdateSettings(r.Context(), values)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, settings)
}
