package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	pkghttp "github.com/mhollis/vitrine/pkg/http"
)

// UploadHandler handles standalone file uploads that are not attached to a
// product or hero image, for example images embedded in page content.
type UploadHandler struct {
	files FileStore
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(files FileStore) *UploadHandler {
	return &UploadHandler{files: files}
}

// UploadResponse carries the public path of a stored file
type UploadResponse struct {
	Path string `json:"path"`
}

// RegisterAdminRoutes registers the dashboard upload route
func (h *UploadHandler) RegisterAdminRoutes(router chi.Router) {
	router.Post("/uploads", h.Upload)
}

// Upload accepts a multipart form with an "image" file part
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
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

	pkghttp.WriteJSON(w, http.StatusCreated, UploadResponse{Path: path})
}
