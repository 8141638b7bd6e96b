package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mhollis/vitrine/internal/uploads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadHandler_Upload(t *testing.T) {
	handler := NewUploadHandler(&mockFileStore{path: "/uploads/def.webp"})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "banner.webp")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	handler.Upload(w, req)

	var resp UploadResponse
	AssertJSONResponse(t, w, http.StatusCreated, &resp)
	assert.Equal(t, "/uploads/def.webp", resp.Path)
}

func TestUploadHandler_MissingFile(t *testing.T) {
	handler := NewUploadHandler(&mockFileStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", nil)
	w := httptest.NewRecorder()
	handler.Upload(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestUploadHandler_RejectsOversizeFile(t *testing.T) {
	handler := NewUploadHandler(&mockFileStore{err: uploads.ErrFileTooLarge})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "huge.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	handler.Upload(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}
