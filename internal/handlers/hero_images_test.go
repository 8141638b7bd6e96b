package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mhollis/vitrine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockContentService struct {
	ListHeroImagesFunc  func(ctx context.Context, activeOnly bool) ([]*models.HeroImage, error)
	CreateHeroImageFunc func(ctx context.Context, image *models.HeroImage) (*models.HeroImage, error)
	UpdateHeroImageFunc func(ctx context.Context, id string, image *models.HeroImage) (*models.HeroImage, error)
	DeleteHeroImageFunc func(ctx context.Context, id string) error
	GetSettingsFunc     func(ctx context.Context) (map[string]string, error)
	UpdateSettingsFunc  func(ctx context.Context, values map[string]string) (map[string]string, error)
}

func (m *MockContentService) ListHeroImages(ctx context.Context, activeOnly bool) ([]*models.HeroImage, error) {
	return m.ListHeroImagesFunc(ctx, activeOnly)
}

func (m *MockContentService) CreateHeroImage(ctx context.Context, image *models.HeroImage) (*models.HeroImage, error) {
	return m.CreateHeroImageFunc(ctx, image)
}

func (m *MockContentService) UpdateHeroImage(ctx context.Context, id string, image *models.HeroImage) (*models.HeroImage, error) {
	return m.UpdateHeroImageFunc(ctx, id, image)
}

func (m *MockContentService) DeleteHeroImage(ctx context.Context, id string) error {
	return m.DeleteHeroImageFunc(ctx, id)
}

func (m *MockContentService) GetSettings(ctx context.Context) (map[string]string, error) {
	return m.GetSettingsFunc(ctx)
}

func (m *MockContentService) UpdateSettings(ctx context.Context, values map[string]string) (map[string]string, error) {
	return m.UpdateSettingsFunc(ctx, values)
}

func heroUploadRequest(t *testing.T) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "banner.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("title", "Summer sale"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/hero-images", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHeroImageHandler_Upload(t *testing.T) {
	service := &MockContentService{
		CreateHeroImageFunc: func(ctx context.Context, image *models.HeroImage) (*models.HeroImage, error) {
			created := *image
			created.ID = "hero-1"
			return &created, nil
		},
	}
	handler := NewHeroImageHandler(service, &mockFileStore{path: "/uploads/hero.jpg"})

	w := httptest.NewRecorder()
	handler.UploadHeroImage(w, heroUploadRequest(t))

	var resp HeroImageResponse
	AssertJSONResponse(t, w, http.StatusCreated, &resp)
	assert.Equal(t, "hero-1", resp.ID)
	assert.Equal(t, "Summer sale", resp.Title)
	assert.True(t, resp.Active)
}

func TestHeroImageHandler_UploadRemovesFileWhenCreateFails(t *testing.T) {
	service := &MockContentService{
		CreateHeroImageFunc: func(ctx context.Context, image *models.HeroImage) (*models.HeroImage, error) {
			return nil, models.ErrInternalServer
		},
	}
	files := &mockFileStore{path: "/uploads/orphan.jpg"}
	handler := NewHeroImageHandler(service, files)

	w := httptest.NewRecorder()
	handler.UploadHeroImage(w, heroUploadRequest(t))

	AssertErrorResponse(t, w, http.StatusInternalServerError, "internal_error")
	assert.Equal(t, []string{"/uploads/orphan.jpg"}, files.removed, "stored file must be cleaned up")
}
