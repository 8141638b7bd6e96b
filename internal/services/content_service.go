package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mhollis/vitrine/internal/models"
)

// HeroImageRepository defines the storage operations for hero banners
type HeroImageRepository interface {
	GetByID(ctx context.Context, id string) (*models.HeroImage, error)
	List(ctx context.Context, activeOnly bool) ([]*models.HeroImage, error)
	Create(ctx context.Context, image *models.HeroImage) (*models.HeroImage, error)
	Update(ctx context.Context, id string, image *models.HeroImage) (*models.HeroImage, error)
	Delete(ctx context.Context, id string) error
}

// SettingRepository defines the storage operations for site settings
type SettingRepository interface {
	Get(ctx context.Context, key string) (*models.Setting, error)
	List(ctx context.Context) ([]*models.Setting, error)
	Upsert(ctx context.Context, key, value string) (*models.Setting, error)
	Delete(ctx context.Context, key string) error
}

// ContentService handles hero banners and site settings
type ContentService struct {
	heroes   HeroImageRepository
	settings SettingRepository
	files    FileRemover
	logger   *slog.Logger
}

func NewContentService(heroes HeroImageRepository, settings SettingRepository, files FileRemover, logger *slog.Logger) *ContentService {
	return &ContentService{
		heroes:   heroes,
		settings: settings,
		files:    files,
		logger:   logger,
	}
}

// Hero images

func (s *ContentService) ListHeroImages(ctx context.Context, activeOnly bool) ([]*models.HeroImage, error) {
	return s.heroes.List(ctx, activeOnly)
}

func (s *ContentService) CreateHeroImage(ctx context.Context, image *models.HeroImage) (*models.HeroImage, error) {
	created, err := s.heroes.Create(ctx, image)
	if err != nil {
		s.logger.Error("failed to create hero image", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return created, nil
}

func (s *ContentService) UpdateHeroImage(ctx context.Context, id string, image *models.HeroImage) (*models.HeroImage, error) {
	updated, err := s.heroes.Update(ctx, id, image)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to update hero image", slog.String("hero_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return updated, nil
}

func (s *ContentService) DeleteHeroImage(ctx context.Context, id string) error {
	image, err := s.heroes.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.heroes.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.files.Remove(image.Path); err != nil {
		s.logger.Error("failed to remove hero image file", slog.String("path", image.Path), slog.Any("error", err))
	}

	return nil
}

// Settings

// GetSettings returns all site settings as a flat key/value map.
func (s *ContentService) GetSettings(ctx context.Context) (map[string]string, error) {
	settings, err := s.settings.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(settings))
	for _, setting := range settings {
		out[setting.Key] = setting.Value
	}
	return out, nil
}

// UpdateSettings upserts every entry in the given map and returns the full
// settings map afterwards.
func (s *ContentService) UpdateSettings(ctx context.Context, values map[string]string) (map[string]string, error) {
	for key, value := range values {
		if key == "" {
			return nil, models.ErrBadRequest
		}
		if _, err := s.settings.Upsert(ctx, key, value); err != nil {
			s.logger.Error("failed to upsert setting", slog.String("key", key), slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
	}

	return s.GetSettings(ctx)
}
