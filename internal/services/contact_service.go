package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/mhollis/vitrine/internal/metrics"
	"github.com/mhollis/vitrine/internal/models"
	pkglogger "github.com/mhollis/vitrine/pkg/logger"
)

// ContactRequestRepository defines the storage operations for contact requests
type ContactRequestRepository interface {
	GetByID(ctx context.Context, id string) (*models.ContactRequest, error)
	List(ctx context.Context, limit, offset int) ([]*models.ContactRequest, error)
	Create(ctx context.Context, request *models.ContactRequest) (*models.ContactRequest, error)
	Delete(ctx context.Context, id string) error
}

// ContactNotifier sends the owner a notification about a new contact request
type ContactNotifier interface {
	SendContactNotification(ctx context.Context, request *models.ContactRequest) error
}

// ContactService handles the public contact form and its admin inbox
type ContactService struct {
	repo     ContactRequestRepository
	notifier ContactNotifier // nil when notifications are disabled
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewContactService(repo ContactRequestRepository, notifier ContactNotifier, logger *slog.Logger, m *metrics.Metrics) *ContactService {
	return &ContactService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		metrics:  m,
	}
}

// Submit stores a contact request and notifies the site owner. The
// notification is fire-and-forget; a delivery failure never fails the submit.
func (s *ContactService) Submit(ctx context.Context, request *models.ContactRequest) (*models.ContactRequest, error) {
	created, err := s.repo.Create(ctx, request)
	if err != nil {
		s.logger.Error("failed to store contact request", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("contact request received",
		slog.String("contact_request_id", created.ID),
		slog.String("email", pkglogger.SanitizedEmail(created.Email)))

	if s.metrics != nil {
		s.metrics.ContactRequests.Inc()
	}

	if s.notifier != nil {
		go func(cr *models.ContactRequest) {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			if err := s.notifier.SendContactNotification(notifyCtx, cr); err != nil {
				s.logger.Error("failed to send contact notification",
					slog.String("contact_request_id", cr.ID), slog.Any("error", err))
			}
		}(created)
	}

	return created, nil
}

func (s *ContactService) List(ctx context.Context, limit, offset int) ([]*models.ContactRequest, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
