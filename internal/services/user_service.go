package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mhollis/vitrine/internal/models"
	pkgauth "github.com/mhollis/vitrine/pkg/auth"
	pkglogger "github.com/mhollis/vitrine/pkg/logger"
)

// UserAdminRepository defines the full user storage surface for account management
type UserAdminRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id string, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// SessionRevoker invalidates all sessions for a user
type SessionRevoker interface {
	DeleteByUserID(ctx context.Context, userID string) error
}

// UserUpdate carries the mutable account fields. Empty strings mean "leave unchanged".
type UserUpdate struct {
	Username string
	Password string
	Role     string
}

// UserService handles dashboard account management. All operations take the
// acting user so the protected-account rule can be enforced: the bootstrap
// account may only be modified by itself and may never be deleted or demoted.
type UserService struct {
	repo        UserAdminRepository
	sessions    SessionRevoker
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

func NewUserService(repo UserAdminRepository, sessions SessionRevoker, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *UserService {
	return &UserService{
		repo:        repo,
		sessions:    sessions,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) CreateUser(ctx context.Context, actor *models.User, username, password, role string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, models.ErrBadRequest
	}

	// Nobody creates a second copy of the protected account
	if username == models.ProtectedUsername {
		return nil, models.ErrConflict
	}

	if err := pkgauth.ValidatePassword(password); err != nil {
		return nil, err
	}

	hashedPassword, err := pkgauth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.auditLogger.LogAccountAction("user_created", actor.ID, created.ID)
	return created, nil
}

func (s *UserService) UpdateUser(ctx context.Context, actor *models.User, id string, update UserUpdate) (*models.User, error) {
	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The protected account may only be modified by itself, and its role and
	// username are fixed even then.
	if target.IsProtected() {
		if actor.ID != target.ID {
			return nil, models.ErrProtectedAccount
		}
		if update.Role != "" && update.Role != target.Role {
			return nil, models.ErrProtectedAccount
		}
		if update.Username != "" && update.Username != target.Username {
			return nil, models.ErrProtectedAccount
		}
	}

	// Renaming any account to the protected username is impersonation
	if update.Username != "" {
		update.Username = strings.ToLower(strings.TrimSpace(update.Username))
		if update.Username == models.ProtectedUsername && !target.IsProtected() {
			return nil, models.ErrProtectedAccount
		}
	}

	fields := &models.User{
		Username: update.Username,
		Role:     update.Role,
	}

	passwordChanged := false
	if update.Password != "" {
		if err := pkgauth.ValidatePassword(update.Password); err != nil {
			return nil, err
		}
		hashed, err := pkgauth.HashPassword(update.Password)
		if err != nil {
			s.logger.Error("failed to hash password", slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		fields.PasswordHash = hashed
		passwordChanged = true
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrConflict) {
			return nil, err
		}
		s.logger.Error("failed to update user", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	// A password change kills every live session for the account
	if passwordChanged {
		if err := s.sessions.DeleteByUserID(ctx, id); err != nil {
			s.logger.Error("failed to revoke sessions after password change",
				slog.String("user_id", id), slog.Any("error", err))
		}
	}

	s.auditLogger.LogAccountAction("user_updated", actor.ID, id)
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, actor *models.User, id string) error {
	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// The protected account cannot be deleted by anyone, itself included
	if target.IsProtected() {
		return models.ErrProtectedAccount
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete user", slog.String("user_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	// Sessions cascade with the user row, but revoke explicitly anyway in
	// case the delete and session stores ever diverge
	if err := s.sessions.DeleteByUserID(ctx, id); err != nil {
		s.logger.Error("failed to revoke sessions for deleted user",
			slog.String("user_id", id), slog.Any("error", err))
	}

	s.auditLogger.LogAccountAction("user_deleted", actor.ID, id)
	return nil
}
