package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/apperrors"
	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portsrepo "github.com/bizdesk/bizdesk_backend/internal/core/ports/repositories"
	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/bizdesk/bizdesk_backend/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	repo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(repo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{repo: repo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.NewAppError(500, "failed to process credentials", apperrors.ErrInternal)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.repo.SaveUser(ctx, user, passwordHash); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(409, "a user with this email already exists", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("email", req.Email))
		return nil, err
	}
	return &user, nil
}

func (s *userService) FindOrCreateOAuthUser(ctx context.Context, provider domain.AuthProvider, email, name string) (*domain.User, error) {
	existing, err := s.repo.FindUserByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         name,
		Email:        email,
		AuthProvider: provider,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	// External identities have no local password.
	if err := s.repo.SaveUser(ctx, user, ""); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race with a concurrent first login. Use the winner's row.
			return s.repo.FindUserByEmail(ctx, email)
		}
		s.LogError(ctx, err, "Failed to save oauth user", slog.String("email", email))
		return nil, err
	}
	s.LogInfo(ctx, "Created user from external identity", slog.String("provider", string(provider)))
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	if userID != requestingUserID {
		return nil, apperrors.NewAppError(403, "users may only update their own profile", apperrors.ErrForbidden)
	}

	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUserID

	if err := s.repo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if userID != requestingUserID {
		return apperrors.NewAppError(403, "users may only delete their own account", apperrors.ErrForbidden)
	}
	if err := s.repo.MarkUserDeleted(ctx, userID, requestingUserID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return err
	}
	return nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindUserByEmail(ctx, email)
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListUsers(ctx, limit, offset)
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	return s.repo.UpdateRefreshToken(ctx, userID, refreshTokenHash, expiry)
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.repo.ClearRefreshToken(ctx, userID)
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, passwordHash, err := s.repo.FindUserCredentials(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(401, "invalid email or password", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if user.AuthProvider != domain.ProviderLocal || passwordHash == "" {
		return nil, apperrors.NewAppError(401, "invalid email or password", apperrors.ErrForbidden)
	}
	if !utils.CheckPasswordHash(password, passwordHash) {
		s.LogDebug(ctx, "Password mismatch", slog.String("email", email))
		return nil, apperrors.NewAppError(401, "invalid email or password", apperrors.ErrForbidden)
	}
	return user, nil
}

func (s *userService) ValidateRefreshToken(ctx context.Context, userID, rawToken string) (*domain.User, error) {
	storedHash, expiry, err := s.repo.FindRefreshTokenDetails(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(401, "invalid refresh token", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if storedHash == "" || time.Now().After(expiry) {
		return nil, apperrors.NewAppError(401, "refresh token expired", apperrors.ErrForbidden)
	}
	if !utils.CompareRefreshTokenHash(rawToken, storedHash) {
		return nil, apperrors.NewAppError(401, "invalid refresh token", apperrors.ErrForbidden)
	}
	return s.repo.FindUserByID(ctx, userID)
}
