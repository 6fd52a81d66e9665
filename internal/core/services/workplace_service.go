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
	"github.com/google/uuid"
)

// roleRank orders workplace roles for authorization checks. REMOVED never
// ranks; a removed membership reads as no membership at all.
var roleRank = map[domain.UserWorkplaceRole]int{
	domain.RoleReadOnly: 1,
	domain.RoleMember:   2,
	domain.RoleAdmin:    3,
}

type workplaceService struct {
	BaseService
	repo     portsrepo.WorkplaceRepositoryFacade
	userRepo portsrepo.UserReader
}

// NewWorkplaceService creates a new workplace service. It is its own
// authorizer, so the BaseService authorizer field stays nil.
func NewWorkplaceService(repo portsrepo.WorkplaceRepositoryFacade, userRepo portsrepo.UserReader) portssvc.WorkplaceSvcFacade {
	return &workplaceService{repo: repo, userRepo: userRepo}
}

var _ portssvc.WorkplaceSvcFacade = (*workplaceService)(nil)

// AuthorizeUserAction resolves the caller's stored membership role and compares
// it against the required role. Identity comes from the authenticated token,
// never from request payloads.
func (s *workplaceService) AuthorizeUserAction(ctx context.Context, userID, workplaceID string, requiredRole domain.UserWorkplaceRole) error {
	role, err := s.repo.FindUserWorkplaceRole(ctx, userID, workplaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewAppError(403, "user is not a member of this workplace", apperrors.ErrForbidden)
		}
		return err
	}
	if roleRank[role] < roleRank[requiredRole] {
		s.LogDebug(ctx, "Insufficient workplace role",
			slog.String("have", string(role)), slog.String("need", string(requiredRole)))
		return apperrors.NewAppError(403, "insufficient permissions for this workplace", apperrors.ErrForbidden)
	}
	return nil
}

func (s *workplaceService) CreateWorkplace(ctx context.Context, name, description, defaultCurrencyCode, creatorUserID string) (*domain.Workplace, error) {
	if name == "" {
		return nil, apperrors.NewAppError(400, "workplace name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	workplace := domain.Workplace{
		WorkplaceID: uuid.NewString(),
		Name:        name,
		Description: description,
		IsActive:    true,
		AuditFields: newAudit(creatorUserID, now),
	}
	if defaultCurrencyCode != "" {
		workplace.DefaultCurrencyCode = &defaultCurrencyCode
	}

	membership := domain.UserWorkplace{
		UserID:      creatorUserID,
		WorkplaceID: workplace.WorkplaceID,
		Role:        domain.RoleAdmin,
		JoinedAt:    now,
	}

	if err := s.repo.SaveWorkplace(ctx, workplace, membership); err != nil {
		s.LogError(ctx, err, "Failed to save workplace", slog.String("name", name))
		return nil, err
	}
	s.LogInfo(ctx, "Workplace created", slog.String("workplace_id", workplace.WorkplaceID))
	return &workplace, nil
}

func (s *workplaceService) DeactivateWorkplace(ctx context.Context, workplaceID string, requestingUserID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, workplaceID, domain.RoleAdmin); err != nil {
		return err
	}
	return s.repo.SetWorkplaceActive(ctx, workplaceID, false, requestingUserID)
}

func (s *workplaceService) ActivateWorkplace(ctx context.Context, workplaceID string, requestingUserID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, workplaceID, domain.RoleAdmin); err != nil {
		return err
	}
	return s.repo.SetWorkplaceActive(ctx, workplaceID, true, requestingUserID)
}

func (s *workplaceService) FindWorkplaceByID(ctx context.Context, workplaceID string) (*domain.Workplace, error) {
	return s.repo.FindWorkplaceByID(ctx, workplaceID)
}

func (s *workplaceService) ListUserWorkplaces(ctx context.Context, userID string, includeDisabled bool) ([]domain.Workplace, error) {
	return s.repo.ListWorkplacesByUser(ctx, userID, includeDisabled)
}

func (s *workplaceService) ListWorkplaceUsers(ctx context.Context, workplaceID string, requestingUserID string) ([]domain.UserWorkplace, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.ListWorkplaceUsers(ctx, workplaceID)
}

func (s *workplaceService) AddUserToWorkplace(ctx context.Context, addingUserID, targetUserID, workplaceID string, role domain.UserWorkplaceRole) error {
	if err := s.AuthorizeUserAction(ctx, addingUserID, workplaceID, domain.RoleAdmin); err != nil {
		return err
	}
	if _, ok := roleRank[role]; !ok {
		return apperrors.NewAppError(400, "invalid workplace role", apperrors.ErrValidation)
	}
	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		return err
	}

	membership := domain.UserWorkplace{
		UserID:      targetUserID,
		WorkplaceID: workplaceID,
		Role:        role,
		JoinedAt:    time.Now().UTC(),
	}
	if err := s.repo.UpsertUserWorkplace(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add user to workplace",
			slog.String("target_user_id", targetUserID), slog.String("workplace_id", workplaceID))
		return err
	}
	return nil
}

func (s *workplaceService) RemoveUserFromWorkplace(ctx context.Context, requestingUserID, targetUserID, workplaceID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, workplaceID, domain.RoleAdmin); err != nil {
		return err
	}
	if requestingUserID == targetUserID {
		return apperrors.NewAppError(409, "admins cannot remove themselves from a workplace", apperrors.ErrConflict)
	}

	membership := domain.UserWorkplace{
		UserID:      targetUserID,
		WorkplaceID: workplaceID,
		Role:        domain.RoleRemoved,
		JoinedAt:    time.Now().UTC(),
	}
	return s.repo.UpsertUserWorkplace(ctx, membership)
}

func (s *workplaceService) UpdateUserWorkplaceRole(ctx context.Context, requestingUserID, targetUserID, workplaceID string, newRole domain.UserWorkplaceRole) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, workplaceID, domain.RoleAdmin); err != nil {
		return err
	}
	if _, ok := roleRank[newRole]; !ok {
		return apperrors.NewAppError(400, "invalid workplace role", apperrors.ErrValidation)
	}
	if requestingUserID == targetUserID && newRole != domain.RoleAdmin {
		return apperrors.NewAppError(409, "admins cannot demote themselves", apperrors.ErrConflict)
	}
	if _, err := s.repo.FindUserWorkplaceRole(ctx, targetUserID, workplaceID); err != nil {
		return err
	}

	membership := domain.UserWorkplace{
		UserID:      targetUserID,
		WorkplaceID: workplaceID,
		Role:        newRole,
		JoinedAt:    time.Now().UTC(),
	}
	return s.repo.UpsertUserWorkplace(ctx, membership)
}
