package services

import (
	"context"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
)

// WorkplaceReaderSvc defines read operations for workplace data.
type WorkplaceReaderSvc interface {
	FindWorkplaceByID(ctx context.Context, workplaceID string) (*domain.Workplace, error)
	ListUserWorkplaces(ctx context.Context, userID string, includeDisabled bool) ([]domain.Workplace, error)
	ListWorkplaceUsers(ctx context.Context, workplaceID string, requestingUserID string) ([]domain.UserWorkplace, error)
}

// WorkplaceWriterSvc defines write operations for workplace data.
type WorkplaceWriterSvc interface {
	CreateWorkplace(ctx context.Context, name, description, defaultCurrencyCode, creatorUserID string) (*domain.Workplace, error)
	DeactivateWorkplace(ctx context.Context, workplaceID string, requestingUserID string) error
	ActivateWorkplace(ctx context.Context, workplaceID string, requestingUserID string) error
}

// WorkplaceMembershipSvc defines operations for managing workplace membership.
type WorkplaceMembershipSvc interface {
	AddUserToWorkplace(ctx context.Context, addingUserID, targetUserID, workplaceID string, role domain.UserWorkplaceRole) error
	RemoveUserFromWorkplace(ctx context.Context, requestingUserID, targetUserID, workplaceID string) error
	UpdateUserWorkplaceRole(ctx context.Context, requestingUserID, targetUserID, workplaceID string, newRole domain.UserWorkplaceRole) error
}

// WorkplaceAuthorizerSvc defines operations for workplace authorization.
type WorkplaceAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has required permissions for a
	// workplace. This is the storage-side ownership check every operation goes
	// through; row access is never granted on client-supplied identity alone.
	AuthorizeUserAction(ctx context.Context, userID, workplaceID string, requiredRole domain.UserWorkplaceRole) error
}

// WorkplaceSvcFacade combines all workplace-related service interfaces.
type WorkplaceSvcFacade interface {
	WorkplaceReaderSvc
	WorkplaceWriterSvc
	WorkplaceMembershipSvc
	WorkplaceAuthorizerSvc
}
