package repositories

import (
	"context"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
)

// WorkplaceReader defines read operations for workplace data.
type WorkplaceReader interface {
	FindWorkplaceByID(ctx context.Context, workplaceID string) (*domain.Workplace, error)
	ListWorkplacesByUser(ctx context.Context, userID string, includeDisabled bool) ([]domain.Workplace, error)
	ListWorkplaceUsers(ctx context.Context, workplaceID string) ([]domain.UserWorkplace, error)
	// FindUserWorkplaceRole returns the caller's role in a workplace, or
	// ErrNotFound if the user is not a member.
	FindUserWorkplaceRole(ctx context.Context, userID, workplaceID string) (domain.UserWorkplaceRole, error)
}

// WorkplaceWriter defines write operations for workplace data.
type WorkplaceWriter interface {
	SaveWorkplace(ctx context.Context, workplace domain.Workplace, creatorMembership domain.UserWorkplace) error
	SetWorkplaceActive(ctx context.Context, workplaceID string, active bool, updatedBy string) error
	UpsertUserWorkplace(ctx context.Context, membership domain.UserWorkplace) error
}

// WorkplaceRepositoryFacade combines all workplace repository interfaces.
type WorkplaceRepositoryFacade interface {
	WorkplaceReader
	WorkplaceWriter
}
