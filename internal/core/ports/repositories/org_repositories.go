package repositories

import (
	"context"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
)

// DivisionRepository defines persistence for divisions.
type DivisionRepository interface {
	FindDivisionByID(ctx context.Context, workplaceID, divisionID string) (*domain.Division, error)
	ListDivisions(ctx context.Context, workplaceID string) ([]domain.Division, error)
	SaveDivision(ctx context.Context, division domain.Division) error
	UpdateDivision(ctx context.Context, division domain.Division) error
	DeleteDivision(ctx context.Context, workplaceID, divisionID string) error
}

// ContractRepository defines persistence for contracts.
type ContractRepository interface {
	FindContractByID(ctx context.Context, workplaceID, contractID string) (*domain.Contract, error)
	ListContracts(ctx context.Context, workplaceID string) ([]domain.Contract, error)
	SaveContract(ctx context.Context, contract domain.Contract) error
	UpdateContract(ctx context.Context, contract domain.Contract) error
	DeleteContract(ctx context.Context, workplaceID, contractID string) error
}

// OrgRepositoryFacade combines the division and contract repositories.
type OrgRepositoryFacade interface {
	DivisionRepository
	ContractRepository
}
