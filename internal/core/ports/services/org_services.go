package services

import (
	"context"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
)

// DivisionSvc defines operations for divisions.
type DivisionSvc interface {
	GetDivisionByID(ctx context.Context, workplaceID, divisionID, userID string) (*domain.Division, error)
	ListDivisions(ctx context.Context, workplaceID, userID string) ([]domain.Division, error)
	CreateDivision(ctx context.Context, workplaceID string, req dto.CreateDivisionRequest, userID string) (*domain.Division, error)
	UpdateDivision(ctx context.Context, workplaceID, divisionID string, req dto.UpdateDivisionRequest, userID string) (*domain.Division, error)
	DeleteDivision(ctx context.Context, workplaceID, divisionID, userID string) error
}

// ContractSvc defines operations for contracts.
type ContractSvc interface {
	GetContractByID(ctx context.Context, workplaceID, contractID, userID string) (*domain.Contract, error)
	ListContracts(ctx context.Context, workplaceID, userID string) ([]domain.Contract, error)
	CreateContract(ctx context.Context, workplaceID string, req dto.CreateContractRequest, userID string) (*domain.Contract, error)
	UpdateContract(ctx context.Context, workplaceID, contractID string, req dto.UpdateContractRequest, userID string) (*domain.Contract, error)
	DeleteContract(ctx context.Context, workplaceID, contractID, userID string) error
}

// OrgSvcFacade combines the division and contract services.
type OrgSvcFacade interface {
	DivisionSvc
	ContractSvc
}
