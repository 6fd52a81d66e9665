package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/apperrors"
	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portsrepo "github.com/bizdesk/bizdesk_backend/internal/core/ports/repositories"
	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/bizdesk/bizdesk_backend/internal/platform/events"
	"github.com/google/uuid"
)

const (
	divisionsTable = "divisions"
	contractsTable = "contracts"
)

type orgService struct {
	BaseService
	repo     portsrepo.OrgRepositoryFacade
	notifier events.Notifier
}

// NewOrgService creates the service covering divisions and contracts.
func NewOrgService(repo portsrepo.OrgRepositoryFacade, workplaceAuthorizer portssvc.WorkplaceAuthorizerSvc, notifier events.Notifier) portssvc.OrgSvcFacade {
	return &orgService{
		BaseService: BaseService{WorkplaceAuthorizer: workplaceAuthorizer},
		repo:        repo,
		notifier:    notifier,
	}
}

var _ portssvc.OrgSvcFacade = (*orgService)(nil)

func (s *orgService) publish(ctx context.Context, table string, action domain.ChangeAction, entityID, workplaceID string) {
	s.notifier.Publish(ctx, domain.ChangeEvent{
		Table:       table,
		Action:      action,
		EntityID:    entityID,
		WorkplaceID: workplaceID,
	})
}

// --- Divisions ---

func (s *orgService) CreateDivision(ctx context.Context, workplaceID string, req dto.CreateDivisionRequest, userID string) (*domain.Division, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	division := domain.Division{
		DivisionID:  uuid.NewString(),
		WorkplaceID: workplaceID,
		Name:        req.Name,
		Description: req.Description,
		ManagerName: req.ManagerName,
		AuditFields: newAudit(userID, now),
	}
	if err := s.repo.SaveDivision(ctx, division); err != nil {
		s.LogError(ctx, err, "Failed to save division", slog.String("name", req.Name))
		return nil, err
	}
	s.publish(ctx, divisionsTable, domain.ActionInsert, division.DivisionID, workplaceID)
	return &division, nil
}

func (s *orgService) UpdateDivision(ctx context.Context, workplaceID, divisionID string, req dto.UpdateDivisionRequest, userID string) (*domain.Division, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	division, err := s.repo.FindDivisionByID(ctx, workplaceID, divisionID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		division.Name = *req.Name
	}
	if req.Description != nil {
		division.Description = *req.Description
	}
	if req.ManagerName != nil {
		division.ManagerName = *req.ManagerName
	}
	division.LastUpdatedAt = time.Now().UTC()
	division.LastUpdatedBy = userID

	if err := s.repo.UpdateDivision(ctx, *division); err != nil {
		s.LogError(ctx, err, "Failed to update division", slog.String("division_id", divisionID))
		return nil, err
	}
	s.publish(ctx, divisionsTable, domain.ActionUpdate, divisionID, workplaceID)
	return division, nil
}

func (s *orgService) DeleteDivision(ctx context.Context, workplaceID, divisionID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return err
	}
	if err := s.repo.DeleteDivision(ctx, workplaceID, divisionID); err != nil {
		return err
	}
	s.publish(ctx, divisionsTable, domain.ActionDelete, divisionID, workplaceID)
	return nil
}

func (s *orgService) GetDivisionByID(ctx context.Context, workplaceID, divisionID, userID string) (*domain.Division, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.FindDivisionByID(ctx, workplaceID, divisionID)
}

func (s *orgService) ListDivisions(ctx context.Context, workplaceID, userID string) ([]domain.Division, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.ListDivisions(ctx, workplaceID)
}

// --- Contracts ---

func (s *orgService) CreateContract(ctx context.Context, workplaceID string, req dto.CreateContractRequest, userID string) (*domain.Contract, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.EndsAt.Before(req.StartsAt) {
		return nil, apperrors.NewAppError(400, "contract must end after it starts", apperrors.ErrValidation)
	}
	if req.Value.IsNegative() {
		return nil, apperrors.NewAppError(400, "contract value must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	contract := domain.Contract{
		ContractID:    uuid.NewString(),
		WorkplaceID:   workplaceID,
		DivisionID:    req.DivisionID,
		PartyName:     req.PartyName,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
		Value:         req.Value,
		Status:        domain.ContractDraft,
		PaymentTermID: req.PaymentTermID,
		AuditFields:   newAudit(userID, now),
	}
	if err := s.repo.SaveContract(ctx, contract); err != nil {
		s.LogError(ctx, err, "Failed to save contract", slog.String("party", req.PartyName))
		return nil, err
	}
	s.publish(ctx, contractsTable, domain.ActionInsert, contract.ContractID, workplaceID)
	return &contract, nil
}

func (s *orgService) UpdateContract(ctx context.Context, workplaceID, contractID string, req dto.UpdateContractRequest, userID string) (*domain.Contract, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	contract, err := s.repo.FindContractByID(ctx, workplaceID, contractID)
	if err != nil {
		return nil, err
	}
	if req.PartyName != nil {
		contract.PartyName = *req.PartyName
	}
	if req.EndsAt != nil {
		contract.EndsAt = *req.EndsAt
	}
	if req.Value != nil {
		if req.Value.IsNegative() {
			return nil, apperrors.NewAppError(400, "contract value must not be negative", apperrors.ErrValidation)
		}
		contract.Value = *req.Value
	}
	if req.Status != nil {
		contract.Status = *req.Status
	}
	if req.PaymentTermID != nil {
		contract.PaymentTermID = *req.PaymentTermID
	}
	if contract.EndsAt.Before(contract.StartsAt) {
		return nil, apperrors.NewAppError(400, "contract must end after it starts", apperrors.ErrValidation)
	}
	contract.LastUpdatedAt = time.Now().UTC()
	contract.LastUpdatedBy = userID

	if err := s.repo.UpdateContract(ctx, *contract); err != nil {
		s.LogError(ctx, err, "Failed to update contract", slog.String("contract_id", contractID))
		return nil, err
	}
	s.publish(ctx, contractsTable, domain.ActionUpdate, contractID, workplaceID)
	return contract, nil
}

func (s *orgService) DeleteContract(ctx context.Context, workplaceID, contractID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return err
	}
	if err := s.repo.DeleteContract(ctx, workplaceID, contractID); err != nil {
		return err
	}
	s.publish(ctx, contractsTable, domain.ActionDelete, contractID, workplaceID)
	return nil
}

func (s *orgService) GetContractByID(ctx context.Context, workplaceID, contractID, userID string) (*domain.Contract, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.FindContractByID(ctx, workplaceID, contractID)
}

func (s *orgService) ListContracts(ctx context.Context, workplaceID, userID string) ([]domain.Contract, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.ListContracts(ctx, workplaceID)
}
