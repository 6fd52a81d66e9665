package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portsrepo "github.com/bizdesk/bizdesk_backend/internal/core/ports/repositories"
	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/bizdesk/bizdesk_backend/internal/platform/events"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const accountsTable = "accounts"

type accountService struct {
	BaseService
	repo     portsrepo.AccountRepositoryFacade
	notifier events.Notifier
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, workplaceAuthorizer portssvc.WorkplaceAuthorizerSvc, notifier events.Notifier) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: BaseService{WorkplaceAuthorizer: workplaceAuthorizer},
		repo:        repo,
		notifier:    notifier,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, workplaceID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		WorkplaceID:     workplaceID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		CurrencyCode:    req.CurrencyCode,
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		IsActive:        true,
		Balance:         decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.repo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", req.Code))
		return nil, err
	}

	s.notifier.Publish(ctx, domain.ChangeEvent{
		Table:       accountsTable,
		Action:      domain.ActionInsert,
		EntityID:    account.AccountID,
		WorkplaceID: workplaceID,
	})
	return &account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, workplaceID, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	account, err := s.repo.FindAccountByID(ctx, workplaceID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = requestingUserID

	if err := s.repo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.notifier.Publish(ctx, domain.ChangeEvent{
		Table:       accountsTable,
		Action:      domain.ActionUpdate,
		EntityID:    accountID,
		WorkplaceID: workplaceID,
	})
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, workplaceID, accountID, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, workplaceID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.repo.DeactivateAccount(ctx, workplaceID, accountID, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}

	s.notifier.Publish(ctx, domain.ChangeEvent{
		Table:       accountsTable,
		Action:      domain.ActionUpdate,
		EntityID:    accountID,
		WorkplaceID: workplaceID,
	})
	return nil
}

func (s *accountService) GetAccountByID(ctx context.Context, workplaceID, accountID, requestingUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.FindAccountByID(ctx, workplaceID, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, workplaceID, requestingUserID string) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.ListAccounts(ctx, workplaceID)
}
