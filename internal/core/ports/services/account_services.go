package services

import (
	"context"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts.
type AccountReaderSvc interface {
	GetAccountByID(ctx context.Context, workplaceID, accountID, requestingUserID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, workplaceID, requestingUserID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts.
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, workplaceID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, workplaceID, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, workplaceID, accountID, requestingUserID string) error
}

// AccountSvcFacade combines all account service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
