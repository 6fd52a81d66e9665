package repositories

import (
	"context"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts.
type AccountReader interface {
	// FindAccountByID retrieves an account by its ID within a workplace.
	FindAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its ledger code.
	FindAccountByCode(ctx context.Context, workplaceID, code string) (*domain.Account, error)

	// ListAccounts retrieves all accounts for a workplace ordered by code.
	ListAccounts(ctx context.Context, workplaceID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for the chart of accounts.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error
	// DeactivateAccount soft-deletes an account; rows referencing it remain valid.
	DeactivateAccount(ctx context.Context, workplaceID, accountID, updatedBy string) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
