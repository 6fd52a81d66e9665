package pgsql

import (
	portsrepo "github.com/bizdesk/bizdesk_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	billingRepo := newPgxBillingRepository(dbPool)
	fleetRepo := newPgxFleetRepository(dbPool)
	catalogRepo := newPgxCatalogRepository(dbPool)
	orgRepo := newPgxOrgRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	workplaceRepo := newPgxWorkplaceRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		LedgerRepo:    ledgerRepo,
		BillingRepo:   billingRepo,
		FleetRepo:     fleetRepo,
		CatalogRepo:   catalogRepo,
		OrgRepo:       orgRepo,
		UserRepo:      userRepo,
		WorkplaceRepo: workplaceRepo,
	}
}
