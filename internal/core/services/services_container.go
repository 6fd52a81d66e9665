package services

import (
	"github.com/bizdesk/bizdesk_backend/internal/core/ports/repositories"
	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/platform/cache"
	"github.com/bizdesk/bizdesk_backend/internal/platform/events"
	"github.com/bizdesk/bizdesk_backend/pkg/config"
	"github.com/bsm/redislock"
)

// NewServiceContainer wires the repositories, event hub and platform clients
// into a full service container. entityCache and locker may be nil when redis
// is not configured.
func NewServiceContainer(
	repos repositories.RepositoryProvider,
	notifier events.Notifier,
	entityCache *cache.EntityCache,
	locker *redislock.Client,
	cfg *config.Config,
) *portssvc.ServiceContainer {
	userSvc := NewUserService(repos.UserRepo)
	workplaceSvc := NewWorkplaceService(repos.WorkplaceRepo, repos.UserRepo)

	return &portssvc.ServiceContainer{
		User:        userSvc,
		Token:       NewTokenService(userSvc, cfg),
		GoogleOAuth: NewGoogleOAuthService(cfg),
		Workplace:   workplaceSvc,
		Account:     NewAccountService(repos.AccountRepo, workplaceSvc, notifier),
		Ledger:      NewLedgerService(repos.LedgerRepo, workplaceSvc, notifier, entityCache, locker),
		Billing:     NewBillingService(repos.BillingRepo, workplaceSvc, notifier),
		Fleet:       NewFleetService(repos.FleetRepo, workplaceSvc, notifier),
		Catalog:     NewCatalogService(repos.CatalogRepo, workplaceSvc, notifier),
		Org:         NewOrgService(repos.OrgRepo, workplaceSvc, notifier),
		Extraction:  NewExtractionService(cfg),
	}
}
