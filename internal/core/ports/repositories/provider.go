package repositories

// RepositoryProvider bundles the repository facades for injection into the
// service layer.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	LedgerRepo    LedgerRepositoryFacade
	BillingRepo   BillingRepositoryFacade
	FleetRepo     FleetRepositoryFacade
	CatalogRepo   CatalogRepositoryFacade
	OrgRepo       OrgRepositoryFacade
	UserRepo      UserRepositoryFacade
	WorkplaceRepo WorkplaceRepositoryFacade
}
