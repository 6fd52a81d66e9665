package services

// ServiceContainer holds instances of all the application services. It is the
// main entry point for accessing service functionality, particularly in the
// handlers.
type ServiceContainer struct {
	User        UserSvcFacade
	Token       TokenSvcFacade
	GoogleOAuth GoogleOAuthSvcFacade
	Workplace   WorkplaceSvcFacade
	Account     AccountSvcFacade
	Ledger      LedgerSvcFacade
	Billing     BillingSvcFacade
	Fleet       FleetSvcFacade
	Catalog     CatalogSvcFacade
	Org         OrgSvcFacade
	Extraction  ExtractionSvc
}
