package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Journal JournalSvcFacade
	Account AccountSvcFacade
	Period  PeriodSvcFacade
	Balance BalanceSvcFacade
	Posting PostingSvcFacade
}
