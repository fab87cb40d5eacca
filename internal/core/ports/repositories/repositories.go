package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// container at startup.
type RepositoryProvider struct {
	JournalRepo JournalRepositoryWithTx
	AccountRepo AccountRepositoryFacade
	PeriodRepo  PeriodRepositoryFacade
}
