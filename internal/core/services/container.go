package services

import (
	portsrepo "github.com/bizsuite/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/gl_engine/internal/core/ports/services"
)

// NewServiceContainer wires the service layer from the repository provider.
// recalcConcurrency bounds the balance recalculation fan-out.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, invalidator portssvc.CacheInvalidator, recalcConcurrency int) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.AccountRepo)
	periodSvc := NewPeriodService(repos.PeriodRepo)
	balanceSvc := NewBalanceService(repos.AccountRepo, recalcConcurrency)
	journalSvc := NewJournalService(repos.JournalRepo, accountSvc, periodSvc, balanceSvc, invalidator)
	postingSvc := NewPostingService(repos.JournalRepo, journalSvc, accountSvc)

	return &portssvc.ServiceContainer{
		Journal: journalSvc,
		Account: accountSvc,
		Period:  periodSvc,
		Balance: balanceSvc,
		Posting: postingSvc,
	}
}
