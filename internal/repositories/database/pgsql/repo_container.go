package pgsql

import (
	portsrepo "github.com/bizsuite/gl_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	journalRepo := newPgxJournalRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	periodRepo := newPgxPeriodRepository(dbPool)

	return &portsrepo.RepositoryProvider{
		JournalRepo: journalRepo,
		AccountRepo: accountRepo,
		PeriodRepo:  periodRepo,
	}
}
