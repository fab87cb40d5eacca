package repositories

import (
	"context"
	"time"

	"github.com/bizsuite/gl_engine/internal/core/domain"
)

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindJournalBySourceRef retrieves the journal created for a source
	// document, if one exists. Used for posting idempotency.
	FindJournalBySourceRef(ctx context.Context, tenantID string, source domain.JournalSource, sourceRef string) (*domain.Journal, error)

	// ListJournalsByTenant retrieves a paginated list of journals for a tenant
	// using token-based pagination. It returns the journals, a token for the
	// next page, and an error.
	ListJournalsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Journal, *string, error)
}

// JournalWriter defines write operations for journal data.
type JournalWriter interface {
	// SaveJournal persists a journal header and all of its lines atomically,
	// allocating the next sequential journal number for the tenant/year inside
	// the same transaction. Returns the allocated journal number.
	SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) (string, error)

	// ReplaceJournal updates the journal header and replaces its entire line
	// set (delete-and-reinsert) in one transaction.
	ReplaceJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error

	// MarkJournalPosted flips a DRAFT journal to POSTED, stamping the posting
	// date and actor. Fails if the journal is no longer a draft.
	MarkJournalPosted(ctx context.Context, journalID string, postedBy string, postingDate time.Time) error

	// MarkJournalVoided flips a POSTED journal to VOIDED, stamping the void
	// time and actor. Fails if the journal is not posted.
	MarkJournalVoided(ctx context.Context, journalID string, voidedBy string, voidedAt time.Time) error

	// DeleteJournal removes a journal's lines and header in one transaction.
	DeleteJournal(ctx context.Context, journalID string) error
}

// JournalLineReader defines read operations for journal line data.
type JournalLineReader interface {
	// FindLinesByJournalID retrieves all lines of a single journal.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// FindLinesByJournalIDs retrieves lines for multiple journals, grouped by
	// journal ID.
	FindLinesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalLine, error)

	// ListPostedLinesByAccountID retrieves a paginated list of posted lines
	// for an account using token-based pagination.
	ListPostedLinesByAccountID(ctx context.Context, tenantID, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	JournalLineReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
