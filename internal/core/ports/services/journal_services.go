package services

import (
	"context"

	"github.com/bizsuite/gl_engine/internal/core/domain"
	"github.com/bizsuite/gl_engine/internal/dto"
)

// JournalReaderSvc defines read operations for journal data.
type JournalReaderSvc interface {
	// GetJournalByID retrieves a journal with its lines, tenant-scoped.
	GetJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals for a tenant.
	ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines lifecycle operations for journal data.
type JournalWriterSvc interface {
	// CreateJournal validates balance and persists a new journal with its
	// lines, allocating the next journal number for the tenant/year.
	CreateJournal(ctx context.Context, tenantID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error)

	// UpdateJournal replaces a draft journal's header and entire line set.
	UpdateJournal(ctx context.Context, tenantID string, journalID string, req dto.UpdateJournalRequest, requestingUserID string) (*domain.Journal, error)

	// PostJournal transitions a draft journal to POSTED, enforcing period
	// control and recalculating the balances of all touched accounts.
	PostJournal(ctx context.Context, tenantID string, journalID string, postedByUserID string) (*domain.Journal, error)

	// VoidJournal transitions a posted journal to VOIDED and recalculates
	// the balances of all touched accounts.
	VoidJournal(ctx context.Context, tenantID string, journalID string, voidedByUserID string) (*domain.Journal, error)

	// DeleteJournal removes a draft journal and its lines.
	DeleteJournal(ctx context.Context, tenantID string, journalID string, requestingUserID string) error
}

// JournalLineReaderSvc defines read operations for journal line data.
type JournalLineReaderSvc interface {
	// ListLinesByAccount retrieves posted lines for a specific account.
	ListLinesByAccount(ctx context.Context, tenantID string, accountID string, params dto.ListJournalLinesParams) (*dto.ListJournalLinesResponse, error)
}

// JournalSvcFacade combines all journal-related service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalLineReaderSvc
}
