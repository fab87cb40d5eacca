package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the lifecycle state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
	Voided JournalStatus = "VOIDED"
)

// JournalSource identifies the subsystem that originated a journal.
type JournalSource string

const (
	SourceManual  JournalSource = "MANUAL"
	SourceInvoice JournalSource = "INVOICE"
	SourceBill    JournalSource = "BILL"
)

// Journal represents a single double-entry transaction header.
// Once POSTED a journal is immutable except for the one-way VOIDED transition;
// any correction to posted history must be a new journal.
type Journal struct {
	JournalID       string        `json:"journalID"` // Primary key (UUID)
	TenantID        string        `json:"tenantID"`
	JournalNumber   string        `json:"journalNumber"` // JE-<year>-<6 digit seq>, unique per tenant
	TransactionDate time.Time     `json:"transactionDate"`
	PostingDate     *time.Time    `json:"postingDate,omitempty"` // Stamped on posting
	Description     string        `json:"description"`
	Source          JournalSource `json:"source"`
	SourceRef       string        `json:"sourceRef,omitempty"` // Originating document reference, empty for manual entries
	Status          JournalStatus `json:"status"`
	PostedBy        string        `json:"postedBy,omitempty"`
	VoidedBy        string        `json:"voidedBy,omitempty"`
	VoidedAt        *time.Time    `json:"voidedAt,omitempty"`
	Lines           []JournalLine `json:"lines,omitempty"` // Often loaded separately
	AuditFields
}

// IsMutable reports whether the journal may still be edited or deleted.
func (j *Journal) IsMutable() bool {
	return j.Status == Draft
}

// JournalLine is one debit-or-credit leg of a journal. The engine enforces
// the aggregate balance across lines, not per-line debit/credit exclusivity.
type JournalLine struct {
	LineID      string          `json:"lineID"` // Primary key (UUID)
	JournalID   string          `json:"journalID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`  // >= 0
	Credit      decimal.Decimal `json:"credit"` // >= 0
	Description string          `json:"description"`
	AuditFields
}

// DistinctAccountIDs returns the unique account IDs referenced by lines,
// preserving first-seen order.
func DistinctAccountIDs(lines []JournalLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		ids = append(ids, line.AccountID)
	}
	return ids
}
