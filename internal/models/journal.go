package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus mirrors domain.JournalStatus at the persistence layer.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
	Voided JournalStatus = "VOIDED"
)

// Journal is the journals table row.
type Journal struct {
	JournalID       string        `db:"journal_id"`
	TenantID        string        `db:"tenant_id"`
	JournalNumber   string        `db:"journal_number"`
	TransactionDate time.Time     `db:"transaction_date"`
	PostingDate     *time.Time    `db:"posting_date"` // Nullable, set on posting
	Description     string        `db:"description"`
	Source          string        `db:"source"`
	SourceRef       string        `db:"source_ref"` // Empty for manual entries
	Status          JournalStatus `db:"status"`
	PostedBy        string        `db:"posted_by"`
	VoidedBy        string        `db:"voided_by"`
	VoidedAt        *time.Time    `db:"voided_at"` // Nullable
	AuditFields
}

// JournalLine is the journal_lines table row. Lines are replaced wholesale
// when a draft journal is edited, never patched individually.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	JournalID   string          `db:"journal_id"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	AuditFields
}
