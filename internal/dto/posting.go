package dto

import (
	"time"

	"github.com/bizsuite/gl_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostDocumentLineRequest is one leg of a source-document posting, addressed
// by GL account code. The calling subsystem resolves which codes apply
// (e.g. AR/Revenue for invoices, AP/Expense for bills).
type PostDocumentLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit" binding:"gte=0"`
	Credit      decimal.Decimal `json:"credit" binding:"gte=0"`
	Description string          `json:"description"`
}

// PostDocumentRequest is the contract invoicing/payables use to record a
// document's financial effect in the ledger.
type PostDocumentRequest struct {
	Source          domain.JournalSource      `json:"source" binding:"required,oneof=INVOICE BILL"`
	SourceRef       string                    `json:"sourceRef" binding:"required"` // Originating document reference
	TransactionDate time.Time                 `json:"transactionDate" binding:"required"`
	Description     string                    `json:"description" binding:"required"`
	Lines           []PostDocumentLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// PostDocumentResult reports the outcome of a posting attempt.
// AlreadyPosted is set when a journal for the same source document exists;
// no duplicate is created in that case.
type PostDocumentResult struct {
	Posted        bool   `json:"posted"`
	AlreadyPosted bool   `json:"alreadyPosted,omitempty"`
	JournalID     string `json:"journalID,omitempty"`
	JournalNumber string `json:"journalNumber,omitempty"`
}
