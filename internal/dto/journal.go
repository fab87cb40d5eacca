package dto

import (
	"time"

	"github.com/bizsuite/gl_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest is one debit-or-credit leg of a journal request.
// Amount signs are validated via the decimal custom type registration in the
// router setup, so gte tags apply to decimal fields.
type CreateJournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit" binding:"gte=0"`
	Credit      decimal.Decimal `json:"credit" binding:"gte=0"`
	Description string          `json:"description"`
}

// CreateJournalRequest defines the input for creating a journal.
// Status defaults to DRAFT; system sources (invoice/bill posting) create
// directly as POSTED, which runs period control at creation time.
type CreateJournalRequest struct {
	TransactionDate time.Time                  `json:"transactionDate" binding:"required"`
	Description     string                     `json:"description" binding:"required"`
	Source          domain.JournalSource       `json:"source" binding:"omitempty,oneof=MANUAL INVOICE BILL"`
	SourceRef       string                     `json:"sourceRef"`
	Status          domain.JournalStatus       `json:"status" binding:"omitempty,oneof=DRAFT POSTED"`
	Lines           []CreateJournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateJournalRequest replaces a draft journal's header fields and its
// entire line set. Lines are never patched individually.
type UpdateJournalRequest struct {
	TransactionDate time.Time                  `json:"transactionDate" binding:"required"`
	Description     string                     `json:"description" binding:"required"`
	Lines           []CreateJournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID       string                `json:"journalID"`
	JournalNumber   string                `json:"journalNumber"`
	TransactionDate time.Time             `json:"transactionDate"`
	PostingDate     *time.Time            `json:"postingDate,omitempty"`
	Description     string                `json:"description"`
	Source          string                `json:"source"`
	SourceRef       string                `json:"sourceRef,omitempty"`
	Status          string                `json:"status"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
	Lines           []JournalLineResponse `json:"lines,omitempty"`
}

// ListJournalsParams holds parameters for listing journals.
type ListJournalsParams struct {
	Limit        int     `form:"limit"`
	NextToken    *string `form:"nextToken"`
	IncludeLines bool    `form:"includeLines"`
}

// ListJournalsResponse is a page of journals plus the cursor for the next page.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ListJournalLinesParams holds parameters for listing posted lines by account.
type ListJournalLinesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListJournalLinesResponse is a page of lines plus the cursor for the next page.
type ListJournalLinesResponse struct {
	Lines     []JournalLineResponse `json:"lines"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalLine to its response DTO.
func ToJournalLineResponse(line *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      line.LineID,
		AccountID:   line.AccountID,
		Debit:       line.Debit,
		Credit:      line.Credit,
		Description: line.Description,
	}
}

// ToJournalLineResponses converts a slice of domain lines to response DTOs.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	responses := make([]JournalLineResponse, len(lines))
	for i := range lines {
		responses[i] = ToJournalLineResponse(&lines[i])
	}
	return responses
}

// ToJournalResponse converts a domain.Journal to its response DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:       j.JournalID,
		JournalNumber:   j.JournalNumber,
		TransactionDate: j.TransactionDate,
		PostingDate:     j.PostingDate,
		Description:     j.Description,
		Source:          string(j.Source),
		SourceRef:       j.SourceRef,
		Status:          string(j.Status),
		CreatedAt:       j.CreatedAt,
		CreatedBy:       j.CreatedBy,
	}
	if j.Lines != nil {
		resp.Lines = ToJournalLineResponses(j.Lines)
	}
	return resp
}
