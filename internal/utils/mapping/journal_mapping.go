package mapping

import (
	"github.com/bizsuite/gl_engine/internal/core/domain"
	"github.com/bizsuite/gl_engine/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal.
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:       d.JournalID,
		TenantID:        d.TenantID,
		JournalNumber:   d.JournalNumber,
		TransactionDate: d.TransactionDate,
		PostingDate:     d.PostingDate,
		Description:     d.Description,
		Source:          string(d.Source),
		SourceRef:       d.SourceRef,
		Status:          models.JournalStatus(d.Status),
		PostedBy:        d.PostedBy,
		VoidedBy:        d.VoidedBy,
		VoidedAt:        d.VoidedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal.
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:       m.JournalID,
		TenantID:        m.TenantID,
		JournalNumber:   m.JournalNumber,
		TransactionDate: m.TransactionDate,
		PostingDate:     m.PostingDate,
		Description:     m.Description,
		Source:          domain.JournalSource(m.Source),
		SourceRef:       m.SourceRef,
		Status:          domain.JournalStatus(m.Status),
		PostedBy:        m.PostedBy,
		VoidedBy:        m.VoidedBy,
		VoidedAt:        m.VoidedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		JournalID:   d.JournalID,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		JournalID:   m.JournalID,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model lines to domain lines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
