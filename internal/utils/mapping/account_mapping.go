package mapping

import (
	"github.com/bizsuite/gl_engine/internal/core/domain"
	"github.com/bizsuite/gl_engine/internal/models"
)

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		TenantID:       m.TenantID,
		Code:           m.Code,
		Name:           m.Name,
		AccountType:    domain.AccountType(m.AccountType),
		CurrentBalance: m.CurrentBalance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model accounts to domain accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
