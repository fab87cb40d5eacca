package mapping

import (
	"github.com/bizsuite/gl_engine/internal/core/domain"
	"github.com/bizsuite/gl_engine/internal/models"
)

// ToDomainPeriod converts a model AccountingPeriod to a domain AccountingPeriod.
func ToDomainPeriod(m models.AccountingPeriod) domain.AccountingPeriod {
	return domain.AccountingPeriod{
		PeriodID:    m.PeriodID,
		TenantID:    m.TenantID,
		Name:        m.Name,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Status:      domain.PeriodStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
