package models

import "time"

// PeriodStatus mirrors domain.PeriodStatus at the persistence layer.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// AccountingPeriod is the accounting_periods table row.
type AccountingPeriod struct {
	PeriodID  string       `db:"period_id"`
	TenantID  string       `db:"tenant_id"`
	Name      string       `db:"name"`
	StartDate time.Time    `db:"start_date"`
	EndDate   time.Time    `db:"end_date"`
	Status    PeriodStatus `db:"status"`
	AuditFields
}
