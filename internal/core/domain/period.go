package domain

import "time"

// PeriodStatus indicates whether an accounting period accepts postings.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// AccountingPeriod is a tenant-scoped date range controlling which
// transaction dates may be posted. Read-only from the engine's perspective.
type AccountingPeriod struct {
	PeriodID  string       `json:"periodID"` // Primary key (UUID)
	TenantID  string       `json:"tenantID"`
	Name      string       `json:"name"`
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Status    PeriodStatus `json:"status"`
	AuditFields
}

// Contains reports whether the given date falls inside the period's range,
// boundaries included.
func (p *AccountingPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}
