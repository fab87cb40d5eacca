package repositories

import (
	"context"
	"time"

	"github.com/bizsuite/gl_engine/internal/core/domain"
)

// PeriodReader defines read operations for accounting period data. Periods
// are owned by the periods subsystem; the engine only consults them.
type PeriodReader interface {
	// FindOpenPeriodForDate retrieves the OPEN period containing the given
	// date for a tenant, or apperrors.ErrNotFound if none matches.
	FindOpenPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error)

	// CountPeriods returns how many periods the tenant has configured at all,
	// regardless of status. Zero means period control is not in use.
	CountPeriods(ctx context.Context, tenantID string) (int64, error)
}

// PeriodRepositoryFacade combines all period-related repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
}
