package services

import (
	"context"
	"time"

	"github.com/bizsuite/gl_engine/internal/core/domain"
)

// PeriodSvcFacade implements period control. The two-query design is
// deliberate: a tenant with no periods configured has period control
// bypassed (default-open), while a tenant with periods but none open for a
// date is denied. The two situations have opposite defaults.
type PeriodSvcFacade interface {
	// ResolveOpenPeriod returns the OPEN period containing the date, or
	// apperrors.ErrNotFound if none matches.
	ResolveOpenPeriod(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error)

	// AnyPeriodsExist reports whether the tenant has configured periods at all.
	AnyPeriodsExist(ctx context.Context, tenantID string) (bool, error)

	// EnsurePostable combines both checks: nil when posting on the date is
	// allowed, ErrOutsideOpenPeriod when periods exist but none is open for it.
	EnsurePostable(ctx context.Context, tenantID string, date time.Time) error
}
