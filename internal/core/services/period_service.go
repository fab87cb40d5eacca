package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizsuite/gl_engine/internal/apperrors"
	"github.com/bizsuite/gl_engine/internal/core/domain"
	portsrepo "github.com/bizsuite/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/gl_engine/internal/core/ports/services"
	"github.com/bizsuite/gl_engine/internal/middleware"
)

// ErrOutsideOpenPeriod is returned when a tenant has accounting periods
// configured but none of the OPEN ones contains the transaction date.
var ErrOutsideOpenPeriod = errors.New("transaction date does not fall within an open accounting period")

type periodService struct {
	periodRepo portsrepo.PeriodRepositoryFacade
}

// NewPeriodService creates a new PeriodSvcFacade.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo}
}

// Ensure periodService implements the portssvc.PeriodSvcFacade interface
var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// ResolveOpenPeriod returns the OPEN period containing the date.
// Implements portssvc.PeriodSvcFacade
func (s *periodService) ResolveOpenPeriod(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	if tenantID == "" {
		return nil, apperrors.ErrNoActiveTenant
	}
	return s.periodRepo.FindOpenPeriodForDate(ctx, tenantID, date)
}

// AnyPeriodsExist reports whether the tenant uses period control at all.
// Implements portssvc.PeriodSvcFacade
func (s *periodService) AnyPeriodsExist(ctx context.Context, tenantID string) (bool, error) {
	count, err := s.periodRepo.CountPeriods(ctx, tenantID)
	if err != nil {
		return false, fmt.Errorf("failed to count accounting periods: %w", err)
	}
	return count > 0, nil
}

// EnsurePostable checks whether a journal dated on the given day may be
// posted. Tenants without configured periods are default-open; tenants with
// periods require an OPEN one containing the date.
// Implements portssvc.PeriodSvcFacade
func (s *periodService) EnsurePostable(ctx context.Context, tenantID string, date time.Time) error {
	if tenantID == "" {
		return apperrors.ErrNoActiveTenant
	}

	_, err := s.periodRepo.FindOpenPeriodForDate(ctx, tenantID, date)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to resolve accounting period: %w", err)
	}

	exists, err := s.AnyPeriodsExist(ctx, tenantID)
	if err != nil {
		return err
	}
	if !exists {
		// Period control is not in use for this tenant.
		return nil
	}

	middleware.GetLoggerFromCtx(ctx).Warn("Posting denied outside open period",
		slog.String("tenant_id", tenantID),
		slog.Time("transaction_date", date))
	return fmt.Errorf("%w: %s", ErrOutsideOpenPeriod, date.Format("2006-01-02"))
}
