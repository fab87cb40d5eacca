package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/bizsuite/gl_engine/internal/apperrors"
	"github.com/bizsuite/gl_engine/internal/core/domain"
	portsrepo "github.com/bizsuite/gl_engine/internal/core/ports/repositories"
	"github.com/bizsuite/gl_engine/internal/models"
	"github.com/bizsuite/gl_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPeriodRepository implements portsrepo.PeriodRepositoryFacade
var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

// FindOpenPeriodForDate retrieves the OPEN period containing the given date
// for a tenant. Period boundaries are inclusive on both ends.
func (r *PgxPeriodRepository) FindOpenPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	query := `
		SELECT period_id, tenant_id, name, start_date, end_date, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM accounting_periods
		WHERE tenant_id = $1 AND status = 'OPEN' AND start_date <= $2 AND end_date >= $2
		ORDER BY start_date
		LIMIT 1;
	`
	var m models.AccountingPeriod
	err := r.Pool.QueryRow(ctx, query, tenantID, date).Scan(
		&m.PeriodID,
		&m.TenantID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find open period for tenant "+tenantID, err)
	}

	domainPeriod := mapping.ToDomainPeriod(m)
	return &domainPeriod, nil
}

// CountPeriods returns how many periods the tenant has configured,
// regardless of status.
func (r *PgxPeriodRepository) CountPeriods(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM accounting_periods WHERE tenant_id = $1;`
	if err := r.Pool.QueryRow(ctx, query, tenantID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count periods for tenant "+tenantID, err)
	}
	return count, nil
}
