package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/bizsuite/gl_engine/internal/apperrors"
	"github.com/bizsuite/gl_engine/internal/core/domain"
	portsrepo "github.com/bizsuite/gl_engine/internal/core/ports/repositories"
	"github.com/bizsuite/gl_engine/internal/models"
	"github.com/bizsuite/gl_engine/internal/utils/accounting"
	"github.com/bizsuite/gl_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, tenant_id, code, name, account_type, current_balance, is_active,
       created_at, created_by, last_updated_at, last_updated_by`

// scanAccount scans one accounts row in accountColumns order.
func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.TenantID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.CurrentBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindAccountByID retrieves a specific account by its unique identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	modelAccount, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}

	domainAccount := mapping.ToDomainAccount(modelAccount)
	return &domainAccount, nil
}

// FindAccountByCode retrieves an account by its GL code within a tenant.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND code = $2;`

	modelAccount, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by code "+code, err)
	}

	domainAccount := mapping.ToDomainAccount(modelAccount)
	return &domainAccount, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs. IDs with no
// matching row are simply absent from the result map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row during batch fetch", scanErr)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows during batch fetch", err)
	}

	return accounts, nil
}

// ListAccounts retrieves a paginated list of accounts for a tenant, ordered
// by GL code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 ORDER BY code LIMIT $2 OFFSET $3;`

	rows, err := r.Pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for tenant "+tenantID, err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row for tenant "+tenantID, scanErr)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows for tenant "+tenantID, err)
	}

	return mapping.ToDomainAccountSlice(accounts), nil
}

// RecalculateBalance recomputes the account's cached balance from all POSTED
// journal lines under a row lock and writes it back. The full recompute makes
// the operation idempotent: no matter how calls interleave, the stored value
// always matches some valid snapshot of posted lines.
func (r *PgxAccountRepository) RecalculateBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	var accountType models.AccountType
	lockQuery := `SELECT account_type FROM accounts WHERE account_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, accountID).Scan(&accountType); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to lock account "+accountID, err)
	}

	var debits, credits decimal.Decimal
	sumQuery := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journals j ON l.journal_id = j.journal_id
		WHERE l.account_id = $1 AND j.status = 'POSTED';
	`
	if err := tx.QueryRow(ctx, sumQuery, accountID).Scan(&debits, &credits); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum posted lines for account "+accountID, err)
	}

	balance, err := accounting.SignedBalance(domain.AccountType(accountType), debits, credits)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute balance for account "+accountID, err)
	}

	updateQuery := `UPDATE accounts SET current_balance = $2, last_updated_at = $3 WHERE account_id = $1;`
	if _, err := tx.Exec(ctx, updateQuery, accountID, balance, time.Now().UTC()); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to write balance for account "+accountID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
