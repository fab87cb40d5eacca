package repositories

import (
	"context"

	"github.com/bizsuite/gl_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its GL code within a tenant.
	FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a tenant.
	ListAccounts(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Account, error)
}

// AccountBalanceWriter defines the single write path for cached balances.
// No other component writes accounts.current_balance.
type AccountBalanceWriter interface {
	// RecalculateBalance recomputes the account's balance from all POSTED
	// journal lines, applying the sign convention for the account type, and
	// writes it back under a row lock. Returns the recomputed balance.
	RecalculateBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountBalanceWriter
}
