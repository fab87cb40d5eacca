package services

import (
	"context"

	"github.com/bizsuite/gl_engine/internal/core/domain"
)

// AccountSvcFacade exposes tenant-scoped reads over the chart of accounts.
// Account lifecycle is owned by the accounts subsystem, not this engine.
type AccountSvcFacade interface {
	// GetAccountByID retrieves an account, verifying tenant ownership.
	GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its GL code within a tenant.
	GetAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts, verifying tenant
	// ownership of each.
	GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a tenant.
	ListAccounts(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Account, error)
}
