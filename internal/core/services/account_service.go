package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bizsuite/gl_engine/internal/apperrors"
	"github.com/bizsuite/gl_engine/internal/core/domain"
	portsrepo "github.com/bizsuite/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/gl_engine/internal/core/ports/services"
	"github.com/bizsuite/gl_engine/internal/middleware"
)

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountSvcFacade.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountByID retrieves an account, reporting ErrNotFound for accounts of
// other tenants to obscure their existence.
// Implements portssvc.AccountSvcFacade
func (s *accountService) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	if tenantID == "" {
		return nil, apperrors.ErrNoActiveTenant
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.TenantID != tenantID {
		middleware.GetLoggerFromCtx(ctx).Warn("Account belongs to different tenant",
			slog.String("account_id", accountID),
			slog.String("requested_tenant", tenantID))
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetAccountByCode retrieves an account by its GL code within a tenant.
// Implements portssvc.AccountSvcFacade
func (s *accountService) GetAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	if tenantID == "" {
		return nil, apperrors.ErrNoActiveTenant
	}
	return s.accountRepo.FindAccountByCode(ctx, tenantID, code)
}

// GetAccountsByIDs retrieves multiple accounts, dropping any that belong to
// another tenant. Callers detect missing IDs by comparing the result map.
// Implements portssvc.AccountSvcFacade
func (s *accountService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	if tenantID == "" {
		return nil, apperrors.ErrNoActiveTenant
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for id, acc := range accounts {
		if acc.TenantID != tenantID {
			delete(accounts, id)
		}
	}
	return accounts, nil
}

// ListAccounts retrieves a paginated list of accounts for a tenant.
// Implements portssvc.AccountSvcFacade
func (s *accountService) ListAccounts(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Account, error) {
	if tenantID == "" {
		return nil, apperrors.ErrNoActiveTenant
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.ListAccounts(ctx, tenantID, limit, offset)
}
