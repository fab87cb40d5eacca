package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	portsrepo "github.com/bizsuite/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/gl_engine/internal/core/ports/services"
	"github.com/bizsuite/gl_engine/internal/middleware"
)

const defaultRecalcConcurrency = 4

type balanceService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	concurrency int
}

// NewBalanceService creates a new BalanceSvcFacade. concurrency bounds the
// fan-out of multi-account recalculation; values below 1 fall back to the
// default.
func NewBalanceService(accountRepo portsrepo.AccountRepositoryFacade, concurrency int) portssvc.BalanceSvcFacade {
	if concurrency < 1 {
		concurrency = defaultRecalcConcurrency
	}
	return &balanceService{accountRepo: accountRepo, concurrency: concurrency}
}

// Ensure balanceService implements the portssvc.BalanceSvcFacade interface
var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// RecalculateAccount recomputes and persists one account's balance from its
// posted lines.
// Implements portssvc.BalanceSvcFacade
func (s *balanceService) RecalculateAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	balance, err := s.accountRepo.RecalculateBalance(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to recalculate balance for account %s: %w", accountID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Debug("Account balance recalculated",
		slog.String("account_id", accountID),
		slog.String("balance", balance.String()))
	return balance, nil
}

// RecalculateAccounts recomputes balances for a set of accounts with a
// bounded concurrent fan-out. Each account recalculates in its own
// transaction; a failure on one account does not roll back the others.
// Implements portssvc.BalanceSvcFacade
func (s *balanceService) RecalculateAccounts(ctx context.Context, accountIDs []string) error {
	if len(accountIDs) == 0 {
		return nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, accountID := range accountIDs {
		accountID := accountID
		g.Go(func() error {
			_, err := s.RecalculateAccount(gCtx, accountID)
			return err
		})
	}
	return g.Wait()
}
