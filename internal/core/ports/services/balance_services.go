package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// BalanceSvcFacade recomputes cached account balances from posted ledger
// lines. Recalculation is idempotent and self-correcting: every call derives
// the balance from source-of-truth rows, so concurrent callers cannot leave
// a value inconsistent with some valid snapshot of posted lines.
type BalanceSvcFacade interface {
	// RecalculateAccount recomputes and persists one account's balance.
	RecalculateAccount(ctx context.Context, accountID string) (decimal.Decimal, error)

	// RecalculateAccounts recomputes balances for a set of accounts with a
	// bounded concurrent fan-out.
	RecalculateAccounts(ctx context.Context, accountIDs []string) error
}
