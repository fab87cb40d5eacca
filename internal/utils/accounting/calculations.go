package accounting

import (
	"fmt"

	"github.com/bizsuite/gl_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceEpsilon is the maximum tolerated difference between the debit and
// credit totals of a journal. Upstream monetary math (tax proration, currency
// rounding) can leave sub-cent residue, so exact equality is not required.
var BalanceEpsilon = decimal.RequireFromString("0.01")

// BalanceDifference returns sum(debit) - sum(credit) across the given lines.
func BalanceDifference(lines []domain.JournalLine) decimal.Decimal {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits.Sub(credits)
}

// CheckBalanced validates the aggregate double-entry balance of a line set.
// It returns the computed difference and whether it falls within epsilon.
func CheckBalanced(lines []domain.JournalLine) (decimal.Decimal, bool) {
	diff := BalanceDifference(lines)
	return diff, diff.Abs().LessThanOrEqual(BalanceEpsilon)
}

// SignedBalance computes an account balance from its posted debit and credit
// totals, applying the sign convention for the account type:
// ASSET/EXPENSE carry debit-normal balances, LIABILITY/EQUITY/REVENUE
// carry credit-normal balances.
func SignedBalance(accountType domain.AccountType, debits, credits decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return debits.Sub(credits), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return credits.Sub(debits), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// FormatJournalNumber renders a year-scoped sequential journal code,
// e.g. FormatJournalNumber(2024, 10) -> "JE-2024-000010".
func FormatJournalNumber(year int, seq int64) string {
	return fmt.Sprintf("JE-%d-%06d", year, seq)
}
