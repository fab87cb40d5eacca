package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizsuite/gl_engine/internal/core/domain"
)

func lines(pairs ...[2]string) []domain.JournalLine {
	ls := make([]domain.JournalLine, len(pairs))
	for i, p := range pairs {
		ls[i] = domain.JournalLine{
			Debit:  decimal.RequireFromString(p[0]),
			Credit: decimal.RequireFromString(p[1]),
		}
	}
	return ls
}

func TestCheckBalanced_Exact(t *testing.T) {
	diff, ok := CheckBalanced(lines([2]string{"100.00", "0"}, [2]string{"0", "100.00"}))
	assert.True(t, ok)
	assert.True(t, diff.IsZero())
}

func TestCheckBalanced_WithinEpsilon(t *testing.T) {
	// 0.01 apart is still accepted; upstream rounding leaves such residue.
	diff, ok := CheckBalanced(lines([2]string{"100.00", "0"}, [2]string{"0", "99.99"}))
	assert.True(t, ok)
	assert.True(t, diff.Equal(decimal.RequireFromString("0.01")))
}

func TestCheckBalanced_JustOverEpsilon(t *testing.T) {
	_, ok := CheckBalanced(lines([2]string{"100.00", "0"}, [2]string{"0", "99.989"}))
	assert.False(t, ok)
}

func TestCheckBalanced_NegativeDifference(t *testing.T) {
	diff, ok := CheckBalanced(lines([2]string{"50", "0"}, [2]string{"0", "75"}))
	assert.False(t, ok)
	assert.True(t, diff.Equal(decimal.NewFromInt(-25)))
}

func TestSignedBalance_DebitNormalTypes(t *testing.T) {
	for _, at := range []domain.AccountType{domain.Asset, domain.Expense} {
		got, err := SignedBalance(at, decimal.NewFromInt(300), decimal.NewFromInt(100))
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromInt(200)), "type %s", at)
	}
}

func TestSignedBalance_CreditNormalTypes(t *testing.T) {
	for _, at := range []domain.AccountType{domain.Liability, domain.Equity, domain.Revenue} {
		got, err := SignedBalance(at, decimal.NewFromInt(100), decimal.NewFromInt(300))
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromInt(200)), "type %s", at)
	}
}

func TestSignedBalance_UnknownType(t *testing.T) {
	_, err := SignedBalance(domain.AccountType("SUSPENSE"), decimal.Zero, decimal.Zero)
	assert.Error(t, err)
}

func TestFormatJournalNumber(t *testing.T) {
	assert.Equal(t, "JE-2026-000001", FormatJournalNumber(2026, 1))
	assert.Equal(t, "JE-2026-000123", FormatJournalNumber(2026, 123))
	assert.Equal(t, "JE-2024-999999", FormatJournalNumber(2024, 999999))
	// Sequences past six digits widen rather than wrap.
	assert.Equal(t, "JE-2026-1000000", FormatJournalNumber(2026, 1000000))
}
