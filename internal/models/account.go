package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType at the persistence layer.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is the accounts table row. current_balance is a materialized view
// of posted journal lines; only the balance recalculator writes it.
type Account struct {
	AccountID      string          `db:"account_id"`
	TenantID       string          `db:"tenant_id"`
	Code           string          `db:"code"`
	Name           string          `db:"name"`
	AccountType    AccountType     `db:"account_type"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
