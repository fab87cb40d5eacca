package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is a GL chart-of-accounts entry. The engine consumes accounts but
// does not own their lifecycle; CurrentBalance is a derived cache maintained
// exclusively by the balance recalculator.
type Account struct {
	AccountID      string          `json:"accountID"` // Primary key (UUID)
	TenantID       string          `json:"tenantID"`
	Code           string          `json:"code"` // GL code, unique per tenant
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	CurrentBalance decimal.Decimal `json:"currentBalance"` // Derived from posted lines
	IsActive       bool            `json:"isActive"`
	AuditFields
}
