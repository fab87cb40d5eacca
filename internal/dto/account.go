package dto

import (
	"github.com/bizsuite/gl_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountResponse defines the data returned for a chart-of-accounts entry.
type AccountResponse struct {
	AccountID      string          `json:"accountID"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	AccountType    string          `json:"accountType"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      a.AccountID,
		Code:           a.Code,
		Name:           a.Name,
		AccountType:    string(a.AccountType),
		CurrentBalance: a.CurrentBalance,
		IsActive:       a.IsActive,
	}
}

// ToAccountResponses converts a slice of domain accounts to response DTOs.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
