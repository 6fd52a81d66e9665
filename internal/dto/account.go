package dto

import (
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest creates a new chart-of-accounts row.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	CurrencyCode    string             `json:"currencyCode" binding:"required,len=3"`
	ParentAccountID string             `json:"parentAccountID"`
	Description     string             `json:"description"`
}

// UpdateAccountRequest applies a partial update to an account.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AccountResponse is the API shape of an account.
type AccountResponse struct {
	AccountID       string          `json:"accountID"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	AccountType     string          `json:"accountType"`
	CurrencyCode    string          `json:"currencyCode"`
	ParentAccountID string          `json:"parentAccountID,omitempty"`
	Description     string          `json:"description,omitempty"`
	IsActive        bool            `json:"isActive"`
	Balance         decimal.Decimal `json:"balance"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to its API shape.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     string(a.AccountType),
		CurrencyCode:    a.CurrencyCode,
		ParentAccountID: a.ParentAccountID,
		Description:     a.Description,
		IsActive:        a.IsActive,
		Balance:         a.Balance,
		CreatedAt:       a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
