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

// Account represents one row of the chart of accounts.
type Account struct {
	AccountID       string          `json:"accountID"`   // Primary Key (UUID)
	WorkplaceID     string          `json:"workplaceID"` // FK -> workplaces.workplace_id
	Code            string          `json:"code"`        // Ledger account code, unique per workplace
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	CurrencyCode    string          `json:"currencyCode"`
	ParentAccountID string          `json:"parentAccountID"` // Nullable, self-referencing
	Description     string          `json:"description"`
	IsActive        bool            `json:"isActive"`
	Balance         decimal.Decimal `json:"balance"`
	AuditFields
}
