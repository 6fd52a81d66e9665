package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow aggregates all posted debits and credits for one account code.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"` // debit - credit
}

// TrialBalanceSummary is the derived (never persisted) trial balance over all
// posted entries currently in the ledger.
type TrialBalanceSummary struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Balanced    bool              `json:"balanced"` // |totalDebit - totalCredit| < tolerance
}
