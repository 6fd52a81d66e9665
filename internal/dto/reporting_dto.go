package dto

import (
	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance response.
type TrialBalanceRowResponse struct {
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse represents the trial balance report response.
type TrialBalanceResponse struct {
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
	Balanced bool `json:"balanced"`
}

// ToTrialBalanceResponse converts a domain trial balance summary to a DTO response.
func ToTrialBalanceResponse(summary domain.TrialBalanceSummary) TrialBalanceResponse {
	response := TrialBalanceResponse{
		Rows:     make([]TrialBalanceRowResponse, len(summary.Rows)),
		Balanced: summary.Balanced,
	}
	for i, row := range summary.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountCode: row.AccountCode,
			Debit:       row.Debit,
			Credit:      row.Credit,
			Balance:     row.Balance,
		}
	}
	response.Totals.Debit = summary.TotalDebit
	response.Totals.Credit = summary.TotalCredit
	return response
}
