package accounting

import (
	"sort"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineTotals sums the debit and credit amounts across a line sequence.
func LineTotals(lines []domain.LedgerLine) (decimal.Decimal, decimal.Decimal) {
	debit := decimal.Zero
	credit := decimal.Zero
	for _, line := range lines {
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	return debit, credit
}

// WithinTolerance reports whether two amounts are equal within the fixed
// rounding tolerance. The boundary is exclusive: a difference of exactly the
// tolerance is NOT within it.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(domain.BalanceTolerance)
}

// AggregateTrialBalance builds a trial balance over the POSTED subset of the
// given entries. Per-account debit and credit totals are accumulated across
// every line of every posted entry; balance is debit minus credit. The whole
// aggregation is recomputed from scratch on every call.
func AggregateTrialBalance(entries []domain.LedgerEntry) domain.TrialBalanceSummary {
	type acc struct {
		debit  decimal.Decimal
		credit decimal.Decimal
	}
	byCode := make(map[string]*acc)

	for _, entry := range entries {
		if entry.Status != domain.EntryPosted {
			continue
		}
		for _, line := range entry.Lines {
			a, ok := byCode[line.AccountCode]
			if !ok {
				a = &acc{debit: decimal.Zero, credit: decimal.Zero}
				byCode[line.AccountCode] = a
			}
			a.debit = a.debit.Add(line.Debit)
			a.credit = a.credit.Add(line.Credit)
		}
	}

	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	summary := domain.TrialBalanceSummary{
		Rows:        make([]domain.TrialBalanceRow, 0, len(codes)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, code := range codes {
		a := byCode[code]
		summary.Rows = append(summary.Rows, domain.TrialBalanceRow{
			AccountCode: code,
			Debit:       a.debit,
			Credit:      a.credit,
			Balance:     a.debit.Sub(a.credit),
		})
		summary.TotalDebit = summary.TotalDebit.Add(a.debit)
		summary.TotalCredit = summary.TotalCredit.Add(a.credit)
	}
	summary.Balanced = WithinTolerance(summary.TotalDebit, summary.TotalCredit)

	return summary
}

// UnbalancedEntries filters posted entries whose own totals diverge beyond the
// tolerance. Independent of the aggregate trial balance: a single entry can be
// internally unbalanced while the grand totals coincidentally balance.
func UnbalancedEntries(entries []domain.LedgerEntry) []domain.LedgerEntry {
	var unbalanced []domain.LedgerEntry
	for _, entry := range entries {
		if entry.Status != domain.EntryPosted {
			continue
		}
		if entry.IsUnbalanced() {
			unbalanced = append(unbalanced, entry)
		}
	}
	return unbalanced
}
