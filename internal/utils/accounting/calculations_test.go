package accounting_test

import (
	"testing"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"github.com/bizdesk/bizdesk_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func postedEntry(id string, lines ...domain.LedgerLine) domain.LedgerEntry {
	debit, credit := accounting.LineTotals(lines)
	return domain.LedgerEntry{
		EntryID:     id,
		WorkplaceID: "wp-1",
		Lines:       lines,
		TotalDebit:  debit,
		TotalCredit: credit,
		Status:      domain.EntryPosted,
	}
}

func line(accountCode, debit, credit string) domain.LedgerLine {
	return domain.LedgerLine{
		AccountCode:  accountCode,
		Debit:        dec(debit),
		Credit:       dec(credit),
		CurrencyCode: "USD",
	}
}

func TestLineTotals(t *testing.T) {
	debit, credit := accounting.LineTotals([]domain.LedgerLine{
		line("1000", "100.50", "0"),
		line("2000", "0", "75.25"),
		line("3000", "0", "25.25"),
	})

	assert.True(t, dec("100.50").Equal(debit))
	assert.True(t, dec("100.50").Equal(credit))
}

func TestWithinTolerance_BoundaryIsExclusive(t *testing.T) {
	// A difference of exactly the tolerance is out of balance.
	assert.False(t, accounting.WithinTolerance(dec("100.01"), dec("100.00")))
	assert.False(t, accounting.WithinTolerance(dec("100.00"), dec("100.01")))

	// Anything strictly under the tolerance balances.
	assert.True(t, accounting.WithinTolerance(dec("100.009999"), dec("100.00")))
	assert.True(t, accounting.WithinTolerance(dec("100.00"), dec("100.00")))
}

func TestAggregateTrialBalance(t *testing.T) {
	entries := []domain.LedgerEntry{
		postedEntry("e1",
			line("1000", "100", "0"),
			line("4000", "0", "100"),
		),
		postedEntry("e2",
			line("1000", "50", "0"),
			line("2000", "0", "50"),
		),
	}

	summary := accounting.AggregateTrialBalance(entries)

	require.Len(t, summary.Rows, 3)
	// Rows come back sorted by account code.
	assert.Equal(t, "1000", summary.Rows[0].AccountCode)
	assert.Equal(t, "2000", summary.Rows[1].AccountCode)
	assert.Equal(t, "4000", summary.Rows[2].AccountCode)

	assert.True(t, dec("150").Equal(summary.Rows[0].Debit))
	assert.True(t, dec("150").Equal(summary.Rows[0].Balance))
	assert.True(t, dec("-50").Equal(summary.Rows[1].Balance))

	assert.True(t, dec("150").Equal(summary.TotalDebit))
	assert.True(t, dec("150").Equal(summary.TotalCredit))
	assert.True(t, summary.Balanced)
}

func TestAggregateTrialBalance_SkipsNonPosted(t *testing.T) {
	pending := postedEntry("e2", line("9999", "500", "0"))
	pending.Status = domain.EntryPending
	reversed := postedEntry("e3", line("9999", "500", "0"))
	reversed.Status = domain.EntryReversed

	entries := []domain.LedgerEntry{
		postedEntry("e1",
			line("1000", "10", "0"),
			line("4000", "0", "10"),
		),
		pending,
		reversed,
	}

	summary := accounting.AggregateTrialBalance(entries)

	require.Len(t, summary.Rows, 2)
	assert.True(t, dec("10").Equal(summary.TotalDebit))
	assert.True(t, summary.Balanced)
}

func TestAggregateTrialBalance_ToleranceBoundary(t *testing.T) {
	// Grand totals differ by exactly 0.01: not balanced.
	exactly := accounting.AggregateTrialBalance([]domain.LedgerEntry{
		postedEntry("e1",
			line("1000", "100.01", "0"),
			line("4000", "0", "100.00"),
		),
	})
	assert.False(t, exactly.Balanced)

	// Just under the tolerance: balanced.
	under := accounting.AggregateTrialBalance([]domain.LedgerEntry{
		postedEntry("e2",
			line("1000", "100.009999", "0"),
			line("4000", "0", "100.00"),
		),
	})
	assert.True(t, under.Balanced)
}

func TestAggregateTrialBalance_Recomputes(t *testing.T) {
	entries := []domain.LedgerEntry{
		postedEntry("e1",
			line("1000", "42", "0"),
			line("4000", "0", "42"),
		),
	}

	first := accounting.AggregateTrialBalance(entries)
	second := accounting.AggregateTrialBalance(entries)

	assert.Equal(t, first, second)
}

func TestUnbalancedEntries(t *testing.T) {
	flagged := postedEntry("bad",
		line("1000", "100", "0"),
		line("4000", "0", "90"),
	)
	boundary := postedEntry("boundary",
		line("1000", "100.01", "0"),
		line("4000", "0", "100.00"),
	)
	withinTol := postedEntry("rounding",
		line("1000", "100.005", "0"),
		line("4000", "0", "100.00"),
	)
	balanced := postedEntry("ok",
		line("1000", "50", "0"),
		line("4000", "0", "50"),
	)
	reversedBad := postedEntry("reversed-bad",
		line("1000", "100", "0"),
		line("4000", "0", "1"),
	)
	reversedBad.Status = domain.EntryReversed

	unbalanced := accounting.UnbalancedEntries([]domain.LedgerEntry{flagged, boundary, withinTol, balanced, reversedBad})

	// Only a posted entry whose diff exceeds the tolerance is flagged. A
	// diff of exactly 0.01 sits on the boundary and passes.
	require.Len(t, unbalanced, 1)
	assert.Equal(t, "bad", unbalanced[0].EntryID)
}
