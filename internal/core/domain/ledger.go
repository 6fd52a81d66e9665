package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a ledger entry.
type EntryStatus string

const (
	EntryPosted   EntryStatus = "POSTED"
	EntryPending  EntryStatus = "PENDING"
	EntryReversed EntryStatus = "REVERSED"
)

// EntrySource classifies the business event a ledger entry originates from.
type EntrySource string

const (
	SourceSale       EntrySource = "SALE"
	SourcePayment    EntrySource = "PAYMENT"
	SourceExpense    EntrySource = "EXPENSE"
	SourceRefund     EntrySource = "REFUND"
	SourceAdjustment EntrySource = "ADJUSTMENT"
	SourcePayable    EntrySource = "PAYABLE"
	SourceReceivable EntrySource = "RECEIVABLE"
)

// ReversalSuffix is appended to the original entry ID to form the reversing entry's ID.
const ReversalSuffix = "-REV"

// ReversalMemoPrefix marks each reversed line's memo.
const ReversalMemoPrefix = "REVERSAL: "

// BalanceTolerance is the rounding tolerance (in currency units) under which
// debit and credit totals are considered equal.
var BalanceTolerance = decimal.RequireFromString("0.01")

// LedgerLine is one line item inside a ledger entry. Lines are embedded in
// their entry and never exist standalone.
type LedgerLine struct {
	AccountCode  string            `json:"accountCode"`
	Debit        decimal.Decimal   `json:"debit"`
	Credit       decimal.Decimal   `json:"credit"`
	CurrencyCode string            `json:"currencyCode"`
	Memo         string            `json:"memo"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// LedgerEntry is an immutable record of one posted accounting transaction.
// Once created, the only permitted mutation is the POSTED -> REVERSED status
// transition; corrections are made by posting a reversing counter-entry.
type LedgerEntry struct {
	EntryID       string            `json:"entryID"` // transaction identifier
	WorkplaceID   string            `json:"workplaceID"`
	SourceType    EntrySource       `json:"sourceType"`
	SourceID      string            `json:"sourceID"`
	Lines         []LedgerLine      `json:"lines"`
	TotalDebit    decimal.Decimal   `json:"totalDebit"`
	TotalCredit   decimal.Decimal   `json:"totalCredit"`
	PostedAt      time.Time         `json:"postedAt"`
	Status        EntryStatus       `json:"status"`
	IntegrityHash string            `json:"integrityHash"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	AuditFields
}

// IsUnbalanced reports whether the entry's own debit and credit totals diverge
// beyond the rounding tolerance. An entry can be internally unbalanced even
// while the aggregate trial balance happens to balance, so this check is
// reported separately from the books-balanced flag.
func (e *LedgerEntry) IsUnbalanced() bool {
	return e.TotalDebit.Sub(e.TotalCredit).Abs().GreaterThan(BalanceTolerance)
}
