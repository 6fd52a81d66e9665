package dto

import (
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerLineRequest is one line of an entry being posted.
type LedgerLineRequest struct {
	AccountCode  string            `json:"accountCode" binding:"required"`
	Debit        decimal.Decimal   `json:"debit"`
	Credit       decimal.Decimal   `json:"credit"`
	CurrencyCode string            `json:"currencyCode" binding:"required,len=3"`
	Memo         string            `json:"memo"`
	Metadata     map[string]string `json:"metadata"`
}

// CreateEntryRequest posts a new ledger entry from a source business event.
type CreateEntryRequest struct {
	SourceType domain.EntrySource  `json:"sourceType" binding:"required"`
	SourceID   string              `json:"sourceID" binding:"required"`
	PostedAt   *time.Time          `json:"postedAt"`
	Lines      []LedgerLineRequest `json:"lines" binding:"required,min=1,dive"`
	Metadata   map[string]string   `json:"metadata"`
}

// ReverseEntryRequest reverses a posted entry.
type ReverseEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// LedgerLineResponse is one line of an entry in API responses.
type LedgerLineResponse struct {
	AccountCode  string            `json:"accountCode"`
	Debit        decimal.Decimal   `json:"debit"`
	Credit       decimal.Decimal   `json:"credit"`
	CurrencyCode string            `json:"currencyCode"`
	Memo         string            `json:"memo"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// EntryResponse is the API shape of a ledger entry.
type EntryResponse struct {
	EntryID       string               `json:"entryID"`
	SourceType    string               `json:"sourceType"`
	SourceID      string               `json:"sourceID"`
	Lines         []LedgerLineResponse `json:"lines"`
	TotalDebit    decimal.Decimal      `json:"totalDebit"`
	TotalCredit   decimal.Decimal      `json:"totalCredit"`
	PostedAt      time.Time            `json:"postedAt"`
	Status        string               `json:"status"`
	IntegrityHash string               `json:"integrityHash"`
	Metadata      map[string]string    `json:"metadata,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
}

// ListEntriesParams carries pagination options for listing ledger entries.
type ListEntriesParams struct {
	Limit           int     `form:"limit"`
	NextToken       *string `form:"nextToken"`
	IncludeReversed bool    `form:"includeReversed"`
}

// ListEntriesResponse is a page of ledger entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.LedgerEntry to its API shape.
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	lines := make([]LedgerLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = LedgerLineResponse{
			AccountCode:  l.AccountCode,
			Debit:        l.Debit,
			Credit:       l.Credit,
			CurrencyCode: l.CurrencyCode,
			Memo:         l.Memo,
			Metadata:     l.Metadata,
		}
	}
	return EntryResponse{
		EntryID:       e.EntryID,
		SourceType:    string(e.SourceType),
		SourceID:      e.SourceID,
		Lines:         lines,
		TotalDebit:    e.TotalDebit,
		TotalCredit:   e.TotalCredit,
		PostedAt:      e.PostedAt,
		Status:        string(e.Status),
		IntegrityHash: e.IntegrityHash,
		Metadata:      e.Metadata,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
	}
}

// ToEntryResponses converts a slice of entries.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
