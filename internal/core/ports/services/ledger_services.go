package services

import (
	"context"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
)

// LedgerReaderSvc defines read operations over the ledger.
type LedgerReaderSvc interface {
	// GetEntryByID retrieves a single entry with its lines.
	GetEntryByID(ctx context.Context, workplaceID, entryID, requestingUserID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves a paginated page of entries.
	ListEntries(ctx context.Context, workplaceID, requestingUserID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// TrialBalance aggregates all posted entries into per-account debit/credit
	// totals with a books-balanced flag. Recomputed in full on every call.
	TrialBalance(ctx context.Context, workplaceID, requestingUserID string) (domain.TrialBalanceSummary, error)

	// UnbalancedEntries returns posted entries whose own totals diverge beyond
	// the rounding tolerance, independent of the aggregate trial balance.
	UnbalancedEntries(ctx context.Context, workplaceID, requestingUserID string) ([]domain.LedgerEntry, error)
}

// LedgerWriterSvc defines write operations over the ledger.
type LedgerWriterSvc interface {
	// PostEntry records a new entry from a source business event.
	PostEntry(ctx context.Context, workplaceID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.LedgerEntry, error)

	// ReverseEntry creates a counter-entry negating a posted entry (swapping
	// each line's debit and credit) and marks the original REVERSED. The two
	// writes happen in one database transaction.
	ReverseEntry(ctx context.Context, workplaceID, entryID, reason, requestingUserID string) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
