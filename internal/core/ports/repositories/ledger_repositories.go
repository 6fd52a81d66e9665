package repositories

import (
	"context"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
)

// LedgerReader defines read operations for ledger entries.
type LedgerReader interface {
	// FindEntryByID retrieves a specific ledger entry, lines included.
	FindEntryByID(ctx context.Context, workplaceID, entryID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves a page of entries for a workplace ordered by posted
	// time descending, using token-based pagination. includeReversed controls
	// whether REVERSED entries appear.
	ListEntries(ctx context.Context, workplaceID string, limit int, nextToken *string, includeReversed bool) ([]domain.LedgerEntry, *string, error)

	// ListPostedEntries retrieves every POSTED entry for a workplace. This is
	// the full-set input of the trial balance aggregation.
	ListPostedEntries(ctx context.Context, workplaceID string) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines write operations for ledger entries. Entries are never
// deleted; the only status mutation is POSTED -> REVERSED.
type LedgerWriter interface {
	// SaveEntry persists a new entry with its embedded lines. The repository
	// computes and stores the integrity hash.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// ReverseEntry atomically marks the original entry REVERSED (recording
	// reversal metadata) and inserts the reversing counter-entry, in a single
	// database transaction.
	ReverseEntry(ctx context.Context, original domain.LedgerEntry, reversing domain.LedgerEntry, reversedBy string, reversedAt time.Time) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
