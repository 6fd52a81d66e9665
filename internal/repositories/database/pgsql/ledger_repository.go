package pgsql

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/apperrors"
	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portsrepo "github.com/bizdesk/bizdesk_backend/internal/core/ports/repositories"
	"github.com/bizdesk/bizdesk_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entry data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerEntryColumns = `
	entry_id, workplace_id, source_type, source_id, lines, total_debit, total_credit,
	posted_at, status, integrity_hash, metadata,
	created_at, created_by, last_updated_at, last_updated_by`

// computeIntegrityHash produces the tamper-evidence hash stored alongside an
// entry. It covers identity, totals and the full line set; metadata and audit
// fields are excluded so the reversal status flip does not break verification.
func computeIntegrityHash(entry domain.LedgerEntry) (string, error) {
	linesJSON, err := json.Marshal(entry.Lines)
	if err != nil {
		return "", err
	}
	payload := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s",
		entry.EntryID,
		entry.WorkplaceID,
		entry.SourceType,
		entry.SourceID,
		entry.TotalDebit.String(),
		entry.TotalCredit.String(),
		string(linesJSON),
	)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:]), nil
}

// SaveEntry persists a new ledger entry with its embedded lines. The integrity
// hash is computed here so callers cannot store an entry without one.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	hash, err := computeIntegrityHash(entry)
	if err != nil {
		return apperrors.NewAppError(500, "failed to compute integrity hash for entry "+entry.EntryID, err)
	}

	linesJSON, err := json.Marshal(entry.Lines)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal lines for entry "+entry.EntryID, err)
	}
	metadataJSON, err := json.Marshal(entry.Metadata)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal metadata for entry "+entry.EntryID, err)
	}

	query := `
		INSERT INTO ledger_entries (` + ledgerEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = r.Pool.Exec(ctx, query,
		entry.EntryID,
		entry.WorkplaceID,
		entry.SourceType,
		entry.SourceID,
		linesJSON,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.PostedAt,
		entry.Status,
		hash,
		metadataJSON,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert ledger entry "+entry.EntryID, err)
	}
	return nil
}

// ReverseEntry marks the original entry REVERSED and inserts the reversing
// counter-entry within a single database transaction. The status guard in the
// UPDATE makes concurrent double-reversals lose cleanly.
func (r *PgxLedgerRepository) ReverseEntry(ctx context.Context, original domain.LedgerEntry, reversing domain.LedgerEntry, reversedBy string, reversedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE ledger_entries
		SET status = $1,
		    metadata = COALESCE(metadata, '{}'::jsonb) || jsonb_build_object(
		        'reversedBy', $2::text,
		        'reversedAt', $3::text,
		        'reversingEntryID', $4::text,
		        'reversalReason', $5::text
		    ),
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE entry_id = $8 AND workplace_id = $9 AND status = $10;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		domain.EntryReversed,
		reversedBy,
		reversedAt.Format(time.RFC3339Nano),
		reversing.EntryID,
		reversing.Metadata["reversalReason"],
		reversedAt,
		reversedBy,
		original.EntryID,
		original.WorkplaceID,
		domain.EntryPosted,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry reversed "+original.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		// Entry was already reversed (or never posted) by the time we got here.
		return apperrors.ErrConflict
	}

	hash, err := computeIntegrityHash(reversing)
	if err != nil {
		return apperrors.NewAppError(500, "failed to compute integrity hash for entry "+reversing.EntryID, err)
	}
	linesJSON, err := json.Marshal(reversing.Lines)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal lines for entry "+reversing.EntryID, err)
	}
	metadataJSON, err := json.Marshal(reversing.Metadata)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal metadata for entry "+reversing.EntryID, err)
	}

	insertQuery := `
		INSERT INTO ledger_entries (` + ledgerEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, insertQuery,
		reversing.EntryID,
		reversing.WorkplaceID,
		reversing.SourceType,
		reversing.SourceID,
		linesJSON,
		reversing.TotalDebit,
		reversing.TotalCredit,
		reversing.PostedAt,
		reversing.Status,
		hash,
		metadataJSON,
		reversing.CreatedAt,
		reversing.CreatedBy,
		reversing.LastUpdatedAt,
		reversing.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to insert reversing entry "+reversing.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a ledger entry by its ID within a workplace.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, workplaceID, entryID string) (*domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE workplace_id = $1 AND entry_id = $2;
	`
	entry, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, workplaceID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger entry "+entryID, err)
	}
	return entry, nil
}

// ListEntries retrieves a page of entries ordered by posted time descending
// using keyset pagination.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, workplaceID string, limit int, nextToken *string, includeReversed bool) ([]domain.LedgerEntry, *string, error) {
	args := []any{workplaceID}
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE workplace_id = $1`
	argPos := 2

	if !includeReversed {
		query += fmt.Sprintf(" AND status != $%d", argPos)
		args = append(args, domain.EntryReversed)
		argPos++
	}

	if nextToken != nil && *nextToken != "" {
		postedAt, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += fmt.Sprintf(" AND (posted_at, created_at) < ($%d, $%d)", argPos, argPos+1)
		args = append(args, postedAt, createdAt)
		argPos += 2
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(" ORDER BY posted_at DESC, created_at DESC LIMIT $%d;", argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate ledger entry rows", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.PostedAt, last.CreatedAt)
		token = &t
	}
	return entries, token, nil
}

// ListPostedEntries retrieves every POSTED entry for a workplace. The trial
// balance and the unbalanced-entry scan both recompute from this full set.
func (r *PgxLedgerRepository) ListPostedEntries(ctx context.Context, workplaceID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE workplace_id = $1 AND status = $2
		ORDER BY posted_at, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, workplaceID, domain.EntryPosted)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query posted ledger entries", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate ledger entry rows", err)
	}
	return entries, nil
}

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var entry domain.LedgerEntry
	var linesJSON, metadataJSON []byte
	err := row.Scan(
		&entry.EntryID,
		&entry.WorkplaceID,
		&entry.SourceType,
		&entry.SourceID,
		&linesJSON,
		&entry.TotalDebit,
		&entry.TotalCredit,
		&entry.PostedAt,
		&entry.Status,
		&entry.IntegrityHash,
		&metadataJSON,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(linesJSON, &entry.Lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lines for entry %s: %w", entry.EntryID, err)
	}
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &entry.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata for entry %s: %w", entry.EntryID, err)
		}
	}
	return &entry, nil
}
