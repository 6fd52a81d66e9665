package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/apperrors"
	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portsrepo "github.com/bizdesk/bizdesk_backend/internal/core/ports/repositories"
	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/bizdesk/bizdesk_backend/internal/platform/cache"
	"github.com/bizdesk/bizdesk_backend/internal/platform/events"
	"github.com/bizdesk/bizdesk_backend/internal/utils/accounting"
	"github.com/bsm/redislock"
	"github.com/google/uuid"
)

const (
	ledgerTable      = "ledger_entries"
	defaultPageSize  = 50
	maxPageSize      = 100
	reversalLockTTL  = 10 * time.Second
)

type ledgerService struct {
	BaseService
	repo     portsrepo.LedgerRepositoryFacade
	notifier events.Notifier
	cache    *cache.EntityCache
	locker   *redislock.Client
}

// NewLedgerService creates a new ledger service. locker may be nil when redis
// is not configured; the repository's status guard still prevents double
// reversal, the lock only serializes the attempts.
func NewLedgerService(
	repo portsrepo.LedgerRepositoryFacade,
	workplaceAuthorizer portssvc.WorkplaceAuthorizerSvc,
	notifier events.Notifier,
	entityCache *cache.EntityCache,
	locker *redislock.Client,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: BaseService{WorkplaceAuthorizer: workplaceAuthorizer},
		repo:        repo,
		notifier:    notifier,
		cache:       entityCache,
		locker:      locker,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// PostEntry records a new ledger entry. Totals are computed server-side from
// the lines; an entry whose totals diverge is still accepted (the unbalanced
// scan exists to surface such entries), but negative amounts are rejected.
func (s *ledgerService) PostEntry(ctx context.Context, workplaceID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	lines := make([]domain.LedgerLine, len(req.Lines))
	for i, lr := range req.Lines {
		if lr.Debit.IsNegative() || lr.Credit.IsNegative() {
			return nil, apperrors.NewAppError(400, "line amounts must not be negative", apperrors.ErrValidation)
		}
		if lr.Debit.IsZero() && lr.Credit.IsZero() {
			return nil, apperrors.NewAppError(400, "line must carry a debit or a credit", apperrors.ErrValidation)
		}
		lines[i] = domain.LedgerLine{
			AccountCode:  lr.AccountCode,
			Debit:        lr.Debit,
			Credit:       lr.Credit,
			CurrencyCode: lr.CurrencyCode,
			Memo:         lr.Memo,
			Metadata:     lr.Metadata,
		}
	}

	now := time.Now().UTC()
	postedAt := now
	if req.PostedAt != nil {
		postedAt = req.PostedAt.UTC()
	}
	totalDebit, totalCredit := accounting.LineTotals(lines)

	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		WorkplaceID: workplaceID,
		SourceType:  req.SourceType,
		SourceID:    req.SourceID,
		Lines:       lines,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		PostedAt:    postedAt,
		Status:      domain.EntryPosted,
		Metadata:    req.Metadata,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if entry.IsUnbalanced() {
		s.LogInfo(ctx, "Posting an unbalanced ledger entry",
			slog.String("entry_id", entry.EntryID),
			slog.String("total_debit", totalDebit.String()),
			slog.String("total_credit", totalCredit.String()))
	}

	if err := s.repo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save ledger entry", slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	saved, err := s.repo.FindEntryByID(ctx, workplaceID, entry.EntryID)
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, domain.ChangeEvent{
		Table:       ledgerTable,
		Action:      domain.ActionInsert,
		EntityID:    saved.EntryID,
		WorkplaceID: workplaceID,
	})
	return saved, nil
}

// ReverseEntry posts the counter-entry that negates a posted entry and flips
// the original to REVERSED. Both writes happen in one database transaction;
// a redis lock serializes concurrent attempts on the same entry when
// available.
func (s *ledgerService) ReverseEntry(ctx context.Context, workplaceID, entryID, reason, requestingUserID string) (*domain.LedgerEntry, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	if s.locker != nil {
		lock, err := s.locker.Obtain(ctx, "reversal:"+workplaceID+":"+entryID, reversalLockTTL, nil)
		if err != nil {
			if err == redislock.ErrNotObtained {
				return nil, apperrors.ErrConflict
			}
			s.LogError(ctx, err, "Failed to obtain reversal lock", slog.String("entry_id", entryID))
			return nil, apperrors.NewAppError(500, "failed to obtain reversal lock", err)
		}
		defer lock.Release(ctx)
	}

	original, err := s.repo.FindEntryByID(ctx, workplaceID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.EntryPosted {
		// Already reversed, or never made it past pending.
		return nil, apperrors.ErrConflict
	}

	now := time.Now().UTC()
	reversing := buildReversingEntry(*original, reason, requestingUserID, now)

	if err := s.repo.ReverseEntry(ctx, *original, reversing, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to reverse ledger entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.notifier.Publish(ctx, domain.ChangeEvent{
		Table:       ledgerTable,
		Action:      domain.ActionUpdate,
		EntityID:    original.EntryID,
		WorkplaceID: workplaceID,
	})
	s.notifier.Publish(ctx, domain.ChangeEvent{
		Table:       ledgerTable,
		Action:      domain.ActionInsert,
		EntityID:    reversing.EntryID,
		WorkplaceID: workplaceID,
	})

	return s.repo.FindEntryByID(ctx, workplaceID, reversing.EntryID)
}

// buildReversingEntry constructs the counter-entry: every line's debit and
// credit swap places, memos gain the reversal prefix, and the entry ID is the
// original's with the reversal suffix appended.
func buildReversingEntry(original domain.LedgerEntry, reason, userID string, now time.Time) domain.LedgerEntry {
	lines := make([]domain.LedgerLine, len(original.Lines))
	for i, l := range original.Lines {
		lines[i] = domain.LedgerLine{
			AccountCode:  l.AccountCode,
			Debit:        l.Credit,
			Credit:       l.Debit,
			CurrencyCode: l.CurrencyCode,
			Memo:         domain.ReversalMemoPrefix + l.Memo,
			Metadata:     l.Metadata,
		}
	}

	metadata := map[string]string{
		"originalEntryID": original.EntryID,
		"reversalReason":  reason,
	}

	return domain.LedgerEntry{
		EntryID:     original.EntryID + domain.ReversalSuffix,
		WorkplaceID: original.WorkplaceID,
		SourceType:  original.SourceType,
		SourceID:    original.SourceID,
		Lines:       lines,
		TotalDebit:  original.TotalCredit,
		TotalCredit: original.TotalDebit,
		PostedAt:    now,
		Status:      domain.EntryPosted,
		Metadata:    metadata,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

// GetEntryByID reads one entry, going through the entity cache when enabled.
func (s *ledgerService) GetEntryByID(ctx context.Context, workplaceID, entryID, requestingUserID string) (*domain.LedgerEntry, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	var cached domain.LedgerEntry
	hit, err := s.cache.Get(ctx, ledgerTable, entryID, &cached)
	if err != nil {
		s.LogError(ctx, err, "Entity cache read failed", slog.String("entry_id", entryID))
	}
	if hit && cached.WorkplaceID == workplaceID {
		return &cached, nil
	}

	entry, err := s.repo.FindEntryByID(ctx, workplaceID, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, ledgerTable, entryID, entry); err != nil {
		s.LogError(ctx, err, "Entity cache write failed", slog.String("entry_id", entryID))
	}
	return entry, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, workplaceID, requestingUserID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	entries, nextToken, err := s.repo.ListEntries(ctx, workplaceID, limit, params.NextToken, params.IncludeReversed)
	if err != nil {
		return nil, err
	}
	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// TrialBalance recomputes the full trial balance from every posted entry.
func (s *ledgerService) TrialBalance(ctx context.Context, workplaceID, requestingUserID string) (domain.TrialBalanceSummary, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, workplaceID, domain.RoleReadOnly); err != nil {
		return domain.TrialBalanceSummary{}, err
	}

	entries, err := s.repo.ListPostedEntries(ctx, workplaceID)
	if err != nil {
		return domain.TrialBalanceSummary{}, err
	}
	return accounting.AggregateTrialBalance(entries), nil
}

// UnbalancedEntries returns the posted entries whose own totals diverge beyond
// the tolerance.
func (s *ledgerService) UnbalancedEntries(ctx context.Context, workplaceID, requestingUserID string) ([]domain.LedgerEntry, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entries, err := s.repo.ListPostedEntries(ctx, workplaceID)
	if err != nil {
		return nil, err
	}
	return accounting.UnbalancedEntries(entries), nil
}
