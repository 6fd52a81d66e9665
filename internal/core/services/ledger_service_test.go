package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/apperrors"
	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portsrepo "github.com/bizdesk/bizdesk_backend/internal/core/ports/repositories"
	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/core/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) ReverseEntry(ctx context.Context, original domain.LedgerEntry, reversing domain.LedgerEntry, reversedBy string, reversedAt time.Time) error {
	args := m.Called(ctx, original, reversing, reversedBy, reversedAt)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, workplaceID, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, workplaceID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, workplaceID string, limit int, nextToken *string, includeReversed bool) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, workplaceID, limit, nextToken, includeReversed)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) ListPostedEntries(ctx context.Context, workplaceID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// --- Mock WorkplaceAuthorizer ---
type MockWorkplaceAuthorizer struct {
	mock.Mock
}

func (m *MockWorkplaceAuthorizer) AuthorizeUserAction(ctx context.Context, userID, workplaceID string, requiredRole domain.UserWorkplaceRole) error {
	args := m.Called(ctx, userID, workplaceID, requiredRole)
	return args.Error(0)
}

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(ctx context.Context, event domain.ChangeEvent) {
	m.Called(ctx, event)
}

type ledgerTestDeps struct {
	repo       *MockLedgerRepository
	authorizer *MockWorkplaceAuthorizer
	notifier   *MockNotifier
}

func newLedgerService() (*ledgerTestDeps, portssvc.LedgerSvcFacade) {
	deps := &ledgerTestDeps{
		repo:       new(MockLedgerRepository),
		authorizer: new(MockWorkplaceAuthorizer),
		notifier:   new(MockNotifier),
	}
	svc := services.NewLedgerService(deps.repo, deps.authorizer, deps.notifier, nil, nil)
	return deps, svc
}

func entryLine(accountCode string, debit, credit decimal.Decimal) domain.LedgerLine {
	return domain.LedgerLine{
		AccountCode:  accountCode,
		Debit:        debit,
		Credit:       credit,
		CurrencyCode: "USD",
		Memo:         "memo " + accountCode,
	}
}

func TestPostEntry_ComputesTotals(t *testing.T) {
	deps, svc := newLedgerService()
	ctx := context.Background()
	workplaceID := "wp-1"
	userID := "user-1"

	req := dto.CreateEntryRequest{
		SourceType: domain.SourceSale,
		SourceID:   "sale-42",
		Lines: []dto.LedgerLineRequest{
			{AccountCode: "1000", Debit: decimal.NewFromInt(100), CurrencyCode: "USD"},
			{AccountCode: "4000", Credit: decimal.NewFromInt(100), CurrencyCode: "USD"},
		},
	}

	deps.authorizer.On("AuthorizeUserAction", ctx, userID, workplaceID, domain.RoleMember).Return(nil)

	var savedEntry domain.LedgerEntry
	deps.repo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).
		Run(func(args mock.Arguments) {
			savedEntry = args.Get(1).(domain.LedgerEntry)
		}).Return(nil)
	deps.repo.On("FindEntryByID", ctx, workplaceID, mock.AnythingOfType("string")).
		Return(&domain.LedgerEntry{}, nil)
	deps.notifier.On("Publish", ctx, mock.AnythingOfType("domain.ChangeEvent")).Return()

	_, err := svc.PostEntry(ctx, workplaceID, req, userID)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(100).Equal(savedEntry.TotalDebit))
	assert.True(t, decimal.NewFromInt(100).Equal(savedEntry.TotalCredit))
	assert.Equal(t, domain.EntryPosted, savedEntry.Status)
	assert.Equal(t, workplaceID, savedEntry.WorkplaceID)
	assert.Equal(t, userID, savedEntry.CreatedBy)
	assert.NotEmpty(t, savedEntry.EntryID)
	deps.repo.AssertExpectations(t)
	deps.notifier.AssertExpectations(t)
}

func TestPostEntry_RejectsNegativeLine(t *testing.T) {
	deps, svc := newLedgerService()
	ctx := context.Background()

	req := dto.CreateEntryRequest{
		SourceType: domain.SourceAdjustment,
		SourceID:   "adj-1",
		Lines: []dto.LedgerLineRequest{
			{AccountCode: "1000", Debit: decimal.NewFromInt(-5), CurrencyCode: "USD"},
		},
	}

	deps.authorizer.On("AuthorizeUserAction", ctx, "user-1", "wp-1", domain.RoleMember).Return(nil)

	_, err := svc.PostEntry(ctx, "wp-1", req, "user-1")

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	deps.repo.AssertNotCalled(t, "SaveEntry", mock.Anything, mock.Anything)
}

func TestPostEntry_RejectsEmptyLine(t *testing.T) {
	deps, svc := newLedgerService()
	ctx := context.Background()

	req := dto.CreateEntryRequest{
		SourceType: domain.SourceAdjustment,
		SourceID:   "adj-2",
		Lines: []dto.LedgerLineRequest{
			{AccountCode: "1000", CurrencyCode: "USD"},
		},
	}

	deps.authorizer.On("AuthorizeUserAction", ctx, "user-1", "wp-1", domain.RoleMember).Return(nil)

	_, err := svc.PostEntry(ctx, "wp-1", req, "user-1")

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	deps.repo.AssertNotCalled(t, "SaveEntry", mock.Anything, mock.Anything)
}

func TestPostEntry_AcceptsUnbalancedEntry(t *testing.T) {
	// An entry whose totals diverge still posts; the unbalanced scan is how
	// such entries get surfaced later.
	deps, svc := newLedgerService()
	ctx := context.Background()

	req := dto.CreateEntryRequest{
		SourceType: domain.SourceExpense,
		SourceID:   "exp-1",
		Lines: []dto.LedgerLineRequest{
			{AccountCode: "5000", Debit: decimal.NewFromInt(100), CurrencyCode: "USD"},
			{AccountCode: "1000", Credit: decimal.NewFromInt(90), CurrencyCode: "USD"},
		},
	}

	deps.authorizer.On("AuthorizeUserAction", ctx, "user-1", "wp-1", domain.RoleMember).Return(nil)
	deps.repo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(nil)
	deps.repo.On("FindEntryByID", ctx, "wp-1", mock.AnythingOfType("string")).Return(&domain.LedgerEntry{}, nil)
	deps.notifier.On("Publish", ctx, mock.AnythingOfType("domain.ChangeEvent")).Return()

	_, err := svc.PostEntry(ctx, "wp-1", req, "user-1")
	require.NoError(t, err)
	deps.repo.AssertExpectations(t)
}

func TestPostEntry_AuthorizationFailure(t *testing.T) {
	deps, svc := newLedgerService()
	ctx := context.Background()

	deps.authorizer.On("AuthorizeUserAction", ctx, "intruder", "wp-1", domain.RoleMember).Return(apperrors.ErrForbidden)

	_, err := svc.PostEntry(ctx, "wp-1", dto.CreateEntryRequest{}, "intruder")

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	deps.repo.AssertNotCalled(t, "SaveEntry", mock.Anything, mock.Anything)
}

func TestReverseEntry_SwapsDebitsAndCredits(t *testing.T) {
	deps, svc := newLedgerService()
	ctx := context.Background()
	workplaceID := "wp-1"
	userID := "user-1"

	original := domain.LedgerEntry{
		EntryID:     "entry-1",
		WorkplaceID: workplaceID,
		SourceType:  domain.SourceSale,
		SourceID:    "sale-9",
		Lines: []domain.LedgerLine{
			entryLine("1000", decimal.NewFromInt(100), decimal.Zero),
			entryLine("4000", decimal.Zero, decimal.NewFromInt(100)),
		},
		TotalDebit:  decimal.NewFromInt(100),
		TotalCredit: decimal.NewFromInt(100),
		Status:      domain.EntryPosted,
	}

	deps.authorizer.On("AuthorizeUserAction", ctx, userID, workplaceID, domain.RoleMember).Return(nil)
	deps.repo.On("FindEntryByID", ctx, workplaceID, "entry-1").Return(&original, nil).Once()

	var reversing domain.LedgerEntry
	deps.repo.On("ReverseEntry", ctx, original, mock.AnythingOfType("domain.LedgerEntry"), userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			reversing = args.Get(2).(domain.LedgerEntry)
		}).Return(nil)
	deps.repo.On("FindEntryByID", ctx, workplaceID, "entry-1-REV").Return(&domain.LedgerEntry{EntryID: "entry-1-REV"}, nil).Once()
	deps.notifier.On("Publish", ctx, mock.AnythingOfType("domain.ChangeEvent")).Return().Twice()

	result, err := svc.ReverseEntry(ctx, workplaceID, "entry-1", "posted twice", userID)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "entry-1-REV", reversing.EntryID)
	assert.Equal(t, domain.EntryPosted, reversing.Status)

	// Every line's debit and credit swap places; memos carry the prefix.
	require.Len(t, reversing.Lines, 2)
	assert.True(t, reversing.Lines[0].Debit.IsZero())
	assert.True(t, decimal.NewFromInt(100).Equal(reversing.Lines[0].Credit))
	assert.True(t, decimal.NewFromInt(100).Equal(reversing.Lines[1].Debit))
	assert.True(t, reversing.Lines[1].Credit.IsZero())
	assert.Equal(t, "REVERSAL: memo 1000", reversing.Lines[0].Memo)

	// Totals swap too.
	assert.True(t, original.TotalCredit.Equal(reversing.TotalDebit))
	assert.True(t, original.TotalDebit.Equal(reversing.TotalCredit))

	assert.Equal(t, "entry-1", reversing.Metadata["originalEntryID"])
	assert.Equal(t, "posted twice", reversing.Metadata["reversalReason"])

	deps.repo.AssertExpectations(t)
	deps.notifier.AssertExpectations(t)
}

func TestReverseEntry_AlreadyReversed(t *testing.T) {
	deps, svc := newLedgerService()
	ctx := context.Background()

	reversed := domain.LedgerEntry{
		EntryID:     "entry-1",
		WorkplaceID: "wp-1",
		Status:      domain.EntryReversed,
	}

	deps.authorizer.On("AuthorizeUserAction", ctx, "user-1", "wp-1", domain.RoleMember).Return(nil)
	deps.repo.On("FindEntryByID", ctx, "wp-1", "entry-1").Return(&reversed, nil)

	_, err := svc.ReverseEntry(ctx, "wp-1", "entry-1", "again", "user-1")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	deps.repo.AssertNotCalled(t, "ReverseEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReverseEntry_NotFound(t *testing.T) {
	deps, svc := newLedgerService()
	ctx := context.Background()

	deps.authorizer.On("AuthorizeUserAction", ctx, "user-1", "wp-1", domain.RoleMember).Return(nil)
	deps.repo.On("FindEntryByID", ctx, "wp-1", "missing").Return(nil, apperrors.ErrNotFound)

	_, err := svc.ReverseEntry(ctx, "wp-1", "missing", "oops", "user-1")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReverseEntry_RepositoryFailure(t *testing.T) {
	deps, svc := newLedgerService()
	ctx := context.Background()
	repoErr := errors.New("tx aborted")

	original := domain.LedgerEntry{
		EntryID:     "entry-1",
		WorkplaceID: "wp-1",
		Lines:       []domain.LedgerLine{entryLine("1000", decimal.NewFromInt(5), decimal.Zero)},
		TotalDebit:  decimal.NewFromInt(5),
		Status:      domain.EntryPosted,
	}

	deps.authorizer.On("AuthorizeUserAction", ctx, "user-1", "wp-1", domain.RoleMember).Return(nil)
	deps.repo.On("FindEntryByID", ctx, "wp-1", "entry-1").Return(&original, nil)
	deps.repo.On("ReverseEntry", ctx, original, mock.AnythingOfType("domain.LedgerEntry"), "user-1", mock.AnythingOfType("time.Time")).Return(repoErr)

	_, err := svc.ReverseEntry(ctx, "wp-1", "entry-1", "reason", "user-1")

	assert.ErrorIs(t, err, repoErr)
	deps.notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestListEntries_ClampsLimit(t *testing.T) {
	deps, svc := newLedgerService()
	ctx := context.Background()

	deps.authorizer.On("AuthorizeUserAction", ctx, "user-1", "wp-1", domain.RoleReadOnly).Return(nil)
	deps.repo.On("ListEntries", ctx, "wp-1", 100, (*string)(nil), false).Return([]domain.LedgerEntry{}, nil, nil).Once()
	deps.repo.On("ListEntries", ctx, "wp-1", 50, (*string)(nil), false).Return([]domain.LedgerEntry{}, nil, nil).Once()

	_, err := svc.ListEntries(ctx, "wp-1", "user-1", dto.ListEntriesParams{Limit: 5000})
	require.NoError(t, err)

	_, err = svc.ListEntries(ctx, "wp-1", "user-1", dto.ListEntriesParams{})
	require.NoError(t, err)

	deps.repo.AssertExpectations(t)
}

func TestTrialBalance_AggregatesPostedEntries(t *testing.T) {
	deps, svc := newLedgerService()
	ctx := context.Background()

	entries := []domain.LedgerEntry{
		{
			EntryID: "e1",
			Status:  domain.EntryPosted,
			Lines: []domain.LedgerLine{
				entryLine("1000", decimal.NewFromInt(100), decimal.Zero),
				entryLine("4000", decimal.Zero, decimal.NewFromInt(100)),
			},
		},
	}

	deps.authorizer.On("AuthorizeUserAction", ctx, "user-1", "wp-1", domain.RoleReadOnly).Return(nil)
	deps.repo.On("ListPostedEntries", ctx, "wp-1").Return(entries, nil)

	summary, err := svc.TrialBalance(ctx, "wp-1", "user-1")
	require.NoError(t, err)

	assert.True(t, summary.Balanced)
	assert.True(t, decimal.NewFromInt(100).Equal(summary.TotalDebit))
	require.Len(t, summary.Rows, 2)
}

func TestUnbalancedEntries_FlagsOnlyBeyondTolerance(t *testing.T) {
	deps, svc := newLedgerService()
	ctx := context.Background()

	entries := []domain.LedgerEntry{
		{
			EntryID:     "bad",
			Status:      domain.EntryPosted,
			TotalDebit:  decimal.NewFromInt(100),
			TotalCredit: decimal.NewFromInt(90),
		},
		{
			EntryID:     "boundary",
			Status:      domain.EntryPosted,
			TotalDebit:  decimal.RequireFromString("100.01"),
			TotalCredit: decimal.RequireFromString("100.00"),
		},
		{
			EntryID:     "ok",
			Status:      domain.EntryPosted,
			TotalDebit:  decimal.NewFromInt(50),
			TotalCredit: decimal.NewFromInt(50),
		},
	}

	deps.authorizer.On("AuthorizeUserAction", ctx, "user-1", "wp-1", domain.RoleReadOnly).Return(nil)
	deps.repo.On("ListPostedEntries", ctx, "wp-1").Return(entries, nil)

	unbalanced, err := svc.UnbalancedEntries(ctx, "wp-1", "user-1")
	require.NoError(t, err)

	require.Len(t, unbalanced, 1)
	assert.Equal(t, "bad", unbalanced[0].EntryID)
}
