package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/apperrors"
	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/bizdesk/bizdesk_backend/internal/middleware"
	"github.com/bizdesk/bizdesk_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) PostEntry(ctx context.Context, workplaceID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, workplaceID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ReverseEntry(ctx context.Context, workplaceID, entryID, reason, requestingUserID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, workplaceID, entryID, reason, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) GetEntryByID(ctx context.Context, workplaceID, entryID, requestingUserID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, workplaceID, entryID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, workplaceID, requestingUserID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, workplaceID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockLedgerService) TrialBalance(ctx context.Context, workplaceID, requestingUserID string) (domain.TrialBalanceSummary, error) {
	args := m.Called(ctx, workplaceID, requestingUserID)
	return args.Get(0).(domain.TrialBalanceSummary), args.Error(1)
}

func (m *MockLedgerService) UnbalancedEntries(ctx context.Context, workplaceID, requestingUserID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, workplaceID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	jwtSecret         string
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLedgerService = new(MockLedgerService)

	wp := suite.router.Group("/api/v1/workplaces/:workplace_id")
	registerLedgerRoutes(wp, suite.mockLedgerService)
}

func (suite *LedgerHandlerTestSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(userID, suite.jwtSecret, time.Hour, "bizdesk-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *LedgerHandlerTestSuite) authedRequest(method, url string, body any, userID string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LedgerHandlerTestSuite) TestPostEntry_Success() {
	workplaceID := uuid.NewString()
	userID := uuid.NewString()

	reqBody := dto.CreateEntryRequest{
		SourceType: domain.SourceSale,
		SourceID:   "sale-1",
		Lines: []dto.LedgerLineRequest{
			{AccountCode: "1000", Debit: decimal.NewFromInt(100), CurrencyCode: "USD"},
			{AccountCode: "4000", Credit: decimal.NewFromInt(100), CurrencyCode: "USD"},
		},
	}

	created := &domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		WorkplaceID: workplaceID,
		SourceType:  domain.SourceSale,
		SourceID:    "sale-1",
		TotalDebit:  decimal.NewFromInt(100),
		TotalCredit: decimal.NewFromInt(100),
		Status:      domain.EntryPosted,
	}

	suite.mockLedgerService.On("PostEntry",
		mock.Anything, workplaceID, mock.AnythingOfType("dto.CreateEntryRequest"), userID,
	).Return(created, nil).Once()

	url := fmt.Sprintf("/api/v1/workplaces/%s/ledger/entries", workplaceID)
	w := suite.authedRequest(http.MethodPost, url, reqBody, userID)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.EntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.EntryID, resp.EntryID)
	suite.Equal("POSTED", resp.Status)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestPostEntry_ValidationError() {
	workplaceID := uuid.NewString()
	userID := uuid.NewString()

	// Missing lines entirely, binding rejects before the service is reached.
	url := fmt.Sprintf("/api/v1/workplaces/%s/ledger/entries", workplaceID)
	w := suite.authedRequest(http.MethodPost, url, map[string]any{"sourceType": "SALE"}, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestPostEntry_Unauthenticated() {
	url := "/api/v1/workplaces/wp-1/ledger/entries"
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(nil))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestReverseEntry_Success() {
	workplaceID := uuid.NewString()
	userID := uuid.NewString()
	entryID := uuid.NewString()

	reversing := &domain.LedgerEntry{
		EntryID:     entryID + "-REV",
		WorkplaceID: workplaceID,
		Status:      domain.EntryPosted,
	}

	suite.mockLedgerService.On("ReverseEntry",
		mock.Anything, workplaceID, entryID, "duplicate posting", userID,
	).Return(reversing, nil).Once()

	url := fmt.Sprintf("/api/v1/workplaces/%s/ledger/entries/%s/reverse", workplaceID, entryID)
	w := suite.authedRequest(http.MethodPost, url, dto.ReverseEntryRequest{Reason: "duplicate posting"}, userID)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.EntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entryID+"-REV", resp.EntryID)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestReverseEntry_Conflict() {
	workplaceID := uuid.NewString()
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockLedgerService.On("ReverseEntry",
		mock.Anything, workplaceID, entryID, "again", userID,
	).Return(nil, apperrors.ErrConflict).Once()

	url := fmt.Sprintf("/api/v1/workplaces/%s/ledger/entries/%s/reverse", workplaceID, entryID)
	w := suite.authedRequest(http.MethodPost, url, dto.ReverseEntryRequest{Reason: "again"}, userID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetEntry_NotFound() {
	workplaceID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockLedgerService.On("GetEntryByID",
		mock.Anything, workplaceID, "missing", userID,
	).Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/workplaces/%s/ledger/entries/missing", workplaceID)
	w := suite.authedRequest(http.MethodGet, url, nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestListEntries_PassesParams() {
	workplaceID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockLedgerService.On("ListEntries",
		mock.Anything, workplaceID, userID,
		mock.MatchedBy(func(p dto.ListEntriesParams) bool {
			return p.Limit == 10 && p.IncludeReversed
		}),
	).Return(&dto.ListEntriesResponse{Entries: []dto.EntryResponse{}}, nil).Once()

	url := fmt.Sprintf("/api/v1/workplaces/%s/ledger/entries?limit=10&includeReversed=true", workplaceID)
	w := suite.authedRequest(http.MethodGet, url, nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestTrialBalance_Success() {
	workplaceID := uuid.NewString()
	userID := uuid.NewString()

	summary := domain.TrialBalanceSummary{
		Rows: []domain.TrialBalanceRow{
			{AccountCode: "1000", Debit: decimal.NewFromInt(100), Credit: decimal.Zero, Balance: decimal.NewFromInt(100)},
			{AccountCode: "4000", Debit: decimal.Zero, Credit: decimal.NewFromInt(100), Balance: decimal.NewFromInt(-100)},
		},
		TotalDebit:  decimal.NewFromInt(100),
		TotalCredit: decimal.NewFromInt(100),
		Balanced:    true,
	}

	suite.mockLedgerService.On("TrialBalance", mock.Anything, workplaceID, userID).Return(summary, nil).Once()

	url := fmt.Sprintf("/api/v1/workplaces/%s/ledger/trial-balance", workplaceID)
	w := suite.authedRequest(http.MethodGet, url, nil, userID)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.TrialBalanceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balanced)
	suite.Len(resp.Rows, 2)
	suite.Equal("1000", resp.Rows[0].AccountCode)
}

func (suite *LedgerHandlerTestSuite) TestUnbalanced_Forbidden() {
	workplaceID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockLedgerService.On("UnbalancedEntries", mock.Anything, workplaceID, userID).
		Return(nil, apperrors.ErrForbidden).Once()

	url := fmt.Sprintf("/api/v1/workplaces/%s/ledger/unbalanced", workplaceID)
	w := suite.authedRequest(http.MethodGet, url, nil, userID)

	suite.Equal(http.StatusForbidden, w.Code)
}

func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
