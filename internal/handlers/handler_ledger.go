package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for the accounting ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// registerLedgerRoutes registers ledger routes under a workplace group.
func registerLedgerRoutes(wp *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: ledgerService}

	ledger := wp.Group("/ledger")
	{
		ledger.POST("/entries", h.postEntry)
		ledger.GET("/entries", h.listEntries)
		ledger.GET("/entries/:entry_id", h.getEntry)
		ledger.POST("/entries/:entry_id/reverse", h.reverseEntry)
		ledger.GET("/trial-balance", h.trialBalance)
		ledger.GET("/unbalanced", h.unbalancedEntries)
	}
}

// postEntry godoc
// @Summary Post a ledger entry
// @Description Records a new entry; totals are computed server-side from the lines.
// @Tags ledger
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Duplicate entry ID"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/ledger/entries [post]
func (h *ledgerHandler) postEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.ledgerService.PostEntry(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to post entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List ledger entries
// @Description Returns entries newest first with keyset pagination. Reversed entries are hidden unless includeReversed is set.
// @Tags ledger
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param limit query int false "Page size (max 100)"
// @Param nextToken query string false "Pagination token from previous page"
// @Param includeReversed query bool false "Include reversed entries"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/ledger/entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListEntriesParams
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	params.IncludeReversed = c.Query("includeReversed") == "true"
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	page, err := h.ledgerService.ListEntries(c.Request.Context(), c.Param("workplace_id"), userID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, page)
}

// getEntry godoc
// @Summary Get a ledger entry
// @Tags ledger
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/ledger/entries/{entry_id} [get]
func (h *ledgerHandler) getEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), c.Param("workplace_id"), c.Param("entry_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a ledger entry
// @Description Creates a counter-entry swapping debits and credits and marks the original REVERSED. Both writes happen in one transaction.
// @Tags ledger
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param entry_id path string true "Entry ID"
// @Param reversal body dto.ReverseEntryRequest true "Reversal reason"
// @Success 201 {object} dto.EntryResponse "The reversing entry"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry is not in POSTED status"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/ledger/entries/{entry_id}/reverse [post]
func (h *ledgerHandler) reverseEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	reversing, err := h.ledgerService.ReverseEntry(c.Request.Context(), c.Param("workplace_id"), c.Param("entry_id"), req.Reason, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to reverse entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversing))
}

// trialBalance godoc
// @Summary Trial balance report
// @Description Aggregates all posted entries into per-account totals, recomputed in full.
// @Tags ledger
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/ledger/trial-balance [get]
func (h *ledgerHandler) trialBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	summary, err := h.ledgerService.TrialBalance(c.Request.Context(), c.Param("workplace_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to compute trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(summary))
}

// unbalancedEntries godoc
// @Summary List unbalanced entries
// @Description Returns posted entries whose own debit and credit totals diverge beyond the rounding tolerance.
// @Tags ledger
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Success 200 {array} dto.EntryResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/ledger/unbalanced [get]
func (h *ledgerHandler) unbalancedEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entries, err := h.ledgerService.UnbalancedEntries(c.Request.Context(), c.Param("workplace_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to scan for unbalanced entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponses(entries))
}
