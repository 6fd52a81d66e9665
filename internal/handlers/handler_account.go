package handlers

import (
	"net/http"

	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests for the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// registerAccountRoutes registers account routes under a workplace group.
func registerAccountRoutes(wp *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := &accountHandler{accountService: accountService}

	accounts := wp.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:account_id", h.getAccount)
		accounts.PUT("/:account_id", h.updateAccount)
		accounts.POST("/:account_id/deactivate", h.deactivateAccount)
	}
}

// createAccount godoc
// @Summary Create an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Duplicate account code"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Success 200 {array} dto.AccountResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	accounts, err := h.accountService.ListAccounts(c.Request.Context(), c.Param("workplace_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// getAccount godoc
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param account_id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/accounts/{account_id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("workplace_id"), c.Param("account_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param account_id path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/accounts/{account_id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("workplace_id"), c.Param("account_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Marks the account inactive. Admin only.
// @Tags accounts
// @Param workplace_id path string true "Workplace ID"
// @Param account_id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/accounts/{account_id}/deactivate [post]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("workplace_id"), c.Param("account_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to deactivate account")
		return
	}
	c.Status(http.StatusNoContent)
}
