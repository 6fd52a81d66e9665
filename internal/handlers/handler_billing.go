package handlers

import (
	"net/http"

	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// billingHandler handles HTTP requests for bills, receivables, expenditures,
// payment terms and payment schedules.
type billingHandler struct {
	billingService portssvc.BillingSvcFacade
}

// registerBillingRoutes registers billing routes under a workplace group.
func registerBillingRoutes(wp *gin.RouterGroup, billingService portssvc.BillingSvcFacade) {
	h := &billingHandler{billingService: billingService}

	bills := wp.Group("/bills")
	{
		bills.POST("", h.createBill)
		bills.GET("", h.listBills)
		bills.GET("/:bill_id", h.getBill)
		bills.PUT("/:bill_id", h.updateBill)
		bills.DELETE("/:bill_id", h.deleteBill)
	}

	receivables := wp.Group("/receivables")
	{
		receivables.POST("", h.createReceivable)
		receivables.GET("", h.listReceivables)
		receivables.GET("/:receivable_id", h.getReceivable)
		receivables.PUT("/:receivable_id", h.updateReceivable)
		receivables.DELETE("/:receivable_id", h.deleteReceivable)
	}

	expenditures := wp.Group("/expenditures")
	{
		expenditures.POST("", h.createExpenditure)
		expenditures.GET("", h.listExpenditures)
		expenditures.GET("/:expenditure_id", h.getExpenditure)
		expenditures.PUT("/:expenditure_id", h.updateExpenditure)
		expenditures.DELETE("/:expenditure_id", h.deleteExpenditure)
	}

	terms := wp.Group("/payment-terms")
	{
		terms.POST("", h.createPaymentTerm)
		terms.GET("", h.listPaymentTerms)
		terms.GET("/:term_id", h.getPaymentTerm)
		terms.PUT("/:term_id", h.updatePaymentTerm)
		terms.DELETE("/:term_id", h.deletePaymentTerm)
	}

	schedules := wp.Group("/payment-schedules")
	{
		schedules.POST("", h.createPaymentSchedule)
		schedules.GET("", h.listPaymentSchedules)
		schedules.GET("/:schedule_id", h.getPaymentSchedule)
		schedules.PUT("/:schedule_id", h.updatePaymentSchedule)
		schedules.DELETE("/:schedule_id", h.deletePaymentSchedule)
	}
}

// --- Bills ---

// createBill godoc
// @Summary Record a vendor bill
// @Tags billing
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param bill body dto.CreateBillRequest true "Bill details"
// @Success 201 {object} domain.Bill
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/bills [post]
func (h *billingHandler) createBill(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	bill, err := h.billingService.CreateBill(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create bill")
		return
	}
	c.JSON(http.StatusCreated, bill)
}

// listBills godoc
// @Summary List bills
// @Tags billing
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Success 200 {array} domain.Bill
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/bills [get]
func (h *billingHandler) listBills(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	bills, err := h.billingService.ListBills(c.Request.Context(), c.Param("workplace_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list bills")
		return
	}
	c.JSON(http.StatusOK, bills)
}

// getBill godoc
// @Summary Get a bill
// @Tags billing
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param bill_id path string true "Bill ID"
// @Success 200 {object} domain.Bill
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/bills/{bill_id} [get]
func (h *billingHandler) getBill(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	bill, err := h.billingService.GetBillByID(c.Request.Context(), c.Param("workplace_id"), c.Param("bill_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve bill")
		return
	}
	c.JSON(http.StatusOK, bill)
}

// updateBill godoc
// @Summary Update a bill
// @Tags billing
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param bill_id path string true "Bill ID"
// @Param bill body dto.UpdateBillRequest true "Fields to update"
// @Success 200 {object} domain.Bill
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/bills/{bill_id} [put]
func (h *billingHandler) updateBill(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	bill, err := h.billingService.UpdateBill(c.Request.Context(), c.Param("workplace_id"), c.Param("bill_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update bill")
		return
	}
	c.JSON(http.StatusOK, bill)
}

// deleteBill godoc
// @Summary Delete a bill
// @Tags billing
// @Param workplace_id path string true "Workplace ID"
// @Param bill_id path string true "Bill ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/bills/{bill_id} [delete]
func (h *billingHandler) deleteBill(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.billingService.DeleteBill(c.Request.Context(), c.Param("workplace_id"), c.Param("bill_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete bill")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Receivables ---

func (h *billingHandler) createReceivable(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	receivable, err := h.billingService.CreateReceivable(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create receivable")
		return
	}
	c.JSON(http.StatusCreated, receivable)
}

func (h *billingHandler) listReceivables(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	receivables, err := h.billingService.ListReceivables(c.Request.Context(), c.Param("workplace_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list receivables")
		return
	}
	c.JSON(http.StatusOK, receivables)
}

func (h *billingHandler) getReceivable(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	receivable, err := h.billingService.GetReceivableByID(c.Request.Context(), c.Param("workplace_id"), c.Param("receivable_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve receivable")
		return
	}
	c.JSON(http.StatusOK, receivable)
}

func (h *billingHandler) updateReceivable(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	receivable, err := h.billingService.UpdateReceivable(c.Request.Context(), c.Param("workplace_id"), c.Param("receivable_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update receivable")
		return
	}
	c.JSON(http.StatusOK, receivable)
}

func (h *billingHandler) deleteReceivable(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.billingService.DeleteReceivable(c.Request.Context(), c.Param("workplace_id"), c.Param("receivable_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete receivable")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Expenditures ---

func (h *billingHandler) createExpenditure(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateExpenditureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	expenditure, err := h.billingService.CreateExpenditure(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create expenditure")
		return
	}
	c.JSON(http.StatusCreated, expenditure)
}

func (h *billingHandler) listExpenditures(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	expenditures, err := h.billingService.ListExpenditures(c.Request.Context(), c.Param("workplace_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list expenditures")
		return
	}
	c.JSON(http.StatusOK, expenditures)
}

func (h *billingHandler) getExpenditure(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	expenditure, err := h.billingService.GetExpenditureByID(c.Request.Context(), c.Param("workplace_id"), c.Param("expenditure_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve expenditure")
		return
	}
	c.JSON(http.StatusOK, expenditure)
}

func (h *billingHandler) updateExpenditure(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateExpenditureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	expenditure, err := h.billingService.UpdateExpenditure(c.Request.Context(), c.Param("workplace_id"), c.Param("expenditure_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update expenditure")
		return
	}
	c.JSON(http.StatusOK, expenditure)
}

func (h *billingHandler) deleteExpenditure(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.billingService.DeleteExpenditure(c.Request.Context(), c.Param("workplace_id"), c.Param("expenditure_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete expenditure")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Payment terms ---

func (h *billingHandler) createPaymentTerm(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreatePaymentTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	term, err := h.billingService.CreatePaymentTerm(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create payment term")
		return
	}
	c.JSON(http.StatusCreated, term)
}

func (h *billingHandler) listPaymentTerms(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	terms, err := h.billingService.ListPaymentTerms(c.Request.Context(), c.Param("workplace_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list payment terms")
		return
	}
	c.JSON(http.StatusOK, terms)
}

func (h *billingHandler) getPaymentTerm(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	term, err := h.billingService.GetPaymentTermByID(c.Request.Context(), c.Param("workplace_id"), c.Param("term_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve payment term")
		return
	}
	c.JSON(http.StatusOK, term)
}

func (h *billingHandler) updatePaymentTerm(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdatePaymentTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	term, err := h.billingService.UpdatePaymentTerm(c.Request.Context(), c.Param("workplace_id"), c.Param("term_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update payment term")
		return
	}
	c.JSON(http.StatusOK, term)
}

func (h *billingHandler) deletePaymentTerm(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.billingService.DeletePaymentTerm(c.Request.Context(), c.Param("workplace_id"), c.Param("term_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete payment term")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Payment schedules ---

func (h *billingHandler) createPaymentSchedule(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreatePaymentScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	schedule, err := h.billingService.CreatePaymentSchedule(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create payment schedule")
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

// listPaymentSchedules lists installments, optionally filtered by contract
// via the contractID query parameter.
func (h *billingHandler) listPaymentSchedules(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	schedules, err := h.billingService.ListPaymentSchedules(c.Request.Context(), c.Param("workplace_id"), c.Query("contractID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list payment schedules")
		return
	}
	c.JSON(http.StatusOK, schedules)
}

func (h *billingHandler) getPaymentSchedule(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	schedule, err := h.billingService.GetPaymentScheduleByID(c.Request.Context(), c.Param("workplace_id"), c.Param("schedule_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve payment schedule")
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (h *billingHandler) updatePaymentSchedule(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdatePaymentScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	schedule, err := h.billingService.UpdatePaymentSchedule(c.Request.Context(), c.Param("workplace_id"), c.Param("schedule_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update payment schedule")
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (h *billingHandler) deletePaymentSchedule(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.billingService.DeletePaymentSchedule(c.Request.Context(), c.Param("workplace_id"), c.Param("schedule_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete payment schedule")
		return
	}
	c.Status(http.StatusNoContent)
}
