package handlers

import (
	"net/http"

	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// orgHandler handles HTTP requests for divisions and contracts.
type orgHandler struct {
	orgService portssvc.OrgSvcFacade
}

// registerOrgRoutes registers division and contract routes under a workplace group.
func registerOrgRoutes(wp *gin.RouterGroup, orgService portssvc.OrgSvcFacade) {
	h := &orgHandler{orgService: orgService}

	divisions := wp.Group("/divisions")
	{
		divisions.POST("", h.createDivision)
		divisions.GET("", h.listDivisions)
		divisions.GET("/:division_id", h.getDivision)
		divisions.PUT("/:division_id", h.updateDivision)
		divisions.DELETE("/:division_id", h.deleteDivision)
	}

	contracts := wp.Group("/contracts")
	{
		contracts.POST("", h.createContract)
		contracts.GET("", h.listContracts)
		contracts.GET("/:contract_id", h.getContract)
		contracts.PUT("/:contract_id", h.updateContract)
		contracts.DELETE("/:contract_id", h.deleteContract)
	}
}

// createDivision godoc
// @Summary Create a division
// @Tags org
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param division body dto.CreateDivisionRequest true "Division details"
// @Success 201 {object} domain.Division
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/divisions [post]
func (h *orgHandler) createDivision(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	division, err := h.orgService.CreateDivision(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create division")
		return
	}
	c.JSON(http.StatusCreated, division)
}

func (h *orgHandler) listDivisions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	divisions, err := h.orgService.ListDivisions(c.Request.Context(), c.Param("workplace_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list divisions")
		return
	}
	c.JSON(http.StatusOK, divisions)
}

func (h *orgHandler) getDivision(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	division, err := h.orgService.GetDivisionByID(c.Request.Context(), c.Param("workplace_id"), c.Param("division_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve division")
		return
	}
	c.JSON(http.StatusOK, division)
}

func (h *orgHandler) updateDivision(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	division, err := h.orgService.UpdateDivision(c.Request.Context(), c.Param("workplace_id"), c.Param("division_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update division")
		return
	}
	c.JSON(http.StatusOK, division)
}

// deleteDivision removes a division. Divisions referenced by contracts or
// expenditures cannot be deleted; the service surfaces that as a conflict.
func (h *orgHandler) deleteDivision(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.orgService.DeleteDivision(c.Request.Context(), c.Param("workplace_id"), c.Param("division_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete division")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Contracts ---

// createContract godoc
// @Summary Create a contract
// @Description Creates a contract in DRAFT status. The end date must be after the start date.
// @Tags org
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param contract body dto.CreateContractRequest true "Contract details"
// @Success 201 {object} domain.Contract
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/contracts [post]
func (h *orgHandler) createContract(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	contract, err := h.orgService.CreateContract(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create contract")
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func (h *orgHandler) listContracts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	contracts, err := h.orgService.ListContracts(c.Request.Context(), c.Param("workplace_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list contracts")
		return
	}
	c.JSON(http.StatusOK, contracts)
}

func (h *orgHandler) getContract(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	contract, err := h.orgService.GetContractByID(c.Request.Context(), c.Param("workplace_id"), c.Param("contract_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve contract")
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *orgHandler) updateContract(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	contract, err := h.orgService.UpdateContract(c.Request.Context(), c.Param("workplace_id"), c.Param("contract_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update contract")
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *orgHandler) deleteContract(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.orgService.DeleteContract(c.Request.Context(), c.Param("workplace_id"), c.Param("contract_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete contract")
		return
	}
	c.Status(http.StatusNoContent)
}
