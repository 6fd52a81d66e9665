package handlers

import (
	"net/http"

	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// fleetHandler handles HTTP requests for vehicles, fuel records and inspections.
type fleetHandler struct {
	fleetService portssvc.FleetSvcFacade
}

// registerFleetRoutes registers fleet routes under a workplace group.
func registerFleetRoutes(wp *gin.RouterGroup, fleetService portssvc.FleetSvcFacade) {
	h := &fleetHandler{fleetService: fleetService}

	vehicles := wp.Group("/vehicles")
	{
		vehicles.POST("", h.createVehicle)
		vehicles.GET("", h.listVehicles)
		vehicles.GET("/:vehicle_id", h.getVehicle)
		vehicles.PUT("/:vehicle_id", h.updateVehicle)
		vehicles.DELETE("/:vehicle_id", h.deleteVehicle)
	}

	fuel := wp.Group("/fuel-records")
	{
		fuel.POST("", h.createFuelRecord)
		fuel.GET("", h.listFuelRecords)
		fuel.GET("/:record_id", h.getFuelRecord)
		fuel.PUT("/:record_id", h.updateFuelRecord)
		fuel.DELETE("/:record_id", h.deleteFuelRecord)
	}

	inspections := wp.Group("/inspections")
	{
		inspections.POST("", h.createInspection)
		inspections.GET("", h.listInspections)
		inspections.GET("/:inspection_id", h.getInspection)
		inspections.PUT("/:inspection_id", h.updateInspection)
		inspections.DELETE("/:inspection_id", h.deleteInspection)
	}
}

// createVehicle godoc
// @Summary Register a vehicle
// @Tags fleet
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param vehicle body dto.CreateVehicleRequest true "Vehicle details"
// @Success 201 {object} domain.Vehicle
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Duplicate plate number"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/vehicles [post]
func (h *fleetHandler) createVehicle(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	vehicle, err := h.fleetService.CreateVehicle(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create vehicle")
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func (h *fleetHandler) listVehicles(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	vehicles, err := h.fleetService.ListVehicles(c.Request.Context(), c.Param("workplace_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list vehicles")
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func (h *fleetHandler) getVehicle(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	vehicle, err := h.fleetService.GetVehicleByID(c.Request.Context(), c.Param("workplace_id"), c.Param("vehicle_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve vehicle")
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// updateVehicle godoc
// @Summary Update a vehicle
// @Description Updates vehicle fields. Odometer readings may only increase.
// @Tags fleet
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param vehicle_id path string true "Vehicle ID"
// @Param vehicle body dto.UpdateVehicleRequest true "Fields to update"
// @Success 200 {object} domain.Vehicle
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/vehicles/{vehicle_id} [put]
func (h *fleetHandler) updateVehicle(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	vehicle, err := h.fleetService.UpdateVehicle(c.Request.Context(), c.Param("workplace_id"), c.Param("vehicle_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update vehicle")
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *fleetHandler) deleteVehicle(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.fleetService.DeleteVehicle(c.Request.Context(), c.Param("workplace_id"), c.Param("vehicle_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete vehicle")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Fuel records ---

func (h *fleetHandler) createFuelRecord(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateFuelRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	record, err := h.fleetService.CreateFuelRecord(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create fuel record")
		return
	}
	c.JSON(http.StatusCreated, record)
}

// listFuelRecords lists fuel records, optionally filtered to one vehicle via
// the vehicleID query parameter.
func (h *fleetHandler) listFuelRecords(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	records, err := h.fleetService.ListFuelRecords(c.Request.Context(), c.Param("workplace_id"), c.Query("vehicleID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list fuel records")
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *fleetHandler) getFuelRecord(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	record, err := h.fleetService.GetFuelRecordByID(c.Request.Context(), c.Param("workplace_id"), c.Param("record_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve fuel record")
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *fleetHandler) updateFuelRecord(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateFuelRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	record, err := h.fleetService.UpdateFuelRecord(c.Request.Context(), c.Param("workplace_id"), c.Param("record_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update fuel record")
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *fleetHandler) deleteFuelRecord(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.fleetService.DeleteFuelRecord(c.Request.Context(), c.Param("workplace_id"), c.Param("record_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete fuel record")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Inspections ---

func (h *fleetHandler) createInspection(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	inspection, err := h.fleetService.CreateInspection(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create inspection")
		return
	}
	c.JSON(http.StatusCreated, inspection)
}

func (h *fleetHandler) listInspections(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	inspections, err := h.fleetService.ListInspections(c.Request.Context(), c.Param("workplace_id"), c.Query("vehicleID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list inspections")
		return
	}
	c.JSON(http.StatusOK, inspections)
}

func (h *fleetHandler) getInspection(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	inspection, err := h.fleetService.GetInspectionByID(c.Request.Context(), c.Param("workplace_id"), c.Param("inspection_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve inspection")
		return
	}
	c.JSON(http.StatusOK, inspection)
}

func (h *fleetHandler) updateInspection(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	inspection, err := h.fleetService.UpdateInspection(c.Request.Context(), c.Param("workplace_id"), c.Param("inspection_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update inspection")
		return
	}
	c.JSON(http.StatusOK, inspection)
}

func (h *fleetHandler) deleteInspection(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.fleetService.DeleteInspection(c.Request.Context(), c.Param("workplace_id"), c.Param("inspection_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete inspection")
		return
	}
	c.Status(http.StatusNoContent)
}
