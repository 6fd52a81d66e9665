package handlers

import (
	"net/http"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// workplaceHandler handles HTTP requests related to workplaces and membership.
type workplaceHandler struct {
	workplaceService portssvc.WorkplaceSvcFacade
}

// registerWorkplaceRoutes registers workplace CRUD and membership routes.
func registerWorkplaceRoutes(rg *gin.RouterGroup, workplaceService portssvc.WorkplaceSvcFacade) {
	h := &workplaceHandler{workplaceService: workplaceService}

	workplaces := rg.Group("/workplaces")
	{
		workplaces.POST("", h.createWorkplace)
		workplaces.GET("", h.listWorkplaces)
		workplaces.GET("/:workplace_id", h.getWorkplace)
		workplaces.POST("/:workplace_id/activate", h.activateWorkplace)
		workplaces.POST("/:workplace_id/deactivate", h.deactivateWorkplace)

		workplaces.GET("/:workplace_id/users", h.listWorkplaceUsers)
		workplaces.POST("/:workplace_id/users", h.addUserToWorkplace)
		workplaces.DELETE("/:workplace_id/users/:user_id", h.removeUserFromWorkplace)
		workplaces.PUT("/:workplace_id/users/:user_id/role", h.updateUserRole)
	}
}

// createWorkplace godoc
// @Summary Create a workplace
// @Description Creates a workplace with the caller as its admin.
// @Tags workplaces
// @Accept json
// @Produce json
// @Param workplace body dto.CreateWorkplaceRequest true "Workplace details"
// @Success 201 {object} dto.WorkplaceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces [post]
func (h *workplaceHandler) createWorkplace(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateWorkplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	workplace, err := h.workplaceService.CreateWorkplace(c.Request.Context(), req.Name, req.Description, req.DefaultCurrencyCode, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create workplace")
		return
	}
	c.JSON(http.StatusCreated, dto.ToWorkplaceResponse(workplace))
}

// listWorkplaces godoc
// @Summary List the caller's workplaces
// @Tags workplaces
// @Produce json
// @Param includeDisabled query bool false "Include deactivated workplaces"
// @Success 200 {array} dto.WorkplaceResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces [get]
func (h *workplaceHandler) listWorkplaces(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	includeDisabled := c.Query("includeDisabled") == "true"

	workplaces, err := h.workplaceService.ListUserWorkplaces(c.Request.Context(), userID, includeDisabled)
	if err != nil {
		respondServiceError(c, err, "Failed to list workplaces")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkplaceResponses(workplaces))
}

// getWorkplace godoc
// @Summary Get a workplace
// @Tags workplaces
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Success 200 {object} dto.WorkplaceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id} [get]
func (h *workplaceHandler) getWorkplace(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	workplaceID := c.Param("workplace_id")
	if err := h.workplaceService.AuthorizeUserAction(c.Request.Context(), userID, workplaceID, domain.RoleReadOnly); err != nil {
		respondServiceError(c, err, "Failed to retrieve workplace")
		return
	}

	workplace, err := h.workplaceService.FindWorkplaceByID(c.Request.Context(), workplaceID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve workplace")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkplaceResponse(workplace))
}

// activateWorkplace godoc
// @Summary Activate a workplace
// @Tags workplaces
// @Param workplace_id path string true "Workplace ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/activate [post]
func (h *workplaceHandler) activateWorkplace(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.workplaceService.ActivateWorkplace(c.Request.Context(), c.Param("workplace_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to activate workplace")
		return
	}
	c.Status(http.StatusNoContent)
}

// deactivateWorkplace godoc
// @Summary Deactivate a workplace
// @Tags workplaces
// @Param workplace_id path string true "Workplace ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/deactivate [post]
func (h *workplaceHandler) deactivateWorkplace(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.workplaceService.DeactivateWorkplace(c.Request.Context(), c.Param("workplace_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to deactivate workplace")
		return
	}
	c.Status(http.StatusNoContent)
}

// listWorkplaceUsers godoc
// @Summary List workplace members
// @Tags workplaces
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Success 200 {array} domain.UserWorkplace
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/users [get]
func (h *workplaceHandler) listWorkplaceUsers(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	members, err := h.workplaceService.ListWorkplaceUsers(c.Request.Context(), c.Param("workplace_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list workplace users")
		return
	}
	c.JSON(http.StatusOK, members)
}

// addUserToWorkplace godoc
// @Summary Add a member to a workplace
// @Tags workplaces
// @Accept json
// @Param workplace_id path string true "Workplace ID"
// @Param member body dto.AddUserToWorkplaceRequest true "Member details"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/users [post]
func (h *workplaceHandler) addUserToWorkplace(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.AddUserToWorkplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.workplaceService.AddUserToWorkplace(c.Request.Context(), userID, req.UserID, c.Param("workplace_id"), req.Role); err != nil {
		respondServiceError(c, err, "Failed to add user to workplace")
		return
	}
	c.Status(http.StatusNoContent)
}

// removeUserFromWorkplace godoc
// @Summary Remove a member from a workplace
// @Tags workplaces
// @Param workplace_id path string true "Workplace ID"
// @Param user_id path string true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/users/{user_id} [delete]
func (h *workplaceHandler) removeUserFromWorkplace(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.workplaceService.RemoveUserFromWorkplace(c.Request.Context(), userID, c.Param("user_id"), c.Param("workplace_id")); err != nil {
		respondServiceError(c, err, "Failed to remove user from workplace")
		return
	}
	c.Status(http.StatusNoContent)
}

// updateUserRole godoc
// @Summary Change a member's role
// @Tags workplaces
// @Accept json
// @Param workplace_id path string true "Workplace ID"
// @Param user_id path string true "User ID"
// @Param role body dto.AddUserToWorkplaceRequest true "New role (userID ignored)"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/users/{user_id}/role [put]
func (h *workplaceHandler) updateUserRole(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req struct {
		Role domain.UserWorkplaceRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.workplaceService.UpdateUserWorkplaceRole(c.Request.Context(), userID, c.Param("user_id"), c.Param("workplace_id"), req.Role); err != nil {
		respondServiceError(c, err, "Failed to update user role")
		return
	}
	c.Status(http.StatusNoContent)
}
