package handlers

import (
	"io"
	"strings"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/platform/events"
	"github.com/gin-gonic/gin"
)

// eventHandler streams row-level change notifications to clients over SSE.
type eventHandler struct {
	authorizer portssvc.WorkplaceAuthorizerSvc
	hub        *events.Hub
}

// registerEventRoutes registers the change-feed route under a workplace group.
func registerEventRoutes(wp *gin.RouterGroup, authorizer portssvc.WorkplaceAuthorizerSvc, hub *events.Hub) {
	h := &eventHandler{authorizer: authorizer, hub: hub}
	wp.GET("/events", h.streamEvents)
}

// streamEvents godoc
// @Summary Subscribe to change events
// @Description Server-sent event stream of row-level changes in the workplace. Events are re-fetch triggers, not a reliable delta feed; a slow consumer may miss events.
// @Tags events
// @Produce text/event-stream
// @Param workplace_id path string true "Workplace ID"
// @Param tables query string false "Comma-separated table names to filter on"
// @Success 200 "SSE stream"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/events [get]
func (h *eventHandler) streamEvents(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	workplaceID := c.Param("workplace_id")
	if err := h.authorizer.AuthorizeUserAction(c.Request.Context(), userID, workplaceID, domain.RoleReadOnly); err != nil {
		respondServiceError(c, err, "Failed to subscribe")
		return
	}

	var tables []string
	if raw := c.Query("tables"); raw != "" {
		tables = strings.Split(raw, ",")
	}

	ch, cancel := h.hub.Subscribe(workplaceID, tables)
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case event, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent("change", event)
			return true
		case <-clientGone:
			return false
		}
	})
}
