package handlers

import (
	"github.com/gin-gonic/gin"

	"freightdesk/internal/core/apperror"
	"freightdesk/internal/core/id"
	"freightdesk/internal/domain/tracking"
	"freightdesk/internal/infrastructure/http/v1/dto"
)

// TrackingHandler handles inspection tracking endpoints.
type TrackingHandler struct {
	*BaseHandler
	service *tracking.Service
}

// NewTrackingHandler creates a new tracking handler.
func NewTrackingHandler(base *BaseHandler, service *tracking.Service) *TrackingHandler {
	return &TrackingHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Route handles GET /inspections/:id/tracking/route
func (h *TrackingHandler) Route(c *gin.Context) {
	ctx := c.Request.Context()

	inspectionID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid inspection id"))
		return
	}

	route, err := h.service.Route(ctx, inspectionID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, route)
}

// UpdateStatus handles PUT /inspections/:id/tracking/status
func (h *TrackingHandler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()

	inspectionID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid inspection id"))
		return
	}

	var req dto.UpdateTrackingRequest
	if !h.BindJSON(c, &req) {
		return
	}

	// Only administrators may force an out-of-order point.
	force := req.Force && h.IsAdmin(c)

	if err := h.service.UpdateStatus(ctx, inspectionID, tracking.Point(req.Point), req.Comment, force); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "status updated")
}
