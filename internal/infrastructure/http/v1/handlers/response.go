package handlers

import (
	"github.com/gin-gonic/gin"

	"freightdesk/internal/core/apperror"
	"freightdesk/internal/core/id"
	"freightdesk/internal/domain/response"
	"freightdesk/internal/infrastructure/http/v1/dto"
)

// ResponseHandler handles quotation response endpoints.
type ResponseHandler struct {
	*BaseHandler
	service *response.Service
}

// NewResponseHandler creates a new response handler.
func NewResponseHandler(base *BaseHandler, service *response.Service) *ResponseHandler {
	return &ResponseHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Submit handles POST /quotation-responses/quotation/:quotationId/complete-response
func (h *ResponseHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	quotationID, err := id.Parse(c.Param("quotationId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid quotation id"))
		return
	}

	var req dto.SubmitResponseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Submit(ctx, quotationID, req.ShapeValue(), req.ToBuildInput(h.GetUserID(c)))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, resp.ID.String())
}

// Update handles PATCH /quotation-responses/update-responses/:quotationId/:responseId
func (h *ResponseHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	quotationID, err := id.Parse(c.Param("quotationId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid quotation id"))
		return
	}
	responseID, err := id.Parse(c.Param("responseId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid response id"))
		return
	}

	var req dto.SubmitResponseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Update(ctx, quotationID, responseID, req.ShapeValue(), req.ToBuildInput(h.GetUserID(c)))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, resp.Payload)
}

// Get handles GET /quotation-responses/detail/:responseId
func (h *ResponseHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	responseID, err := id.Parse(c.Param("responseId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid response id"))
		return
	}

	resp, err := h.service.Get(ctx, responseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, resp.Payload)
}

// List handles GET /quotation-responses/list/:quotationId
func (h *ResponseHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	quotationID, err := id.Parse(c.Param("quotationId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid quotation id"))
		return
	}

	var page dto.PageRequest
	if !h.BindQuery(c, &page) {
		return
	}
	page.Defaults()

	responses, total, err := h.service.List(ctx, quotationID, page.Page, page.Size)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.ResponseListItem, 0, len(responses))
	for i := range responses {
		items = append(items, dto.NewResponseListItem(&responses[i]))
	}

	h.OK(c, dto.NewPageEnvelope(items, page.Page, page.Size, total))
}

// Legacy handles GET /quotation-responses/detail/:responseId/legacy
func (h *ResponseHandler) Legacy(c *gin.Context) {
	ctx := c.Request.Context()

	responseID, err := id.Parse(c.Param("responseId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid response id"))
		return
	}

	legacy, err := h.service.Legacy(ctx, responseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, legacy)
}
