package handlers

import (
	"github.com/gin-gonic/gin"

	"freightdesk/internal/core/apperror"
	"freightdesk/internal/core/id"
	"freightdesk/internal/domain/quotation"
	"freightdesk/internal/infrastructure/http/v1/dto"
)

// QuotationHandler handles quotation CRUD endpoints.
type QuotationHandler struct {
	*BaseHandler
	service *quotation.Service
}

// NewQuotationHandler creates a new quotation handler.
func NewQuotationHandler(base *BaseHandler, service *quotation.Service) *QuotationHandler {
	return &QuotationHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /quotations
func (h *QuotationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SaveQuotationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	q := quotation.NewQuotation(h.GetUserID(c), req.ServiceType)
	q.Draft = req.Draft
	q.Products = req.Products

	if err := h.service.Create(ctx, q); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, q.ID.String())
}

// Get handles GET /quotations/:id
func (h *QuotationHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	quotationID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid quotation id"))
		return
	}

	q, err := h.service.Get(ctx, quotationID)
	if err != nil {
		h.Error(c, err)
		return
	}

	// Customers only see their own quotations.
	if !h.IsAdmin(c) && q.CreatedBy != h.GetUserID(c) {
		h.Error(c, apperror.NewNotFound("quotation", quotationID.String()))
		return
	}

	h.OK(c, q)
}

// List handles GET /quotations/list
func (h *QuotationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var page dto.PageRequest
	if !h.BindQuery(c, &page) {
		return
	}
	page.Defaults()

	filter := quotation.ListFilter{
		Status: quotation.Status(c.Query("status")),
		Search: c.Query("search"),
		Page:   page.Page,
		Size:   page.Size,
	}
	// Non-admins are scoped to their own quotations.
	if !h.IsAdmin(c) {
		filter.UserID = h.GetUserID(c)
	}

	quotations, total, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.QuotationListItem, 0, len(quotations))
	for i := range quotations {
		items = append(items, dto.NewQuotationListItem(&quotations[i]))
	}

	h.OK(c, dto.NewPageEnvelope(items, page.Page, page.Size, total))
}

// Update handles PATCH /quotations/:id
func (h *QuotationHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	quotationID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid quotation id"))
		return
	}

	var req dto.SaveQuotationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	q, err := h.service.Update(ctx, quotationID, func(q *quotation.Quotation) {
		if req.ServiceType != "" {
			q.ServiceType = req.ServiceType
		}
		q.Draft = req.Draft
		q.Products = req.Products
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, q)
}

// SetStatus handles PATCH /quotations/:id/status
func (h *QuotationHandler) SetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	quotationID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid quotation id"))
		return
	}

	var req dto.StatusUpdateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetStatus(ctx, quotationID, quotation.Status(req.Status)); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "status updated")
}
