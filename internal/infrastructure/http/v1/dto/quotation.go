package dto

import (
	"freightdesk/internal/domain/quotation"
)

// SaveQuotationRequest is the body for creating or updating a quotation.
// Product and variant shapes are shared with the domain model, which already
// carries the wire contract in its json tags.
// Field naming is uneven on purpose: service_type is snake_case while
// saveAsDraft is camelCase, matching what clients already send.
type SaveQuotationRequest struct {
	ServiceType string              `json:"service_type"`
	Draft       bool                `json:"saveAsDraft"`
	Products    []quotation.Product `json:"products" binding:"required"`
}

// StatusUpdateRequest changes a quotation's lifecycle state.
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// QuotationListItem is the listing projection: the header without the
// product tree.
type QuotationListItem struct {
	ID           string `json:"id"`
	Correlative  string `json:"correlative"`
	Status       string `json:"status"`
	ServiceType  string `json:"serviceType"`
	Draft        bool   `json:"draft"`
	CreatedBy    string `json:"createdBy,omitempty"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
	ProductCount int    `json:"productCount"`
}

// NewQuotationListItem projects a quotation for listings.
func NewQuotationListItem(q *quotation.Quotation) QuotationListItem {
	return QuotationListItem{
		ID:           q.ID.String(),
		Correlative:  q.Correlative,
		Status:       string(q.Status),
		ServiceType:  q.ServiceType,
		Draft:        q.Draft,
		CreatedBy:    q.CreatedBy,
		CreatedAt:    q.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    q.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		ProductCount: len(q.Products),
	}
}
