package response

import (
	"context"

	"freightdesk/internal/core/apperror"
	"freightdesk/internal/core/entity"
	"freightdesk/internal/core/id"
)

// Response is a persisted administrator response to a quotation. The full
// built DTO is stored as the payload; the tag is duplicated in its own column
// for filtering.
type Response struct {
	entity.BaseEntity

	QuotationID id.ID       `db:"quotation_id" json:"quotationId"`
	ServiceType ServiceType `db:"service_type" json:"serviceType"`
	Payload     ResponseDTO `db:"payload" json:"payload"`
}

// NewResponse wraps a built DTO for persistence.
func NewResponse(quotationID id.ID, advisorID string, dto ResponseDTO) *Response {
	r := &Response{
		BaseEntity:  entity.NewBaseEntity(),
		QuotationID: quotationID,
		ServiceType: dto.ServiceType,
		Payload:     dto,
	}
	r.CreatedBy = advisorID
	return r
}

// Validate implements entity.Validatable.
func (r *Response) Validate(ctx context.Context) error {
	if id.IsNil(r.QuotationID) {
		return apperror.NewValidation("quotation is required").
			WithDetail("field", "quotationId")
	}
	switch r.ServiceType {
	case ServicePending, ServiceExpress, ServiceMaritime:
	default:
		return apperror.NewValidation("unknown service type").
			WithDetail("serviceType", string(r.ServiceType))
	}
	if r.ServiceType != r.Payload.ServiceType {
		return apperror.NewValidation("payload tag does not match response tag").
			WithDetail("serviceType", string(r.ServiceType)).
			WithDetail("payload", string(r.Payload.ServiceType))
	}
	return nil
}
