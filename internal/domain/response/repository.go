package response

import (
	"context"

	"freightdesk/internal/core/id"
)

// Repository is the persistence contract for quotation responses.
// Implementations live in infrastructure/storage/postgres.
type Repository interface {
	Create(ctx context.Context, r *Response) error
	Update(ctx context.Context, r *Response) error
	GetByID(ctx context.Context, responseID id.ID) (*Response, error)
	ListByQuotation(ctx context.Context, quotationID id.ID, page, size int) ([]Response, int64, error)
}
