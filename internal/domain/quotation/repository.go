package quotation

import (
	"context"

	"freightdesk/internal/core/id"
)

// ListFilter narrows quotation listings.
type ListFilter struct {
	Status Status
	UserID string
	Search string

	Page int
	Size int
}

// Repository is the persistence contract for quotations.
// Implementations live in infrastructure/storage/postgres.
type Repository interface {
	Create(ctx context.Context, q *Quotation) error
	Update(ctx context.Context, q *Quotation) error
	GetByID(ctx context.Context, quotationID id.ID) (*Quotation, error)
	List(ctx context.Context, filter ListFilter) ([]Quotation, int64, error)

	// SaveProducts replaces the product/variant tree of a quotation.
	// Variants with a server-assigned id are updated, the rest created.
	SaveProducts(ctx context.Context, quotationID id.ID, products []Product) error

	// SetStatus updates only the lifecycle state.
	SetStatus(ctx context.Context, quotationID id.ID, status Status) error
}
