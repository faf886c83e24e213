// Package quotation provides the customer quotation aggregate: a request for
// product pricing with its products and variants, moving through a fixed
// status lifecycle as administrators respond.
package quotation

import (
	"context"

	"freightdesk/internal/core/apperror"
	"freightdesk/internal/core/entity"
)

// Status is the quotation lifecycle state. Status is mutated only by
// administrator responses; completed and cancelled quotations are immutable.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAnswered  Status = "answered"
	StatusObserved  Status = "observed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Closed reports whether the quotation can no longer be modified.
func (s Status) Closed() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAnswered, StatusObserved, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Variant is one orderable variation of a product.
//
// ClientID is assigned by the submitting client and is ephemeral; VariantID is
// server-assigned and empty until first persisted. A non-empty VariantID on
// submission means "update this variant", an empty one means "create".
type Variant struct {
	ClientID  string `db:"-" json:"id"`
	VariantID string `db:"id" json:"variantId,omitempty"`

	Size         string `db:"size" json:"size,omitempty"`
	Presentation string `db:"presentation" json:"presentation,omitempty"`
	Model        string `db:"model" json:"model,omitempty"`
	Color        string `db:"color" json:"color,omitempty"`

	Quantity int64 `db:"quantity" json:"quantity"`
	Quoted   bool  `db:"quoted" json:"seCotiza"`

	// Attachments are uploaded image URLs. Files are staged object keys not
	// yet promoted to attachments; they count toward the image requirement.
	Attachments []string `db:"attachments" json:"attachments"`
	Files       []string `db:"-" json:"files,omitempty"`
}

// HasImage reports whether the variant carries at least one image.
func (v *Variant) HasImage() bool {
	return len(v.Attachments) > 0 || len(v.Files) > 0
}

// Product is one requested product within a quotation.
type Product struct {
	ProductID    string `db:"id" json:"productId,omitempty"`
	Name         string `db:"name" json:"name"`
	URL          string `db:"url" json:"url,omitempty"`
	Comment      string `db:"comment" json:"comment,omitempty"`
	AdminComment string `db:"admin_comment" json:"adminComment,omitempty"`
	Quoted       bool   `db:"quoted" json:"seCotiza"`

	Variants []Variant `db:"-" json:"variants"`
}

// Quotation is a customer request for pricing.
type Quotation struct {
	entity.BaseEntity

	Correlative string `db:"correlative" json:"correlative"`
	Status      Status `db:"status" json:"status"`
	ServiceType string `db:"service_type" json:"serviceType"`
	Draft       bool   `db:"draft" json:"draft"`

	Products []Product `db:"-" json:"products"`
}

// NewQuotation creates a pending quotation owned by userID.
func NewQuotation(userID, serviceType string) *Quotation {
	q := &Quotation{
		BaseEntity:  entity.NewBaseEntity(),
		Status:      StatusPending,
		ServiceType: serviceType,
	}
	q.CreatedBy = userID
	return q
}

// CanModify checks the immutability rule.
func (q *Quotation) CanModify() error {
	if q.Status.Closed() {
		return apperror.NewQuotationClosed(q.ID.String(), string(q.Status))
	}
	return nil
}

// Validate implements entity.Validatable. Draft quotations skip the
// submission rules: they only need a well-formed product list.
func (q *Quotation) Validate(ctx context.Context) error {
	if len(q.Products) == 0 {
		return apperror.NewValidation("at least one product is required").
			WithDetail("field", "products")
	}

	var totalQuantity int64
	for i := range q.Products {
		p := &q.Products[i]
		if p.Name == "" {
			return apperror.NewValidation("product name is required").
				WithDetail("field", "products").
				WithDetail("index", i)
		}
		if len(p.Variants) == 0 {
			return apperror.NewValidation("a product needs at least one variant").
				WithDetail("field", "products").
				WithDetail("product", p.Name)
		}
		for j := range p.Variants {
			v := &p.Variants[j]
			if v.Quantity < 0 {
				return apperror.NewValidation("variant quantity cannot be negative").
					WithDetail("product", p.Name).
					WithDetail("variant", j)
			}
			totalQuantity += v.Quantity
			if q.Draft {
				continue
			}
			if v.Quantity > 0 && !v.HasImage() {
				return apperror.NewBusinessRule(
					apperror.CodeMissingVariantImage,
					"a variant with quantity needs at least one image",
				).WithDetail("product", p.Name).WithDetail("variant", j)
			}
		}
	}

	if !q.Draft && totalQuantity == 0 {
		return apperror.NewValidation("total quantity must be greater than zero").
			WithDetail("field", "products")
	}

	return nil
}
