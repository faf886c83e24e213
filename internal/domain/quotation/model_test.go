package quotation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdesk/internal/core/apperror"
)

func validQuotation() *Quotation {
	q := NewQuotation("u1", "express")
	q.Products = []Product{
		{
			Name: "Thermal mugs",
			Variants: []Variant{
				{ClientID: "c1", Quantity: 5, Attachments: []string{"https://cdn.example.com/a.jpg"}},
			},
		},
	}
	return q
}

func TestQuotationValidate_OK(t *testing.T) {
	assert.NoError(t, validQuotation().Validate(context.Background()))
}

func TestQuotationValidate_RequiresProducts(t *testing.T) {
	q := NewQuotation("u1", "express")
	err := q.Validate(context.Background())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestQuotationValidate_RequiresProductName(t *testing.T) {
	q := validQuotation()
	q.Products[0].Name = ""
	assert.Error(t, q.Validate(context.Background()))
}

func TestQuotationValidate_RequiresVariants(t *testing.T) {
	q := validQuotation()
	q.Products[0].Variants = nil
	assert.Error(t, q.Validate(context.Background()))
}

func TestQuotationValidate_QuantityNeedsImage(t *testing.T) {
	q := validQuotation()
	q.Products[0].Variants[0].Attachments = nil

	err := q.Validate(context.Background())
	require.Error(t, err)
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, apperror.CodeMissingVariantImage, appErr.Code)

	// A staged upload satisfies the requirement before promotion.
	q.Products[0].Variants[0].Files = []string{"staging/b.jpg"}
	assert.NoError(t, q.Validate(context.Background()))
}

func TestQuotationValidate_ZeroQuantityNeedsNoImage(t *testing.T) {
	q := validQuotation()
	q.Products[0].Variants[0].Quantity = 0
	q.Products[0].Variants[0].Attachments = nil
	q.Products[0].Variants = append(q.Products[0].Variants,
		Variant{ClientID: "c2", Quantity: 3, Attachments: []string{"https://cdn.example.com/c.jpg"}})

	assert.NoError(t, q.Validate(context.Background()))
}

func TestQuotationValidate_ZeroTotalQuantityBlocked(t *testing.T) {
	q := validQuotation()
	q.Products[0].Variants[0].Quantity = 0
	assert.Error(t, q.Validate(context.Background()))
}

func TestQuotationValidate_DraftSkipsSubmissionRules(t *testing.T) {
	q := validQuotation()
	q.Draft = true
	q.Products[0].Variants[0].Quantity = 0
	q.Products[0].Variants[0].Attachments = nil
	assert.NoError(t, q.Validate(context.Background()))
}

func TestQuotationCanModify(t *testing.T) {
	q := validQuotation()
	assert.NoError(t, q.CanModify())

	for _, st := range []Status{StatusCompleted, StatusCancelled} {
		q.Status = st
		err := q.CanModify()
		require.Error(t, err)
		appErr, _ := apperror.AsAppError(err)
		assert.Equal(t, apperror.CodeQuotationClosed, appErr.Code)
	}

	for _, st := range []Status{StatusPending, StatusAnswered, StatusObserved} {
		q.Status = st
		assert.NoError(t, q.CanModify())
	}
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, Status("shipped").Valid())
}
