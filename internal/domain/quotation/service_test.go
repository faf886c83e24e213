package quotation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdesk/internal/core/apperror"
	appctx "freightdesk/internal/core/context"
	"freightdesk/internal/core/id"
	"freightdesk/internal/core/numerator"
)

// txStub runs the function without a real transaction.
type txStub struct{}

func (txStub) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memRepo is an in-memory quotation repository for service tests.
type memRepo struct {
	quotations map[id.ID]*Quotation
	products   map[id.ID][]Product
}

func newMemRepo() *memRepo {
	return &memRepo{
		quotations: make(map[id.ID]*Quotation),
		products:   make(map[id.ID][]Product),
	}
}

func (r *memRepo) Create(ctx context.Context, q *Quotation) error {
	cp := *q
	r.quotations[q.ID] = &cp
	return nil
}

func (r *memRepo) Update(ctx context.Context, q *Quotation) error {
	if _, ok := r.quotations[q.ID]; !ok {
		return apperror.NewNotFound("quotation", q.ID.String())
	}
	cp := *q
	cp.Version++
	r.quotations[q.ID] = &cp
	q.Version = cp.Version
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, quotationID id.ID) (*Quotation, error) {
	q, ok := r.quotations[quotationID]
	if !ok {
		return nil, apperror.NewNotFound("quotation", quotationID.String())
	}
	cp := *q
	cp.Products = r.products[quotationID]
	return &cp, nil
}

func (r *memRepo) List(ctx context.Context, filter ListFilter) ([]Quotation, int64, error) {
	var out []Quotation
	for _, q := range r.quotations {
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		if filter.UserID != "" && q.CreatedBy != filter.UserID {
			continue
		}
		out = append(out, *q)
	}
	return out, int64(len(out)), nil
}

func (r *memRepo) SaveProducts(ctx context.Context, quotationID id.ID, products []Product) error {
	r.products[quotationID] = products
	return nil
}

func (r *memRepo) SetStatus(ctx context.Context, quotationID id.ID, status Status) error {
	q, ok := r.quotations[quotationID]
	if !ok {
		return apperror.NewNotFound("quotation", quotationID.String())
	}
	q.Status = status
	return nil
}

func testProducts() []Product {
	return []Product{
		{
			Name: "Ceramic mugs",
			Variants: []Variant{
				{ClientID: "v1", Quantity: 500, Attachments: []string{"https://cdn.example.com/mug.jpg"}},
			},
		},
	}
}

func userCtx(userID string) context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{UserID: userID, Role: "customer"})
}

func adminCtx(userID string) context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{UserID: userID, Role: "admin", IsAdmin: true})
}

func TestCreate_GeneratesCorrelative(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &numerator.MockGenerator{}, txStub{})

	q := NewQuotation("user-1", "express")
	q.Products = testProducts()

	err := svc.Create(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, "COT-2026-00001", q.Correlative)
	assert.Equal(t, StatusPending, q.Status)

	stored, err := repo.GetByID(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Correlative, stored.Correlative)
	assert.Len(t, stored.Products, 1)
}

func TestCreate_OwnerFromContext(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &numerator.MockGenerator{}, txStub{})

	q := NewQuotation("", "express")
	q.Products = testProducts()

	err := svc.Create(userCtx("user-7"), q)
	require.NoError(t, err)
	assert.Equal(t, "user-7", q.CreatedBy)
}

func TestCreate_RejectsVariantWithoutImage(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &numerator.MockGenerator{}, txStub{})

	q := NewQuotation("user-1", "express")
	q.Products = []Product{
		{Name: "Mugs", Variants: []Variant{{Quantity: 10}}},
	}

	err := svc.Create(context.Background(), q)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeMissingVariantImage, appErr.Code)
}

func TestCreate_DraftSkipsImageRule(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &numerator.MockGenerator{}, txStub{})

	q := NewQuotation("user-1", "express")
	q.Draft = true
	q.Products = []Product{
		{Name: "Mugs", Variants: []Variant{{Quantity: 10}}},
	}

	require.NoError(t, svc.Create(context.Background(), q))
}

func TestUpdate_ClosedQuotationRejected(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &numerator.MockGenerator{}, txStub{})

	q := NewQuotation("user-1", "express")
	q.Products = testProducts()
	require.NoError(t, svc.Create(context.Background(), q))
	require.NoError(t, repo.SetStatus(context.Background(), q.ID, StatusCompleted))

	_, err := svc.Update(context.Background(), q.ID, func(q *Quotation) {
		q.Draft = false
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeQuotationClosed, appErr.Code)
}

func TestUpdate_ForeignQuotationIsNotFound(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &numerator.MockGenerator{}, txStub{})

	q := NewQuotation("alice", "express")
	q.Products = testProducts()
	require.NoError(t, svc.Create(context.Background(), q))

	_, err := svc.Update(userCtx("mallory"), q.ID, func(q *Quotation) {
		q.Products[0].Name = "Hijacked"
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	// The stored tree is untouched.
	stored, err := repo.GetByID(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ceramic mugs", stored.Products[0].Name)
}

func TestUpdate_OwnerAndAdminAllowed(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &numerator.MockGenerator{}, txStub{})

	q := NewQuotation("alice", "express")
	q.Products = testProducts()
	require.NoError(t, svc.Create(context.Background(), q))

	_, err := svc.Update(userCtx("alice"), q.ID, func(q *Quotation) {
		q.Products[0].Comment = "owner edit"
	})
	require.NoError(t, err)

	_, err = svc.Update(adminCtx("admin-1"), q.ID, func(q *Quotation) {
		q.Products[0].AdminComment = "admin edit"
	})
	require.NoError(t, err)
}

func TestSetStatus_UnknownStatus(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &numerator.MockGenerator{}, txStub{})

	err := svc.SetStatus(context.Background(), id.New(), Status("frozen"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestList_UnknownStatusFilter(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &numerator.MockGenerator{}, txStub{})

	_, _, err := svc.List(context.Background(), ListFilter{Status: Status("bogus")})
	require.Error(t, err)
}

func TestMarkAnswered(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &numerator.MockGenerator{}, txStub{})

	q := NewQuotation("user-1", "express")
	q.Products = testProducts()
	require.NoError(t, svc.Create(context.Background(), q))

	require.NoError(t, svc.MarkAnswered(context.Background(), q.ID))

	stored, err := repo.GetByID(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAnswered, stored.Status)
}
