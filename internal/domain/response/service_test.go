package response

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdesk/internal/core/apperror"
	appctx "freightdesk/internal/core/context"
	"freightdesk/internal/core/id"
	"freightdesk/internal/core/numerator"
	"freightdesk/internal/core/security"
	"freightdesk/internal/domain/quotation"
)

type txStub struct{}

func (txStub) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// quotationRepoStub holds a single quotation.
type quotationRepoStub struct {
	q *quotation.Quotation
}

func (r *quotationRepoStub) Create(ctx context.Context, q *quotation.Quotation) error { return nil }
func (r *quotationRepoStub) Update(ctx context.Context, q *quotation.Quotation) error { return nil }

func (r *quotationRepoStub) GetByID(ctx context.Context, quotationID id.ID) (*quotation.Quotation, error) {
	if r.q == nil || r.q.ID != quotationID {
		return nil, apperror.NewNotFound("quotation", quotationID.String())
	}
	cp := *r.q
	return &cp, nil
}

func (r *quotationRepoStub) List(ctx context.Context, filter quotation.ListFilter) ([]quotation.Quotation, int64, error) {
	return nil, 0, nil
}

func (r *quotationRepoStub) SaveProducts(ctx context.Context, quotationID id.ID, products []quotation.Product) error {
	return nil
}

func (r *quotationRepoStub) SetStatus(ctx context.Context, quotationID id.ID, status quotation.Status) error {
	r.q.Status = status
	return nil
}

// responseRepoStub is an in-memory response repository.
type responseRepoStub struct {
	responses map[id.ID]*Response
}

func newResponseRepoStub() *responseRepoStub {
	return &responseRepoStub{responses: make(map[id.ID]*Response)}
}

func (r *responseRepoStub) Create(ctx context.Context, resp *Response) error {
	cp := *resp
	r.responses[resp.ID] = &cp
	return nil
}

func (r *responseRepoStub) Update(ctx context.Context, resp *Response) error {
	if _, ok := r.responses[resp.ID]; !ok {
		return apperror.NewNotFound("response", resp.ID.String())
	}
	cp := *resp
	r.responses[resp.ID] = &cp
	return nil
}

func (r *responseRepoStub) GetByID(ctx context.Context, responseID id.ID) (*Response, error) {
	resp, ok := r.responses[responseID]
	if !ok {
		return nil, apperror.NewNotFound("response", responseID.String())
	}
	cp := *resp
	return &cp, nil
}

func (r *responseRepoStub) ListByQuotation(ctx context.Context, quotationID id.ID, page, size int) ([]Response, int64, error) {
	var out []Response
	for _, resp := range r.responses {
		if resp.QuotationID == quotationID {
			out = append(out, *resp)
		}
	}
	return out, int64(len(out)), nil
}

// auditStub counts recorded changes.
type auditStub struct {
	actions []string
}

func (a *auditStub) RecordChange(ctx context.Context, entityType string, entityID id.ID, action, actor string, changes any) error {
	a.actions = append(a.actions, action)
	return nil
}

type fixture struct {
	svc       *Service
	repo      *responseRepoStub
	quotation *quotation.Quotation
	audit     *auditStub
	flags     *security.InMemoryFlags
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	q := quotation.NewQuotation("user-1", "express")
	q.Correlative = "COT-2026-00042"

	flags := security.NewInMemoryFlags()
	flags.SetFlag(security.FlagExpandedResponseShape, true)
	flags.SetFlag(security.FlagLegacyResponseFormat, true)

	repo := newResponseRepoStub()
	audit := &auditStub{}
	quotations := quotation.NewService(&quotationRepoStub{q: q}, &numerator.MockGenerator{}, txStub{})

	return &fixture{
		svc:       NewService(repo, quotations, txStub{}, audit, flags),
		repo:      repo,
		quotation: q,
		audit:     audit,
		flags:     flags,
	}
}

func customerCtx(userID string) context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{UserID: userID, Role: "customer"})
}

func adminCtx(userID string) context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{UserID: userID, Role: "admin", IsAdmin: true})
}

func TestSubmit_MarksQuotationAnswered(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Submit(context.Background(), f.quotation.ID, ShapePending, BuildInput{})
	require.NoError(t, err)

	assert.Equal(t, ServicePending, resp.ServiceType)
	assert.Equal(t, f.quotation.ID, resp.QuotationID)
	assert.Equal(t, "COT-2026-00042", resp.Payload.QuotationInfo.Correlative)
	assert.Equal(t, quotation.StatusAnswered, f.quotation.Status)
	assert.Equal(t, []string{"create"}, f.audit.actions)
}

func TestSubmit_CompleteShape(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Submit(context.Background(), f.quotation.ID, ShapeComplete, completeInput())
	require.NoError(t, err)

	assert.Equal(t, ServiceExpress, resp.ServiceType)
	assert.NoError(t, resp.Validate(context.Background()))
}

func TestSubmit_ClosedQuotationRejected(t *testing.T) {
	f := newFixture(t)
	f.quotation.Status = quotation.StatusCompleted

	_, err := f.svc.Submit(context.Background(), f.quotation.ID, ShapePending, BuildInput{})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeQuotationClosed, appErr.Code)
}

func TestSubmit_UnknownShape(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), f.quotation.ID, Shape("partial"), BuildInput{})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestUpdate_RebuildsPayload(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Submit(context.Background(), f.quotation.ID, ShapePending, BuildInput{})
	require.NoError(t, err)

	updated, err := f.svc.Update(context.Background(), f.quotation.ID, resp.ID, ShapeComplete, completeInput())
	require.NoError(t, err)

	assert.Equal(t, ServiceExpress, updated.ServiceType)
	assert.Equal(t, []string{"create", "update"}, f.audit.actions)

	stored, err := f.repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, ServiceExpress, stored.ServiceType)
}

func TestUpdate_WrongQuotationIsNotFound(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Submit(context.Background(), f.quotation.ID, ShapePending, BuildInput{})
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), id.New(), resp.ID, ShapePending, BuildInput{})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGet_ScopedToOwningCustomer(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Submit(context.Background(), f.quotation.ID, ShapePending, BuildInput{})
	require.NoError(t, err)

	// The quotation belongs to user-1; other customers see nothing.
	_, err = f.svc.Get(customerCtx("intruder"), resp.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	got, err := f.svc.Get(customerCtx("user-1"), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)

	_, err = f.svc.Get(adminCtx("admin-1"), resp.ID)
	require.NoError(t, err)
}

func TestList_ScopedToOwningCustomer(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), f.quotation.ID, ShapePending, BuildInput{})
	require.NoError(t, err)

	_, _, err = f.svc.List(customerCtx("intruder"), f.quotation.ID, 0, 10)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	items, total, err := f.svc.List(customerCtx("user-1"), f.quotation.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
}

func TestLegacy_ScopedToOwningCustomer(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Submit(context.Background(), f.quotation.ID, ShapeComplete, completeInput())
	require.NoError(t, err)

	_, err = f.svc.Legacy(customerCtx("intruder"), resp.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.svc.Legacy(customerCtx("user-1"), resp.ID)
	require.NoError(t, err)
}

func TestLegacy_RequiresFlag(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Submit(context.Background(), f.quotation.ID, ShapeComplete, completeInput())
	require.NoError(t, err)

	legacy, err := f.svc.Legacy(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(ServiceExpress), legacy.ServiceType)

	f.flags.SetFlag(security.FlagLegacyResponseFormat, false)
	_, err = f.svc.Legacy(context.Background(), resp.ID)
	require.Error(t, err)
}

func TestBuild_FlagFallsBackToOlderShape(t *testing.T) {
	f := newFixture(t)
	f.flags.SetFlag(security.FlagExpandedResponseShape, false)

	resp, err := f.svc.Submit(context.Background(), f.quotation.ID, ShapeComplete, completeInput())
	require.NoError(t, err)

	// The older shape omits the expanded blocks.
	require.NotNil(t, resp.Payload.ResponseData.Complete)
	assert.Nil(t, resp.Payload.ResponseData.Complete.GeneralInformation)
	assert.Nil(t, resp.Payload.ResponseData.Complete.QuoteSummary)
}
