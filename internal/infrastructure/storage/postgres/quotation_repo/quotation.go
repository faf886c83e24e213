// Package quotation_repo provides the PostgreSQL implementation of the
// quotation repository.
package quotation_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"freightdesk/internal/core/apperror"
	"freightdesk/internal/core/id"
	"freightdesk/internal/domain/quotation"
	"freightdesk/internal/infrastructure/storage/postgres"
)

const (
	quotationsTable = "quotations"
	productsTable   = "quotation_products"
	variantsTable   = "quotation_variants"
)

// Repo implements quotation.Repository.
type Repo struct {
	txm        *postgres.TxManager
	selectCols []string
}

// Compile-time interface check.
var _ quotation.Repository = (*Repo)(nil)

// NewRepo creates a new quotation repository.
func NewRepo(txm *postgres.TxManager) *Repo {
	return &Repo{
		txm:        txm,
		selectCols: postgres.ExtractDBColumns[quotation.Quotation](),
	}
}

// builder returns a new squirrel builder.
func (r *Repo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new quotation header. Products are saved separately via
// SaveProducts so both run inside the caller's transaction.
func (r *Repo) Create(ctx context.Context, q *quotation.Quotation) error {
	data := postgres.StructToMap(q)

	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert(quotationsTable).
		SetMap(filtered).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert quotation: %w", err)
	}

	return nil
}

// Update updates the quotation header with optimistic locking.
func (r *Repo) Update(ctx context.Context, q *quotation.Quotation) error {
	data := postgres.StructToMap(q)

	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		switch col {
		case "id", "created_at", "created_by", "version", "updated_at":
			continue // immutable or managed by repo
		}
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().
		Update(quotationsTable).
		SetMap(filtered).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": q.ID}).
		Where(squirrel.Eq{"version": q.Version - 1}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update quotation: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(quotationsTable, q.ID)
	}

	return nil
}

// GetByID retrieves a quotation with its full product tree.
func (r *Repo) GetByID(ctx context.Context, quotationID id.ID) (*quotation.Quotation, error) {
	sql, args, err := r.builder().
		Select(r.selectCols...).
		From(quotationsTable).
		Where(squirrel.Eq{"id": quotationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	var q quotation.Quotation
	if err := pgxscan.Get(ctx, querier, &q, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("quotation", quotationID.String())
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}

	products, err := r.loadProducts(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	q.Products = products

	return &q, nil
}

// List retrieves quotations matching the filter, newest first.
func (r *Repo) List(ctx context.Context, filter quotation.ListFilter) ([]quotation.Quotation, int64, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(quotationsTable)

	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.UserID != "" {
		q = q.Where(squirrel.Eq{"created_by": filter.UserID})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"correlative": "%" + filter.Search + "%"})
	}

	countSQL, countArgs, err := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	var total int64
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count quotations: %w", err)
	}

	// UUIDv7 ids are time-ordered, so id DESC is newest first.
	q = q.OrderBy("id DESC")
	if filter.Size > 0 {
		q = q.Limit(uint64(filter.Size))
		if filter.Page > 0 {
			q = q.Offset(uint64(filter.Page * filter.Size))
		}
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}

	var quotations []quotation.Quotation
	if err := pgxscan.Select(ctx, querier, &quotations, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list quotations: %w", err)
	}

	for i := range quotations {
		products, err := r.loadProducts(ctx, quotations[i].ID)
		if err != nil {
			return nil, 0, err
		}
		quotations[i].Products = products
	}

	return quotations, total, nil
}

// SaveProducts replaces the product/variant tree of a quotation. Variants
// carrying a server-assigned id keep it, the rest get a fresh one.
func (r *Repo) SaveProducts(ctx context.Context, quotationID id.ID, products []quotation.Product) error {
	querier := r.txm.GetQuerier(ctx)

	// Variants go first because of the FK.
	if _, err := querier.Exec(ctx,
		"DELETE FROM "+variantsTable+" WHERE product_id IN (SELECT id FROM "+productsTable+" WHERE quotation_id = $1)",
		quotationID,
	); err != nil {
		return fmt.Errorf("delete existing variants: %w", err)
	}
	if _, err := querier.Exec(ctx,
		"DELETE FROM "+productsTable+" WHERE quotation_id = $1",
		quotationID,
	); err != nil {
		return fmt.Errorf("delete existing products: %w", err)
	}

	if len(products) == 0 {
		return nil
	}

	productQ := r.builder().
		Insert(productsTable).
		Columns("id", "quotation_id", "position", "name", "url", "comment", "admin_comment", "quoted")
	variantQ := r.builder().
		Insert(variantsTable).
		Columns("id", "product_id", "position", "size", "presentation", "model", "color", "quantity", "quoted", "attachments")

	haveVariants := false
	for pi := range products {
		p := &products[pi]
		if p.ProductID == "" {
			p.ProductID = id.New().String()
		}
		productQ = productQ.Values(
			p.ProductID, quotationID, pi, p.Name, p.URL, p.Comment, p.AdminComment, p.Quoted,
		)

		for vi := range p.Variants {
			v := &p.Variants[vi]
			if v.VariantID == "" {
				v.VariantID = id.New().String()
			}
			haveVariants = true
			variantQ = variantQ.Values(
				v.VariantID, p.ProductID, vi,
				v.Size, v.Presentation, v.Model, v.Color,
				v.Quantity, v.Quoted, v.Attachments,
			)
		}
	}

	sql, args, err := productQ.ToSql()
	if err != nil {
		return fmt.Errorf("build insert products: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert products: %w", err)
	}

	if haveVariants {
		sql, args, err = variantQ.ToSql()
		if err != nil {
			return fmt.Errorf("build insert variants: %w", err)
		}
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert variants: %w", err)
		}
	}

	return nil
}

// SetStatus updates only the lifecycle state.
func (r *Repo) SetStatus(ctx context.Context, quotationID id.ID, status quotation.Status) error {
	sql, args, err := r.builder().
		Update(quotationsTable).
		Set("status", status).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": quotationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set status: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("quotation", quotationID.String())
	}

	return nil
}

// loadProducts assembles the product tree of one quotation.
func (r *Repo) loadProducts(ctx context.Context, quotationID id.ID) ([]quotation.Product, error) {
	querier := r.txm.GetQuerier(ctx)

	sql, args, err := r.builder().
		Select("id", "name", "url", "comment", "admin_comment", "quoted").
		From(productsTable).
		Where(squirrel.Eq{"quotation_id": quotationID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build products query: %w", err)
	}

	var products []quotation.Product
	if err := pgxscan.Select(ctx, querier, &products, sql, args...); err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	for i := range products {
		p := &products[i]

		sql, args, err := r.builder().
			Select("id", "size", "presentation", "model", "color", "quantity", "quoted", "attachments").
			From(variantsTable).
			Where(squirrel.Eq{"product_id": p.ProductID}).
			OrderBy("position").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build variants query: %w", err)
		}

		if err := pgxscan.Select(ctx, querier, &p.Variants, sql, args...); err != nil {
			return nil, fmt.Errorf("load variants: %w", err)
		}
	}

	return products, nil
}
