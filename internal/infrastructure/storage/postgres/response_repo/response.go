// Package response_repo provides the PostgreSQL implementation of the
// quotation response repository. The built DTO is persisted as a JSONB
// payload; the service type tag is duplicated in its own column so listings
// can filter without unmarshaling.
package response_repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"freightdesk/internal/core/apperror"
	"freightdesk/internal/core/id"
	"freightdesk/internal/domain/response"
	"freightdesk/internal/infrastructure/storage/postgres"
)

const responsesTable = "quotation_responses"

// Repo implements response.Repository.
type Repo struct {
	txm *postgres.TxManager
}

// Compile-time interface check.
var _ response.Repository = (*Repo)(nil)

// NewRepo creates a new response repository.
func NewRepo(txm *postgres.TxManager) *Repo {
	return &Repo{txm: txm}
}

func (r *Repo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new response.
func (r *Repo) Create(ctx context.Context, resp *response.Response) error {
	payload, err := json.Marshal(resp.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	sql, args, err := r.builder().
		Insert(responsesTable).
		Columns("id", "version", "created_at", "updated_at", "created_by",
			"quotation_id", "service_type", "payload").
		Values(resp.ID, resp.Version, resp.CreatedAt, resp.UpdatedAt, resp.CreatedBy,
			resp.QuotationID, resp.ServiceType, payload).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert response: %w", err)
	}

	return nil
}

// Update replaces the payload with optimistic locking.
func (r *Repo) Update(ctx context.Context, resp *response.Response) error {
	payload, err := json.Marshal(resp.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	sql, args, err := r.builder().
		Update(responsesTable).
		Set("service_type", resp.ServiceType).
		Set("payload", payload).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": resp.ID}).
		Where(squirrel.Eq{"version": resp.Version - 1}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update response: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(responsesTable, resp.ID)
	}

	return nil
}

// GetByID retrieves a response by ID.
func (r *Repo) GetByID(ctx context.Context, responseID id.ID) (*response.Response, error) {
	sql, args, err := r.baseSelect().
		Where(squirrel.Eq{"id": responseID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	resp, err := r.scanRow(querier.QueryRow(ctx, sql, args...))
	if err == pgx.ErrNoRows {
		return nil, apperror.NewNotFound("response", responseID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("get response: %w", err)
	}

	return resp, nil
}

// ListByQuotation retrieves the responses of a quotation, newest first.
func (r *Repo) ListByQuotation(ctx context.Context, quotationID id.ID, page, size int) ([]response.Response, int64, error) {
	querier := r.txm.GetQuerier(ctx)

	countSQL, countArgs, err := r.builder().
		Select("COUNT(*)").
		From(responsesTable).
		Where(squirrel.Eq{"quotation_id": quotationID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}

	var total int64
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count responses: %w", err)
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"quotation_id": quotationID}).
		OrderBy("id DESC")
	if size > 0 {
		q = q.Limit(uint64(size))
		if page > 0 {
			q = q.Offset(uint64(page * size))
		}
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	var responses []response.Response
	for rows.Next() {
		resp, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan response: %w", err)
		}
		responses = append(responses, *resp)
	}

	return responses, total, rows.Err()
}

func (r *Repo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select("id", "version", "created_at", "updated_at", "created_by",
			"quotation_id", "service_type", "payload").
		From(responsesTable)
}

// scanRow decodes one response row, unmarshaling the JSONB payload.
func (r *Repo) scanRow(row pgx.Row) (*response.Response, error) {
	var resp response.Response
	var payload []byte

	err := row.Scan(
		&resp.ID, &resp.Version, &resp.CreatedAt, &resp.UpdatedAt, &resp.CreatedBy,
		&resp.QuotationID, &resp.ServiceType, &payload,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(payload, &resp.Payload); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}

	return &resp, nil
}
