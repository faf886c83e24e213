package quotation

import (
	"context"
	"fmt"
	"time"

	"freightdesk/internal/core/apperror"
	appctx "freightdesk/internal/core/context"
	"freightdesk/internal/core/id"
	"freightdesk/internal/core/numerator"
	"freightdesk/internal/core/tx"
	"freightdesk/pkg/logger"
)

// NumeratorStrategy for quotation correlatives. Correlatives are
// customer-facing, so gaps are acceptable but ordering matters.
const NumeratorStrategy = numerator.StrategyStrict

// Service provides business operations for quotations.
type Service struct {
	repo      Repository
	numerator numerator.Generator
	txManager tx.Manager
}

// NewService creates a quotation service.
func NewService(repo Repository, gen numerator.Generator, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		numerator: gen,
		txManager: txManager,
	}
}

// Create validates and persists a new quotation. Draft quotations skip the
// submission rules. The correlative is generated when empty.
func (s *Service) Create(ctx context.Context, q *Quotation) error {
	if err := q.Validate(ctx); err != nil {
		return err
	}

	if q.CreatedBy == "" {
		q.CreatedBy = appctx.GetUserID(ctx)
	}

	if q.Correlative == "" {
		cfg := numerator.DefaultConfig("COT")
		correlative, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
		if err != nil {
			return fmt.Errorf("generate correlative: %w", err)
		}
		q.Correlative = correlative
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, q); err != nil {
			return fmt.Errorf("create quotation: %w", err)
		}
		if err := s.repo.SaveProducts(ctx, q.ID, q.Products); err != nil {
			return fmt.Errorf("save products: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "quotation created",
		"quotation_id", q.ID.String(),
		"correlative", q.Correlative,
		"draft", q.Draft,
	)
	return nil
}

// authorize rejects callers that may not act on q. Administrators act on
// everything; customers only on their own quotations. A context without an
// authenticated user is an internal call and passes. Foreign quotations are
// reported as not found so their existence does not leak.
func authorize(ctx context.Context, q *Quotation) error {
	if appctx.IsAdmin(ctx) {
		return nil
	}
	userID := appctx.GetUserID(ctx)
	if userID == "" || userID == q.CreatedBy {
		return nil
	}
	return apperror.NewNotFound("quotation", q.ID.String())
}

// Update applies a partial update to an open quotation. Products, when
// present, replace the stored tree; a draft being submitted revalidates under
// the full submission rules.
func (s *Service) Update(ctx context.Context, quotationID id.ID, apply func(*Quotation)) (*Quotation, error) {
	q, err := s.repo.GetByID(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if err := authorize(ctx, q); err != nil {
		return nil, err
	}
	if err := q.CanModify(); err != nil {
		return nil, err
	}

	apply(q)

	if err := q.Validate(ctx); err != nil {
		return nil, err
	}
	q.Touch()

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, q); err != nil {
			return fmt.Errorf("update quotation: %w", err)
		}
		if err := s.repo.SaveProducts(ctx, q.ID, q.Products); err != nil {
			return fmt.Errorf("save products: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

// Get loads a quotation with its product tree.
func (s *Service) Get(ctx context.Context, quotationID id.ID) (*Quotation, error) {
	return s.repo.GetByID(ctx, quotationID)
}

// List returns a page of quotations plus the total match count.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Quotation, int64, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, apperror.NewValidation("unknown status filter").
			WithDetail("status", string(filter.Status))
	}
	return s.repo.List(ctx, filter)
}

// MarkAnswered transitions a quotation after an administrator response.
func (s *Service) MarkAnswered(ctx context.Context, quotationID id.ID) error {
	q, err := s.repo.GetByID(ctx, quotationID)
	if err != nil {
		return err
	}
	if err := q.CanModify(); err != nil {
		return err
	}
	return s.repo.SetStatus(ctx, quotationID, StatusAnswered)
}

// SetStatus applies an explicit administrator status change.
func (s *Service) SetStatus(ctx context.Context, quotationID id.ID, status Status) error {
	if !status.Valid() {
		return apperror.NewValidation("unknown status").WithDetail("status", string(status))
	}
	q, err := s.repo.GetByID(ctx, quotationID)
	if err != nil {
		return err
	}
	if err := q.CanModify(); err != nil {
		return err
	}
	logger.Info(ctx, "quotation status change",
		"quotation_id", quotationID.String(),
		"from", string(q.Status),
		"to", string(status),
	)
	return s.repo.SetStatus(ctx, quotationID, status)
}
