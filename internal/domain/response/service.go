package response

import (
	"context"
	"fmt"

	"freightdesk/internal/core/apperror"
	appctx "freightdesk/internal/core/context"
	"freightdesk/internal/core/id"
	"freightdesk/internal/core/security"
	"freightdesk/internal/core/tx"
	"freightdesk/internal/domain/quotation"
	"freightdesk/pkg/logger"
)

// ChangeRecorder captures who changed which response. The postgres audit
// store implements it; tests use a no-op.
type ChangeRecorder interface {
	RecordChange(ctx context.Context, entityType string, entityID id.ID, action, actor string, changes any) error
}

// Shape selects the build path for a submission.
type Shape string

const (
	ShapePending  Shape = "pending"
	ShapeComplete Shape = "complete"
)

// Service orchestrates building, persisting, and projecting responses.
type Service struct {
	repo       Repository
	quotations *quotation.Service
	director   *Director
	txManager  tx.Manager
	audit      ChangeRecorder
	flags      security.FeatureFlagProvider
}

// NewService creates a response service.
func NewService(
	repo Repository,
	quotations *quotation.Service,
	txManager tx.Manager,
	audit ChangeRecorder,
	flags security.FeatureFlagProvider,
) *Service {
	return &Service{
		repo:       repo,
		quotations: quotations,
		director:   NewDirector(),
		txManager:  txManager,
		audit:      audit,
		flags:      flags,
	}
}

// build runs the director path matching the requested shape. The expanded
// complete shape is the default; the older one is kept behind a flag for
// consumers that have not migrated.
func (s *Service) build(ctx context.Context, shape Shape, in BuildInput) (ResponseDTO, error) {
	switch shape {
	case ShapePending:
		return s.director.BuildForPendingService(in), nil
	case ShapeComplete:
		if s.flags != nil && !s.flags.IsEnabled(ctx, security.FlagExpandedResponseShape) {
			return s.director.BuildForCompleteService(in), nil
		}
		return s.director.BuildForCompleteServiceExpanded(in), nil
	default:
		return ResponseDTO{}, apperror.NewValidation("unknown response shape").
			WithDetail("shape", string(shape))
	}
}

// Submit builds and persists a new response, then marks the quotation
// answered. The build itself never fails for data gaps; only validation of
// the resulting envelope or persistence can.
func (s *Service) Submit(ctx context.Context, quotationID id.ID, shape Shape, in BuildInput) (*Response, error) {
	q, err := s.quotations.Get(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if err := q.CanModify(); err != nil {
		return nil, err
	}

	in.QuotationID = quotationID.String()
	if in.Correlative == "" {
		in.Correlative = q.Correlative
	}

	dto, err := s.build(ctx, shape, in)
	if err != nil {
		return nil, err
	}

	actor := appctx.GetUserID(ctx)
	resp := NewResponse(quotationID, actor, dto)
	if err := resp.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, resp); err != nil {
			return fmt.Errorf("create response: %w", err)
		}
		if err := s.quotations.MarkAnswered(ctx, quotationID); err != nil {
			return fmt.Errorf("mark quotation answered: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		if err := s.audit.RecordChange(ctx, "quotation_response", resp.ID, "create", actor, dto); err != nil {
			logger.Warn(ctx, "audit record failed", "response_id", resp.ID.String(), "error", err)
		}
	}

	logger.Info(ctx, "response submitted",
		"quotation_id", quotationID.String(),
		"response_id", resp.ID.String(),
		"service_type", string(dto.ServiceType),
	)
	return resp, nil
}

// Update rebuilds an existing response from fresh form state.
func (s *Service) Update(ctx context.Context, quotationID, responseID id.ID, shape Shape, in BuildInput) (*Response, error) {
	resp, err := s.repo.GetByID(ctx, responseID)
	if err != nil {
		return nil, err
	}
	if resp.QuotationID != quotationID {
		return nil, apperror.NewNotFound("response", responseID.String())
	}

	in.QuotationID = quotationID.String()
	if in.Correlative == "" {
		in.Correlative = resp.Payload.QuotationInfo.Correlative
	}

	dto, err := s.build(ctx, shape, in)
	if err != nil {
		return nil, err
	}

	resp.ServiceType = dto.ServiceType
	resp.Payload = dto
	resp.Touch()
	if err := resp.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, resp)
	})
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		actor := appctx.GetUserID(ctx)
		if err := s.audit.RecordChange(ctx, "quotation_response", resp.ID, "update", actor, dto); err != nil {
			logger.Warn(ctx, "audit record failed", "response_id", resp.ID.String(), "error", err)
		}
	}
	return resp, nil
}

// authorizeRead rejects customers reading responses for quotations they do
// not own. Administrators read everything; a context without an authenticated
// user is an internal call and passes.
func (s *Service) authorizeRead(ctx context.Context, quotationID id.ID) error {
	if appctx.IsAdmin(ctx) {
		return nil
	}
	userID := appctx.GetUserID(ctx)
	if userID == "" {
		return nil
	}
	q, err := s.quotations.Get(ctx, quotationID)
	if err != nil {
		return err
	}
	if q.CreatedBy != userID {
		return apperror.NewNotFound("quotation", quotationID.String())
	}
	return nil
}

// Get loads one response. Denied reads report the response as not found so
// that foreign quotations do not leak.
func (s *Service) Get(ctx context.Context, responseID id.ID) (*Response, error) {
	resp, err := s.repo.GetByID(ctx, responseID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(ctx, resp.QuotationID); err != nil {
		return nil, apperror.NewNotFound("response", responseID.String())
	}
	return resp, nil
}

// List returns a page of responses for a quotation.
func (s *Service) List(ctx context.Context, quotationID id.ID, page, size int) ([]Response, int64, error) {
	if err := s.authorizeRead(ctx, quotationID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByQuotation(ctx, quotationID, page, size)
}

// Legacy projects a stored response into the pre-migration contract.
// Served only while the migration flag is on.
func (s *Service) Legacy(ctx context.Context, responseID id.ID) (LegacyResponse, error) {
	if s.flags == nil || !s.flags.IsEnabled(ctx, security.FlagLegacyResponseFormat) {
		return LegacyResponse{}, apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"legacy response format is no longer served",
		)
	}
	resp, err := s.Get(ctx, responseID)
	if err != nil {
		return LegacyResponse{}, err
	}
	return AdaptToLegacyFormat(resp.Payload), nil
}
