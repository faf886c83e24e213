package tracking

import (
	"context"

	"freightdesk/internal/core/apperror"
	"freightdesk/internal/core/id"
	"freightdesk/internal/core/security"
	"freightdesk/pkg/logger"
)

// Service provides tracking operations over the 13-point pipeline.
type Service struct {
	repo  Repository
	flags security.FeatureFlagProvider
}

// NewService creates a tracking service.
func NewService(repo Repository, flags security.FeatureFlagProvider) *Service {
	return &Service{repo: repo, flags: flags}
}

// Route returns the full route view of an inspection.
func (s *Service) Route(ctx context.Context, inspectionID id.ID) ([]RoutePoint, error) {
	status, err := s.repo.GetStatus(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.GetHistory(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	return Route(inspectionID, status.Current, history), nil
}

// UpdateStatus moves an inspection to a new pipeline point. Positions are
// monotonically non-decreasing: a regression is rejected unless the caller
// forces it and force-updates are enabled, in which case it is logged and
// applied.
func (s *Service) UpdateStatus(ctx context.Context, inspectionID id.ID, point Point, comment string, force bool) error {
	if !point.Valid() {
		return apperror.NewValidation("tracking point out of range").
			WithDetail("point", int(point)).
			WithDetail("pipeline_length", PipelineLength)
	}

	status, err := s.repo.GetStatus(ctx, inspectionID)
	if err != nil {
		return err
	}

	if point < status.Current {
		allowForce := force && s.flags != nil && s.flags.IsEnabled(ctx, security.FlagTrackingForceUpdates)
		if !allowForce {
			return apperror.NewStatusRegression(inspectionID.String(), int(status.Current), int(point))
		}
		logger.Warn(ctx, "forced tracking status regression",
			"inspection_id", inspectionID.String(),
			"from", int(status.Current),
			"to", int(point),
		)
	}

	return s.repo.SetStatus(ctx, inspectionID, point, comment)
}
