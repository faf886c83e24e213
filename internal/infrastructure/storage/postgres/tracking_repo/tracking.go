// Package tracking_repo provides the PostgreSQL implementation of the
// inspection tracking repository.
package tracking_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"freightdesk/internal/core/apperror"
	"freightdesk/internal/core/id"
	"freightdesk/internal/domain/tracking"
	"freightdesk/internal/infrastructure/storage/postgres"
)

const (
	statusTable = "inspection_status"
	pointsTable = "inspection_route_points"
)

// Repo implements tracking.Repository.
type Repo struct {
	txm *postgres.TxManager
}

// Compile-time interface check.
var _ tracking.Repository = (*Repo)(nil)

// NewRepo creates a new tracking repository.
func NewRepo(txm *postgres.TxManager) *Repo {
	return &Repo{txm: txm}
}

func (r *Repo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// GetStatus returns the current position of an inspection.
func (r *Repo) GetStatus(ctx context.Context, inspectionID id.ID) (*tracking.InspectionStatus, error) {
	sql, args, err := r.builder().
		Select("inspection_id", "current_point", "updated_at").
		From(statusTable).
		Where(squirrel.Eq{"inspection_id": inspectionID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	var status tracking.InspectionStatus
	if err := pgxscan.Get(ctx, querier, &status, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("inspection", inspectionID.String())
		}
		return nil, fmt.Errorf("get inspection status: %w", err)
	}

	return &status, nil
}

// GetHistory returns the recorded route points of an inspection.
func (r *Repo) GetHistory(ctx context.Context, inspectionID id.ID) (map[tracking.Point]tracking.RoutePoint, error) {
	sql, args, err := r.builder().
		Select("point", "completed", "completed_at", "comment").
		From(pointsTable).
		Where(squirrel.Eq{"inspection_id": inspectionID}).
		OrderBy("point").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	var points []tracking.RoutePoint
	if err := pgxscan.Select(ctx, querier, &points, sql, args...); err != nil {
		return nil, fmt.Errorf("get inspection history: %w", err)
	}

	history := make(map[tracking.Point]tracking.RoutePoint, len(points))
	for _, p := range points {
		p.Label = p.Point.Label()
		history[p.Point] = p
	}

	return history, nil
}

// SetStatus records a new position with its route point entry.
func (r *Repo) SetStatus(ctx context.Context, inspectionID id.ID, point tracking.Point, comment string) error {
	querier := r.txm.GetQuerier(ctx)

	if _, err := querier.Exec(ctx, `
		INSERT INTO `+statusTable+` (inspection_id, current_point, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (inspection_id) DO UPDATE SET current_point = $2, updated_at = NOW()
	`, inspectionID, point); err != nil {
		return fmt.Errorf("set inspection status: %w", err)
	}

	if _, err := querier.Exec(ctx, `
		INSERT INTO `+pointsTable+` (inspection_id, point, completed, completed_at, comment)
		VALUES ($1, $2, TRUE, NOW(), $3)
		ON CONFLICT (inspection_id, point) DO UPDATE SET completed = TRUE, completed_at = NOW(), comment = $3
	`, inspectionID, point, comment); err != nil {
		return fmt.Errorf("record route point: %w", err)
	}

	return nil
}
