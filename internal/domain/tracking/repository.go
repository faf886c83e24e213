package tracking

import (
	"context"

	"freightdesk/internal/core/id"
)

// Repository is the persistence contract for inspection tracking state.
// Implementations live in infrastructure/storage/postgres.
type Repository interface {
	// GetStatus returns the current position of an inspection.
	GetStatus(ctx context.Context, inspectionID id.ID) (*InspectionStatus, error)

	// GetHistory returns the recorded route points of an inspection.
	GetHistory(ctx context.Context, inspectionID id.ID) (map[Point]RoutePoint, error)

	// SetStatus records a new position with its route point entry.
	SetStatus(ctx context.Context, inspectionID id.ID, point Point, comment string) error
}
