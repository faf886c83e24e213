package tracking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdesk/internal/core/apperror"
	"freightdesk/internal/core/id"
	"freightdesk/internal/core/security"
)

type memRepo struct {
	status  map[id.ID]*InspectionStatus
	history map[id.ID]map[Point]RoutePoint
}

func newMemRepo() *memRepo {
	return &memRepo{
		status:  make(map[id.ID]*InspectionStatus),
		history: make(map[id.ID]map[Point]RoutePoint),
	}
}

func (m *memRepo) GetStatus(ctx context.Context, inspectionID id.ID) (*InspectionStatus, error) {
	if s, ok := m.status[inspectionID]; ok {
		return s, nil
	}
	return nil, apperror.NewNotFound("inspection", inspectionID.String())
}

func (m *memRepo) GetHistory(ctx context.Context, inspectionID id.ID) (map[Point]RoutePoint, error) {
	return m.history[inspectionID], nil
}

func (m *memRepo) SetStatus(ctx context.Context, inspectionID id.ID, point Point, comment string) error {
	now := time.Now().UTC()
	m.status[inspectionID] = &InspectionStatus{InspectionID: inspectionID, Current: point, UpdatedAt: now}
	if m.history[inspectionID] == nil {
		m.history[inspectionID] = make(map[Point]RoutePoint)
	}
	m.history[inspectionID][point] = RoutePoint{Point: point, Completed: true, CompletedAt: &now, Comment: comment}
	return nil
}

func TestUpdateStatus_Forward(t *testing.T) {
	repo := newMemRepo()
	inspID := id.New()
	repo.status[inspID] = &InspectionStatus{InspectionID: inspID, Current: PointPickedUp}
	svc := NewService(repo, security.NewInMemoryFlags())

	require.NoError(t, svc.UpdateStatus(context.Background(), inspID, PointInTransit, "vessel departed", false))
	assert.Equal(t, PointInTransit, repo.status[inspID].Current)

	// Same point again is not a regression.
	require.NoError(t, svc.UpdateStatus(context.Background(), inspID, PointInTransit, "", false))
}

func TestUpdateStatus_RejectsRegression(t *testing.T) {
	repo := newMemRepo()
	inspID := id.New()
	repo.status[inspID] = &InspectionStatus{InspectionID: inspID, Current: PointCustomsClearance}
	svc := NewService(repo, security.NewInMemoryFlags())

	err := svc.UpdateStatus(context.Background(), inspID, PointInTransit, "", false)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeStatusRegression, appErr.Code)
}

func TestUpdateStatus_ForceNeedsFlag(t *testing.T) {
	repo := newMemRepo()
	inspID := id.New()
	repo.status[inspID] = &InspectionStatus{InspectionID: inspID, Current: PointCustomsClearance}
	flags := security.NewInMemoryFlags()
	svc := NewService(repo, flags)

	err := svc.UpdateStatus(context.Background(), inspID, PointInTransit, "", true)
	require.Error(t, err, "force without the flag stays rejected")

	flags.SetFlag(security.FlagTrackingForceUpdates, true)
	require.NoError(t, svc.UpdateStatus(context.Background(), inspID, PointInTransit, "recount", true))
	assert.Equal(t, PointInTransit, repo.status[inspID].Current)
}

func TestUpdateStatus_OutOfRange(t *testing.T) {
	svc := NewService(newMemRepo(), security.NewInMemoryFlags())

	assert.Error(t, svc.UpdateStatus(context.Background(), id.New(), 0, "", false))
	assert.Error(t, svc.UpdateStatus(context.Background(), id.New(), 14, "", false))
}

func TestRoute_ThirteenPoints(t *testing.T) {
	repo := newMemRepo()
	inspID := id.New()
	repo.status[inspID] = &InspectionStatus{InspectionID: inspID, Current: PointInspectionStarted}
	svc := NewService(repo, security.NewInMemoryFlags())

	route, err := svc.Route(context.Background(), inspID)
	require.NoError(t, err)
	require.Len(t, route, PipelineLength)

	for i, rp := range route {
		assert.Equal(t, Point(i+1), rp.Point)
		assert.NotEmpty(t, rp.Label)
		assert.Equal(t, rp.Point <= PointInspectionStarted, rp.Completed)
	}
}
