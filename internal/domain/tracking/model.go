// Package tracking follows inspected shipments through the fixed 13-point
// status pipeline, from pickup at the supplier to final delivery.
package tracking

import (
	"time"

	"freightdesk/internal/core/id"
)

// Point is a position in the pipeline, 1 through 13.
type Point int

const (
	PointPendingPickup Point = iota + 1
	PointPickedUp
	PointOriginWarehouse
	PointInspectionStarted
	PointInspectionCompleted
	PointAwaitingConsolidation
	PointDepartedOrigin
	PointInTransit
	PointArrivedDestination
	PointCustomsClearance
	PointCustomsReleased
	PointOutForDelivery
	PointDelivered
)

// PipelineLength is the number of points in the route.
const PipelineLength = int(PointDelivered)

// labels are the customer-facing status names, indexed by point.
var labels = map[Point]string{
	PointPendingPickup:         "Pending pickup",
	PointPickedUp:              "Picked up from supplier",
	PointOriginWarehouse:       "Received at origin warehouse",
	PointInspectionStarted:     "Inspection in progress",
	PointInspectionCompleted:   "Inspection completed",
	PointAwaitingConsolidation: "Awaiting consolidation",
	PointDepartedOrigin:        "Departed origin",
	PointInTransit:             "In transit",
	PointArrivedDestination:    "Arrived at destination",
	PointCustomsClearance:      "In customs clearance",
	PointCustomsReleased:       "Released by customs",
	PointOutForDelivery:        "Out for delivery",
	PointDelivered:             "Delivered",
}

// Valid reports whether p lies inside the pipeline.
func (p Point) Valid() bool {
	return p >= PointPendingPickup && p <= PointDelivered
}

// Label returns the customer-facing name of the point.
func (p Point) Label() string {
	return labels[p]
}

// RoutePoint is one entry of an inspection's route.
type RoutePoint struct {
	Point       Point      `db:"point" json:"point"`
	Label       string     `db:"-" json:"label"`
	Completed   bool       `db:"completed" json:"completed"`
	CompletedAt *time.Time `db:"completed_at" json:"completedAt,omitempty"`
	Comment     string     `db:"comment" json:"comment,omitempty"`
}

// InspectionStatus is the current pipeline position of one inspection.
type InspectionStatus struct {
	InspectionID id.ID     `db:"inspection_id" json:"inspectionId"`
	Current      Point     `db:"current_point" json:"currentPoint"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// Route builds the full 13-point route view for a current position.
func Route(inspectionID id.ID, current Point, history map[Point]RoutePoint) []RoutePoint {
	route := make([]RoutePoint, 0, PipelineLength)
	for p := PointPendingPickup; p <= PointDelivered; p++ {
		rp := RoutePoint{Point: p, Label: p.Label()}
		if h, ok := history[p]; ok {
			rp.Completed = h.Completed
			rp.CompletedAt = h.CompletedAt
			rp.Comment = h.Comment
		} else if p <= current {
			rp.Completed = true
		}
		route = append(route, rp)
	}
	return route
}
