package models

import (
	"errors"
	"fmt"
	"time"
)

// AssignmentStatus is the lifecycle state of a trip assignment.
type AssignmentStatus string

const (
	AssignmentScheduled  AssignmentStatus = "scheduled"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentCompleted  AssignmentStatus = "completed"
	AssignmentCancelled  AssignmentStatus = "cancelled"
)

// AssignmentStatuses lists every known assignment status in lifecycle order.
var AssignmentStatuses = []AssignmentStatus{AssignmentScheduled, AssignmentInProgress, AssignmentCompleted, AssignmentCancelled}

// Valid reports whether s is a known assignment status.
func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentScheduled, AssignmentInProgress, AssignmentCompleted, AssignmentCancelled:
		return true
	default:
		return false
	}
}

// Assignment links one vehicle, one driver and one route for a departure.
type Assignment struct {
	ID          int64            `bson:"_id" json:"id"`
	VehicleID   int64            `bson:"vehicle_id" json:"vehicle_id"`
	DriverID    int64            `bson:"driver_id" json:"driver_id"`
	RouteID     int64            `bson:"route_id" json:"route_id"`
	DepartureAt time.Time        `bson:"departure_at" json:"departure_at"`
	Passengers  int              `bson:"passengers" json:"passengers"`
	Fare        float64          `bson:"fare" json:"fare"`
	Notes       string           `bson:"notes" json:"notes"`
	Status      AssignmentStatus `bson:"status" json:"status"`
	CreatedAt   time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `bson:"updated_at" json:"updated_at"`
}

// Validate checks the assignment's own fields. References are checked by
// CheckCapacity once the vehicle is known.
func (a *Assignment) Validate() error {
	var errs []error
	if a.VehicleID <= 0 || a.DriverID <= 0 || a.RouteID <= 0 {
		errs = append(errs, errors.New("vehicle, driver and route are required"))
	}
	if a.DepartureAt.IsZero() {
		errs = append(errs, errors.New("departure date is required"))
	}
	if a.Passengers < 0 {
		errs = append(errs, errors.New("passengers cannot be negative"))
	}
	if a.Fare < 0 {
		errs = append(errs, errors.New("fare cannot be negative"))
	}
	if a.Status != "" && !a.Status.Valid() {
		errs = append(errs, errors.New("unknown assignment status"))
	}
	return validationError(errs)
}

// CheckCapacity reports an error when the passengers exceed the vehicle's seats.
func (a *Assignment) CheckCapacity(v *Vehicle) error {
	if a.Passengers > v.Capacity {
		return &ValidationError{Problems: []string{
			fmt.Sprintf("passengers (%d) exceed vehicle %s capacity (%d)", a.Passengers, v.Plate, v.Capacity),
		}}
	}
	return nil
}
