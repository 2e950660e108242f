package db

import (
	"context"
	"errors"
	"time"

	"github.com/ukydev/tourfleet/internal/models"
)

var (
	// ErrNotFound is returned when no record matches the given id.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique field (plate, document) is taken.
	ErrDuplicate = errors.New("duplicate record")
)

// DriverFilter narrows ListDrivers. Zero values disable a condition.
type DriverFilter struct {
	ActiveOnly     bool
	LicenseValidAt time.Time
}

// AssignmentFilter narrows ListAssignments to departures in [From, To).
type AssignmentFilter struct {
	From   time.Time
	To     time.Time
	Status models.AssignmentStatus
}

// VehicleCollection defines the interface for vehicle data operations.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle *models.Vehicle) error
	ListVehicles(ctx context.Context, status models.VehicleStatus) ([]models.Vehicle, error)
	FindVehicleByID(ctx context.Context, id int64) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle models.Vehicle) error
	SetVehicleStatus(ctx context.Context, id int64, status models.VehicleStatus) error
	DeleteVehicle(ctx context.Context, id int64) error
}

// DriverCollection defines the interface for driver data operations.
type DriverCollection interface {
	InsertDriver(ctx context.Context, driver *models.Driver) error
	ListDrivers(ctx context.Context, filter DriverFilter) ([]models.Driver, error)
	FindDriverByID(ctx context.Context, id int64) (*models.Driver, error)
	UpdateDriver(ctx context.Context, driver models.Driver) error
	SetDriverActive(ctx context.Context, id int64, active bool) error
	DeleteDriver(ctx context.Context, id int64) error
}

// RouteCollection defines the interface for route data operations.
type RouteCollection interface {
	InsertRoute(ctx context.Context, route *models.Route) error
	ListRoutes(ctx context.Context, status models.RouteStatus) ([]models.Route, error)
	FindRouteByID(ctx context.Context, id int64) (*models.Route, error)
	UpdateRoute(ctx context.Context, route models.Route) error
	SetRouteStatus(ctx context.Context, id int64, status models.RouteStatus) error
	DeleteRoute(ctx context.Context, id int64) error
}

// AssignmentCollection defines the interface for assignment data operations.
type AssignmentCollection interface {
	InsertAssignment(ctx context.Context, assignment *models.Assignment) error
	ListAssignments(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, error)
	FindAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error)
	UpdateAssignment(ctx context.Context, assignment models.Assignment) error
	SetAssignmentStatus(ctx context.Context, id int64, status models.AssignmentStatus) error
	DeleteAssignment(ctx context.Context, id int64) error
}

// Fleet groups the four fleet collections.
type Fleet interface {
	VehicleCollection
	DriverCollection
	RouteCollection
	AssignmentCollection
}
