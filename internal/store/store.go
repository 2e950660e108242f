// Package store keeps client-side copies of the fleet collections in sync
// with the API. It is a write-through cache: local collections change only
// after the remote call succeeds, and every operation reports a Result
// instead of returning an error.
package store

import (
	"context"
	"errors"
	"net"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/tourfleet/internal/client"
	"github.com/ukydev/tourfleet/internal/fleet"
	"github.com/ukydev/tourfleet/internal/models"
)

// API is the part of the REST client the store depends on.
type API interface {
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	CreateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error)
	UpdateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int64) error
	ChangeVehicleStatus(ctx context.Context, id int64, status models.VehicleStatus) (models.Vehicle, error)

	ListDrivers(ctx context.Context) ([]models.Driver, error)
	CreateDriver(ctx context.Context, d models.Driver) (models.Driver, error)
	UpdateDriver(ctx context.Context, d models.Driver) (models.Driver, error)
	DeleteDriver(ctx context.Context, id int64) error
	ChangeDriverStatus(ctx context.Context, id int64, active bool) (models.Driver, error)

	ListRoutes(ctx context.Context) ([]models.Route, error)
	CreateRoute(ctx context.Context, r models.Route) (models.Route, error)
	UpdateRoute(ctx context.Context, r models.Route) (models.Route, error)
	DeleteRoute(ctx context.Context, id int64) error
	ChangeRouteStatus(ctx context.Context, id int64, status models.RouteStatus) (models.Route, error)

	ListAssignments(ctx context.Context) ([]models.Assignment, error)
	CreateAssignment(ctx context.Context, a models.Assignment) (models.Assignment, error)
	UpdateAssignment(ctx context.Context, a models.Assignment) (models.Assignment, error)
	DeleteAssignment(ctx context.Context, id int64) error
	ChangeAssignmentStatus(ctx context.Context, id int64, status models.AssignmentStatus) (models.Assignment, error)

	GetVehicle(ctx context.Context, id int64) (models.Vehicle, error)
	GetDriver(ctx context.Context, id int64) (models.Driver, error)
	GetRoute(ctx context.Context, id int64) (models.Route, error)
	GetAssignment(ctx context.Context, id int64) (models.Assignment, error)

	AvailableVehicles(ctx context.Context) ([]models.Vehicle, error)
	AvailableDrivers(ctx context.Context) ([]models.Driver, error)
	ActiveRoutes(ctx context.Context) ([]models.Route, error)
	TodayAssignments(ctx context.Context) ([]models.Assignment, error)
	Statistics(ctx context.Context) (fleet.Stats, error)
	Alerts(ctx context.Context) ([]fleet.AlertItem, error)
}

var _ API = (*client.Client)(nil)

// Kind names one of the cached collections.
type Kind string

const (
	Vehicles    Kind = "vehicles"
	Drivers     Kind = "drivers"
	Routes      Kind = "routes"
	Assignments Kind = "assignments"
)

// Result is the outcome of a store operation. ID is set by successful
// create, update and status operations.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	ID      int64  `json:"id,omitempty"`
}

type collection[T any] struct {
	items   []T
	loaded  bool
	loading bool
	err     string
}

// Store caches the four fleet collections. It is safe for concurrent use.
type Store struct {
	api    API
	logger *log.Entry

	mu          sync.RWMutex
	vehicles    collection[models.Vehicle]
	drivers     collection[models.Driver]
	routes      collection[models.Route]
	assignments collection[models.Assignment]
}

// New returns an empty store backed by api. A nil logger uses the logrus
// standard logger.
func New(api API, logger *log.Entry) *Store {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Store{api: api, logger: logger.WithField("component", "store")}
}

// Init performs the initial load. Only vehicles are fetched; the other
// collections load on first use through the Ensure methods.
func (s *Store) Init(ctx context.Context) Result {
	return s.LoadVehicles(ctx)
}

// Message turns an error into text fit for the operator.
func Message(err error) string {
	var apiErr *client.APIError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "the request was cancelled or timed out"
	case isNetworkError(err):
		return "unable to reach the fleet server"
	default:
		return err.Error()
	}
}

func isNetworkError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}

// fail logs err and converts it to a failed Result. Network errors are
// expected while the server is down and only logged at debug level.
func (s *Store) fail(kind Kind, op string, err error) Result {
	entry := s.logger.WithFields(log.Fields{"collection": kind, "op": op}).WithError(err)
	if isNetworkError(err) {
		entry.Debug("fleet server unreachable")
	} else {
		entry.Warn("fleet operation failed")
	}
	return Result{Success: false, Error: Message(err)}
}

func (s *Store) state(kind Kind) (loaded, loading bool, errMsg string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch kind {
	case Vehicles:
		return s.vehicles.loaded, s.vehicles.loading, s.vehicles.err
	case Drivers:
		return s.drivers.loaded, s.drivers.loading, s.drivers.err
	case Routes:
		return s.routes.loaded, s.routes.loading, s.routes.err
	case Assignments:
		return s.assignments.loaded, s.assignments.loading, s.assignments.err
	}
	return false, false, ""
}

// Loaded reports whether kind has been fetched successfully at least once.
func (s *Store) Loaded(kind Kind) bool {
	loaded, _, _ := s.state(kind)
	return loaded
}

// Loading reports whether a fetch of kind is in flight.
func (s *Store) Loading(kind Kind) bool {
	_, loading, _ := s.state(kind)
	return loading
}

// LastError is the message of the last failed fetch of kind, or "".
func (s *Store) LastError(kind Kind) string {
	_, _, msg := s.state(kind)
	return msg
}

func (s *Store) Vehicles() []models.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Vehicle{}, s.vehicles.items...)
}

func (s *Store) Drivers() []models.Driver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Driver{}, s.drivers.items...)
}

func (s *Store) Routes() []models.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Route{}, s.routes.items...)
}

func (s *Store) Assignments() []models.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Assignment{}, s.assignments.items...)
}

// Snapshot copies all four collections at once.
func (s *Store) Snapshot() fleet.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fleet.Snapshot{
		Vehicles:    append([]models.Vehicle{}, s.vehicles.items...),
		Drivers:     append([]models.Driver{}, s.drivers.items...),
		Routes:      append([]models.Route{}, s.routes.items...),
		Assignments: append([]models.Assignment{}, s.assignments.items...),
	}
}
