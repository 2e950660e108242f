package store

import (
	"context"

	"github.com/ukydev/tourfleet/internal/models"
)

func vehicleID(v models.Vehicle) int64       { return v.ID }
func driverID(d models.Driver) int64         { return d.ID }
func routeID(r models.Route) int64           { return r.ID }
func assignmentID(a models.Assignment) int64 { return a.ID }

// LoadVehicles fetches the vehicle collection, replacing the cached copy.
func (s *Store) LoadVehicles(ctx context.Context) Result {
	return load(ctx, s, &s.vehicles, Vehicles, s.api.ListVehicles)
}

// EnsureVehicles loads vehicles unless they are already cached.
func (s *Store) EnsureVehicles(ctx context.Context) Result {
	return ensure(ctx, s, &s.vehicles, Vehicles, s.api.ListVehicles)
}

func (s *Store) CreateVehicle(ctx context.Context, v models.Vehicle) Result {
	return prepend(s, &s.vehicles, Vehicles, "create", vehicleID, func() (models.Vehicle, error) {
		return s.api.CreateVehicle(ctx, v)
	})
}

func (s *Store) UpdateVehicle(ctx context.Context, v models.Vehicle) Result {
	return replace(s, &s.vehicles, Vehicles, "update", vehicleID, func() (models.Vehicle, error) {
		return s.api.UpdateVehicle(ctx, v)
	})
}

func (s *Store) ChangeVehicleStatus(ctx context.Context, id int64, status models.VehicleStatus) Result {
	return replace(s, &s.vehicles, Vehicles, "change_status", vehicleID, func() (models.Vehicle, error) {
		return s.api.ChangeVehicleStatus(ctx, id, status)
	})
}

func (s *Store) DeleteVehicle(ctx context.Context, id int64) Result {
	return remove(s, &s.vehicles, Vehicles, id, vehicleID, func() error {
		return s.api.DeleteVehicle(ctx, id)
	})
}

func (s *Store) LoadDrivers(ctx context.Context) Result {
	return load(ctx, s, &s.drivers, Drivers, s.api.ListDrivers)
}

func (s *Store) EnsureDrivers(ctx context.Context) Result {
	return ensure(ctx, s, &s.drivers, Drivers, s.api.ListDrivers)
}

func (s *Store) CreateDriver(ctx context.Context, d models.Driver) Result {
	return prepend(s, &s.drivers, Drivers, "create", driverID, func() (models.Driver, error) {
		return s.api.CreateDriver(ctx, d)
	})
}

func (s *Store) UpdateDriver(ctx context.Context, d models.Driver) Result {
	return replace(s, &s.drivers, Drivers, "update", driverID, func() (models.Driver, error) {
		return s.api.UpdateDriver(ctx, d)
	})
}

// ChangeDriverStatus sets the driver's active flag.
func (s *Store) ChangeDriverStatus(ctx context.Context, id int64, active bool) Result {
	return replace(s, &s.drivers, Drivers, "change_status", driverID, func() (models.Driver, error) {
		return s.api.ChangeDriverStatus(ctx, id, active)
	})
}

func (s *Store) DeleteDriver(ctx context.Context, id int64) Result {
	return remove(s, &s.drivers, Drivers, id, driverID, func() error {
		return s.api.DeleteDriver(ctx, id)
	})
}

func (s *Store) LoadRoutes(ctx context.Context) Result {
	return load(ctx, s, &s.routes, Routes, s.api.ListRoutes)
}

func (s *Store) EnsureRoutes(ctx context.Context) Result {
	return ensure(ctx, s, &s.routes, Routes, s.api.ListRoutes)
}

func (s *Store) CreateRoute(ctx context.Context, r models.Route) Result {
	return prepend(s, &s.routes, Routes, "create", routeID, func() (models.Route, error) {
		return s.api.CreateRoute(ctx, r)
	})
}

func (s *Store) UpdateRoute(ctx context.Context, r models.Route) Result {
	return replace(s, &s.routes, Routes, "update", routeID, func() (models.Route, error) {
		return s.api.UpdateRoute(ctx, r)
	})
}

func (s *Store) ChangeRouteStatus(ctx context.Context, id int64, status models.RouteStatus) Result {
	return replace(s, &s.routes, Routes, "change_status", routeID, func() (models.Route, error) {
		return s.api.ChangeRouteStatus(ctx, id, status)
	})
}

func (s *Store) DeleteRoute(ctx context.Context, id int64) Result {
	return remove(s, &s.routes, Routes, id, routeID, func() error {
		return s.api.DeleteRoute(ctx, id)
	})
}

func (s *Store) LoadAssignments(ctx context.Context) Result {
	return load(ctx, s, &s.assignments, Assignments, s.api.ListAssignments)
}

func (s *Store) EnsureAssignments(ctx context.Context) Result {
	return ensure(ctx, s, &s.assignments, Assignments, s.api.ListAssignments)
}

func (s *Store) CreateAssignment(ctx context.Context, a models.Assignment) Result {
	return prepend(s, &s.assignments, Assignments, "create", assignmentID, func() (models.Assignment, error) {
		return s.api.CreateAssignment(ctx, a)
	})
}

func (s *Store) UpdateAssignment(ctx context.Context, a models.Assignment) Result {
	return replace(s, &s.assignments, Assignments, "update", assignmentID, func() (models.Assignment, error) {
		return s.api.UpdateAssignment(ctx, a)
	})
}

func (s *Store) ChangeAssignmentStatus(ctx context.Context, id int64, status models.AssignmentStatus) Result {
	return replace(s, &s.assignments, Assignments, "change_status", assignmentID, func() (models.Assignment, error) {
		return s.api.ChangeAssignmentStatus(ctx, id, status)
	})
}

func (s *Store) DeleteAssignment(ctx context.Context, id int64) Result {
	return remove(s, &s.assignments, Assignments, id, assignmentID, func() error {
		return s.api.DeleteAssignment(ctx, id)
	})
}

// EnsureAll loads whatever collection is not cached yet, stopping at the
// first failure.
func (s *Store) EnsureAll(ctx context.Context) Result {
	for _, step := range []func(context.Context) Result{
		s.EnsureVehicles, s.EnsureDrivers, s.EnsureRoutes, s.EnsureAssignments,
	} {
		if res := step(ctx); !res.Success {
			return res
		}
	}
	return Result{Success: true}
}
