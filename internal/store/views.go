package store

import (
	"context"

	"github.com/ukydev/tourfleet/internal/fleet"
	"github.com/ukydev/tourfleet/internal/models"
)

// Server views are computed by the API and read straight through. They
// never touch the cached collections.

// view runs call and reports a failure the same way the cached operations do.
func view[T any](s *Store, kind Kind, op string, call func() (T, error)) (T, Result) {
	v, err := call()
	if err != nil {
		var zero T
		return zero, s.fail(kind, op, err)
	}
	return v, Result{Success: true}
}

func listView[T any](s *Store, kind Kind, op string, call func() ([]T, error)) ([]T, Result) {
	list, res := view(s, kind, op, call)
	if res.Success && list == nil {
		list = []T{}
	}
	return list, res
}

// AvailableVehicles returns the vehicles the server reports as available.
func (s *Store) AvailableVehicles(ctx context.Context) ([]models.Vehicle, Result) {
	return listView(s, Vehicles, "available", func() ([]models.Vehicle, error) { return s.api.AvailableVehicles(ctx) })
}

// AvailableDrivers returns active drivers with a license valid today.
func (s *Store) AvailableDrivers(ctx context.Context) ([]models.Driver, Result) {
	return listView(s, Drivers, "available", func() ([]models.Driver, error) { return s.api.AvailableDrivers(ctx) })
}

func (s *Store) ActiveRoutes(ctx context.Context) ([]models.Route, Result) {
	return listView(s, Routes, "active", func() ([]models.Route, error) { return s.api.ActiveRoutes(ctx) })
}

// TodayAssignments returns the assignments departing on the server's
// current day.
func (s *Store) TodayAssignments(ctx context.Context) ([]models.Assignment, Result) {
	return listView(s, Assignments, "today", func() ([]models.Assignment, error) { return s.api.TodayAssignments(ctx) })
}

// Statistics returns the aggregates computed by the server over its full
// collections.
func (s *Store) Statistics(ctx context.Context) (fleet.Stats, Result) {
	return view(s, Kind("statistics"), "get", func() (fleet.Stats, error) { return s.api.Statistics(ctx) })
}

func (s *Store) ServerAlerts(ctx context.Context) ([]fleet.AlertItem, Result) {
	return listView(s, Kind("alerts"), "get", func() ([]fleet.AlertItem, error) { return s.api.Alerts(ctx) })
}

// upsert fetches one record and swaps it into the cache, prepending it when
// it is not cached yet.
func upsert[T any](s *Store, c *collection[T], kind Kind, idOf func(T) int64, call func() (T, error)) Result {
	item, err := call()
	if err != nil {
		return s.fail(kind, "get", err)
	}
	id := idOf(item)
	s.mu.Lock()
	next := make([]T, 0, len(c.items)+1)
	found := false
	for _, cur := range c.items {
		if idOf(cur) == id {
			next = append(next, item)
			found = true
		} else {
			next = append(next, cur)
		}
	}
	if !found {
		next = append([]T{item}, next...)
	}
	c.items = next
	s.mu.Unlock()
	return Result{Success: true, ID: id}
}

// RefreshVehicle re-reads one vehicle from the server into the cache.
func (s *Store) RefreshVehicle(ctx context.Context, id int64) Result {
	return upsert(s, &s.vehicles, Vehicles, vehicleID, func() (models.Vehicle, error) { return s.api.GetVehicle(ctx, id) })
}

func (s *Store) RefreshDriver(ctx context.Context, id int64) Result {
	return upsert(s, &s.drivers, Drivers, driverID, func() (models.Driver, error) { return s.api.GetDriver(ctx, id) })
}

func (s *Store) RefreshRoute(ctx context.Context, id int64) Result {
	return upsert(s, &s.routes, Routes, routeID, func() (models.Route, error) { return s.api.GetRoute(ctx, id) })
}

func (s *Store) RefreshAssignment(ctx context.Context, id int64) Result {
	return upsert(s, &s.assignments, Assignments, assignmentID, func() (models.Assignment, error) { return s.api.GetAssignment(ctx, id) })
}
