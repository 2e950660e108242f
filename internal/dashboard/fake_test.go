package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/ukydev/tourfleet/internal/fleet"
	"github.com/ukydev/tourfleet/internal/models"
)

// fakeAPI serves fixed collections and records deletes.
type fakeAPI struct {
	vehicles    []models.Vehicle
	drivers     []models.Driver
	routes      []models.Route
	assignments []models.Assignment

	stats   fleet.Stats
	deleted []int64
	failAll error
}

var errNotImplemented = errors.New("not implemented")

func (f *fakeAPI) ListVehicles(context.Context) ([]models.Vehicle, error) {
	return f.vehicles, f.failAll
}
func (f *fakeAPI) CreateVehicle(context.Context, models.Vehicle) (models.Vehicle, error) {
	return models.Vehicle{}, errNotImplemented
}
func (f *fakeAPI) UpdateVehicle(context.Context, models.Vehicle) (models.Vehicle, error) {
	return models.Vehicle{}, errNotImplemented
}
func (f *fakeAPI) DeleteVehicle(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.failAll
}
func (f *fakeAPI) ChangeVehicleStatus(_ context.Context, id int64, status models.VehicleStatus) (models.Vehicle, error) {
	for _, v := range f.vehicles {
		if v.ID == id {
			v.Status = status
			return v, nil
		}
	}
	return models.Vehicle{}, errors.New("vehicle not found")
}

func (f *fakeAPI) ListDrivers(context.Context) ([]models.Driver, error) {
	return f.drivers, f.failAll
}
func (f *fakeAPI) CreateDriver(context.Context, models.Driver) (models.Driver, error) {
	return models.Driver{}, errNotImplemented
}
func (f *fakeAPI) UpdateDriver(context.Context, models.Driver) (models.Driver, error) {
	return models.Driver{}, errNotImplemented
}
func (f *fakeAPI) DeleteDriver(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.failAll
}
func (f *fakeAPI) ChangeDriverStatus(_ context.Context, id int64, active bool) (models.Driver, error) {
	for _, d := range f.drivers {
		if d.ID == id {
			d.Active = active
			return d, nil
		}
	}
	return models.Driver{}, errors.New("driver not found")
}

func (f *fakeAPI) ListRoutes(context.Context) ([]models.Route, error) {
	return f.routes, f.failAll
}
func (f *fakeAPI) CreateRoute(context.Context, models.Route) (models.Route, error) {
	return models.Route{}, errNotImplemented
}
func (f *fakeAPI) UpdateRoute(context.Context, models.Route) (models.Route, error) {
	return models.Route{}, errNotImplemented
}
func (f *fakeAPI) DeleteRoute(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.failAll
}
func (f *fakeAPI) ChangeRouteStatus(context.Context, int64, models.RouteStatus) (models.Route, error) {
	return models.Route{}, errNotImplemented
}

func (f *fakeAPI) ListAssignments(context.Context) ([]models.Assignment, error) {
	return f.assignments, f.failAll
}
func (f *fakeAPI) CreateAssignment(context.Context, models.Assignment) (models.Assignment, error) {
	return models.Assignment{}, errNotImplemented
}
func (f *fakeAPI) UpdateAssignment(context.Context, models.Assignment) (models.Assignment, error) {
	return models.Assignment{}, errNotImplemented
}
func (f *fakeAPI) DeleteAssignment(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.failAll
}
func (f *fakeAPI) ChangeAssignmentStatus(context.Context, int64, models.AssignmentStatus) (models.Assignment, error) {
	return models.Assignment{}, errNotImplemented
}

func findByID[T any](list []T, id int64, idOf func(T) int64) (T, error) {
	for _, item := range list {
		if idOf(item) == id {
			return item, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("record %d not found", id)
}

func (f *fakeAPI) GetVehicle(_ context.Context, id int64) (models.Vehicle, error) {
	return findByID(f.vehicles, id, func(v models.Vehicle) int64 { return v.ID })
}
func (f *fakeAPI) GetDriver(_ context.Context, id int64) (models.Driver, error) {
	return findByID(f.drivers, id, func(d models.Driver) int64 { return d.ID })
}
func (f *fakeAPI) GetRoute(_ context.Context, id int64) (models.Route, error) {
	return findByID(f.routes, id, func(r models.Route) int64 { return r.ID })
}
func (f *fakeAPI) GetAssignment(_ context.Context, id int64) (models.Assignment, error) {
	return findByID(f.assignments, id, func(a models.Assignment) int64 { return a.ID })
}

// The server views answer with the first record of each collection.
func first[T any](list []T) []T {
	if len(list) == 0 {
		return nil
	}
	return list[:1]
}

func (f *fakeAPI) AvailableVehicles(context.Context) ([]models.Vehicle, error) {
	return first(f.vehicles), f.failAll
}
func (f *fakeAPI) AvailableDrivers(context.Context) ([]models.Driver, error) {
	return first(f.drivers), f.failAll
}
func (f *fakeAPI) ActiveRoutes(context.Context) ([]models.Route, error) {
	return first(f.routes), f.failAll
}
func (f *fakeAPI) TodayAssignments(context.Context) ([]models.Assignment, error) {
	return first(f.assignments), f.failAll
}
func (f *fakeAPI) Statistics(context.Context) (fleet.Stats, error) {
	return f.stats, f.failAll
}
func (f *fakeAPI) Alerts(context.Context) ([]fleet.AlertItem, error) {
	return nil, f.failAll
}
