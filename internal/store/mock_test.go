package store

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/ukydev/tourfleet/internal/fleet"
	"github.com/ukydev/tourfleet/internal/models"
)

// MockAPI is a mock implementation of API
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.Vehicle)
	return v, args.Error(1)
}

func (m *MockAPI) CreateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	args := m.Called(ctx, v)
	return args.Get(0).(models.Vehicle), args.Error(1)
}

func (m *MockAPI) UpdateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	args := m.Called(ctx, v)
	return args.Get(0).(models.Vehicle), args.Error(1)
}

func (m *MockAPI) DeleteVehicle(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPI) ChangeVehicleStatus(ctx context.Context, id int64, status models.VehicleStatus) (models.Vehicle, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(models.Vehicle), args.Error(1)
}

func (m *MockAPI) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).([]models.Driver)
	return d, args.Error(1)
}

func (m *MockAPI) CreateDriver(ctx context.Context, d models.Driver) (models.Driver, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(models.Driver), args.Error(1)
}

func (m *MockAPI) UpdateDriver(ctx context.Context, d models.Driver) (models.Driver, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(models.Driver), args.Error(1)
}

func (m *MockAPI) DeleteDriver(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPI) ChangeDriverStatus(ctx context.Context, id int64, active bool) (models.Driver, error) {
	args := m.Called(ctx, id, active)
	return args.Get(0).(models.Driver), args.Error(1)
}

func (m *MockAPI) ListRoutes(ctx context.Context) ([]models.Route, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]models.Route)
	return r, args.Error(1)
}

func (m *MockAPI) CreateRoute(ctx context.Context, r models.Route) (models.Route, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(models.Route), args.Error(1)
}

func (m *MockAPI) UpdateRoute(ctx context.Context, r models.Route) (models.Route, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(models.Route), args.Error(1)
}

func (m *MockAPI) DeleteRoute(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPI) ChangeRouteStatus(ctx context.Context, id int64, status models.RouteStatus) (models.Route, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(models.Route), args.Error(1)
}

func (m *MockAPI) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	args := m.Called(ctx)
	a, _ := args.Get(0).([]models.Assignment)
	return a, args.Error(1)
}

func (m *MockAPI) CreateAssignment(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(models.Assignment), args.Error(1)
}

func (m *MockAPI) UpdateAssignment(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(models.Assignment), args.Error(1)
}

func (m *MockAPI) DeleteAssignment(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPI) ChangeAssignmentStatus(ctx context.Context, id int64, status models.AssignmentStatus) (models.Assignment, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(models.Assignment), args.Error(1)
}

func (m *MockAPI) GetVehicle(ctx context.Context, id int64) (models.Vehicle, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Vehicle), args.Error(1)
}

func (m *MockAPI) GetDriver(ctx context.Context, id int64) (models.Driver, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Driver), args.Error(1)
}

func (m *MockAPI) GetRoute(ctx context.Context, id int64) (models.Route, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Route), args.Error(1)
}

func (m *MockAPI) GetAssignment(ctx context.Context, id int64) (models.Assignment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Assignment), args.Error(1)
}

func (m *MockAPI) AvailableVehicles(ctx context.Context) ([]models.Vehicle, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.Vehicle)
	return v, args.Error(1)
}

func (m *MockAPI) AvailableDrivers(ctx context.Context) ([]models.Driver, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).([]models.Driver)
	return d, args.Error(1)
}

func (m *MockAPI) ActiveRoutes(ctx context.Context) ([]models.Route, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]models.Route)
	return r, args.Error(1)
}

func (m *MockAPI) TodayAssignments(ctx context.Context) ([]models.Assignment, error) {
	args := m.Called(ctx)
	a, _ := args.Get(0).([]models.Assignment)
	return a, args.Error(1)
}

func (m *MockAPI) Statistics(ctx context.Context) (fleet.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(fleet.Stats), args.Error(1)
}

func (m *MockAPI) Alerts(ctx context.Context) ([]fleet.AlertItem, error) {
	args := m.Called(ctx)
	a, _ := args.Get(0).([]fleet.AlertItem)
	return a, args.Error(1)
}
