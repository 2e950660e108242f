package store

import (
	"context"
	"errors"
	"net"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/tourfleet/internal/client"
	"github.com/ukydev/tourfleet/internal/models"
)

func loadedStore(t *testing.T, api *MockAPI, vehicles []models.Vehicle) *Store {
	t.Helper()
	api.On("ListVehicles", mock.Anything).Return(vehicles, nil).Once()
	s := New(api, nil)
	require.True(t, s.Init(context.Background()).Success)
	return s
}

func TestStore_InitLoadsVehiclesOnly(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api, []models.Vehicle{{ID: 1, Plate: "TUR-101"}})

	assert.True(t, s.Loaded(Vehicles))
	assert.False(t, s.Loaded(Drivers))
	assert.False(t, s.Loaded(Routes))
	assert.False(t, s.Loaded(Assignments))
	assert.Len(t, s.Vehicles(), 1)
	api.AssertExpectations(t)
	api.AssertNotCalled(t, "ListDrivers", mock.Anything)
}

func TestStore_EnsureLoadsOnce(t *testing.T) {
	api := new(MockAPI)
	api.On("ListDrivers", mock.Anything).Return([]models.Driver{{ID: 4}}, nil).Once()
	s := New(api, nil)

	assert.True(t, s.EnsureDrivers(context.Background()).Success)
	assert.True(t, s.EnsureDrivers(context.Background()).Success)
	assert.Len(t, s.Drivers(), 1)
	api.AssertNumberOfCalls(t, "ListDrivers", 1)
}

func TestStore_LoadFailureKeepsPreviousItems(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api, []models.Vehicle{{ID: 1}})

	api.On("ListVehicles", mock.Anything).Return(nil, &client.APIError{StatusCode: 500, Message: "database unavailable"}).Once()
	res := s.LoadVehicles(context.Background())

	assert.False(t, res.Success)
	assert.Equal(t, "database unavailable", res.Error)
	assert.Equal(t, "database unavailable", s.LastError(Vehicles))
	assert.False(t, s.Loading(Vehicles))
	assert.Len(t, s.Vehicles(), 1)
}

func TestStore_NilListBecomesEmpty(t *testing.T) {
	api := new(MockAPI)
	api.On("ListRoutes", mock.Anything).Return(nil, nil).Once()
	s := New(api, nil)

	require.True(t, s.LoadRoutes(context.Background()).Success)
	assert.NotNil(t, s.Routes())
	assert.Empty(t, s.Routes())
}

func TestStore_CreatePrepends(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api, []models.Vehicle{{ID: 1, Plate: "OLD"}})

	draft := models.Vehicle{Plate: "NEW"}
	api.On("CreateVehicle", mock.Anything, draft).Return(models.Vehicle{ID: 2, Plate: "NEW"}, nil).Once()

	res := s.CreateVehicle(context.Background(), draft)
	assert.Equal(t, Result{Success: true, ID: 2}, res)

	vehicles := s.Vehicles()
	require.Len(t, vehicles, 2)
	assert.Equal(t, "NEW", vehicles[0].Plate)
	assert.Equal(t, "OLD", vehicles[1].Plate)
}

func TestStore_CreateFailureLeavesCache(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api, []models.Vehicle{{ID: 1}})

	api.On("CreateVehicle", mock.Anything, mock.Anything).
		Return(models.Vehicle{}, &client.APIError{StatusCode: 409, Message: "plate already registered"}).Once()

	res := s.CreateVehicle(context.Background(), models.Vehicle{Plate: "DUP"})
	assert.False(t, res.Success)
	assert.Equal(t, "plate already registered", res.Error)
	assert.Len(t, s.Vehicles(), 1)
}

func TestStore_UpdateReplacesByID(t *testing.T) {
	api := new(MockAPI)
	api.On("ListRoutes", mock.Anything).Return([]models.Route{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, nil).Once()
	s := New(api, nil)
	require.True(t, s.EnsureRoutes(context.Background()).Success)

	api.On("ChangeRouteStatus", mock.Anything, int64(2), models.RouteInactive).
		Return(models.Route{ID: 2, Name: "B", Status: models.RouteInactive}, nil).Once()

	res := s.ChangeRouteStatus(context.Background(), 2, models.RouteInactive)
	require.True(t, res.Success)

	routes := s.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, "A", routes[0].Name)
	assert.Equal(t, models.RouteInactive, routes[1].Status)
}

func TestStore_DeleteRemovesExactlyOnce(t *testing.T) {
	api := new(MockAPI)
	api.On("ListAssignments", mock.Anything).Return([]models.Assignment{{ID: 1}, {ID: 2}, {ID: 3}}, nil).Once()
	s := New(api, nil)
	require.True(t, s.EnsureAssignments(context.Background()).Success)

	api.On("DeleteAssignment", mock.Anything, int64(2)).Return(nil).Once()
	res := s.DeleteAssignment(context.Background(), 2)
	assert.True(t, res.Success)

	ids := []int64{}
	for _, a := range s.Assignments() {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []int64{1, 3}, ids)
	api.AssertExpectations(t)
}

func TestStore_DeleteFailureLeavesCache(t *testing.T) {
	api := new(MockAPI)
	api.On("ListDrivers", mock.Anything).Return([]models.Driver{{ID: 1}, {ID: 2}}, nil).Once()
	s := New(api, nil)
	require.True(t, s.EnsureDrivers(context.Background()).Success)
	before := s.Drivers()

	api.On("DeleteDriver", mock.Anything, int64(2)).
		Return(&client.APIError{StatusCode: 409, Message: "driver has scheduled assignments"}).Once()

	res := s.DeleteDriver(context.Background(), 2)
	assert.False(t, res.Success)
	assert.Equal(t, "driver has scheduled assignments", res.Error)
	assert.Equal(t, before, s.Drivers())
}

func TestStore_NetworkErrorMessage(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api, nil)

	netErr := &url.Error{Op: "Delete", URL: "http://fleet/api/vehicles/1", Err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}}
	api.On("DeleteVehicle", mock.Anything, int64(1)).Return(netErr).Once()

	res := s.DeleteVehicle(context.Background(), 1)
	assert.False(t, res.Success)
	assert.Equal(t, "unable to reach the fleet server", res.Error)
}

func TestStore_AccessorsReturnCopies(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api, []models.Vehicle{{ID: 1, Plate: "TUR-101"}})

	vehicles := s.Vehicles()
	vehicles[0].Plate = "MUTATED"
	assert.Equal(t, "TUR-101", s.Vehicles()[0].Plate)

	snap := s.Snapshot()
	assert.Len(t, snap.Vehicles, 1)
	assert.Empty(t, snap.Drivers)
}

func TestStore_EnsureAllStopsAtFirstFailure(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api, nil)
	api.On("ListDrivers", mock.Anything).Return(nil, errors.New("boom")).Once()

	res := s.EnsureAll(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, "boom", res.Error)
	api.AssertNotCalled(t, "ListRoutes", mock.Anything)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "nope", Message(&client.APIError{StatusCode: 400, Message: "nope"}))
	assert.Equal(t, "the request was cancelled or timed out", Message(context.DeadlineExceeded))
	assert.Equal(t, "plain", Message(errors.New("plain")))
}
