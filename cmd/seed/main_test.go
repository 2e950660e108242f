package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/tourfleet/internal/auth"
	"github.com/ukydev/tourfleet/internal/client"
	"github.com/ukydev/tourfleet/internal/db"
	"github.com/ukydev/tourfleet/internal/handlers"
	"github.com/ukydev/tourfleet/internal/middleware"
	"github.com/ukydev/tourfleet/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var seedNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

// newAPI serves the fleet router over a memory store and returns a
// client authenticated as an admin.
func newAPI(t *testing.T) (*client.Client, *db.MemoryFleet) {
	t.Helper()
	authService, err := auth.NewService("seed-test-secret", time.Hour)
	require.NoError(t, err)

	fleet := db.NewMemoryFleet()
	users := db.NewMemoryUserCollection()
	router := handlers.NewRouter(handlers.RouterConfig{
		Auth:    authService,
		Fleet:   handlers.NewFleetHandler(fleet, nil),
		Users:   handlers.NewAuthHandler(authService, users),
		Metrics: middleware.NewMetrics(),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	token, _, err := authService.GenerateToken(&models.User{ID: primitive.NewObjectID(), Username: "seeder", Role: models.RoleAdmin})
	require.NoError(t, err)
	return client.New(srv.URL+"/api", token), fleet
}

func TestSeeder_Run(t *testing.T) {
	api, fleet := newAPI(t)
	s := &seeder{api: api, rnd: rand.New(rand.NewSource(7)), now: seedNow}

	result := s.run(context.Background(), 5)
	assert.Equal(t, summary{Vehicles: 5, Drivers: 5, Routes: len(tourRoutes), Assignments: 10}, result)

	ctx := context.Background()
	vehicles, err := fleet.ListVehicles(ctx, "")
	require.NoError(t, err)
	assert.Len(t, vehicles, 5)
	capacity := make(map[int64]int, len(vehicles))
	for _, v := range vehicles {
		capacity[v.ID] = v.Capacity
	}

	assignments, err := fleet.ListAssignments(ctx, db.AssignmentFilter{})
	require.NoError(t, err)
	require.Len(t, assignments, 10)
	for _, a := range assignments {
		assert.LessOrEqual(t, a.Passengers, capacity[a.VehicleID])
		assert.Positive(t, a.Fare)
		if a.DepartureAt.Before(seedNow) {
			assert.Contains(t, []models.AssignmentStatus{models.AssignmentCompleted, models.AssignmentCancelled}, a.Status)
		} else {
			assert.Equal(t, models.AssignmentScheduled, a.Status)
		}
	}
}

func TestSeeder_Unauthorized(t *testing.T) {
	api, _ := newAPI(t)
	api.Token = ""
	s := &seeder{api: api, rnd: rand.New(rand.NewSource(1)), now: seedNow}

	result := s.run(context.Background(), 3)
	assert.Equal(t, summary{}, result)
}

type failingAPI struct {
	fleetAPI
}

func (failingAPI) CreateRoute(context.Context, models.Route) (models.Route, error) {
	return models.Route{}, errors.New("boom")
}

func TestSeeder_NoAssignmentsWithoutRoutes(t *testing.T) {
	api, _ := newAPI(t)
	s := &seeder{api: failingAPI{fleetAPI: api}, rnd: rand.New(rand.NewSource(3)), now: seedNow}

	result := s.run(context.Background(), 2)
	assert.Equal(t, 2, result.Vehicles)
	assert.Equal(t, 2, result.Drivers)
	assert.Zero(t, result.Routes)
	assert.Zero(t, result.Assignments)
}

func TestEnvInt(t *testing.T) {
	t.Setenv("SEED_FLEET_SIZE", "12")
	assert.Equal(t, 12, envInt("SEED_FLEET_SIZE", 10))
	t.Setenv("SEED_FLEET_SIZE", "-1")
	assert.Equal(t, 10, envInt("SEED_FLEET_SIZE", 10))
	t.Setenv("SEED_FLEET_SIZE", "many")
	assert.Equal(t, 10, envInt("SEED_FLEET_SIZE", 10))
}
