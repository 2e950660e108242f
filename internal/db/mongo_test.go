package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/tourfleet/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// testDatabase connects to MONGO_URI or skips the test.
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set, skipping integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	client, err := ConnectMongo(ctx, uri)
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	database := client.Database("test_tourfleet")
	require.NoError(t, database.Drop(context.Background()))
	return database
}

func TestMongoFleet_NilCollection(t *testing.T) {
	fleet := &MongoFleet{}
	_, err := fleet.ListVehicles(context.Background(), "")
	assert.Error(t, err)
	_, err = fleet.FindRouteByID(context.Background(), 1)
	assert.Error(t, err)
	assert.Error(t, fleet.DeleteDriver(context.Background(), 1))

	var seq *Sequence
	_, err = seq.Next(context.Background(), "vehicles")
	assert.Error(t, err)
}

func TestMongoFleet_VehicleLifecycle(t *testing.T) {
	fleet := NewMongoFleet(testDatabase(t))
	ctx := context.Background()
	require.NoError(t, fleet.EnsureIndexes(ctx))

	first := models.Vehicle{Plate: "TUR-101", Make: "Mercedes", Model: "Sprinter", Year: 2022, Capacity: 19, Status: models.VehicleAvailable}
	require.NoError(t, fleet.InsertVehicle(ctx, &first))
	second := models.Vehicle{Plate: "TUR-102", Make: "Toyota", Model: "Hiace", Year: 2021, Capacity: 12, Status: models.VehicleMaintenance}
	require.NoError(t, fleet.InsertVehicle(ctx, &second))
	assert.Equal(t, first.ID+1, second.ID)

	dup := models.Vehicle{Plate: "TUR-101", Make: "Ford", Model: "Transit", Year: 2020, Capacity: 15}
	assert.ErrorIs(t, fleet.InsertVehicle(ctx, &dup), ErrDuplicate)

	all, err := fleet.ListVehicles(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")

	available, err := fleet.ListVehicles(ctx, models.VehicleAvailable)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "TUR-101", available[0].Plate)

	require.NoError(t, fleet.SetVehicleStatus(ctx, first.ID, models.VehicleInService))
	got, err := fleet.FindVehicleByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VehicleInService, got.Status)

	got.Capacity = 20
	require.NoError(t, fleet.UpdateVehicle(ctx, *got))
	got, err = fleet.FindVehicleByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.Capacity)

	require.NoError(t, fleet.DeleteVehicle(ctx, first.ID))
	assert.ErrorIs(t, fleet.DeleteVehicle(ctx, first.ID), ErrNotFound)
	_, err = fleet.FindVehicleByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMongoFleet_AssignmentWindow(t *testing.T) {
	fleet := NewMongoFleet(testDatabase(t))
	ctx := context.Background()

	day := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	for _, dep := range []time.Time{day.Add(-time.Hour), day.Add(9 * time.Hour), day.Add(30 * time.Hour)} {
		a := models.Assignment{VehicleID: 1, DriverID: 1, RouteID: 1, DepartureAt: dep, Status: models.AssignmentScheduled}
		require.NoError(t, fleet.InsertAssignment(ctx, &a))
	}

	today, err := fleet.ListAssignments(ctx, AssignmentFilter{From: day, To: day.Add(24 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.True(t, today[0].DepartureAt.Equal(day.Add(9*time.Hour)))
}
