package fleet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/tourfleet/internal/format"
	"github.com/ukydev/tourfleet/internal/models"
)

var now = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Vehicles: []models.Vehicle{
			{ID: 1, Plate: "TUR-101", Make: "Mercedes", Model: "Sprinter", Type: models.VehicleVan, Capacity: 19, Status: models.VehicleAvailable, NextMaintenance: now.AddDate(0, 2, 0)},
			{ID: 2, Plate: "TUR-202", Make: "Volvo", Model: "9700", Type: models.VehicleBus, Capacity: 45, Status: models.VehicleInService, NextMaintenance: now.AddDate(0, 0, 3)},
			{ID: 3, Plate: "TUR-303", Make: "Toyota", Model: "Hiace", Type: models.VehicleMinibus, Capacity: 12, Status: models.VehicleMaintenance},
			{ID: 4, Plate: "OLD-404", Make: "Ford", Model: "Transit", Type: models.VehicleVan, Capacity: 15, Status: models.VehicleOutOfService, NextMaintenance: now.AddDate(0, 0, -1)},
		},
		Drivers: []models.Driver{
			{ID: 1, FirstName: "Ana", LastName: "Gómez", DocumentNumber: "CC1001", LicenseNumber: "LIC-77", Active: true, LicenseExpiry: now.AddDate(0, 0, 10)},
			{ID: 2, FirstName: "Luis", LastName: "Martínez", DocumentNumber: "CC1002", LicenseNumber: "LIC-88", Active: true, LicenseExpiry: now.AddDate(1, 0, 0)},
			{ID: 3, FirstName: "Marta", LastName: "Ruiz", DocumentNumber: "CC1003", LicenseNumber: "LIC-99", Active: false, LicenseExpiry: now.AddDate(0, 0, 5)},
		},
		Routes: []models.Route{
			{ID: 1, Name: "Coffee Triangle", Origin: "Pereira", Destination: "Salento", DistanceKm: 48, Status: models.RouteActive},
			{ID: 2, Name: "Airport transfer", Origin: "Airport", Destination: "Old Town", DistanceKm: 12.5, Status: models.RouteActive},
			{ID: 3, Name: "Night tour", Origin: "Old Town", Destination: "Old Town", DistanceKm: 20, Status: models.RouteInactive},
		},
		Assignments: []models.Assignment{
			{ID: 1, VehicleID: 1, DriverID: 1, RouteID: 1, DepartureAt: now.Add(2 * time.Hour), Passengers: 15, Fare: 300, Status: models.AssignmentScheduled},
			{ID: 2, VehicleID: 2, DriverID: 2, RouteID: 2, DepartureAt: now.Add(-3 * time.Hour), Passengers: 40, Fare: 500, Status: models.AssignmentCompleted},
			{ID: 3, VehicleID: 2, DriverID: 2, RouteID: 1, DepartureAt: now.AddDate(0, 0, -1), Passengers: 30, Fare: 450.5, Status: models.AssignmentCompleted},
			{ID: 4, VehicleID: 1, DriverID: 1, RouteID: 2, DepartureAt: now.AddDate(0, 0, 1), Passengers: 10, Fare: 200, Status: models.AssignmentCancelled},
		},
	}
}

func TestFilterVehicles(t *testing.T) {
	s := sampleSnapshot()

	assert.Equal(t, s.Vehicles, FilterVehicles(s.Vehicles, ""))
	assert.Equal(t, s.Vehicles, FilterVehicles(s.Vehicles, "   "))

	got := FilterVehicles(s.Vehicles, "tur-")
	assert.Len(t, got, 3)

	got = FilterVehicles(s.Vehicles, "SPRINTER")
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	got = FilterVehicles(s.Vehicles, "van")
	assert.Len(t, got, 2)

	assert.Empty(t, FilterVehicles(s.Vehicles, "zeppelin"))
	assert.Empty(t, FilterVehicles(nil, "x"))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	s := sampleSnapshot()
	before := append([]models.Vehicle(nil), s.Vehicles...)
	_ = FilterVehicles(s.Vehicles, "volvo")
	assert.Equal(t, before, s.Vehicles)
}

func TestFilterDrivers(t *testing.T) {
	s := sampleSnapshot()

	got := FilterDrivers(s.Drivers, "ana góm")
	require.Len(t, got, 1)
	assert.Equal(t, "CC1001", got[0].DocumentNumber)

	assert.Len(t, FilterDrivers(s.Drivers, "cc100"), 3)
	assert.Len(t, FilterDrivers(s.Drivers, "lic-88"), 1)
	assert.Empty(t, FilterDrivers(s.Drivers, "nobody"))
}

func TestFilterRoutes(t *testing.T) {
	s := sampleSnapshot()
	assert.Len(t, FilterRoutes(s.Routes, "old town"), 2)
	assert.Len(t, FilterRoutes(s.Routes, "SALENTO"), 1)
	assert.Empty(t, FilterRoutes(s.Routes, "moon"))
}

func TestFilterAssignments(t *testing.T) {
	s := sampleSnapshot()
	idx := NewIndex(s)

	assert.Len(t, FilterAssignments(s.Assignments, "tur-202", idx), 2)
	assert.Len(t, FilterAssignments(s.Assignments, "luis", idx), 2)
	assert.Len(t, FilterAssignments(s.Assignments, "coffee", idx), 2)
	assert.Len(t, FilterAssignments(s.Assignments, "cancelled", idx), 1)
	assert.Equal(t, s.Assignments, FilterAssignments(s.Assignments, "", nil))

	// without an index references render as #id
	assert.Len(t, FilterAssignments(s.Assignments, "#2", nil), 3)
}

func TestIndexMissingReferences(t *testing.T) {
	idx := NewIndex(Snapshot{})
	assert.Equal(t, "#7", idx.VehiclePlate(7))
	assert.Equal(t, "#8", idx.DriverName(8))
	assert.Equal(t, "#9", idx.RouteName(9))
	_, ok := idx.Vehicle(7)
	assert.False(t, ok)
}

func TestComputeStats(t *testing.T) {
	st := ComputeStats(sampleSnapshot(), now)

	assert.Equal(t, VehicleStats{Total: 4, Available: 1, InService: 1, Maintenance: 1, OutOfService: 1, MaintenanceDueSoon: 1, TotalCapacity: 91}, st.Vehicles)
	assert.Equal(t, DriverStats{Total: 3, Active: 2, Inactive: 1, LicensesExpiringSoon: 1}, st.Drivers)
	assert.Equal(t, RouteStats{Total: 3, Active: 2, Inactive: 1, TotalDistanceKm: 80.5}, st.Routes)
	assert.Equal(t, AssignmentStats{Total: 4, Scheduled: 1, Completed: 2, Cancelled: 1, Today: 2, Passengers: 85, Revenue: 950.5}, st.Assignments)
	assert.Equal(t, now, st.GeneratedAt)
}

func TestComputeStats_Empty(t *testing.T) {
	st := ComputeStats(Snapshot{}, now)
	assert.Equal(t, Stats{GeneratedAt: now}, st)
}

func TestCountBy(t *testing.T) {
	s := sampleSnapshot()
	routeStatus := func(r models.Route) models.RouteStatus { return r.Status }

	assert.Equal(t, 2, CountBy(s.Routes, routeStatus, models.RouteActive))
	assert.Equal(t, 0, CountBy([]models.Route{}, routeStatus, models.RouteActive))
	assert.Equal(t, 0, CountBy(nil, routeStatus, models.RouteActive))
}

func TestDayBoundsAndToday(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	local := time.Date(2026, 10, 19, 22, 30, 0, 0, bogota)

	start, end := DayBounds(local)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, bogota), start)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, bogota), end)

	// 02:00 UTC on the 20th is still the 19th in Bogotá
	assert.True(t, IsToday(time.Date(2026, 10, 20, 2, 0, 0, 0, time.UTC), local))
	assert.False(t, IsToday(end, local))

	today := TodayAssignments(sampleSnapshot().Assignments, now)
	assert.Len(t, today, 2)
	assert.NotNil(t, TodayAssignments(nil, now))
}

func TestAlerts(t *testing.T) {
	alerts := Alerts(sampleSnapshot(), now)

	// vehicle 2 due in 3 days, driver 1 in 10 days, vehicle 3 undated.
	// Inactive driver 3 and out-of-service vehicle 4 are skipped.
	require.Len(t, alerts, 3)
	assert.Equal(t, MaintenanceDue, alerts[0].Kind)
	assert.Equal(t, "TUR-202", alerts[0].Subject)
	assert.Equal(t, format.AlertSoon, alerts[0].State)

	assert.Equal(t, LicenseExpiry, alerts[1].Kind)
	assert.Equal(t, "Ana Gómez", alerts[1].Subject)

	assert.Equal(t, "TUR-303", alerts[2].Subject)
	assert.Equal(t, format.AlertUnknown, alerts[2].State)

	assert.Empty(t, Alerts(Snapshot{}, now))
}

func TestAlertsAgreeWithStats(t *testing.T) {
	s := sampleSnapshot()
	st := ComputeStats(s, now)

	soon := map[AlertKind]int{}
	for _, a := range Alerts(s, now) {
		if a.State == format.AlertSoon {
			soon[a.Kind]++
		}
	}
	assert.Equal(t, st.Vehicles.MaintenanceDueSoon, soon[MaintenanceDue])
	assert.Equal(t, st.Drivers.LicensesExpiringSoon, soon[LicenseExpiry])
}
