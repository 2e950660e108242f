package fleet

import (
	"time"

	"github.com/ukydev/tourfleet/internal/format"
	"github.com/ukydev/tourfleet/internal/models"
)

// VehicleStats summarises the vehicle collection.
type VehicleStats struct {
	Total              int `json:"total"`
	Available          int `json:"available"`
	InService          int `json:"in_service"`
	Maintenance        int `json:"maintenance"`
	OutOfService       int `json:"out_of_service"`
	MaintenanceDueSoon int `json:"maintenance_due_soon"`
	TotalCapacity      int `json:"total_capacity"`
}

type DriverStats struct {
	Total                int `json:"total"`
	Active               int `json:"active"`
	Inactive             int `json:"inactive"`
	LicensesExpiringSoon int `json:"licenses_expiring_soon"`
}

type RouteStats struct {
	Total           int     `json:"total"`
	Active          int     `json:"active"`
	Inactive        int     `json:"inactive"`
	TotalDistanceKm float64 `json:"total_distance_km"`
}

type AssignmentStats struct {
	Total      int     `json:"total"`
	Scheduled  int     `json:"scheduled"`
	InProgress int     `json:"in_progress"`
	Completed  int     `json:"completed"`
	Cancelled  int     `json:"cancelled"`
	Today      int     `json:"today"`
	Passengers int     `json:"passengers"`
	Revenue    float64 `json:"revenue"`
}

// Stats feeds the dashboard tiles and the statistics endpoint.
type Stats struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Vehicles    VehicleStats    `json:"vehicles"`
	Drivers     DriverStats     `json:"drivers"`
	Routes      RouteStats      `json:"routes"`
	Assignments AssignmentStats `json:"assignments"`
}

// CountBy counts the items whose key equals target.
func CountBy[T any, K comparable](list []T, key func(T) K, target K) int {
	n := 0
	for _, item := range list {
		if key(item) == target {
			n++
		}
	}
	return n
}

// DayBounds returns the start of t's calendar day and the start of the next,
// in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// IsToday reports whether departure falls on now's calendar day.
func IsToday(departure, now time.Time) bool {
	start, end := DayBounds(now)
	departure = departure.In(now.Location())
	return !departure.Before(start) && departure.Before(end)
}

// ComputeStats aggregates s in a single pass per collection.
func ComputeStats(s Snapshot, now time.Time) Stats {
	st := Stats{GeneratedAt: now}

	st.Vehicles.Total = len(s.Vehicles)
	for _, v := range s.Vehicles {
		switch v.Status {
		case models.VehicleAvailable:
			st.Vehicles.Available++
		case models.VehicleInService:
			st.Vehicles.InService++
		case models.VehicleMaintenance:
			st.Vehicles.Maintenance++
		case models.VehicleOutOfService:
			st.Vehicles.OutOfService++
		}
		if tracksMaintenance(v) && format.IsMaintenanceDueSoon(v.NextMaintenance, now) {
			st.Vehicles.MaintenanceDueSoon++
		}
		st.Vehicles.TotalCapacity += v.Capacity
	}

	st.Drivers.Total = len(s.Drivers)
	for _, d := range s.Drivers {
		if d.Active {
			st.Drivers.Active++
		} else {
			st.Drivers.Inactive++
		}
		if d.Active && format.IsLicenseExpiringSoon(d.LicenseExpiry, now) {
			st.Drivers.LicensesExpiringSoon++
		}
	}

	st.Routes.Total = len(s.Routes)
	for _, r := range s.Routes {
		switch r.Status {
		case models.RouteActive:
			st.Routes.Active++
		case models.RouteInactive:
			st.Routes.Inactive++
		}
		st.Routes.TotalDistanceKm += r.DistanceKm
	}

	st.Assignments.Total = len(s.Assignments)
	for _, a := range s.Assignments {
		switch a.Status {
		case models.AssignmentScheduled:
			st.Assignments.Scheduled++
		case models.AssignmentInProgress:
			st.Assignments.InProgress++
		case models.AssignmentCompleted:
			st.Assignments.Completed++
			st.Assignments.Revenue += a.Fare
		case models.AssignmentCancelled:
			st.Assignments.Cancelled++
		}
		if a.Status != models.AssignmentCancelled {
			st.Assignments.Passengers += a.Passengers
		}
		if IsToday(a.DepartureAt, now) {
			st.Assignments.Today++
		}
	}
	return st
}

// TodayAssignments returns the assignments departing on now's calendar day.
func TodayAssignments(list []models.Assignment, now time.Time) []models.Assignment {
	out := []models.Assignment{}
	for _, a := range list {
		if IsToday(a.DepartureAt, now) {
			out = append(out, a)
		}
	}
	return out
}
