package dashboard

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/ukydev/tourfleet/internal/fleet"
	"github.com/ukydev/tourfleet/internal/format"
	"github.com/ukydev/tourfleet/internal/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func id(n int64) string { return strconv.FormatInt(n, 10) }

// alertMark flags rows whose license or maintenance needs attention.
func alertMark(a format.Alert) string {
	switch a {
	case format.AlertSoon:
		return "!"
	case format.AlertUnknown:
		return "?"
	}
	return ""
}

func RenderVehicles(w io.Writer, list []models.Vehicle, now time.Time) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tPLATE\tVEHICLE\tTYPE\tSEATS\tSTATUS\tNEXT SERVICE\t")
	for _, v := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s %s (%d)\t%s\t%d\t%s\t%s%s\t\n",
			id(v.ID), v.Plate, v.Make, v.Model, v.Year,
			format.VehicleTypeLabel(v.Type), v.Capacity,
			format.VehicleStatusLabel(v.Status),
			format.Date(v.NextMaintenance), alertMark(format.CheckMaintenance(v.NextMaintenance, now)))
	}
	return tw.Flush()
}

func RenderDrivers(w io.Writer, list []models.Driver, now time.Time) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tDOCUMENT\tLICENSE\tEXPIRES\tPHONE\tSTATUS\t")
	for _, d := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s %s\t%s%s\t%s\t%s\t\n",
			id(d.ID), d.FullName(), d.DocumentNumber,
			d.LicenseNumber, d.LicenseCategory,
			format.Date(d.LicenseExpiry), alertMark(format.CheckLicense(d.LicenseExpiry, now)),
			d.Phone, format.DriverStatusLabel(d.Active))
	}
	return tw.Flush()
}

func RenderRoutes(w io.Writer, list []models.Route) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tFROM\tTO\tDISTANCE\tDURATION\tFARE\tSTATUS\t")
	for _, r := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			id(r.ID), r.Name, r.Origin, r.Destination,
			format.Distance(r.DistanceKm), format.Duration(r.EstimatedDurationMin),
			format.Currency(r.BaseFare), format.RouteStatusLabel(r.Status))
	}
	return tw.Flush()
}

// RenderAssignments resolves vehicle, driver and route names through idx,
// which may be nil.
func RenderAssignments(w io.Writer, list []models.Assignment, idx *fleet.Index) error {
	if idx == nil {
		idx = fleet.NewIndex(fleet.Snapshot{})
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDEPARTURE\tROUTE\tVEHICLE\tDRIVER\tPAX\tFARE\tSTATUS\t")
	for _, a := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\t\n",
			id(a.ID), format.DateTime(a.DepartureAt),
			idx.RouteName(a.RouteID), idx.VehiclePlate(a.VehicleID), idx.DriverName(a.DriverID),
			a.Passengers, format.Currency(a.Fare), format.AssignmentStatusLabel(a.Status))
	}
	return tw.Flush()
}

// RenderStats writes the dashboard tiles as a two-column summary.
func RenderStats(w io.Writer, s fleet.Stats) error {
	tw := newTable(w)
	rows := []struct {
		label string
		value string
	}{
		{"Vehicles", fmt.Sprintf("%d (%d available, %d in service, %d maintenance, %d out of service)",
			s.Vehicles.Total, s.Vehicles.Available, s.Vehicles.InService, s.Vehicles.Maintenance, s.Vehicles.OutOfService)},
		{"Seats", strconv.Itoa(s.Vehicles.TotalCapacity)},
		{"Maintenance due soon", strconv.Itoa(s.Vehicles.MaintenanceDueSoon)},
		{"Drivers", fmt.Sprintf("%d (%d active, %d inactive)", s.Drivers.Total, s.Drivers.Active, s.Drivers.Inactive)},
		{"Licenses expiring soon", strconv.Itoa(s.Drivers.LicensesExpiringSoon)},
		{"Routes", fmt.Sprintf("%d (%d active, %s)", s.Routes.Total, s.Routes.Active, format.Distance(s.Routes.TotalDistanceKm))},
		{"Assignments", fmt.Sprintf("%d (%d scheduled, %d in progress, %d completed, %d cancelled)",
			s.Assignments.Total, s.Assignments.Scheduled, s.Assignments.InProgress, s.Assignments.Completed, s.Assignments.Cancelled)},
		{"Departures today", strconv.Itoa(s.Assignments.Today)},
		{"Passengers", strconv.Itoa(s.Assignments.Passengers)},
		{"Revenue", format.Currency(s.Assignments.Revenue)},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", row.label, row.value)
	}
	return tw.Flush()
}

func RenderAlerts(w io.Writer, list []fleet.AlertItem) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No alerts.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "KIND\tID\tSUBJECT\tDUE\tSTATE\t")
	for _, a := range list {
		kind := "License"
		if a.Kind == fleet.MaintenanceDue {
			kind = "Maintenance"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", kind, id(a.ID), a.Subject, format.Date(a.Due), a.State)
	}
	return tw.Flush()
}
