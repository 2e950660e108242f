package handlers

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/ukydev/tourfleet/internal/db"
	"github.com/ukydev/tourfleet/internal/fleet"
)

// snapshot reads the four collections concurrently. The first failure
// cancels the remaining reads.
func (h *FleetHandler) snapshot(ctx context.Context) (fleet.Snapshot, error) {
	var s fleet.Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.Vehicles, err = h.fleet.ListVehicles(ctx, "")
		return err
	})
	g.Go(func() (err error) {
		s.Drivers, err = h.fleet.ListDrivers(ctx, db.DriverFilter{})
		return err
	})
	g.Go(func() (err error) {
		s.Routes, err = h.fleet.ListRoutes(ctx, "")
		return err
	})
	g.Go(func() (err error) {
		s.Assignments, err = h.fleet.ListAssignments(ctx, db.AssignmentFilter{})
		return err
	})
	return s, g.Wait()
}

// Statistics aggregates the dashboard tiles over the whole fleet.
func (h *FleetHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	s, err := h.snapshot(r.Context())
	if err != nil {
		writeFailure(w, r, "statistics", err)
		return
	}
	writeJSON(w, http.StatusOK, fleet.ComputeStats(s, h.now()))
}

// Alerts lists licenses and maintenance that are due soon or undated.
func (h *FleetHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	s, err := h.snapshot(r.Context())
	if err != nil {
		writeFailure(w, r, "alerts", err)
		return
	}
	writeJSON(w, http.StatusOK, fleet.Alerts(s, h.now()))
}
