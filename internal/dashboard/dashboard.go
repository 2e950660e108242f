package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ukydev/tourfleet/internal/fleet"
	"github.com/ukydev/tourfleet/internal/models"
	"github.com/ukydev/tourfleet/internal/store"
)

// ErrUnknownKind is returned for an entity name that is not one of the tabs.
var ErrUnknownKind = errors.New("unknown entity")

// ParseKind accepts singular or plural entity names in any case.
func ParseKind(name string) (store.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "vehicle", "vehicles":
		return store.Vehicles, nil
	case "driver", "drivers":
		return store.Drivers, nil
	case "route", "routes":
		return store.Routes, nil
	case "assignment", "assignments":
		return store.Assignments, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKind, name)
}

// Dashboard drives the tabs of the back office over a store.
type Dashboard struct {
	Store *store.Store
	Now   func() time.Time

	tab store.Kind
}

func New(s *store.Store) *Dashboard {
	return &Dashboard{Store: s, Now: time.Now, tab: store.Vehicles}
}

// Tab is the active tab. Vehicles until SetTab is called.
func (d *Dashboard) Tab() store.Kind { return d.tab }

func (d *Dashboard) SetTab(kind store.Kind) { d.tab = kind }

func (d *Dashboard) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func resultError(res store.Result) error {
	if res.Success {
		return nil
	}
	return errors.New(res.Error)
}

// Load fetches kind unless it is already cached.
func (d *Dashboard) Load(ctx context.Context, kind store.Kind) store.Result {
	switch kind {
	case store.Vehicles:
		return d.Store.EnsureVehicles(ctx)
	case store.Drivers:
		return d.Store.EnsureDrivers(ctx)
	case store.Routes:
		return d.Store.EnsureRoutes(ctx)
	case store.Assignments:
		return d.Store.EnsureAll(ctx)
	}
	return store.Result{Error: fmt.Sprintf("%v %q", ErrUnknownKind, kind)}
}

// Show switches to kind, loads it if needed and renders the rows matching
// term. Assignments load every collection so names can be resolved.
func (d *Dashboard) Show(ctx context.Context, w io.Writer, kind store.Kind, term string) error {
	d.SetTab(kind)
	now := d.now()
	switch kind {
	case store.Vehicles:
		if err := resultError(d.Store.EnsureVehicles(ctx)); err != nil {
			return err
		}
		return RenderVehicles(w, fleet.FilterVehicles(d.Store.Vehicles(), term), now)
	case store.Drivers:
		if err := resultError(d.Store.EnsureDrivers(ctx)); err != nil {
			return err
		}
		return RenderDrivers(w, fleet.FilterDrivers(d.Store.Drivers(), term), now)
	case store.Routes:
		if err := resultError(d.Store.EnsureRoutes(ctx)); err != nil {
			return err
		}
		return RenderRoutes(w, fleet.FilterRoutes(d.Store.Routes(), term))
	case store.Assignments:
		if err := resultError(d.Store.EnsureAll(ctx)); err != nil {
			return err
		}
		snap := d.Store.Snapshot()
		idx := fleet.NewIndex(snap)
		return RenderAssignments(w, fleet.FilterAssignments(snap.Assignments, term, idx), idx)
	}
	return fmt.Errorf("%w %q", ErrUnknownKind, kind)
}

// ShowView renders the subset the server selects for kind: available
// vehicles or drivers, active routes or today's assignments. The cached
// collections are not reloaded, except that assignments need every
// collection to resolve names.
func (d *Dashboard) ShowView(ctx context.Context, w io.Writer, kind store.Kind, term string) error {
	d.SetTab(kind)
	now := d.now()
	switch kind {
	case store.Vehicles:
		list, res := d.Store.AvailableVehicles(ctx)
		if err := resultError(res); err != nil {
			return err
		}
		return RenderVehicles(w, fleet.FilterVehicles(list, term), now)
	case store.Drivers:
		list, res := d.Store.AvailableDrivers(ctx)
		if err := resultError(res); err != nil {
			return err
		}
		return RenderDrivers(w, fleet.FilterDrivers(list, term), now)
	case store.Routes:
		list, res := d.Store.ActiveRoutes(ctx)
		if err := resultError(res); err != nil {
			return err
		}
		return RenderRoutes(w, fleet.FilterRoutes(list, term))
	case store.Assignments:
		if err := resultError(d.Store.EnsureAll(ctx)); err != nil {
			return err
		}
		list, res := d.Store.TodayAssignments(ctx)
		if err := resultError(res); err != nil {
			return err
		}
		idx := fleet.NewIndex(d.Store.Snapshot())
		return RenderAssignments(w, fleet.FilterAssignments(list, term, idx), idx)
	}
	return fmt.Errorf("%w %q", ErrUnknownKind, kind)
}

// ShowOne re-reads a single record from the server into the cache and
// renders it.
func (d *Dashboard) ShowOne(ctx context.Context, w io.Writer, kind store.Kind, id int64) error {
	var res store.Result
	switch kind {
	case store.Vehicles:
		res = d.Store.RefreshVehicle(ctx, id)
	case store.Drivers:
		res = d.Store.RefreshDriver(ctx, id)
	case store.Routes:
		res = d.Store.RefreshRoute(ctx, id)
	case store.Assignments:
		if res = d.Store.EnsureAll(ctx); res.Success {
			res = d.Store.RefreshAssignment(ctx, id)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	if err := resultError(res); err != nil {
		return err
	}

	snap := d.Store.Snapshot()
	idx := fleet.NewIndex(snap)
	switch kind {
	case store.Vehicles:
		v, _ := idx.Vehicle(id)
		return RenderVehicles(w, []models.Vehicle{v}, d.now())
	case store.Drivers:
		dr, _ := idx.Driver(id)
		return RenderDrivers(w, []models.Driver{dr}, d.now())
	case store.Routes:
		r, _ := idx.Route(id)
		return RenderRoutes(w, []models.Route{r})
	}
	for _, a := range snap.Assignments {
		if a.ID == id {
			return RenderAssignments(w, []models.Assignment{a}, idx)
		}
	}
	return nil
}

// ServerStats returns the aggregates computed by the server instead of the
// cached collections.
func (d *Dashboard) ServerStats(ctx context.Context) (fleet.Stats, error) {
	stats, res := d.Store.Statistics(ctx)
	return stats, resultError(res)
}

func (d *Dashboard) ServerAlerts(ctx context.Context) ([]fleet.AlertItem, error) {
	alerts, res := d.Store.ServerAlerts(ctx)
	return alerts, resultError(res)
}

// Stats loads every collection and aggregates the dashboard tiles.
func (d *Dashboard) Stats(ctx context.Context) (fleet.Stats, error) {
	if err := resultError(d.Store.EnsureAll(ctx)); err != nil {
		return fleet.Stats{}, err
	}
	return fleet.ComputeStats(d.Store.Snapshot(), d.now()), nil
}

func (d *Dashboard) Alerts(ctx context.Context) ([]fleet.AlertItem, error) {
	if err := resultError(d.Store.EnsureAll(ctx)); err != nil {
		return nil, err
	}
	return fleet.Alerts(d.Store.Snapshot(), d.now()), nil
}

// describe names a cached record for the delete prompt, falling back to the
// id when it is not loaded.
func (d *Dashboard) describe(kind store.Kind, id int64) string {
	idx := fleet.NewIndex(d.Store.Snapshot())
	switch kind {
	case store.Vehicles:
		return "vehicle " + idx.VehiclePlate(id)
	case store.Drivers:
		return "driver " + idx.DriverName(id)
	case store.Routes:
		return "route " + idx.RouteName(id)
	}
	return fmt.Sprintf("assignment #%d", id)
}

// Delete asks c for confirmation and then deletes the record through the
// store.
func (d *Dashboard) Delete(ctx context.Context, kind store.Kind, id int64, c Confirmer) store.Result {
	var op func() store.Result
	switch kind {
	case store.Vehicles:
		op = func() store.Result { return d.Store.DeleteVehicle(ctx, id) }
	case store.Drivers:
		op = func() store.Result { return d.Store.DeleteDriver(ctx, id) }
	case store.Routes:
		op = func() store.Result { return d.Store.DeleteRoute(ctx, id) }
	case store.Assignments:
		op = func() store.Result { return d.Store.DeleteAssignment(ctx, id) }
	default:
		return store.Result{Error: fmt.Sprintf("unknown entity %q", kind)}
	}
	return ConfirmDelete(c, fmt.Sprintf("Delete %s?", d.describe(kind, id)), op)
}

// SetStatus changes the status of a record. Drivers take "active" or
// "inactive"; the other entities take one of their status values.
func (d *Dashboard) SetStatus(ctx context.Context, kind store.Kind, id int64, value string) store.Result {
	value = strings.ToLower(strings.TrimSpace(value))
	invalid := store.Result{Error: fmt.Sprintf("invalid %s status %q", strings.TrimSuffix(string(kind), "s"), value)}
	switch kind {
	case store.Vehicles:
		status := models.VehicleStatus(value)
		if !status.Valid() {
			return invalid
		}
		return d.Store.ChangeVehicleStatus(ctx, id, status)
	case store.Drivers:
		switch value {
		case "active":
			return d.Store.ChangeDriverStatus(ctx, id, true)
		case "inactive":
			return d.Store.ChangeDriverStatus(ctx, id, false)
		}
		return invalid
	case store.Routes:
		status := models.RouteStatus(value)
		if !status.Valid() {
			return invalid
		}
		return d.Store.ChangeRouteStatus(ctx, id, status)
	case store.Assignments:
		status := models.AssignmentStatus(value)
		if !status.Valid() {
			return invalid
		}
		return d.Store.ChangeAssignmentStatus(ctx, id, status)
	}
	return store.Result{Error: fmt.Sprintf("unknown entity %q", kind)}
}
