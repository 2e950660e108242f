package fleet

import (
	"strconv"
	"strings"

	"github.com/ukydev/tourfleet/internal/format"
	"github.com/ukydev/tourfleet/internal/models"
)

// Snapshot is a point-in-time copy of the four fleet collections.
type Snapshot struct {
	Vehicles    []models.Vehicle
	Drivers     []models.Driver
	Routes      []models.Route
	Assignments []models.Assignment
}

// Index resolves the references of an assignment.
type Index struct {
	vehicles map[int64]models.Vehicle
	drivers  map[int64]models.Driver
	routes   map[int64]models.Route
}

// NewIndex indexes the vehicles, drivers and routes of s by id.
func NewIndex(s Snapshot) *Index {
	idx := &Index{
		vehicles: make(map[int64]models.Vehicle, len(s.Vehicles)),
		drivers:  make(map[int64]models.Driver, len(s.Drivers)),
		routes:   make(map[int64]models.Route, len(s.Routes)),
	}
	for _, v := range s.Vehicles {
		idx.vehicles[v.ID] = v
	}
	for _, d := range s.Drivers {
		idx.drivers[d.ID] = d
	}
	for _, r := range s.Routes {
		idx.routes[r.ID] = r
	}
	return idx
}

func (i *Index) Vehicle(id int64) (models.Vehicle, bool) {
	v, ok := i.vehicles[id]
	return v, ok
}

func (i *Index) Driver(id int64) (models.Driver, bool) {
	d, ok := i.drivers[id]
	return d, ok
}

func (i *Index) Route(id int64) (models.Route, bool) {
	r, ok := i.routes[id]
	return r, ok
}

// VehiclePlate returns the plate of the referenced vehicle or "#id".
func (i *Index) VehiclePlate(id int64) string {
	if v, ok := i.vehicles[id]; ok {
		return v.Plate
	}
	return missing(id)
}

func (i *Index) DriverName(id int64) string {
	if d, ok := i.drivers[id]; ok {
		return d.FullName()
	}
	return missing(id)
}

func (i *Index) RouteName(id int64) string {
	if r, ok := i.routes[id]; ok {
		return r.Name
	}
	return missing(id)
}

func missing(id int64) string {
	return "#" + strconv.FormatInt(id, 10)
}

// matcher reports whether any field contains the lower-cased term.
func matcher(term string) (func(fields ...string) bool, bool) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, false
	}
	return func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), term) {
				return true
			}
		}
		return false
	}, true
}

func filter[T any](list []T, term string, fields func(T) []string) []T {
	match, ok := matcher(term)
	if !ok {
		return list
	}
	out := make([]T, 0, len(list))
	for _, item := range list {
		if match(fields(item)...) {
			out = append(out, item)
		}
	}
	return out
}

// FilterVehicles matches term against plate, make, model and type.
// An empty term returns list unchanged.
func FilterVehicles(list []models.Vehicle, term string) []models.Vehicle {
	return filter(list, term, func(v models.Vehicle) []string {
		return []string{v.Plate, v.Make, v.Model, string(v.Type), format.VehicleTypeLabel(v.Type)}
	})
}

// FilterDrivers matches term against name, document and license number.
func FilterDrivers(list []models.Driver, term string) []models.Driver {
	return filter(list, term, func(d models.Driver) []string {
		return []string{d.FirstName, d.LastName, d.FullName(), d.DocumentNumber, d.LicenseNumber}
	})
}

// FilterRoutes matches term against name, origin and destination.
func FilterRoutes(list []models.Route, term string) []models.Route {
	return filter(list, term, func(r models.Route) []string {
		return []string{r.Name, r.Origin, r.Destination}
	})
}

// FilterAssignments matches term against the referenced plate, driver and
// route names and the status label. idx may be nil.
func FilterAssignments(list []models.Assignment, term string, idx *Index) []models.Assignment {
	if idx == nil {
		idx = NewIndex(Snapshot{})
	}
	return filter(list, term, func(a models.Assignment) []string {
		return []string{
			idx.VehiclePlate(a.VehicleID),
			idx.DriverName(a.DriverID),
			idx.RouteName(a.RouteID),
			format.AssignmentStatusLabel(a.Status),
		}
	})
}
