package db

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ukydev/tourfleet/internal/models"
)

// table is an id-keyed set of records guarded by the owning MemoryFleet.
type table[T any] struct {
	rows   map[int64]T
	nextID int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

func (t *table[T]) list(keep func(T) bool) []T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	out := []T{}
	for _, id := range ids {
		if keep == nil || keep(t.rows[id]) {
			out = append(out, t.rows[id])
		}
	}
	return out
}

func (t *table[T]) get(id int64) (*T, error) {
	row, ok := t.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (t *table[T]) update(id int64, fn func(*T)) error {
	row, ok := t.rows[id]
	if !ok {
		return ErrNotFound
	}
	fn(&row)
	t.rows[id] = row
	return nil
}

func (t *table[T]) remove(id int64) error {
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

// MemoryFleet is a process-local Fleet used for development and tests.
type MemoryFleet struct {
	mu          sync.RWMutex
	vehicles    *table[models.Vehicle]
	drivers     *table[models.Driver]
	routes      *table[models.Route]
	assignments *table[models.Assignment]
}

func NewMemoryFleet() *MemoryFleet {
	return &MemoryFleet{
		vehicles:    newTable[models.Vehicle](),
		drivers:     newTable[models.Driver](),
		routes:      newTable[models.Route](),
		assignments: newTable[models.Assignment](),
	}
}

func (m *MemoryFleet) InsertVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.vehicles.rows {
		if strings.EqualFold(v.Plate, vehicle.Plate) {
			return ErrDuplicate
		}
	}
	m.vehicles.nextID++
	vehicle.ID = m.vehicles.nextID
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = vehicle.CreatedAt
	m.vehicles.rows[vehicle.ID] = *vehicle
	return nil
}

func (m *MemoryFleet) ListVehicles(ctx context.Context, status models.VehicleStatus) ([]models.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vehicles.list(func(v models.Vehicle) bool {
		return status == "" || v.Status == status
	}), nil
}

func (m *MemoryFleet) FindVehicleByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vehicles.get(id)
}

func (m *MemoryFleet) UpdateVehicle(ctx context.Context, vehicle models.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, v := range m.vehicles.rows {
		if id != vehicle.ID && strings.EqualFold(v.Plate, vehicle.Plate) {
			return ErrDuplicate
		}
	}
	return m.vehicles.update(vehicle.ID, func(v *models.Vehicle) {
		vehicle.UpdatedAt = time.Now()
		*v = vehicle
	})
}

func (m *MemoryFleet) SetVehicleStatus(ctx context.Context, id int64, status models.VehicleStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vehicles.update(id, func(v *models.Vehicle) {
		v.Status = status
		v.UpdatedAt = time.Now()
	})
}

func (m *MemoryFleet) DeleteVehicle(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vehicles.remove(id)
}

func (m *MemoryFleet) InsertDriver(ctx context.Context, driver *models.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.drivers.rows {
		if d.DocumentNumber == driver.DocumentNumber {
			return ErrDuplicate
		}
	}
	m.drivers.nextID++
	driver.ID = m.drivers.nextID
	driver.CreatedAt = time.Now()
	driver.UpdatedAt = driver.CreatedAt
	m.drivers.rows[driver.ID] = *driver
	return nil
}

func (m *MemoryFleet) ListDrivers(ctx context.Context, filter DriverFilter) ([]models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.drivers.list(func(d models.Driver) bool {
		if filter.ActiveOnly && !d.Active {
			return false
		}
		if !filter.LicenseValidAt.IsZero() && !d.LicenseExpiry.After(filter.LicenseValidAt) {
			return false
		}
		return true
	}), nil
}

func (m *MemoryFleet) FindDriverByID(ctx context.Context, id int64) (*models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.drivers.get(id)
}

func (m *MemoryFleet) UpdateDriver(ctx context.Context, driver models.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, d := range m.drivers.rows {
		if id != driver.ID && d.DocumentNumber == driver.DocumentNumber {
			return ErrDuplicate
		}
	}
	return m.drivers.update(driver.ID, func(d *models.Driver) {
		driver.UpdatedAt = time.Now()
		*d = driver
	})
}

func (m *MemoryFleet) SetDriverActive(ctx context.Context, id int64, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drivers.update(id, func(d *models.Driver) {
		d.Active = active
		d.UpdatedAt = time.Now()
	})
}

func (m *MemoryFleet) DeleteDriver(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drivers.remove(id)
}

func (m *MemoryFleet) InsertRoute(ctx context.Context, route *models.Route) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes.nextID++
	route.ID = m.routes.nextID
	route.CreatedAt = time.Now()
	route.UpdatedAt = route.CreatedAt
	m.routes.rows[route.ID] = *route
	return nil
}

func (m *MemoryFleet) ListRoutes(ctx context.Context, status models.RouteStatus) ([]models.Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.routes.list(func(r models.Route) bool {
		return status == "" || r.Status == status
	}), nil
}

func (m *MemoryFleet) FindRouteByID(ctx context.Context, id int64) (*models.Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.routes.get(id)
}

func (m *MemoryFleet) UpdateRoute(ctx context.Context, route models.Route) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.routes.update(route.ID, func(r *models.Route) {
		route.UpdatedAt = time.Now()
		*r = route
	})
}

func (m *MemoryFleet) SetRouteStatus(ctx context.Context, id int64, status models.RouteStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.routes.update(id, func(r *models.Route) {
		r.Status = status
		r.UpdatedAt = time.Now()
	})
}

func (m *MemoryFleet) DeleteRoute(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.routes.remove(id)
}

func (m *MemoryFleet) InsertAssignment(ctx context.Context, assignment *models.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments.nextID++
	assignment.ID = m.assignments.nextID
	assignment.CreatedAt = time.Now()
	assignment.UpdatedAt = assignment.CreatedAt
	m.assignments.rows[assignment.ID] = *assignment
	return nil
}

func (m *MemoryFleet) ListAssignments(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.assignments.list(func(a models.Assignment) bool {
		if !filter.From.IsZero() && a.DepartureAt.Before(filter.From) {
			return false
		}
		if !filter.To.IsZero() && !a.DepartureAt.Before(filter.To) {
			return false
		}
		return filter.Status == "" || a.Status == filter.Status
	}), nil
}

func (m *MemoryFleet) FindAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.assignments.get(id)
}

func (m *MemoryFleet) UpdateAssignment(ctx context.Context, assignment models.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assignments.update(assignment.ID, func(a *models.Assignment) {
		assignment.UpdatedAt = time.Now()
		*a = assignment
	})
}

func (m *MemoryFleet) SetAssignmentStatus(ctx context.Context, id int64, status models.AssignmentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assignments.update(id, func(a *models.Assignment) {
		a.Status = status
		a.UpdatedAt = time.Now()
	})
}

func (m *MemoryFleet) DeleteAssignment(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assignments.remove(id)
}
