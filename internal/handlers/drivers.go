package handlers

import (
	"net/http"
	"strconv"

	"github.com/ukydev/tourfleet/internal/db"
	"github.com/ukydev/tourfleet/internal/events"
	"github.com/ukydev/tourfleet/internal/models"
)

const driverEntity = "driver"

func driverStatus(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

// driverBody lets create tell an omitted "active" from false.
type driverBody struct {
	models.Driver
	Active *bool `json:"active"`
}

func (b driverBody) driver(defaultActive bool) models.Driver {
	d := b.Driver
	d.Active = defaultActive
	if b.Active != nil {
		d.Active = *b.Active
	}
	return d
}

func (h *FleetHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	var filter db.DriverFilter
	if v := r.URL.Query().Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid active filter")
			return
		}
		filter.ActiveOnly = active
	}
	drivers, err := h.fleet.ListDrivers(r.Context(), filter)
	if err != nil {
		writeFailure(w, r, driverEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, drivers)
}

// AvailableDrivers lists active drivers whose license has not expired.
func (h *FleetHandler) AvailableDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.fleet.ListDrivers(r.Context(), db.DriverFilter{ActiveOnly: true, LicenseValidAt: h.now()})
	if err != nil {
		writeFailure(w, r, driverEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, drivers)
}

func (h *FleetHandler) GetDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, driverEntity)
	if !ok {
		return
	}
	driver, err := h.fleet.FindDriverByID(r.Context(), id)
	if err != nil {
		writeFailure(w, r, driverEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, driver)
}

func (h *FleetHandler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var body driverBody
	if err := decodeJSON(r, &body); err != nil {
		writeFailure(w, r, driverEntity, err)
		return
	}
	driver := body.driver(true)
	if err := driver.Validate(); err != nil {
		writeFailure(w, r, driverEntity, err)
		return
	}
	if err := h.fleet.InsertDriver(r.Context(), &driver); err != nil {
		writeFailure(w, r, driverEntity, err)
		return
	}
	h.publish(r.Context(), "drivers", events.ActionCreated, driver.ID, driverStatus(driver.Active))
	writeJSON(w, http.StatusCreated, driver)
}

func (h *FleetHandler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, driverEntity)
	if !ok {
		return
	}
	existing, err := h.fleet.FindDriverByID(r.Context(), id)
	if err != nil {
		writeFailure(w, r, driverEntity, err)
		return
	}

	var body driverBody
	if err := decodeJSON(r, &body); err != nil {
		writeFailure(w, r, driverEntity, err)
		return
	}
	driver := body.driver(existing.Active)
	driver.ID = id
	driver.CreatedAt = existing.CreatedAt
	if err := driver.Validate(); err != nil {
		writeFailure(w, r, driverEntity, err)
		return
	}
	if err := h.fleet.UpdateDriver(r.Context(), driver); err != nil {
		writeFailure(w, r, driverEntity, err)
		return
	}
	h.respondDriver(w, r, events.ActionUpdated, id)
}

// ChangeDriverStatus activates or deactivates a driver: {"active": bool}.
func (h *FleetHandler) ChangeDriverStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, driverEntity)
	if !ok {
		return
	}
	var body struct {
		Active *bool `json:"active"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeFailure(w, r, driverEntity, err)
		return
	}
	if body.Active == nil {
		writeError(w, http.StatusBadRequest, "active is required")
		return
	}
	if err := h.fleet.SetDriverActive(r.Context(), id, *body.Active); err != nil {
		writeFailure(w, r, driverEntity, err)
		return
	}
	h.respondDriver(w, r, events.ActionStatusChanged, id)
}

func (h *FleetHandler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, driverEntity)
	if !ok {
		return
	}
	err := h.checkNotReferenced(r.Context(), driverEntity, func(a models.Assignment) int64 { return a.DriverID }, id)
	if err == nil {
		err = h.fleet.DeleteDriver(r.Context(), id)
	}
	if err != nil {
		writeFailure(w, r, driverEntity, err)
		return
	}
	h.publish(r.Context(), "drivers", events.ActionDeleted, id, "")
	w.WriteHeader(http.StatusNoContent)
}

func (h *FleetHandler) respondDriver(w http.ResponseWriter, r *http.Request, action string, id int64) {
	driver, err := h.fleet.FindDriverByID(r.Context(), id)
	if err != nil {
		writeFailure(w, r, driverEntity, err)
		return
	}
	h.publish(r.Context(), "drivers", action, id, driverStatus(driver.Active))
	writeJSON(w, http.StatusOK, driver)
}
