package handlers

import (
	"net/http"

	"github.com/ukydev/tourfleet/internal/events"
	"github.com/ukydev/tourfleet/internal/models"
)

const vehicleEntity = "vehicle"

func (h *FleetHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	status := models.VehicleStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown vehicle status")
		return
	}
	vehicles, err := h.fleet.ListVehicles(r.Context(), status)
	if err != nil {
		writeFailure(w, r, vehicleEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// AvailableVehicles lists vehicles ready to be assigned.
func (h *FleetHandler) AvailableVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.fleet.ListVehicles(r.Context(), models.VehicleAvailable)
	if err != nil {
		writeFailure(w, r, vehicleEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *FleetHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, vehicleEntity)
	if !ok {
		return
	}
	vehicle, err := h.fleet.FindVehicleByID(r.Context(), id)
	if err != nil {
		writeFailure(w, r, vehicleEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *FleetHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := decodeJSON(r, &vehicle); err != nil {
		writeFailure(w, r, vehicleEntity, err)
		return
	}
	if vehicle.Status == "" {
		vehicle.Status = models.VehicleAvailable
	}
	vehicle.NormalizePlate()
	if err := vehicle.Validate(); err != nil {
		writeFailure(w, r, vehicleEntity, err)
		return
	}
	if err := h.fleet.InsertVehicle(r.Context(), &vehicle); err != nil {
		writeFailure(w, r, vehicleEntity, err)
		return
	}
	h.publish(r.Context(), "vehicles", events.ActionCreated, vehicle.ID, string(vehicle.Status))
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *FleetHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, vehicleEntity)
	if !ok {
		return
	}
	existing, err := h.fleet.FindVehicleByID(r.Context(), id)
	if err != nil {
		writeFailure(w, r, vehicleEntity, err)
		return
	}

	var vehicle models.Vehicle
	if err := decodeJSON(r, &vehicle); err != nil {
		writeFailure(w, r, vehicleEntity, err)
		return
	}
	vehicle.ID = id
	vehicle.CreatedAt = existing.CreatedAt
	vehicle.NormalizePlate()
	if vehicle.Status == "" {
		vehicle.Status = existing.Status
	}
	if err := vehicle.Validate(); err != nil {
		writeFailure(w, r, vehicleEntity, err)
		return
	}
	if err := h.checkSeatsBooked(r.Context(), &vehicle); err != nil {
		writeFailure(w, r, vehicleEntity, err)
		return
	}
	if err := h.fleet.UpdateVehicle(r.Context(), vehicle); err != nil {
		writeFailure(w, r, vehicleEntity, err)
		return
	}
	h.respondVehicle(w, r, events.ActionUpdated, id)
}

func (h *FleetHandler) ChangeVehicleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, vehicleEntity)
	if !ok {
		return
	}
	var body struct {
		Status models.VehicleStatus `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeFailure(w, r, vehicleEntity, err)
		return
	}
	if !body.Status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown vehicle status")
		return
	}
	if err := h.fleet.SetVehicleStatus(r.Context(), id, body.Status); err != nil {
		writeFailure(w, r, vehicleEntity, err)
		return
	}
	h.respondVehicle(w, r, events.ActionStatusChanged, id)
}

func (h *FleetHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, vehicleEntity)
	if !ok {
		return
	}
	err := h.checkNotReferenced(r.Context(), vehicleEntity, func(a models.Assignment) int64 { return a.VehicleID }, id)
	if err == nil {
		err = h.fleet.DeleteVehicle(r.Context(), id)
	}
	if err != nil {
		writeFailure(w, r, vehicleEntity, err)
		return
	}
	h.publish(r.Context(), "vehicles", events.ActionDeleted, id, "")
	w.WriteHeader(http.StatusNoContent)
}

// respondVehicle re-reads the stored vehicle, publishes action and returns it.
func (h *FleetHandler) respondVehicle(w http.ResponseWriter, r *http.Request, action string, id int64) {
	vehicle, err := h.fleet.FindVehicleByID(r.Context(), id)
	if err != nil {
		writeFailure(w, r, vehicleEntity, err)
		return
	}
	h.publish(r.Context(), "vehicles", action, id, string(vehicle.Status))
	writeJSON(w, http.StatusOK, vehicle)
}
