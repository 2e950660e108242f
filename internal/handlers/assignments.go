package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ukydev/tourfleet/internal/db"
	"github.com/ukydev/tourfleet/internal/events"
	"github.com/ukydev/tourfleet/internal/fleet"
	"github.com/ukydev/tourfleet/internal/format"
	"github.com/ukydev/tourfleet/internal/models"
)

const assignmentEntity = "assignment"

func (h *FleetHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := db.AssignmentFilter{Status: models.AssignmentStatus(q.Get("status"))}
	if filter.Status != "" && !filter.Status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown assignment status")
		return
	}
	if v := q.Get("from"); v != "" {
		if filter.From = format.ParseDate(v); filter.From.IsZero() {
			writeError(w, http.StatusBadRequest, "invalid from date")
			return
		}
	}
	if v := q.Get("to"); v != "" {
		if filter.To = format.ParseDate(v); filter.To.IsZero() {
			writeError(w, http.StatusBadRequest, "invalid to date")
			return
		}
	}
	assignments, err := h.fleet.ListAssignments(r.Context(), filter)
	if err != nil {
		writeFailure(w, r, assignmentEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

// TodayAssignments lists departures on the server's current calendar day.
func (h *FleetHandler) TodayAssignments(w http.ResponseWriter, r *http.Request) {
	from, to := fleet.DayBounds(h.now())
	assignments, err := h.fleet.ListAssignments(r.Context(), db.AssignmentFilter{From: from, To: to})
	if err != nil {
		writeFailure(w, r, assignmentEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

func (h *FleetHandler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, assignmentEntity)
	if !ok {
		return
	}
	assignment, err := h.fleet.FindAssignmentByID(r.Context(), id)
	if err != nil {
		writeFailure(w, r, assignmentEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, assignment)
}

// checkReferences verifies that the vehicle, driver and route exist and
// that the vehicle has room for the passengers.
func (h *FleetHandler) checkReferences(ctx context.Context, a *models.Assignment) error {
	vehicle, err := h.fleet.FindVehicleByID(ctx, a.VehicleID)
	if errors.Is(err, db.ErrNotFound) {
		return badRequest("vehicle %d does not exist", a.VehicleID)
	}
	if err != nil {
		return err
	}
	if _, err := h.fleet.FindDriverByID(ctx, a.DriverID); errors.Is(err, db.ErrNotFound) {
		return badRequest("driver %d does not exist", a.DriverID)
	} else if err != nil {
		return err
	}
	route, err := h.fleet.FindRouteByID(ctx, a.RouteID)
	if errors.Is(err, db.ErrNotFound) {
		return badRequest("route %d does not exist", a.RouteID)
	}
	if err != nil {
		return err
	}
	if a.Fare == 0 {
		a.Fare = route.BaseFare * float64(a.Passengers)
	}
	return a.CheckCapacity(vehicle)
}

func (h *FleetHandler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var assignment models.Assignment
	if err := decodeJSON(r, &assignment); err != nil {
		writeFailure(w, r, assignmentEntity, err)
		return
	}
	if assignment.Status == "" {
		assignment.Status = models.AssignmentScheduled
	}
	if err := assignment.Validate(); err != nil {
		writeFailure(w, r, assignmentEntity, err)
		return
	}
	if err := h.checkReferences(r.Context(), &assignment); err != nil {
		writeFailure(w, r, assignmentEntity, err)
		return
	}
	if err := h.fleet.InsertAssignment(r.Context(), &assignment); err != nil {
		writeFailure(w, r, assignmentEntity, err)
		return
	}
	h.publish(r.Context(), "assignments", events.ActionCreated, assignment.ID, string(assignment.Status))
	writeJSON(w, http.StatusCreated, assignment)
}

func (h *FleetHandler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, assignmentEntity)
	if !ok {
		return
	}
	existing, err := h.fleet.FindAssignmentByID(r.Context(), id)
	if err != nil {
		writeFailure(w, r, assignmentEntity, err)
		return
	}

	var assignment models.Assignment
	if err := decodeJSON(r, &assignment); err != nil {
		writeFailure(w, r, assignmentEntity, err)
		return
	}
	assignment.ID = id
	assignment.CreatedAt = existing.CreatedAt
	if assignment.Status == "" {
		assignment.Status = existing.Status
	}
	if err := assignment.Validate(); err != nil {
		writeFailure(w, r, assignmentEntity, err)
		return
	}
	if err := h.checkReferences(r.Context(), &assignment); err != nil {
		writeFailure(w, r, assignmentEntity, err)
		return
	}
	if err := h.fleet.UpdateAssignment(r.Context(), assignment); err != nil {
		writeFailure(w, r, assignmentEntity, err)
		return
	}
	h.respondAssignment(w, r, events.ActionUpdated, id)
}

func (h *FleetHandler) ChangeAssignmentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, assignmentEntity)
	if !ok {
		return
	}
	var body struct {
		Status models.AssignmentStatus `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeFailure(w, r, assignmentEntity, err)
		return
	}
	if !body.Status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown assignment status")
		return
	}
	if err := h.fleet.SetAssignmentStatus(r.Context(), id, body.Status); err != nil {
		writeFailure(w, r, assignmentEntity, err)
		return
	}
	h.respondAssignment(w, r, events.ActionStatusChanged, id)
}

func (h *FleetHandler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, assignmentEntity)
	if !ok {
		return
	}
	if err := h.fleet.DeleteAssignment(r.Context(), id); err != nil {
		writeFailure(w, r, assignmentEntity, err)
		return
	}
	h.publish(r.Context(), "assignments", events.ActionDeleted, id, "")
	w.WriteHeader(http.StatusNoContent)
}

func (h *FleetHandler) respondAssignment(w http.ResponseWriter, r *http.Request, action string, id int64) {
	assignment, err := h.fleet.FindAssignmentByID(r.Context(), id)
	if err != nil {
		writeFailure(w, r, assignmentEntity, err)
		return
	}
	h.publish(r.Context(), "assignments", action, id, string(assignment.Status))
	writeJSON(w, http.StatusOK, assignment)
}
