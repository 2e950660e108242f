package handlers

import (
	"net/http"

	"github.com/ukydev/tourfleet/internal/events"
	"github.com/ukydev/tourfleet/internal/models"
)

const routeEntity = "route"

func (h *FleetHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	status := models.RouteStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown route status")
		return
	}
	routes, err := h.fleet.ListRoutes(r.Context(), status)
	if err != nil {
		writeFailure(w, r, routeEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, routes)
}

func (h *FleetHandler) ActiveRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.fleet.ListRoutes(r.Context(), models.RouteActive)
	if err != nil {
		writeFailure(w, r, routeEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, routes)
}

func (h *FleetHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, routeEntity)
	if !ok {
		return
	}
	route, err := h.fleet.FindRouteByID(r.Context(), id)
	if err != nil {
		writeFailure(w, r, routeEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, route)
}

func (h *FleetHandler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var route models.Route
	if err := decodeJSON(r, &route); err != nil {
		writeFailure(w, r, routeEntity, err)
		return
	}
	if route.Status == "" {
		route.Status = models.RouteActive
	}
	if err := route.Validate(); err != nil {
		writeFailure(w, r, routeEntity, err)
		return
	}
	if err := h.fleet.InsertRoute(r.Context(), &route); err != nil {
		writeFailure(w, r, routeEntity, err)
		return
	}
	h.publish(r.Context(), "routes", events.ActionCreated, route.ID, string(route.Status))
	writeJSON(w, http.StatusCreated, route)
}

func (h *FleetHandler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, routeEntity)
	if !ok {
		return
	}
	existing, err := h.fleet.FindRouteByID(r.Context(), id)
	if err != nil {
		writeFailure(w, r, routeEntity, err)
		return
	}

	var route models.Route
	if err := decodeJSON(r, &route); err != nil {
		writeFailure(w, r, routeEntity, err)
		return
	}
	route.ID = id
	route.CreatedAt = existing.CreatedAt
	if route.Status == "" {
		route.Status = existing.Status
	}
	if err := route.Validate(); err != nil {
		writeFailure(w, r, routeEntity, err)
		return
	}
	if err := h.fleet.UpdateRoute(r.Context(), route); err != nil {
		writeFailure(w, r, routeEntity, err)
		return
	}
	h.respondRoute(w, r, events.ActionUpdated, id)
}

func (h *FleetHandler) ChangeRouteStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, routeEntity)
	if !ok {
		return
	}
	var body struct {
		Status models.RouteStatus `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeFailure(w, r, routeEntity, err)
		return
	}
	if !body.Status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown route status")
		return
	}
	if err := h.fleet.SetRouteStatus(r.Context(), id, body.Status); err != nil {
		writeFailure(w, r, routeEntity, err)
		return
	}
	h.respondRoute(w, r, events.ActionStatusChanged, id)
}

func (h *FleetHandler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, routeEntity)
	if !ok {
		return
	}
	err := h.checkNotReferenced(r.Context(), routeEntity, func(a models.Assignment) int64 { return a.RouteID }, id)
	if err == nil {
		err = h.fleet.DeleteRoute(r.Context(), id)
	}
	if err != nil {
		writeFailure(w, r, routeEntity, err)
		return
	}
	h.publish(r.Context(), "routes", events.ActionDeleted, id, "")
	w.WriteHeader(http.StatusNoContent)
}

func (h *FleetHandler) respondRoute(w http.ResponseWriter, r *http.Request, action string, id int64) {
	route, err := h.fleet.FindRouteByID(r.Context(), id)
	if err != nil {
		writeFailure(w, r, routeEntity, err)
		return
	}
	h.publish(r.Context(), "routes", action, id, string(route.Status))
	writeJSON(w, http.StatusOK, route)
}
