package handlers

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/tourfleet/internal/db"
	"github.com/ukydev/tourfleet/internal/events"
	"github.com/ukydev/tourfleet/internal/models"
)

// FleetHandler serves the vehicle, driver, route and assignment resources.
type FleetHandler struct {
	fleet     db.Fleet
	publisher events.Publisher
	now       func() time.Time
}

// NewFleetHandler creates a new fleet handler. A nil publisher drops events.
func NewFleetHandler(fleet db.Fleet, publisher events.Publisher) *FleetHandler {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &FleetHandler{fleet: fleet, publisher: publisher, now: time.Now}
}

// publish reports a successful mutation. Delivery failures are logged only;
// the mutation has already been stored.
func (h *FleetHandler) publish(ctx context.Context, entity, action string, id int64, status string) {
	e := events.Event{Entity: entity, Action: action, ID: id, Status: status, At: h.now().UTC()}
	if err := h.publisher.Publish(ctx, e); err != nil {
		log.WithFields(log.Fields{"entity": entity, "action": action, "id": id}).
			WithError(err).Warn("Failed to publish fleet event")
	}
}

func isOpen(a models.Assignment) bool {
	return a.Status == models.AssignmentScheduled || a.Status == models.AssignmentInProgress
}

// openAssignments lists the scheduled or in-progress assignments whose ref
// field equals id.
func (h *FleetHandler) openAssignments(ctx context.Context, ref func(models.Assignment) int64, id int64) ([]models.Assignment, error) {
	list, err := h.fleet.ListAssignments(ctx, db.AssignmentFilter{})
	if err != nil {
		return nil, err
	}
	open := make([]models.Assignment, 0)
	for _, a := range list {
		if ref(a) == id && isOpen(a) {
			open = append(open, a)
		}
	}
	return open, nil
}

// checkNotReferenced refuses deleting a record that an open assignment
// still points at. The check and the delete are separate calls, so an
// assignment created in between is not caught.
func (h *FleetHandler) checkNotReferenced(ctx context.Context, entity string, ref func(models.Assignment) int64, id int64) error {
	open, err := h.openAssignments(ctx, ref, id)
	if err != nil {
		return err
	}
	if len(open) > 0 {
		return conflictError(fmt.Sprintf("%s has open assignments", entity))
	}
	return nil
}

// checkSeatsBooked refuses a vehicle capacity below the passengers of any
// of its open assignments.
func (h *FleetHandler) checkSeatsBooked(ctx context.Context, v *models.Vehicle) error {
	open, err := h.openAssignments(ctx, func(a models.Assignment) int64 { return a.VehicleID }, v.ID)
	if err != nil {
		return err
	}
	for _, a := range open {
		if err := a.CheckCapacity(v); err != nil {
			return err
		}
	}
	return nil
}
