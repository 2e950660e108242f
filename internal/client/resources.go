package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ukydev/tourfleet/internal/fleet"
	"github.com/ukydev/tourfleet/internal/models"
)

func itemPath(collection string, id int64) string {
	return fmt.Sprintf("/%s/%d", collection, id)
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (models.LoginResponse, error) {
	resp, err := send[models.LoginResponse](ctx, c, http.MethodPost, "/auth/login",
		models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return resp, err
	}
	c.Token = resp.Token
	return resp, nil
}

func (c *Client) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return list[models.Vehicle](ctx, c, "/vehicles")
}

func (c *Client) AvailableVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return list[models.Vehicle](ctx, c, "/vehicles/available")
}

func (c *Client) GetVehicle(ctx context.Context, id int64) (models.Vehicle, error) {
	return send[models.Vehicle](ctx, c, http.MethodGet, itemPath("vehicles", id), nil)
}

func (c *Client) CreateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	return send[models.Vehicle](ctx, c, http.MethodPost, "/vehicles", v)
}

func (c *Client) UpdateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	return send[models.Vehicle](ctx, c, http.MethodPut, itemPath("vehicles", v.ID), v)
}

func (c *Client) DeleteVehicle(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath("vehicles", id), nil, nil)
}

func (c *Client) ChangeVehicleStatus(ctx context.Context, id int64, status models.VehicleStatus) (models.Vehicle, error) {
	return send[models.Vehicle](ctx, c, http.MethodPatch, itemPath("vehicles", id)+"/status",
		map[string]models.VehicleStatus{"status": status})
}

func (c *Client) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	return list[models.Driver](ctx, c, "/drivers")
}

func (c *Client) AvailableDrivers(ctx context.Context) ([]models.Driver, error) {
	return list[models.Driver](ctx, c, "/drivers/available")
}

func (c *Client) GetDriver(ctx context.Context, id int64) (models.Driver, error) {
	return send[models.Driver](ctx, c, http.MethodGet, itemPath("drivers", id), nil)
}

func (c *Client) CreateDriver(ctx context.Context, d models.Driver) (models.Driver, error) {
	return send[models.Driver](ctx, c, http.MethodPost, "/drivers", d)
}

func (c *Client) UpdateDriver(ctx context.Context, d models.Driver) (models.Driver, error) {
	return send[models.Driver](ctx, c, http.MethodPut, itemPath("drivers", d.ID), d)
}

func (c *Client) DeleteDriver(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath("drivers", id), nil, nil)
}

// ChangeDriverStatus toggles the driver's active flag.
func (c *Client) ChangeDriverStatus(ctx context.Context, id int64, active bool) (models.Driver, error) {
	return send[models.Driver](ctx, c, http.MethodPatch, itemPath("drivers", id)+"/status",
		map[string]bool{"active": active})
}

func (c *Client) ListRoutes(ctx context.Context) ([]models.Route, error) {
	return list[models.Route](ctx, c, "/routes")
}

func (c *Client) ActiveRoutes(ctx context.Context) ([]models.Route, error) {
	return list[models.Route](ctx, c, "/routes/active")
}

func (c *Client) GetRoute(ctx context.Context, id int64) (models.Route, error) {
	return send[models.Route](ctx, c, http.MethodGet, itemPath("routes", id), nil)
}

func (c *Client) CreateRoute(ctx context.Context, r models.Route) (models.Route, error) {
	return send[models.Route](ctx, c, http.MethodPost, "/routes", r)
}

func (c *Client) UpdateRoute(ctx context.Context, r models.Route) (models.Route, error) {
	return send[models.Route](ctx, c, http.MethodPut, itemPath("routes", r.ID), r)
}

func (c *Client) DeleteRoute(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath("routes", id), nil, nil)
}

func (c *Client) ChangeRouteStatus(ctx context.Context, id int64, status models.RouteStatus) (models.Route, error) {
	return send[models.Route](ctx, c, http.MethodPatch, itemPath("routes", id)+"/status",
		map[string]models.RouteStatus{"status": status})
}

func (c *Client) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	return list[models.Assignment](ctx, c, "/assignments")
}

func (c *Client) TodayAssignments(ctx context.Context) ([]models.Assignment, error) {
	return list[models.Assignment](ctx, c, "/assignments/today")
}

func (c *Client) GetAssignment(ctx context.Context, id int64) (models.Assignment, error) {
	return send[models.Assignment](ctx, c, http.MethodGet, itemPath("assignments", id), nil)
}

func (c *Client) CreateAssignment(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	return send[models.Assignment](ctx, c, http.MethodPost, "/assignments", a)
}

func (c *Client) UpdateAssignment(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	return send[models.Assignment](ctx, c, http.MethodPut, itemPath("assignments", a.ID), a)
}

func (c *Client) DeleteAssignment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath("assignments", id), nil, nil)
}

func (c *Client) ChangeAssignmentStatus(ctx context.Context, id int64, status models.AssignmentStatus) (models.Assignment, error) {
	return send[models.Assignment](ctx, c, http.MethodPatch, itemPath("assignments", id)+"/status",
		map[string]models.AssignmentStatus{"status": status})
}

// Statistics fetches the server-side dashboard aggregates.
func (c *Client) Statistics(ctx context.Context) (fleet.Stats, error) {
	return send[fleet.Stats](ctx, c, http.MethodGet, "/statistics", nil)
}

func (c *Client) Alerts(ctx context.Context) ([]fleet.AlertItem, error) {
	return list[fleet.AlertItem](ctx, c, "/alerts")
}
