package models

import (
	"errors"
	"strings"
	"time"
)

// RouteStatus tells whether a route is offered.
type RouteStatus string

const (
	RouteActive   RouteStatus = "active"
	RouteInactive RouteStatus = "inactive"
)

// Valid reports whether s is a known route status.
func (s RouteStatus) Valid() bool {
	return s == RouteActive || s == RouteInactive
}

// Route is a tour or transfer itinerary between two places.
type Route struct {
	ID                   int64       `bson:"_id" json:"id"`
	Name                 string      `bson:"name" json:"name"`
	Origin               string      `bson:"origin" json:"origin"`
	Destination          string      `bson:"destination" json:"destination"`
	DistanceKm           float64     `bson:"distance_km" json:"distance_km"`
	EstimatedDurationMin int         `bson:"estimated_duration_min" json:"estimated_duration_min"`
	BaseFare             float64     `bson:"base_fare" json:"base_fare"`
	Description          string      `bson:"description" json:"description"`
	Status               RouteStatus `bson:"status" json:"status"`
	CreatedAt            time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time   `bson:"updated_at" json:"updated_at"`
}

// Validate checks the fields required to store a route.
func (r *Route) Validate() error {
	var errs []error
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if strings.TrimSpace(r.Origin) == "" || strings.TrimSpace(r.Destination) == "" {
		errs = append(errs, errors.New("origin and destination are required"))
	}
	if r.DistanceKm < 0 {
		errs = append(errs, errors.New("distance cannot be negative"))
	}
	if r.EstimatedDurationMin < 0 {
		errs = append(errs, errors.New("duration cannot be negative"))
	}
	if r.BaseFare < 0 {
		errs = append(errs, errors.New("base fare cannot be negative"))
	}
	if r.Status != "" && !r.Status.Valid() {
		errs = append(errs, errors.New("unknown route status"))
	}
	return validationError(errs)
}
