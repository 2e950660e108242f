package models

import (
	"errors"
	"strings"
	"time"
)

// VehicleStatus is the operational state of a fleet vehicle.
type VehicleStatus string

const (
	VehicleAvailable    VehicleStatus = "available"
	VehicleInService    VehicleStatus = "in_service"
	VehicleMaintenance  VehicleStatus = "maintenance"
	VehicleOutOfService VehicleStatus = "out_of_service"
)

// VehicleStatuses lists every known vehicle status in display order.
var VehicleStatuses = []VehicleStatus{VehicleAvailable, VehicleInService, VehicleMaintenance, VehicleOutOfService}

// Valid reports whether s is a known vehicle status.
func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleAvailable, VehicleInService, VehicleMaintenance, VehicleOutOfService:
		return true
	default:
		return false
	}
}

// VehicleType is the body type of a vehicle.
type VehicleType string

const (
	VehicleBus     VehicleType = "bus"
	VehicleMinibus VehicleType = "minibus"
	VehicleVan     VehicleType = "van"
	VehicleCar     VehicleType = "car"
	VehicleSUV     VehicleType = "suv"
)

// Valid reports whether t is a known vehicle type.
func (t VehicleType) Valid() bool {
	switch t {
	case VehicleBus, VehicleMinibus, VehicleVan, VehicleCar, VehicleSUV:
		return true
	default:
		return false
	}
}

// Vehicle represents a fleet vehicle available for tours and transfers.
type Vehicle struct {
	ID              int64         `bson:"_id" json:"id"`
	Plate           string        `bson:"plate" json:"plate"`
	Make            string        `bson:"make" json:"make"`
	Model           string        `bson:"model" json:"model"`
	Year            int           `bson:"year" json:"year"`
	Capacity        int           `bson:"capacity" json:"capacity"` // seated passengers
	Type            VehicleType   `bson:"type" json:"type"`
	Status          VehicleStatus `bson:"status" json:"status"`
	LastMaintenance time.Time     `bson:"last_maintenance" json:"last_maintenance"`
	NextMaintenance time.Time     `bson:"next_maintenance" json:"next_maintenance"`
	CreatedAt       time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `bson:"updated_at" json:"updated_at"`
}

// NormalizePlate trims the plate and upper-cases it so "tur-101 " and
// "TUR-101" are the same vehicle in every store.
func (v *Vehicle) NormalizePlate() {
	v.Plate = strings.ToUpper(strings.TrimSpace(v.Plate))
}

// Validate checks the fields required to store a vehicle.
func (v *Vehicle) Validate() error {
	var errs []error
	if strings.TrimSpace(v.Plate) == "" {
		errs = append(errs, errors.New("plate is required"))
	}
	if strings.TrimSpace(v.Make) == "" || strings.TrimSpace(v.Model) == "" {
		errs = append(errs, errors.New("make and model are required"))
	}
	if v.Year < 1900 || v.Year > 2100 {
		errs = append(errs, errors.New("year is out of range"))
	}
	if v.Capacity <= 0 {
		errs = append(errs, errors.New("capacity must be positive"))
	}
	if v.Type != "" && !v.Type.Valid() {
		errs = append(errs, errors.New("unknown vehicle type"))
	}
	if v.Status != "" && !v.Status.Valid() {
		errs = append(errs, errors.New("unknown vehicle status"))
	}
	return validationError(errs)
}
