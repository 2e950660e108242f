package models

import (
	"errors"
	"strings"
	"time"
)

// Driver represents a licensed driver of the fleet.
type Driver struct {
	ID              int64     `bson:"_id" json:"id"`
	FirstName       string    `bson:"first_name" json:"first_name"`
	LastName        string    `bson:"last_name" json:"last_name"`
	DocumentNumber  string    `bson:"document_number" json:"document_number"`
	LicenseNumber   string    `bson:"license_number" json:"license_number"`
	LicenseCategory string    `bson:"license_category" json:"license_category"`
	LicenseExpiry   time.Time `bson:"license_expiry" json:"license_expiry"`
	Phone           string    `bson:"phone" json:"phone"`
	Email           string    `bson:"email" json:"email"`
	Active          bool      `bson:"active" json:"active"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// FullName joins the driver's first and last name.
func (d *Driver) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// LicenseValidAt reports whether the license has not yet expired at t.
// An unset expiry date is never valid.
func (d *Driver) LicenseValidAt(t time.Time) bool {
	return !d.LicenseExpiry.IsZero() && d.LicenseExpiry.After(t)
}

// Validate checks the fields required to store a driver.
func (d *Driver) Validate() error {
	var errs []error
	if strings.TrimSpace(d.FirstName) == "" || strings.TrimSpace(d.LastName) == "" {
		errs = append(errs, errors.New("first and last name are required"))
	}
	if strings.TrimSpace(d.DocumentNumber) == "" {
		errs = append(errs, errors.New("document number is required"))
	}
	if strings.TrimSpace(d.LicenseNumber) == "" {
		errs = append(errs, errors.New("license number is required"))
	}
	if d.Email != "" && !strings.Contains(d.Email, "@") {
		errs = append(errs, errors.New("invalid email format"))
	}
	return validationError(errs)
}
