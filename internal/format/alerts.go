package format

import (
	"strings"
	"time"
)

const day = 24 * time.Hour

const (
	// LicenseExpiryThreshold flags licenses expiring within 30 days.
	LicenseExpiryThreshold = 30 * day
	// MaintenanceDueThreshold flags maintenance due within 7 days.
	MaintenanceDueThreshold = 7 * day
)

// Alert is the outcome of a date threshold check.
type Alert int

const (
	AlertOK Alert = iota
	AlertSoon
	AlertUnknown
)

func (a Alert) String() string {
	switch a {
	case AlertOK:
		return "ok"
	case AlertSoon:
		return "soon"
	default:
		return "unknown"
	}
}

// Within reports AlertSoon when due - now <= threshold. Past dates are soon
// as well. A zero due date is AlertUnknown.
func Within(due, now time.Time, threshold time.Duration) Alert {
	if due.IsZero() {
		return AlertUnknown
	}
	if due.Sub(now) <= threshold {
		return AlertSoon
	}
	return AlertOK
}

func CheckLicense(expiry, now time.Time) Alert {
	return Within(expiry, now, LicenseExpiryThreshold)
}

func CheckMaintenance(next, now time.Time) Alert {
	return Within(next, now, MaintenanceDueThreshold)
}

// IsLicenseExpiringSoon is false when the expiry date is unknown.
func IsLicenseExpiringSoon(expiry, now time.Time) bool {
	return CheckLicense(expiry, now) == AlertSoon
}

// IsMaintenanceDueSoon is false when the maintenance date is unknown.
func IsMaintenanceDueSoon(next, now time.Time) bool {
	return CheckMaintenance(next, now) == AlertSoon
}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (UTC).
// Anything else yields the zero time.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t
	}
	return time.Time{}
}

func (a Alert) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Alert) UnmarshalText(b []byte) error {
	switch string(b) {
	case "ok":
		*a = AlertOK
	case "soon":
		*a = AlertSoon
	default:
		*a = AlertUnknown
	}
	return nil
}
