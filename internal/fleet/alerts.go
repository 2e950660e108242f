package fleet

import (
	"sort"
	"time"

	"github.com/ukydev/tourfleet/internal/format"
	"github.com/ukydev/tourfleet/internal/models"
)

// AlertKind names what an alert is about.
type AlertKind string

const (
	LicenseExpiry  AlertKind = "license_expiry"
	MaintenanceDue AlertKind = "maintenance_due"
)

// AlertItem is one upcoming (or undated) license or maintenance event.
type AlertItem struct {
	Kind    AlertKind    `json:"kind"`
	ID      int64        `json:"id"`
	Subject string       `json:"subject"`
	Due     time.Time    `json:"due"`
	State   format.Alert `json:"state"`
}

// tracksMaintenance reports whether v still counts toward maintenance
// alerts. Out-of-service vehicles are parked and do not.
func tracksMaintenance(v models.Vehicle) bool {
	return v.Status != models.VehicleOutOfService
}

// Alerts lists active drivers whose license expires soon and vehicles still
// in the fleet whose maintenance is due soon. Records without a date are
// reported with AlertUnknown after the dated ones.
func Alerts(s Snapshot, now time.Time) []AlertItem {
	out := []AlertItem{}
	for _, d := range s.Drivers {
		if !d.Active {
			continue
		}
		if state := format.CheckLicense(d.LicenseExpiry, now); state != format.AlertOK {
			out = append(out, AlertItem{Kind: LicenseExpiry, ID: d.ID, Subject: d.FullName(), Due: d.LicenseExpiry, State: state})
		}
	}
	for _, v := range s.Vehicles {
		if !tracksMaintenance(v) {
			continue
		}
		if state := format.CheckMaintenance(v.NextMaintenance, now); state != format.AlertOK {
			out = append(out, AlertItem{Kind: MaintenanceDue, ID: v.ID, Subject: v.Plate, Due: v.NextMaintenance, State: state})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.State == format.AlertUnknown) != (b.State == format.AlertUnknown) {
			return b.State == format.AlertUnknown
		}
		return a.Due.Before(b.Due)
	})
	return out
}
