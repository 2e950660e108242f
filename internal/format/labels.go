// Package format turns fleet records into display strings and derived
// flags. Every function is pure.
package format

import "github.com/ukydev/tourfleet/internal/models"

// Variant is the visual style a status badge is drawn with.
type Variant string

const (
	VariantSuccess   Variant = "success"
	VariantInfo      Variant = "info"
	VariantWarning   Variant = "warning"
	VariantDanger    Variant = "danger"
	VariantSecondary Variant = "secondary"
)

// Unknown is the label used for values outside the known enums.
const Unknown = "Unknown"

var vehicleStatusLabels = map[models.VehicleStatus]string{
	models.VehicleAvailable:    "Available",
	models.VehicleInService:    "In service",
	models.VehicleMaintenance:  "Maintenance",
	models.VehicleOutOfService: "Out of service",
}

var vehicleStatusVariants = map[models.VehicleStatus]Variant{
	models.VehicleAvailable:    VariantSuccess,
	models.VehicleInService:    VariantInfo,
	models.VehicleMaintenance:  VariantWarning,
	models.VehicleOutOfService: VariantDanger,
}

var vehicleTypeLabels = map[models.VehicleType]string{
	models.VehicleBus:     "Bus",
	models.VehicleMinibus: "Minibus",
	models.VehicleVan:     "Van",
	models.VehicleCar:     "Car",
	models.VehicleSUV:     "SUV",
}

var assignmentStatusLabels = map[models.AssignmentStatus]string{
	models.AssignmentScheduled:  "Scheduled",
	models.AssignmentInProgress: "In progress",
	models.AssignmentCompleted:  "Completed",
	models.AssignmentCancelled:  "Cancelled",
}

var assignmentStatusVariants = map[models.AssignmentStatus]Variant{
	models.AssignmentScheduled:  VariantInfo,
	models.AssignmentInProgress: VariantWarning,
	models.AssignmentCompleted:  VariantSuccess,
	models.AssignmentCancelled:  VariantDanger,
}

func VehicleStatusLabel(s models.VehicleStatus) string {
	if l, ok := vehicleStatusLabels[s]; ok {
		return l
	}
	return Unknown
}

func VehicleStatusVariant(s models.VehicleStatus) Variant {
	if v, ok := vehicleStatusVariants[s]; ok {
		return v
	}
	return VariantSecondary
}

func VehicleTypeLabel(t models.VehicleType) string {
	if l, ok := vehicleTypeLabels[t]; ok {
		return l
	}
	return Unknown
}

func RouteStatusLabel(s models.RouteStatus) string {
	switch s {
	case models.RouteActive:
		return "Active"
	case models.RouteInactive:
		return "Inactive"
	default:
		return Unknown
	}
}

func RouteStatusVariant(s models.RouteStatus) Variant {
	switch s {
	case models.RouteActive:
		return VariantSuccess
	case models.RouteInactive:
		return VariantSecondary
	default:
		return VariantSecondary
	}
}

func AssignmentStatusLabel(s models.AssignmentStatus) string {
	if l, ok := assignmentStatusLabels[s]; ok {
		return l
	}
	return Unknown
}

func AssignmentStatusVariant(s models.AssignmentStatus) Variant {
	if v, ok := assignmentStatusVariants[s]; ok {
		return v
	}
	return VariantSecondary
}

// DriverStatusLabel labels a driver by the active flag.
func DriverStatusLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

func DriverStatusVariant(active bool) Variant {
	if active {
		return VariantSuccess
	}
	return VariantDanger
}
