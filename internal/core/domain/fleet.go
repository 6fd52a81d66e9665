package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VehicleStatus tracks a fleet vehicle's availability.
type VehicleStatus string

const (
	VehicleActive      VehicleStatus = "ACTIVE"
	VehicleMaintenance VehicleStatus = "MAINTENANCE"
	VehicleRetired     VehicleStatus = "RETIRED"
)

// Vehicle is one fleet vehicle.
type Vehicle struct {
	VehicleID   string        `json:"vehicleID"`
	WorkplaceID string        `json:"workplaceID"`
	Name        string        `json:"name"`
	PlateNumber string        `json:"plateNumber"`
	Make        string        `json:"make"`
	Model       string        `json:"model"`
	Year        int           `json:"year"`
	Status      VehicleStatus `json:"status"`
	OdometerKM  int64         `json:"odometerKM"`
	AuditFields
}

// FuelRecord is one refuelling of a vehicle.
type FuelRecord struct {
	FuelRecordID string          `json:"fuelRecordID"`
	WorkplaceID  string          `json:"workplaceID"`
	VehicleID    string          `json:"vehicleID"`
	FilledAt     time.Time       `json:"filledAt"`
	Liters       decimal.Decimal `json:"liters"`
	Cost         decimal.Decimal `json:"cost"`
	OdometerKM   int64           `json:"odometerKM"`
	AuditFields
}

// Inspection is one vehicle inspection outcome.
type Inspection struct {
	InspectionID string    `json:"inspectionID"`
	WorkplaceID  string    `json:"workplaceID"`
	VehicleID    string    `json:"vehicleID"`
	InspectedAt  time.Time `json:"inspectedAt"`
	Inspector    string    `json:"inspector"`
	Passed       bool      `json:"passed"`
	Notes        string    `json:"notes"`
	AuditFields
}
