package dto

import (
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVehicleRequest registers a new fleet vehicle.
type CreateVehicleRequest struct {
	Name        string `json:"name" binding:"required"`
	PlateNumber string `json:"plateNumber" binding:"required"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
}

// UpdateVehicleRequest applies a partial update to a vehicle.
type UpdateVehicleRequest struct {
	Name       *string               `json:"name"`
	Status     *domain.VehicleStatus `json:"status"`
	OdometerKM *int64                `json:"odometerKM"`
}

// CreateFuelRecordRequest records a refuelling.
type CreateFuelRecordRequest struct {
	VehicleID  string          `json:"vehicleID" binding:"required"`
	FilledAt   time.Time       `json:"filledAt" binding:"required"`
	Liters     decimal.Decimal `json:"liters" binding:"required"`
	Cost       decimal.Decimal `json:"cost" binding:"required"`
	OdometerKM int64           `json:"odometerKM"`
}

// UpdateFuelRecordRequest applies a partial update to a fuel record.
type UpdateFuelRecordRequest struct {
	Liters     *decimal.Decimal `json:"liters"`
	Cost       *decimal.Decimal `json:"cost"`
	OdometerKM *int64           `json:"odometerKM"`
}

// CreateInspectionRequest records a vehicle inspection.
type CreateInspectionRequest struct {
	VehicleID   string    `json:"vehicleID" binding:"required"`
	InspectedAt time.Time `json:"inspectedAt" binding:"required"`
	Inspector   string    `json:"inspector" binding:"required"`
	Passed      bool      `json:"passed"`
	Notes       string    `json:"notes"`
}

// UpdateInspectionRequest applies a partial update to an inspection.
type UpdateInspectionRequest struct {
	Passed *bool   `json:"passed"`
	Notes  *string `json:"notes"`
}
