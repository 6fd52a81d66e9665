package repositories

import (
	"context"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
)

// VehicleRepository defines persistence for fleet vehicles.
type VehicleRepository interface {
	FindVehicleByID(ctx context.Context, workplaceID, vehicleID string) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, workplaceID string) ([]domain.Vehicle, error)
	SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error
	UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error
	DeleteVehicle(ctx context.Context, workplaceID, vehicleID string) error
}

// FuelRecordRepository defines persistence for fuel records.
type FuelRecordRepository interface {
	FindFuelRecordByID(ctx context.Context, workplaceID, fuelRecordID string) (*domain.FuelRecord, error)
	ListFuelRecords(ctx context.Context, workplaceID string, vehicleID string) ([]domain.FuelRecord, error)
	SaveFuelRecord(ctx context.Context, record domain.FuelRecord) error
	UpdateFuelRecord(ctx context.Context, record domain.FuelRecord) error
	DeleteFuelRecord(ctx context.Context, workplaceID, fuelRecordID string) error
}

// InspectionRepository defines persistence for vehicle inspections.
type InspectionRepository interface {
	FindInspectionByID(ctx context.Context, workplaceID, inspectionID string) (*domain.Inspection, error)
	ListInspections(ctx context.Context, workplaceID string, vehicleID string) ([]domain.Inspection, error)
	SaveInspection(ctx context.Context, inspection domain.Inspection) error
	UpdateInspection(ctx context.Context, inspection domain.Inspection) error
	DeleteInspection(ctx context.Context, workplaceID, inspectionID string) error
}

// FleetRepositoryFacade combines the fleet repositories.
type FleetRepositoryFacade interface {
	VehicleRepository
	FuelRecordRepository
	InspectionRepository
}
