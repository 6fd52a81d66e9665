package services

import (
	"context"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
)

// VehicleSvc defines operations for fleet vehicles.
type VehicleSvc interface {
	GetVehicleByID(ctx context.Context, workplaceID, vehicleID, userID string) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, workplaceID, userID string) ([]domain.Vehicle, error)
	CreateVehicle(ctx context.Context, workplaceID string, req dto.CreateVehicleRequest, userID string) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, workplaceID, vehicleID string, req dto.UpdateVehicleRequest, userID string) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, workplaceID, vehicleID, userID string) error
}

// FuelRecordSvc defines operations for fuel records.
type FuelRecordSvc interface {
	GetFuelRecordByID(ctx context.Context, workplaceID, fuelRecordID, userID string) (*domain.FuelRecord, error)
	ListFuelRecords(ctx context.Context, workplaceID, vehicleID, userID string) ([]domain.FuelRecord, error)
	CreateFuelRecord(ctx context.Context, workplaceID string, req dto.CreateFuelRecordRequest, userID string) (*domain.FuelRecord, error)
	UpdateFuelRecord(ctx context.Context, workplaceID, fuelRecordID string, req dto.UpdateFuelRecordRequest, userID string) (*domain.FuelRecord, error)
	DeleteFuelRecord(ctx context.Context, workplaceID, fuelRecordID, userID string) error
}

// InspectionSvc defines operations for vehicle inspections.
type InspectionSvc interface {
	GetInspectionByID(ctx context.Context, workplaceID, inspectionID, userID string) (*domain.Inspection, error)
	ListInspections(ctx context.Context, workplaceID, vehicleID, userID string) ([]domain.Inspection, error)
	CreateInspection(ctx context.Context, workplaceID string, req dto.CreateInspectionRequest, userID string) (*domain.Inspection, error)
	UpdateInspection(ctx context.Context, workplaceID, inspectionID string, req dto.UpdateInspectionRequest, userID string) (*domain.Inspection, error)
	DeleteInspection(ctx context.Context, workplaceID, inspectionID, userID string) error
}

// FleetSvcFacade combines the fleet services.
type FleetSvcFacade interface {
	VehicleSvc
	FuelRecordSvc
	InspectionSvc
}
