package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/apperrors"
	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portsrepo "github.com/bizdesk/bizdesk_backend/internal/core/ports/repositories"
	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/bizdesk/bizdesk_backend/internal/platform/events"
	"github.com/google/uuid"
)

const (
	vehiclesTable    = "vehicles"
	fuelRecordsTable = "fuel_records"
	inspectionsTable = "inspections"
)

type fleetService struct {
	BaseService
	repo     portsrepo.FleetRepositoryFacade
	notifier events.Notifier
}

// NewFleetService creates the service covering vehicles, fuel records and
// inspections.
func NewFleetService(repo portsrepo.FleetRepositoryFacade, workplaceAuthorizer portssvc.WorkplaceAuthorizerSvc, notifier events.Notifier) portssvc.FleetSvcFacade {
	return &fleetService{
		BaseService: BaseService{WorkplaceAuthorizer: workplaceAuthorizer},
		repo:        repo,
		notifier:    notifier,
	}
}

var _ portssvc.FleetSvcFacade = (*fleetService)(nil)

func (s *fleetService) publish(ctx context.Context, table string, action domain.ChangeAction, entityID, workplaceID string) {
	s.notifier.Publish(ctx, domain.ChangeEvent{
		Table:       table,
		Action:      action,
		EntityID:    entityID,
		WorkplaceID: workplaceID,
	})
}

// --- Vehicles ---

func (s *fleetService) CreateVehicle(ctx context.Context, workplaceID string, req dto.CreateVehicleRequest, userID string) (*domain.Vehicle, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	vehicle := domain.Vehicle{
		VehicleID:   uuid.NewString(),
		WorkplaceID: workplaceID,
		Name:        req.Name,
		PlateNumber: req.PlateNumber,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Status:      domain.VehicleActive,
		AuditFields: newAudit(userID, now),
	}
	if err := s.repo.SaveVehicle(ctx, vehicle); err != nil {
		s.LogError(ctx, err, "Failed to save vehicle", slog.String("plate_number", req.PlateNumber))
		return nil, err
	}
	s.publish(ctx, vehiclesTable, domain.ActionInsert, vehicle.VehicleID, workplaceID)
	return &vehicle, nil
}

func (s *fleetService) UpdateVehicle(ctx context.Context, workplaceID, vehicleID string, req dto.UpdateVehicleRequest, userID string) (*domain.Vehicle, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	vehicle, err := s.repo.FindVehicleByID(ctx, workplaceID, vehicleID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		vehicle.Name = *req.Name
	}
	if req.Status != nil {
		vehicle.Status = *req.Status
	}
	if req.OdometerKM != nil {
		if *req.OdometerKM < vehicle.OdometerKM {
			// Odometers only count up.
			return nil, apperrors.NewAppError(400, "odometer reading must not decrease", apperrors.ErrValidation)
		}
		vehicle.OdometerKM = *req.OdometerKM
	}
	vehicle.LastUpdatedAt = time.Now().UTC()
	vehicle.LastUpdatedBy = userID

	if err := s.repo.UpdateVehicle(ctx, *vehicle); err != nil {
		s.LogError(ctx, err, "Failed to update vehicle", slog.String("vehicle_id", vehicleID))
		return nil, err
	}
	s.publish(ctx, vehiclesTable, domain.ActionUpdate, vehicleID, workplaceID)
	return vehicle, nil
}

func (s *fleetService) DeleteVehicle(ctx context.Context, workplaceID, vehicleID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return err
	}
	if err := s.repo.DeleteVehicle(ctx, workplaceID, vehicleID); err != nil {
		return err
	}
	s.publish(ctx, vehiclesTable, domain.ActionDelete, vehicleID, workplaceID)
	return nil
}

func (s *fleetService) GetVehicleByID(ctx context.Context, workplaceID, vehicleID, userID string) (*domain.Vehicle, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.FindVehicleByID(ctx, workplaceID, vehicleID)
}

func (s *fleetService) ListVehicles(ctx context.Context, workplaceID, userID string) ([]domain.Vehicle, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.ListVehicles(ctx, workplaceID)
}

// --- Fuel records ---

func (s *fleetService) CreateFuelRecord(ctx context.Context, workplaceID string, req dto.CreateFuelRecordRequest, userID string) (*domain.FuelRecord, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Liters.IsNegative() || req.Cost.IsNegative() {
		return nil, apperrors.NewAppError(400, "fuel amounts must not be negative", apperrors.ErrValidation)
	}

	// The vehicle must exist in the same workplace.
	vehicle, err := s.repo.FindVehicleByID(ctx, workplaceID, req.VehicleID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := domain.FuelRecord{
		FuelRecordID: uuid.NewString(),
		WorkplaceID:  workplaceID,
		VehicleID:    vehicle.VehicleID,
		FilledAt:     req.FilledAt,
		Liters:       req.Liters,
		Cost:         req.Cost,
		OdometerKM:   req.OdometerKM,
		AuditFields:  newAudit(userID, now),
	}
	if err := s.repo.SaveFuelRecord(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to save fuel record", slog.String("vehicle_id", req.VehicleID))
		return nil, err
	}
	s.publish(ctx, fuelRecordsTable, domain.ActionInsert, record.FuelRecordID, workplaceID)
	return &record, nil
}

func (s *fleetService) UpdateFuelRecord(ctx context.Context, workplaceID, fuelRecordID string, req dto.UpdateFuelRecordRequest, userID string) (*domain.FuelRecord, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	record, err := s.repo.FindFuelRecordByID(ctx, workplaceID, fuelRecordID)
	if err != nil {
		return nil, err
	}
	if req.Liters != nil {
		if req.Liters.IsNegative() {
			return nil, apperrors.NewAppError(400, "fuel amounts must not be negative", apperrors.ErrValidation)
		}
		record.Liters = *req.Liters
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, apperrors.NewAppError(400, "fuel amounts must not be negative", apperrors.ErrValidation)
		}
		record.Cost = *req.Cost
	}
	if req.OdometerKM != nil {
		record.OdometerKM = *req.OdometerKM
	}
	record.LastUpdatedAt = time.Now().UTC()
	record.LastUpdatedBy = userID

	if err := s.repo.UpdateFuelRecord(ctx, *record); err != nil {
		s.LogError(ctx, err, "Failed to update fuel record", slog.String("fuel_record_id", fuelRecordID))
		return nil, err
	}
	s.publish(ctx, fuelRecordsTable, domain.ActionUpdate, fuelRecordID, workplaceID)
	return record, nil
}

func (s *fleetService) DeleteFuelRecord(ctx context.Context, workplaceID, fuelRecordID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return err
	}
	if err := s.repo.DeleteFuelRecord(ctx, workplaceID, fuelRecordID); err != nil {
		return err
	}
	s.publish(ctx, fuelRecordsTable, domain.ActionDelete, fuelRecordID, workplaceID)
	return nil
}

func (s *fleetService) GetFuelRecordByID(ctx context.Context, workplaceID, fuelRecordID, userID string) (*domain.FuelRecord, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.FindFuelRecordByID(ctx, workplaceID, fuelRecordID)
}

func (s *fleetService) ListFuelRecords(ctx context.Context, workplaceID, vehicleID, userID string) ([]domain.FuelRecord, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.ListFuelRecords(ctx, workplaceID, vehicleID)
}

// --- Inspections ---

func (s *fleetService) CreateInspection(ctx context.Context, workplaceID string, req dto.CreateInspectionRequest, userID string) (*domain.Inspection, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	vehicle, err := s.repo.FindVehicleByID(ctx, workplaceID, req.VehicleID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	inspection := domain.Inspection{
		InspectionID: uuid.NewString(),
		WorkplaceID:  workplaceID,
		VehicleID:    vehicle.VehicleID,
		InspectedAt:  req.InspectedAt,
		Inspector:    req.Inspector,
		Passed:       req.Passed,
		Notes:        req.Notes,
		AuditFields:  newAudit(userID, now),
	}
	if err := s.repo.SaveInspection(ctx, inspection); err != nil {
		s.LogError(ctx, err, "Failed to save inspection", slog.String("vehicle_id", req.VehicleID))
		return nil, err
	}
	s.publish(ctx, inspectionsTable, domain.ActionInsert, inspection.InspectionID, workplaceID)
	return &inspection, nil
}

func (s *fleetService) UpdateInspection(ctx context.Context, workplaceID, inspectionID string, req dto.UpdateInspectionRequest, userID string) (*domain.Inspection, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	inspection, err := s.repo.FindInspectionByID(ctx, workplaceID, inspectionID)
	if err != nil {
		return nil, err
	}
	if req.Passed != nil {
		inspection.Passed = *req.Passed
	}
	if req.Notes != nil {
		inspection.Notes = *req.Notes
	}
	inspection.LastUpdatedAt = time.Now().UTC()
	inspection.LastUpdatedBy = userID

	if err := s.repo.UpdateInspection(ctx, *inspection); err != nil {
		s.LogError(ctx, err, "Failed to update inspection", slog.String("inspection_id", inspectionID))
		return nil, err
	}
	s.publish(ctx, inspectionsTable, domain.ActionUpdate, inspectionID, workplaceID)
	return inspection, nil
}

func (s *fleetService) DeleteInspection(ctx context.Context, workplaceID, inspectionID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return err
	}
	if err := s.repo.DeleteInspection(ctx, workplaceID, inspectionID); err != nil {
		return err
	}
	s.publish(ctx, inspectionsTable, domain.ActionDelete, inspectionID, workplaceID)
	return nil
}

func (s *fleetService) GetInspectionByID(ctx context.Context, workplaceID, inspectionID, userID string) (*domain.Inspection, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.FindInspectionByID(ctx, workplaceID, inspectionID)
}

func (s *fleetService) ListInspections(ctx context.Context, workplaceID, vehicleID, userID string) ([]domain.Inspection, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.ListInspections(ctx, workplaceID, vehicleID)
}
