package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/apperrors"
	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portsrepo "github.com/bizdesk/bizdesk_backend/internal/core/ports/repositories"
	"github.com/bizdesk/bizdesk_backend/internal/core/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock FleetRepository ---
type MockFleetRepository struct {
	mock.Mock
}

var _ portsrepo.FleetRepositoryFacade = (*MockFleetRepository)(nil)

func (m *MockFleetRepository) FindVehicleByID(ctx context.Context, workplaceID, vehicleID string) (*domain.Vehicle, error) {
	args := m.Called(ctx, workplaceID, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockFleetRepository) ListVehicles(ctx context.Context, workplaceID string) ([]domain.Vehicle, error) {
	args := m.Called(ctx, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockFleetRepository) SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockFleetRepository) UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockFleetRepository) DeleteVehicle(ctx context.Context, workplaceID, vehicleID string) error {
	args := m.Called(ctx, workplaceID, vehicleID)
	return args.Error(0)
}

func (m *MockFleetRepository) FindFuelRecordByID(ctx context.Context, workplaceID, fuelRecordID string) (*domain.FuelRecord, error) {
	args := m.Called(ctx, workplaceID, fuelRecordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FuelRecord), args.Error(1)
}

func (m *MockFleetRepository) ListFuelRecords(ctx context.Context, workplaceID string, vehicleID string) ([]domain.FuelRecord, error) {
	args := m.Called(ctx, workplaceID, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FuelRecord), args.Error(1)
}

func (m *MockFleetRepository) SaveFuelRecord(ctx context.Context, record domain.FuelRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockFleetRepository) UpdateFuelRecord(ctx context.Context, record domain.FuelRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockFleetRepository) DeleteFuelRecord(ctx context.Context, workplaceID, fuelRecordID string) error {
	args := m.Called(ctx, workplaceID, fuelRecordID)
	return args.Error(0)
}

func (m *MockFleetRepository) FindInspectionByID(ctx context.Context, workplaceID, inspectionID string) (*domain.Inspection, error) {
	args := m.Called(ctx, workplaceID, inspectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inspection), args.Error(1)
}

func (m *MockFleetRepository) ListInspections(ctx context.Context, workplaceID string, vehicleID string) ([]domain.Inspection, error) {
	args := m.Called(ctx, workplaceID, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Inspection), args.Error(1)
}

func (m *MockFleetRepository) SaveInspection(ctx context.Context, inspection domain.Inspection) error {
	args := m.Called(ctx, inspection)
	return args.Error(0)
}

func (m *MockFleetRepository) UpdateInspection(ctx context.Context, inspection domain.Inspection) error {
	args := m.Called(ctx, inspection)
	return args.Error(0)
}

func (m *MockFleetRepository) DeleteInspection(ctx context.Context, workplaceID, inspectionID string) error {
	args := m.Called(ctx, workplaceID, inspectionID)
	return args.Error(0)
}

func fleetDeps() (*MockFleetRepository, *MockWorkplaceAuthorizer, *MockNotifier) {
	return new(MockFleetRepository), new(MockWorkplaceAuthorizer), new(MockNotifier)
}

func TestCreateVehicle_StartsActive(t *testing.T) {
	ctx := context.Background()
	repo, authorizer, notifier := fleetDeps()
	svc := services.NewFleetService(repo, authorizer, notifier)

	authorizer.On("AuthorizeUserAction", ctx, "user-1", "wp-1", domain.RoleMember).Return(nil)

	var saved domain.Vehicle
	repo.On("SaveVehicle", ctx, mock.AnythingOfType("domain.Vehicle")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Vehicle)
		}).Return(nil)
	notifier.On("Publish", ctx, mock.AnythingOfType("domain.ChangeEvent")).Return()

	vehicle, err := svc.CreateVehicle(ctx, "wp-1", dto.CreateVehicleRequest{
		Name:        "Van 3",
		PlateNumber: "AB-123-CD",
		Year:        2022,
	}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, domain.VehicleActive, saved.Status)
	assert.Equal(t, int64(0), saved.OdometerKM)
	assert.Equal(t, vehicle.VehicleID, saved.VehicleID)
}

func TestUpdateVehicle_OdometerMustNotDecrease(t *testing.T) {
	ctx := context.Background()
	repo, authorizer, notifier := fleetDeps()
	svc := services.NewFleetService(repo, authorizer, notifier)

	existing := domain.Vehicle{
		VehicleID:   "v-1",
		WorkplaceID: "wp-1",
		OdometerKM:  120000,
		Status:      domain.VehicleActive,
	}

	authorizer.On("AuthorizeUserAction", ctx, "user-1", "wp-1", domain.RoleMember).Return(nil)
	repo.On("FindVehicleByID", ctx, "wp-1", "v-1").Return(&existing, nil)

	lower := int64(119999)
	_, err := svc.UpdateVehicle(ctx, "wp-1", "v-1", dto.UpdateVehicleRequest{OdometerKM: &lower}, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "UpdateVehicle", mock.Anything, mock.Anything)
}

func TestUpdateVehicle_OdometerAdvances(t *testing.T) {
	ctx := context.Background()
	repo, authorizer, notifier := fleetDeps()
	svc := services.NewFleetService(repo, authorizer, notifier)

	existing := domain.Vehicle{
		VehicleID:   "v-1",
		WorkplaceID: "wp-1",
		OdometerKM:  120000,
		Status:      domain.VehicleActive,
	}

	authorizer.On("AuthorizeUserAction", ctx, "user-1", "wp-1", domain.RoleMember).Return(nil)
	repo.On("FindVehicleByID", ctx, "wp-1", "v-1").Return(&existing, nil)
	repo.On("UpdateVehicle", ctx, mock.AnythingOfType("domain.Vehicle")).Return(nil)
	notifier.On("Publish", ctx, mock.AnythingOfType("domain.ChangeEvent")).Return()

	higher := int64(120500)
	maintenance := domain.VehicleMaintenance
	updated, err := svc.UpdateVehicle(ctx, "wp-1", "v-1", dto.UpdateVehicleRequest{
		OdometerKM: &higher,
		Status:     &maintenance,
	}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, int64(120500), updated.OdometerKM)
	assert.Equal(t, domain.VehicleMaintenance, updated.Status)
}

func TestCreateFuelRecord_RejectsNegativeAmounts(t *testing.T) {
	ctx := context.Background()
	repo, authorizer, notifier := fleetDeps()
	svc := services.NewFleetService(repo, authorizer, notifier)

	authorizer.On("AuthorizeUserAction", ctx, "user-1", "wp-1", domain.RoleMember).Return(nil)

	_, err := svc.CreateFuelRecord(ctx, "wp-1", dto.CreateFuelRecordRequest{
		VehicleID: "v-1",
		FilledAt:  time.Now(),
		Liters:    decimal.NewFromInt(-40),
		Cost:      decimal.NewFromInt(60),
	}, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "SaveFuelRecord", mock.Anything, mock.Anything)
}

func TestCreateFuelRecord_VehicleMustBelongToWorkplace(t *testing.T) {
	ctx := context.Background()
	repo, authorizer, notifier := fleetDeps()
	svc := services.NewFleetService(repo, authorizer, notifier)

	authorizer.On("AuthorizeUserAction", ctx, "user-1", "wp-1", domain.RoleMember).Return(nil)
	repo.On("FindVehicleByID", ctx, "wp-1", "foreign-vehicle").Return(nil, apperrors.ErrNotFound)

	_, err := svc.CreateFuelRecord(ctx, "wp-1", dto.CreateFuelRecordRequest{
		VehicleID: "foreign-vehicle",
		FilledAt:  time.Now(),
		Liters:    decimal.NewFromInt(40),
		Cost:      decimal.NewFromInt(60),
	}, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertNotCalled(t, "SaveFuelRecord", mock.Anything, mock.Anything)
}

func TestDeleteVehicle_PublishesDeleteEvent(t *testing.T) {
	ctx := context.Background()
	repo, authorizer, notifier := fleetDeps()
	svc := services.NewFleetService(repo, authorizer, notifier)

	authorizer.On("AuthorizeUserAction", ctx, "user-1", "wp-1", domain.RoleMember).Return(nil)
	repo.On("DeleteVehicle", ctx, "wp-1", "v-1").Return(nil)

	var published domain.ChangeEvent
	notifier.On("Publish", ctx, mock.AnythingOfType("domain.ChangeEvent")).
		Run(func(args mock.Arguments) {
			published = args.Get(1).(domain.ChangeEvent)
		}).Return()

	require.NoError(t, svc.DeleteVehicle(ctx, "wp-1", "v-1", "user-1"))

	assert.Equal(t, "vehicles", published.Table)
	assert.Equal(t, domain.ActionDelete, published.Action)
	assert.Equal(t, "v-1", published.EntityID)
	assert.Equal(t, "wp-1", published.WorkplaceID)
}
