package pgsql

import (
	"context"
	"errors"

	"github.com/bizdesk/bizdesk_backend/internal/apperrors"
	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portsrepo "github.com/bizdesk/bizdesk_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFleetRepository struct {
	BaseRepository
}

// newPgxFleetRepository creates a new repository for vehicles, fuel records
// and inspections.
func newPgxFleetRepository(pool *pgxpool.Pool) portsrepo.FleetRepositoryFacade {
	return &PgxFleetRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.FleetRepositoryFacade = (*PgxFleetRepository)(nil)

// --- Vehicles ---

const vehicleColumns = `
	vehicle_id, workplace_id, name, plate_number, make, model, year, status, odometer_km,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxFleetRepository) SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		vehicle.VehicleID, vehicle.WorkplaceID, vehicle.Name, vehicle.PlateNumber,
		vehicle.Make, vehicle.Model, vehicle.Year, vehicle.Status, vehicle.OdometerKM,
		vehicle.CreatedAt, vehicle.CreatedBy, vehicle.LastUpdatedAt, vehicle.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert vehicle "+vehicle.VehicleID, err)
	}
	return nil
}

func (r *PgxFleetRepository) UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET name = $1, plate_number = $2, make = $3, model = $4, year = $5, status = $6,
		    odometer_km = $7, last_updated_at = $8, last_updated_by = $9
		WHERE workplace_id = $10 AND vehicle_id = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		vehicle.Name, vehicle.PlateNumber, vehicle.Make, vehicle.Model, vehicle.Year,
		vehicle.Status, vehicle.OdometerKM, vehicle.LastUpdatedAt, vehicle.LastUpdatedBy,
		vehicle.WorkplaceID, vehicle.VehicleID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update vehicle "+vehicle.VehicleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFleetRepository) DeleteVehicle(ctx context.Context, workplaceID, vehicleID string) error {
	query := `DELETE FROM vehicles WHERE workplace_id = $1 AND vehicle_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, workplaceID, vehicleID)
	if err != nil {
		if isForeignKeyViolation(err) {
			// Fuel records or inspections still reference this vehicle.
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to delete vehicle "+vehicleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFleetRepository) FindVehicleByID(ctx context.Context, workplaceID, vehicleID string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE workplace_id = $1 AND vehicle_id = $2;`
	vehicle, err := scanVehicle(r.Pool.QueryRow(ctx, query, workplaceID, vehicleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find vehicle "+vehicleID, err)
	}
	return vehicle, nil
}

func (r *PgxFleetRepository) ListVehicles(ctx context.Context, workplaceID string) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE workplace_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query vehicles", err)
	}
	defer rows.Close()

	vehicles := []domain.Vehicle{}
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan vehicle row", err)
		}
		vehicles = append(vehicles, *vehicle)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate vehicle rows", err)
	}
	return vehicles, nil
}

func scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := row.Scan(
		&v.VehicleID, &v.WorkplaceID, &v.Name, &v.PlateNumber,
		&v.Make, &v.Model, &v.Year, &v.Status, &v.OdometerKM,
		&v.CreatedAt, &v.CreatedBy, &v.LastUpdatedAt, &v.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// --- Fuel records ---

const fuelRecordColumns = `
	fuel_record_id, workplace_id, vehicle_id, filled_at, liters, cost, odometer_km,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxFleetRepository) SaveFuelRecord(ctx context.Context, record domain.FuelRecord) error {
	query := `
		INSERT INTO fuel_records (` + fuelRecordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		record.FuelRecordID, record.WorkplaceID, record.VehicleID,
		record.FilledAt, record.Liters, record.Cost, record.OdometerKM,
		record.CreatedAt, record.CreatedBy, record.LastUpdatedAt, record.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return apperrors.ErrValidation
		}
		return apperrors.NewAppError(500, "failed to insert fuel record "+record.FuelRecordID, err)
	}
	return nil
}

func (r *PgxFleetRepository) UpdateFuelRecord(ctx context.Context, record domain.FuelRecord) error {
	query := `
		UPDATE fuel_records
		SET filled_at = $1, liters = $2, cost = $3, odometer_km = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE workplace_id = $7 AND fuel_record_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		record.FilledAt, record.Liters, record.Cost, record.OdometerKM,
		record.LastUpdatedAt, record.LastUpdatedBy,
		record.WorkplaceID, record.FuelRecordID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update fuel record "+record.FuelRecordID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFleetRepository) DeleteFuelRecord(ctx context.Context, workplaceID, fuelRecordID string) error {
	query := `DELETE FROM fuel_records WHERE workplace_id = $1 AND fuel_record_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, workplaceID, fuelRecordID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete fuel record "+fuelRecordID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFleetRepository) FindFuelRecordByID(ctx context.Context, workplaceID, fuelRecordID string) (*domain.FuelRecord, error) {
	query := `SELECT ` + fuelRecordColumns + ` FROM fuel_records WHERE workplace_id = $1 AND fuel_record_id = $2;`
	record, err := scanFuelRecord(r.Pool.QueryRow(ctx, query, workplaceID, fuelRecordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fuel record "+fuelRecordID, err)
	}
	return record, nil
}

// ListFuelRecords lists fuel records for a workplace, optionally filtered to
// one vehicle, newest fill first.
func (r *PgxFleetRepository) ListFuelRecords(ctx context.Context, workplaceID string, vehicleID string) ([]domain.FuelRecord, error) {
	query := `SELECT ` + fuelRecordColumns + ` FROM fuel_records WHERE workplace_id = $1`
	args := []any{workplaceID}
	if vehicleID != "" {
		query += ` AND vehicle_id = $2`
		args = append(args, vehicleID)
	}
	query += ` ORDER BY filled_at DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fuel records", err)
	}
	defer rows.Close()

	records := []domain.FuelRecord{}
	for rows.Next() {
		record, err := scanFuelRecord(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fuel record row", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate fuel record rows", err)
	}
	return records, nil
}

func scanFuelRecord(row pgx.Row) (*domain.FuelRecord, error) {
	var f domain.FuelRecord
	err := row.Scan(
		&f.FuelRecordID, &f.WorkplaceID, &f.VehicleID,
		&f.FilledAt, &f.Liters, &f.Cost, &f.OdometerKM,
		&f.CreatedAt, &f.CreatedBy, &f.LastUpdatedAt, &f.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// --- Inspections ---

const inspectionColumns = `
	inspection_id, workplace_id, vehicle_id, inspected_at, inspector, passed, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxFleetRepository) SaveInspection(ctx context.Context, inspection domain.Inspection) error {
	query := `
		INSERT INTO inspections (` + inspectionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		inspection.InspectionID, inspection.WorkplaceID, inspection.VehicleID,
		inspection.InspectedAt, inspection.Inspector, inspection.Passed, inspection.Notes,
		inspection.CreatedAt, inspection.CreatedBy, inspection.LastUpdatedAt, inspection.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return apperrors.ErrValidation
		}
		return apperrors.NewAppError(500, "failed to insert inspection "+inspection.InspectionID, err)
	}
	return nil
}

func (r *PgxFleetRepository) UpdateInspection(ctx context.Context, inspection domain.Inspection) error {
	query := `
		UPDATE inspections
		SET inspected_at = $1, inspector = $2, passed = $3, notes = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE workplace_id = $7 AND inspection_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		inspection.InspectedAt, inspection.Inspector, inspection.Passed, inspection.Notes,
		inspection.LastUpdatedAt, inspection.LastUpdatedBy,
		inspection.WorkplaceID, inspection.InspectionID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update inspection "+inspection.InspectionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFleetRepository) DeleteInspection(ctx context.Context, workplaceID, inspectionID string) error {
	query := `DELETE FROM inspections WHERE workplace_id = $1 AND inspection_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, workplaceID, inspectionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete inspection "+inspectionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFleetRepository) FindInspectionByID(ctx context.Context, workplaceID, inspectionID string) (*domain.Inspection, error) {
	query := `SELECT ` + inspectionColumns + ` FROM inspections WHERE workplace_id = $1 AND inspection_id = $2;`
	inspection, err := scanInspection(r.Pool.QueryRow(ctx, query, workplaceID, inspectionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find inspection "+inspectionID, err)
	}
	return inspection, nil
}

func (r *PgxFleetRepository) ListInspections(ctx context.Context, workplaceID string, vehicleID string) ([]domain.Inspection, error) {
	query := `SELECT ` + inspectionColumns + ` FROM inspections WHERE workplace_id = $1`
	args := []any{workplaceID}
	if vehicleID != "" {
		query += ` AND vehicle_id = $2`
		args = append(args, vehicleID)
	}
	query += ` ORDER BY inspected_at DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query inspections", err)
	}
	defer rows.Close()

	inspections := []domain.Inspection{}
	for rows.Next() {
		inspection, err := scanInspection(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan inspection row", err)
		}
		inspections = append(inspections, *inspection)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate inspection rows", err)
	}
	return inspections, nil
}

func scanInspection(row pgx.Row) (*domain.Inspection, error) {
	var i domain.Inspection
	err := row.Scan(
		&i.InspectionID, &i.WorkplaceID, &i.VehicleID,
		&i.InspectedAt, &i.Inspector, &i.Passed, &i.Notes,
		&i.CreatedAt, &i.CreatedBy, &i.LastUpdatedAt, &i.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}
