package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bizdesk/bizdesk_backend/internal/apperrors"
	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portsrepo "github.com/bizdesk/bizdesk_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrgRepository struct {
	BaseRepository
}

// newPgxOrgRepository creates a new repository for divisions and contracts.
func newPgxOrgRepository(pool *pgxpool.Pool) portsrepo.OrgRepositoryFacade {
	return &PgxOrgRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.OrgRepositoryFacade = (*PgxOrgRepository)(nil)

// --- Divisions ---

const divisionColumns = `
	division_id, workplace_id, name, description, manager_name,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxOrgRepository) SaveDivision(ctx context.Context, division domain.Division) error {
	query := `
		INSERT INTO divisions (` + divisionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		division.DivisionID, division.WorkplaceID, division.Name,
		division.Description, division.ManagerName,
		division.CreatedAt, division.CreatedBy, division.LastUpdatedAt, division.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert division "+division.DivisionID, err)
	}
	return nil
}

func (r *PgxOrgRepository) UpdateDivision(ctx context.Context, division domain.Division) error {
	query := `
		UPDATE divisions
		SET name = $1, description = $2, manager_name = $3, last_updated_at = $4, last_updated_by = $5
		WHERE workplace_id = $6 AND division_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		division.Name, division.Description, division.ManagerName,
		division.LastUpdatedAt, division.LastUpdatedBy,
		division.WorkplaceID, division.DivisionID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update division "+division.DivisionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOrgRepository) DeleteDivision(ctx context.Context, workplaceID, divisionID string) error {
	query := `DELETE FROM divisions WHERE workplace_id = $1 AND division_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, workplaceID, divisionID)
	if err != nil {
		if isForeignKeyViolation(err) {
			// Contracts or expenditures still reference this division.
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to delete division "+divisionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOrgRepository) FindDivisionByID(ctx context.Context, workplaceID, divisionID string) (*domain.Division, error) {
	query := `SELECT ` + divisionColumns + ` FROM divisions WHERE workplace_id = $1 AND division_id = $2;`
	division, err := scanDivision(r.Pool.QueryRow(ctx, query, workplaceID, divisionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find division "+divisionID, err)
	}
	return division, nil
}

func (r *PgxOrgRepository) ListDivisions(ctx context.Context, workplaceID string) ([]domain.Division, error) {
	query := `SELECT ` + divisionColumns + ` FROM divisions WHERE workplace_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query divisions", err)
	}
	defer rows.Close()

	divisions := []domain.Division{}
	for rows.Next() {
		division, err := scanDivision(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan division row", err)
		}
		divisions = append(divisions, *division)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate division rows", err)
	}
	return divisions, nil
}

func scanDivision(row pgx.Row) (*domain.Division, error) {
	var d domain.Division
	err := row.Scan(
		&d.DivisionID, &d.WorkplaceID, &d.Name, &d.Description, &d.ManagerName,
		&d.CreatedAt, &d.CreatedBy, &d.LastUpdatedAt, &d.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// --- Contracts ---

const contractColumns = `
	contract_id, workplace_id, division_id, party_name, starts_at, ends_at, value, status, payment_term_id,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxOrgRepository) SaveContract(ctx context.Context, contract domain.Contract) error {
	query := `
		INSERT INTO contracts (` + contractColumns + `)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		contract.ContractID, contract.WorkplaceID, contract.DivisionID, contract.PartyName,
		contract.StartsAt, contract.EndsAt, contract.Value, contract.Status, contract.PaymentTermID,
		contract.CreatedAt, contract.CreatedBy, contract.LastUpdatedAt, contract.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return apperrors.ErrValidation
		}
		return apperrors.NewAppError(500, "failed to insert contract "+contract.ContractID, err)
	}
	return nil
}

func (r *PgxOrgRepository) UpdateContract(ctx context.Context, contract domain.Contract) error {
	query := `
		UPDATE contracts
		SET division_id = NULLIF($1, ''), party_name = $2, starts_at = $3, ends_at = $4,
		    value = $5, status = $6, payment_term_id = NULLIF($7, ''),
		    last_updated_at = $8, last_updated_by = $9
		WHERE workplace_id = $10 AND contract_id = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		contract.DivisionID, contract.PartyName, contract.StartsAt, contract.EndsAt,
		contract.Value, contract.Status, contract.PaymentTermID,
		contract.LastUpdatedAt, contract.LastUpdatedBy,
		contract.WorkplaceID, contract.ContractID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrValidation
		}
		return apperrors.NewAppError(500, "failed to update contract "+contract.ContractID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOrgRepository) DeleteContract(ctx context.Context, workplaceID, contractID string) error {
	query := `DELETE FROM contracts WHERE workplace_id = $1 AND contract_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, workplaceID, contractID)
	if err != nil {
		if isForeignKeyViolation(err) {
			// Payment schedules still reference this contract.
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to delete contract "+contractID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOrgRepository) FindContractByID(ctx context.Context, workplaceID, contractID string) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE workplace_id = $1 AND contract_id = $2;`
	contract, err := scanContract(r.Pool.QueryRow(ctx, query, workplaceID, contractID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find contract "+contractID, err)
	}
	return contract, nil
}

func (r *PgxOrgRepository) ListContracts(ctx context.Context, workplaceID string) ([]domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE workplace_id = $1 ORDER BY starts_at DESC;`
	rows, err := r.Pool.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query contracts", err)
	}
	defer rows.Close()

	contracts := []domain.Contract{}
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan contract row", err)
		}
		contracts = append(contracts, *contract)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate contract rows", err)
	}
	return contracts, nil
}

func scanContract(row pgx.Row) (*domain.Contract, error) {
	var c domain.Contract
	var divisionID, paymentTermID sql.NullString
	err := row.Scan(
		&c.ContractID, &c.WorkplaceID, &divisionID, &c.PartyName,
		&c.StartsAt, &c.EndsAt, &c.Value, &c.Status, &paymentTermID,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if divisionID.Valid {
		c.DivisionID = divisionID.String
	}
	if paymentTermID.Valid {
		c.PaymentTermID = paymentTermID.String
	}
	return &c, nil
}
