package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/apperrors"
	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portsrepo "github.com/bizdesk/bizdesk_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxWorkplaceRepository struct {
	BaseRepository
}

// newPgxWorkplaceRepository creates a new repository for workplace and
// membership data.
func newPgxWorkplaceRepository(pool *pgxpool.Pool) portsrepo.WorkplaceRepositoryFacade {
	return &PgxWorkplaceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.WorkplaceRepositoryFacade = (*PgxWorkplaceRepository)(nil)

const workplaceColumns = `
	workplace_id, name, description, default_currency_code, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveWorkplace inserts the workplace and the creator's admin membership in
// one transaction so a workplace can never exist without an admin.
func (r *PgxWorkplaceRepository) SaveWorkplace(ctx context.Context, workplace domain.Workplace, creatorMembership domain.UserWorkplace) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	workplaceQuery := `
		INSERT INTO workplaces (` + workplaceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, workplaceQuery,
		workplace.WorkplaceID, workplace.Name, workplace.Description,
		workplace.DefaultCurrencyCode, workplace.IsActive,
		workplace.CreatedAt, workplace.CreatedBy, workplace.LastUpdatedAt, workplace.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert workplace "+workplace.WorkplaceID, err)
	}

	membershipQuery := `
		INSERT INTO user_workplaces (user_id, workplace_id, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err = tx.Exec(ctx, membershipQuery,
		creatorMembership.UserID, creatorMembership.WorkplaceID,
		creatorMembership.Role, creatorMembership.JoinedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert creator membership for workplace "+workplace.WorkplaceID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxWorkplaceRepository) SetWorkplaceActive(ctx context.Context, workplaceID string, active bool, updatedBy string) error {
	query := `
		UPDATE workplaces
		SET is_active = $1, last_updated_at = $2, last_updated_by = $3
		WHERE workplace_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, active, time.Now(), updatedBy, workplaceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set workplace active state "+workplaceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpsertUserWorkplace inserts or updates a user's membership row. Role changes
// and removals both go through here; removal stores RoleRemoved rather than
// deleting the row.
func (r *PgxWorkplaceRepository) UpsertUserWorkplace(ctx context.Context, membership domain.UserWorkplace) error {
	query := `
		INSERT INTO user_workplaces (user_id, workplace_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, workplace_id)
		DO UPDATE SET role = EXCLUDED.role;
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID, membership.WorkplaceID, membership.Role, membership.JoinedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to upsert membership for user "+membership.UserID, err)
	}
	return nil
}

func (r *PgxWorkplaceRepository) FindWorkplaceByID(ctx context.Context, workplaceID string) (*domain.Workplace, error) {
	query := `SELECT ` + workplaceColumns + ` FROM workplaces WHERE workplace_id = $1;`
	workplace, err := scanWorkplace(r.Pool.QueryRow(ctx, query, workplaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find workplace "+workplaceID, err)
	}
	return workplace, nil
}

func (r *PgxWorkplaceRepository) ListWorkplacesByUser(ctx context.Context, userID string, includeDisabled bool) ([]domain.Workplace, error) {
	query := `
		SELECT w.workplace_id, w.name, w.description, w.default_currency_code, w.is_active,
		       w.created_at, w.created_by, w.last_updated_at, w.last_updated_by
		FROM workplaces w
		JOIN user_workplaces uw ON uw.workplace_id = w.workplace_id
		WHERE uw.user_id = $1 AND uw.role != $2`
	args := []any{userID, domain.RoleRemoved}
	if !includeDisabled {
		query += ` AND w.is_active = TRUE`
	}
	query += ` ORDER BY w.name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workplaces for user "+userID, err)
	}
	defer rows.Close()

	workplaces := []domain.Workplace{}
	for rows.Next() {
		workplace, err := scanWorkplace(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan workplace row", err)
		}
		workplaces = append(workplaces, *workplace)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate workplace rows", err)
	}
	return workplaces, nil
}

func (r *PgxWorkplaceRepository) ListWorkplaceUsers(ctx context.Context, workplaceID string) ([]domain.UserWorkplace, error) {
	query := `
		SELECT uw.user_id, u.name, uw.workplace_id, uw.role, uw.joined_at
		FROM user_workplaces uw
		JOIN users u ON u.user_id = uw.user_id
		WHERE uw.workplace_id = $1 AND uw.role != $2
		ORDER BY uw.joined_at;
	`
	rows, err := r.Pool.Query(ctx, query, workplaceID, domain.RoleRemoved)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workplace users "+workplaceID, err)
	}
	defer rows.Close()

	memberships := []domain.UserWorkplace{}
	for rows.Next() {
		var m domain.UserWorkplace
		if err := rows.Scan(&m.UserID, &m.UserName, &m.WorkplaceID, &m.Role, &m.JoinedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan membership row", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate membership rows", err)
	}
	return memberships, nil
}

// FindUserWorkplaceRole returns the user's role in a workplace. Removed
// members are reported as not found.
func (r *PgxWorkplaceRepository) FindUserWorkplaceRole(ctx context.Context, userID, workplaceID string) (domain.UserWorkplaceRole, error) {
	query := `
		SELECT role FROM user_workplaces
		WHERE user_id = $1 AND workplace_id = $2;
	`
	var role domain.UserWorkplaceRole
	err := r.Pool.QueryRow(ctx, query, userID, workplaceID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to find workplace role for user "+userID, err)
	}
	if role == domain.RoleRemoved {
		return "", apperrors.ErrNotFound
	}
	return role, nil
}

func scanWorkplace(row pgx.Row) (*domain.Workplace, error) {
	var w domain.Workplace
	err := row.Scan(
		&w.WorkplaceID, &w.Name, &w.Description, &w.DefaultCurrencyCode, &w.IsActive,
		&w.CreatedAt, &w.CreatedBy, &w.LastUpdatedAt, &w.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
