package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/apperrors"
	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portsrepo "github.com/bizdesk/bizdesk_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `
	user_id, name, email, auth_provider,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

// SaveUser inserts a new user. passwordHash is empty for OAuth users.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User, passwordHash string) error {
	query := `
		INSERT INTO users (user_id, name, email, auth_provider, password_hash,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		user.UserID, user.Name, user.Email, user.AuthProvider, passwordHash,
		user.CreatedAt, user.CreatedBy, user.LastUpdatedAt, user.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert user "+user.UserID, err)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users
		SET name = $1, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $4 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, user.Name, user.LastUpdatedAt, user.LastUpdatedBy, user.UserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update user "+user.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE users
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2,
		    refresh_token_hash = NULL, refresh_token_expiry = NULL
		WHERE user_id = $3 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, deletedAt, deletedBy, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark user deleted "+userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	query := `
		UPDATE users
		SET refresh_token_hash = $1, refresh_token_expiry = $2
		WHERE user_id = $3 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, refreshTokenHash, expiry, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update refresh token for user "+userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET refresh_token_hash = NULL, refresh_token_expiry = NULL
		WHERE user_id = $1;
	`
	if _, err := r.Pool.Exec(ctx, query, userID); err != nil {
		return apperrors.NewAppError(500, "failed to clear refresh token for user "+userID, err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted_at IS NULL;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user by email", err)
	}
	return user, nil
}

// FindUserCredentials returns the user and their stored password hash.
func (r *PgxUserRepository) FindUserCredentials(ctx context.Context, email string) (*domain.User, string, error) {
	query := `
		SELECT ` + userColumns + `, COALESCE(password_hash, '')
		FROM users
		WHERE email = $1 AND deleted_at IS NULL;
	`
	var user domain.User
	var deletedAt sql.NullTime
	var passwordHash string
	err := r.Pool.QueryRow(ctx, query, email).Scan(
		&user.UserID, &user.Name, &user.Email, &user.AuthProvider,
		&user.CreatedAt, &user.CreatedBy, &user.LastUpdatedAt, &user.LastUpdatedBy,
		&deletedAt, &passwordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.ErrNotFound
		}
		return nil, "", apperrors.NewAppError(500, "failed to find user credentials", err)
	}
	if deletedAt.Valid {
		user.DeletedAt = &deletedAt.Time
	}
	return &user, passwordHash, nil
}

func (r *PgxUserRepository) FindRefreshTokenDetails(ctx context.Context, userID string) (string, time.Time, error) {
	query := `
		SELECT COALESCE(refresh_token_hash, ''), COALESCE(refresh_token_expiry, 'epoch'::timestamptz)
		FROM users
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	var hash string
	var expiry time.Time
	err := r.Pool.QueryRow(ctx, query, userID).Scan(&hash, &expiry)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.ErrNotFound
		}
		return "", time.Time{}, apperrors.NewAppError(500, "failed to find refresh token details for user "+userID, err)
	}
	return hash, expiry, nil
}

func (r *PgxUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY created_at
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user row", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate user rows", err)
	}
	return users, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var deletedAt sql.NullTime
	err := row.Scan(
		&user.UserID, &user.Name, &user.Email, &user.AuthProvider,
		&user.CreatedAt, &user.CreatedBy, &user.LastUpdatedAt, &user.LastUpdatedBy,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		user.DeletedAt = &deletedAt.Time
	}
	return &user, nil
}
