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

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `
	account_id, workplace_id, code, name, account_type, currency_code,
	parent_account_id, description, is_active, balance,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.WorkplaceID,
		account.Code,
		account.Name,
		account.AccountType,
		account.CurrencyCode,
		account.ParentAccountID,
		account.Description,
		account.IsActive,
		account.Balance,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert account "+account.AccountID, err)
	}
	return nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, description = $2, parent_account_id = NULLIF($3, ''),
		    is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE workplace_id = $7 AND account_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.Name,
		account.Description,
		account.ParentAccountID,
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
		account.WorkplaceID,
		account.AccountID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, workplaceID, accountID, updatedBy string) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE workplace_id = $3 AND account_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, time.Now(), updatedBy, workplaceID, accountID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE workplace_id = $1 AND account_id = $2;
	`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, workplaceID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+accountID, err)
	}
	return account, nil
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, workplaceID, code string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE workplace_id = $1 AND code = $2;
	`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, workplaceID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by code "+code, err)
	}
	return account, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, workplaceID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE workplace_id = $1
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate account rows", err)
	}
	return accounts, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	var parentID sql.NullString
	err := row.Scan(
		&account.AccountID,
		&account.WorkplaceID,
		&account.Code,
		&account.Name,
		&account.AccountType,
		&account.CurrencyCode,
		&parentID,
		&account.Description,
		&account.IsActive,
		&account.Balance,
		&account.CreatedAt,
		&account.CreatedBy,
		&account.LastUpdatedAt,
		&account.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		account.ParentAccountID = parentID.String
	}
	return &account, nil
}
