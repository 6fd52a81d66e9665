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

type PgxBillingRepository struct {
	BaseRepository
}

// newPgxBillingRepository creates a new repository for payables, receivables,
// expenditures, payment terms and payment schedules.
func newPgxBillingRepository(pool *pgxpool.Pool) portsrepo.BillingRepositoryFacade {
	return &PgxBillingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BillingRepositoryFacade = (*PgxBillingRepository)(nil)

// --- Bills ---

const billColumns = `
	bill_id, workplace_id, vendor_id, bill_number, amount, due_date, status, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxBillingRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		bill.BillID, bill.WorkplaceID, bill.VendorID, bill.BillNumber,
		bill.Amount, bill.DueDate, bill.Status, bill.Notes,
		bill.CreatedAt, bill.CreatedBy, bill.LastUpdatedAt, bill.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return apperrors.ErrValidation
		}
		return apperrors.NewAppError(500, "failed to insert bill "+bill.BillID, err)
	}
	return nil
}

func (r *PgxBillingRepository) UpdateBill(ctx context.Context, bill domain.Bill) error {
	query := `
		UPDATE bills
		SET vendor_id = $1, bill_number = $2, amount = $3, due_date = $4, status = $5,
		    notes = $6, last_updated_at = $7, last_updated_by = $8
		WHERE workplace_id = $9 AND bill_id = $10;
	`
	tag, err := r.Pool.Exec(ctx, query,
		bill.VendorID, bill.BillNumber, bill.Amount, bill.DueDate, bill.Status,
		bill.Notes, bill.LastUpdatedAt, bill.LastUpdatedBy,
		bill.WorkplaceID, bill.BillID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update bill "+bill.BillID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBillingRepository) DeleteBill(ctx context.Context, workplaceID, billID string) error {
	return r.deleteRow(ctx, "bills", "bill_id", workplaceID, billID)
}

func (r *PgxBillingRepository) FindBillByID(ctx context.Context, workplaceID, billID string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE workplace_id = $1 AND bill_id = $2;`
	bill, err := scanBill(r.Pool.QueryRow(ctx, query, workplaceID, billID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bill "+billID, err)
	}
	return bill, nil
}

func (r *PgxBillingRepository) ListBills(ctx context.Context, workplaceID string) ([]domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE workplace_id = $1 ORDER BY due_date, created_at;`
	rows, err := r.Pool.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bills", err)
	}
	defer rows.Close()

	bills := []domain.Bill{}
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bill row", err)
		}
		bills = append(bills, *bill)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate bill rows", err)
	}
	return bills, nil
}

func scanBill(row pgx.Row) (*domain.Bill, error) {
	var b domain.Bill
	err := row.Scan(
		&b.BillID, &b.WorkplaceID, &b.VendorID, &b.BillNumber,
		&b.Amount, &b.DueDate, &b.Status, &b.Notes,
		&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// --- Receivables ---

const receivableColumns = `
	receivable_id, workplace_id, customer_name, reference, amount, due_date, status, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxBillingRepository) SaveReceivable(ctx context.Context, receivable domain.Receivable) error {
	query := `
		INSERT INTO receivables (` + receivableColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		receivable.ReceivableID, receivable.WorkplaceID, receivable.CustomerName, receivable.Reference,
		receivable.Amount, receivable.DueDate, receivable.Status, receivable.Notes,
		receivable.CreatedAt, receivable.CreatedBy, receivable.LastUpdatedAt, receivable.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert receivable "+receivable.ReceivableID, err)
	}
	return nil
}

func (r *PgxBillingRepository) UpdateReceivable(ctx context.Context, receivable domain.Receivable) error {
	query := `
		UPDATE receivables
		SET customer_name = $1, reference = $2, amount = $3, due_date = $4, status = $5,
		    notes = $6, last_updated_at = $7, last_updated_by = $8
		WHERE workplace_id = $9 AND receivable_id = $10;
	`
	tag, err := r.Pool.Exec(ctx, query,
		receivable.CustomerName, receivable.Reference, receivable.Amount, receivable.DueDate,
		receivable.Status, receivable.Notes, receivable.LastUpdatedAt, receivable.LastUpdatedBy,
		receivable.WorkplaceID, receivable.ReceivableID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update receivable "+receivable.ReceivableID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBillingRepository) DeleteReceivable(ctx context.Context, workplaceID, receivableID string) error {
	return r.deleteRow(ctx, "receivables", "receivable_id", workplaceID, receivableID)
}

func (r *PgxBillingRepository) FindReceivableByID(ctx context.Context, workplaceID, receivableID string) (*domain.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE workplace_id = $1 AND receivable_id = $2;`
	receivable, err := scanReceivable(r.Pool.QueryRow(ctx, query, workplaceID, receivableID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find receivable "+receivableID, err)
	}
	return receivable, nil
}

func (r *PgxBillingRepository) ListReceivables(ctx context.Context, workplaceID string) ([]domain.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE workplace_id = $1 ORDER BY due_date, created_at;`
	rows, err := r.Pool.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query receivables", err)
	}
	defer rows.Close()

	receivables := []domain.Receivable{}
	for rows.Next() {
		receivable, err := scanReceivable(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan receivable row", err)
		}
		receivables = append(receivables, *receivable)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate receivable rows", err)
	}
	return receivables, nil
}

func scanReceivable(row pgx.Row) (*domain.Receivable, error) {
	var rec domain.Receivable
	err := row.Scan(
		&rec.ReceivableID, &rec.WorkplaceID, &rec.CustomerName, &rec.Reference,
		&rec.Amount, &rec.DueDate, &rec.Status, &rec.Notes,
		&rec.CreatedAt, &rec.CreatedBy, &rec.LastUpdatedAt, &rec.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// --- Expenditures ---

const expenditureColumns = `
	expenditure_id, workplace_id, division_id, category, amount, spent_at, description,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxBillingRepository) SaveExpenditure(ctx context.Context, expenditure domain.Expenditure) error {
	query := `
		INSERT INTO expenditures (` + expenditureColumns + `)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		expenditure.ExpenditureID, expenditure.WorkplaceID, expenditure.DivisionID,
		expenditure.Category, expenditure.Amount, expenditure.SpentAt, expenditure.Description,
		expenditure.CreatedAt, expenditure.CreatedBy, expenditure.LastUpdatedAt, expenditure.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return apperrors.ErrValidation
		}
		return apperrors.NewAppError(500, "failed to insert expenditure "+expenditure.ExpenditureID, err)
	}
	return nil
}

func (r *PgxBillingRepository) UpdateExpenditure(ctx context.Context, expenditure domain.Expenditure) error {
	query := `
		UPDATE expenditures
		SET division_id = NULLIF($1, ''), category = $2, amount = $3, spent_at = $4,
		    description = $5, last_updated_at = $6, last_updated_by = $7
		WHERE workplace_id = $8 AND expenditure_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		expenditure.DivisionID, expenditure.Category, expenditure.Amount, expenditure.SpentAt,
		expenditure.Description, expenditure.LastUpdatedAt, expenditure.LastUpdatedBy,
		expenditure.WorkplaceID, expenditure.ExpenditureID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update expenditure "+expenditure.ExpenditureID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBillingRepository) DeleteExpenditure(ctx context.Context, workplaceID, expenditureID string) error {
	return r.deleteRow(ctx, "expenditures", "expenditure_id", workplaceID, expenditureID)
}

func (r *PgxBillingRepository) FindExpenditureByID(ctx context.Context, workplaceID, expenditureID string) (*domain.Expenditure, error) {
	query := `SELECT ` + expenditureColumns + ` FROM expenditures WHERE workplace_id = $1 AND expenditure_id = $2;`
	expenditure, err := scanExpenditure(r.Pool.QueryRow(ctx, query, workplaceID, expenditureID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find expenditure "+expenditureID, err)
	}
	return expenditure, nil
}

func (r *PgxBillingRepository) ListExpenditures(ctx context.Context, workplaceID string) ([]domain.Expenditure, error) {
	query := `SELECT ` + expenditureColumns + ` FROM expenditures WHERE workplace_id = $1 ORDER BY spent_at DESC, created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenditures", err)
	}
	defer rows.Close()

	expenditures := []domain.Expenditure{}
	for rows.Next() {
		expenditure, err := scanExpenditure(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expenditure row", err)
		}
		expenditures = append(expenditures, *expenditure)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate expenditure rows", err)
	}
	return expenditures, nil
}

func scanExpenditure(row pgx.Row) (*domain.Expenditure, error) {
	var e domain.Expenditure
	var divisionID sql.NullString
	err := row.Scan(
		&e.ExpenditureID, &e.WorkplaceID, &divisionID,
		&e.Category, &e.Amount, &e.SpentAt, &e.Description,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if divisionID.Valid {
		e.DivisionID = divisionID.String
	}
	return &e, nil
}

// --- Payment terms ---

const paymentTermColumns = `
	payment_term_id, workplace_id, name, net_days, discount_percent, discount_days,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxBillingRepository) SavePaymentTerm(ctx context.Context, term domain.PaymentTerm) error {
	query := `
		INSERT INTO payment_terms (` + paymentTermColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		term.PaymentTermID, term.WorkplaceID, term.Name, term.NetDays,
		term.DiscountPercent, term.DiscountDays,
		term.CreatedAt, term.CreatedBy, term.LastUpdatedAt, term.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert payment term "+term.PaymentTermID, err)
	}
	return nil
}

func (r *PgxBillingRepository) UpdatePaymentTerm(ctx context.Context, term domain.PaymentTerm) error {
	query := `
		UPDATE payment_terms
		SET name = $1, net_days = $2, discount_percent = $3, discount_days = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE workplace_id = $7 AND payment_term_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		term.Name, term.NetDays, term.DiscountPercent, term.DiscountDays,
		term.LastUpdatedAt, term.LastUpdatedBy,
		term.WorkplaceID, term.PaymentTermID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment term "+term.PaymentTermID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBillingRepository) DeletePaymentTerm(ctx context.Context, workplaceID, paymentTermID string) error {
	return r.deleteRow(ctx, "payment_terms", "payment_term_id", workplaceID, paymentTermID)
}

func (r *PgxBillingRepository) FindPaymentTermByID(ctx context.Context, workplaceID, paymentTermID string) (*domain.PaymentTerm, error) {
	query := `SELECT ` + paymentTermColumns + ` FROM payment_terms WHERE workplace_id = $1 AND payment_term_id = $2;`
	term, err := scanPaymentTerm(r.Pool.QueryRow(ctx, query, workplaceID, paymentTermID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment term "+paymentTermID, err)
	}
	return term, nil
}

func (r *PgxBillingRepository) ListPaymentTerms(ctx context.Context, workplaceID string) ([]domain.PaymentTerm, error) {
	query := `SELECT ` + paymentTermColumns + ` FROM payment_terms WHERE workplace_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payment terms", err)
	}
	defer rows.Close()

	terms := []domain.PaymentTerm{}
	for rows.Next() {
		term, err := scanPaymentTerm(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment term row", err)
		}
		terms = append(terms, *term)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate payment term rows", err)
	}
	return terms, nil
}

func scanPaymentTerm(row pgx.Row) (*domain.PaymentTerm, error) {
	var t domain.PaymentTerm
	err := row.Scan(
		&t.PaymentTermID, &t.WorkplaceID, &t.Name, &t.NetDays,
		&t.DiscountPercent, &t.DiscountDays,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// --- Payment schedules ---

const paymentScheduleColumns = `
	payment_schedule_id, workplace_id, contract_id, due_date, amount, status,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxBillingRepository) SavePaymentSchedule(ctx context.Context, schedule domain.PaymentSchedule) error {
	query := `
		INSERT INTO payment_schedules (` + paymentScheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		schedule.PaymentScheduleID, schedule.WorkplaceID, schedule.ContractID,
		schedule.DueDate, schedule.Amount, schedule.Status,
		schedule.CreatedAt, schedule.CreatedBy, schedule.LastUpdatedAt, schedule.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return apperrors.ErrValidation
		}
		return apperrors.NewAppError(500, "failed to insert payment schedule "+schedule.PaymentScheduleID, err)
	}
	return nil
}

func (r *PgxBillingRepository) UpdatePaymentSchedule(ctx context.Context, schedule domain.PaymentSchedule) error {
	query := `
		UPDATE payment_schedules
		SET due_date = $1, amount = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE workplace_id = $6 AND payment_schedule_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		schedule.DueDate, schedule.Amount, schedule.Status,
		schedule.LastUpdatedAt, schedule.LastUpdatedBy,
		schedule.WorkplaceID, schedule.PaymentScheduleID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment schedule "+schedule.PaymentScheduleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBillingRepository) DeletePaymentSchedule(ctx context.Context, workplaceID, scheduleID string) error {
	return r.deleteRow(ctx, "payment_schedules", "payment_schedule_id", workplaceID, scheduleID)
}

func (r *PgxBillingRepository) FindPaymentScheduleByID(ctx context.Context, workplaceID, scheduleID string) (*domain.PaymentSchedule, error) {
	query := `SELECT ` + paymentScheduleColumns + ` FROM payment_schedules WHERE workplace_id = $1 AND payment_schedule_id = $2;`
	schedule, err := scanPaymentSchedule(r.Pool.QueryRow(ctx, query, workplaceID, scheduleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment schedule "+scheduleID, err)
	}
	return schedule, nil
}

// ListPaymentSchedules lists schedules for a workplace, optionally filtered to
// one contract.
func (r *PgxBillingRepository) ListPaymentSchedules(ctx context.Context, workplaceID string, contractID string) ([]domain.PaymentSchedule, error) {
	query := `SELECT ` + paymentScheduleColumns + ` FROM payment_schedules WHERE workplace_id = $1`
	args := []any{workplaceID}
	if contractID != "" {
		query += ` AND contract_id = $2`
		args = append(args, contractID)
	}
	query += ` ORDER BY due_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payment schedules", err)
	}
	defer rows.Close()

	schedules := []domain.PaymentSchedule{}
	for rows.Next() {
		schedule, err := scanPaymentSchedule(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment schedule row", err)
		}
		schedules = append(schedules, *schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate payment schedule rows", err)
	}
	return schedules, nil
}

func scanPaymentSchedule(row pgx.Row) (*domain.PaymentSchedule, error) {
	var s domain.PaymentSchedule
	err := row.Scan(
		&s.PaymentScheduleID, &s.WorkplaceID, &s.ContractID,
		&s.DueDate, &s.Amount, &s.Status,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// deleteRow removes one row by primary key scoped to a workplace.
func (r *PgxBillingRepository) deleteRow(ctx context.Context, table, idColumn, workplaceID, id string) error {
	query := `DELETE FROM ` + table + ` WHERE workplace_id = $1 AND ` + idColumn + ` = $2;`
	tag, err := r.Pool.Exec(ctx, query, workplaceID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to delete from "+table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
