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
	billsTable            = "bills"
	receivablesTable      = "receivables"
	expendituresTable     = "expenditures"
	paymentTermsTable     = "payment_terms"
	paymentSchedulesTable = "payment_schedules"
)

type billingService struct {
	BaseService
	repo     portsrepo.BillingRepositoryFacade
	notifier events.Notifier
}

// NewBillingService creates the service covering bills, receivables,
// expenditures, payment terms and payment schedules.
func NewBillingService(repo portsrepo.BillingRepositoryFacade, workplaceAuthorizer portssvc.WorkplaceAuthorizerSvc, notifier events.Notifier) portssvc.BillingSvcFacade {
	return &billingService{
		BaseService: BaseService{WorkplaceAuthorizer: workplaceAuthorizer},
		repo:        repo,
		notifier:    notifier,
	}
}

var _ portssvc.BillingSvcFacade = (*billingService)(nil)

func (s *billingService) publish(ctx context.Context, table string, action domain.ChangeAction, entityID, workplaceID string) {
	s.notifier.Publish(ctx, domain.ChangeEvent{
		Table:       table,
		Action:      action,
		EntityID:    entityID,
		WorkplaceID: workplaceID,
	})
}

func newAudit(userID string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

// --- Bills ---

func (s *billingService) CreateBill(ctx context.Context, workplaceID string, req dto.CreateBillRequest, userID string) (*domain.Bill, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Amount.IsNegative() {
		return nil, apperrors.NewAppError(400, "bill amount must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	bill := domain.Bill{
		BillID:      uuid.NewString(),
		WorkplaceID: workplaceID,
		VendorID:    req.VendorID,
		BillNumber:  req.BillNumber,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
		Status:      domain.BillOpen,
		Notes:       req.Notes,
		AuditFields: newAudit(userID, now),
	}
	if err := s.repo.SaveBill(ctx, bill); err != nil {
		s.LogError(ctx, err, "Failed to save bill", slog.String("bill_number", req.BillNumber))
		return nil, err
	}
	s.publish(ctx, billsTable, domain.ActionInsert, bill.BillID, workplaceID)
	return &bill, nil
}

func (s *billingService) UpdateBill(ctx context.Context, workplaceID, billID string, req dto.UpdateBillRequest, userID string) (*domain.Bill, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	bill, err := s.repo.FindBillByID(ctx, workplaceID, billID)
	if err != nil {
		return nil, err
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, apperrors.NewAppError(400, "bill amount must not be negative", apperrors.ErrValidation)
		}
		bill.Amount = *req.Amount
	}
	if req.DueDate != nil {
		bill.DueDate = *req.DueDate
	}
	if req.Status != nil {
		bill.Status = *req.Status
	}
	if req.Notes != nil {
		bill.Notes = *req.Notes
	}
	bill.LastUpdatedAt = time.Now().UTC()
	bill.LastUpdatedBy = userID

	if err := s.repo.UpdateBill(ctx, *bill); err != nil {
		s.LogError(ctx, err, "Failed to update bill", slog.String("bill_id", billID))
		return nil, err
	}
	s.publish(ctx, billsTable, domain.ActionUpdate, billID, workplaceID)
	return bill, nil
}

func (s *billingService) DeleteBill(ctx context.Context, workplaceID, billID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return err
	}
	if err := s.repo.DeleteBill(ctx, workplaceID, billID); err != nil {
		return err
	}
	s.publish(ctx, billsTable, domain.ActionDelete, billID, workplaceID)
	return nil
}

func (s *billingService) GetBillByID(ctx context.Context, workplaceID, billID, userID string) (*domain.Bill, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.FindBillByID(ctx, workplaceID, billID)
}

func (s *billingService) ListBills(ctx context.Context, workplaceID, userID string) ([]domain.Bill, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.ListBills(ctx, workplaceID)
}

// --- Receivables ---

func (s *billingService) CreateReceivable(ctx context.Context, workplaceID string, req dto.CreateReceivableRequest, userID string) (*domain.Receivable, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Amount.IsNegative() {
		return nil, apperrors.NewAppError(400, "receivable amount must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	receivable := domain.Receivable{
		ReceivableID: uuid.NewString(),
		WorkplaceID:  workplaceID,
		CustomerName: req.CustomerName,
		Reference:    req.Reference,
		Amount:       req.Amount,
		DueDate:      req.DueDate,
		Status:       domain.ReceivableOpen,
		Notes:        req.Notes,
		AuditFields:  newAudit(userID, now),
	}
	if err := s.repo.SaveReceivable(ctx, receivable); err != nil {
		s.LogError(ctx, err, "Failed to save receivable", slog.String("customer", req.CustomerName))
		return nil, err
	}
	s.publish(ctx, receivablesTable, domain.ActionInsert, receivable.ReceivableID, workplaceID)
	return &receivable, nil
}

func (s *billingService) UpdateReceivable(ctx context.Context, workplaceID, receivableID string, req dto.UpdateReceivableRequest, userID string) (*domain.Receivable, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	receivable, err := s.repo.FindReceivableByID(ctx, workplaceID, receivableID)
	if err != nil {
		return nil, err
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, apperrors.NewAppError(400, "receivable amount must not be negative", apperrors.ErrValidation)
		}
		receivable.Amount = *req.Amount
	}
	if req.DueDate != nil {
		receivable.DueDate = *req.DueDate
	}
	if req.Status != nil {
		receivable.Status = *req.Status
	}
	if req.Notes != nil {
		receivable.Notes = *req.Notes
	}
	receivable.LastUpdatedAt = time.Now().UTC()
	receivable.LastUpdatedBy = userID

	if err := s.repo.UpdateReceivable(ctx, *receivable); err != nil {
		s.LogError(ctx, err, "Failed to update receivable", slog.String("receivable_id", receivableID))
		return nil, err
	}
	s.publish(ctx, receivablesTable, domain.ActionUpdate, receivableID, workplaceID)
	return receivable, nil
}

func (s *billingService) DeleteReceivable(ctx context.Context, workplaceID, receivableID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return err
	}
	if err := s.repo.DeleteReceivable(ctx, workplaceID, receivableID); err != nil {
		return err
	}
	s.publish(ctx, receivablesTable, domain.ActionDelete, receivableID, workplaceID)
	return nil
}

func (s *billingService) GetReceivableByID(ctx context.Context, workplaceID, receivableID, userID string) (*domain.Receivable, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.FindReceivableByID(ctx, workplaceID, receivableID)
}

func (s *billingService) ListReceivables(ctx context.Context, workplaceID, userID string) ([]domain.Receivable, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.ListReceivables(ctx, workplaceID)
}

// --- Expenditures ---

func (s *billingService) CreateExpenditure(ctx context.Context, workplaceID string, req dto.CreateExpenditureRequest, userID string) (*domain.Expenditure, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Amount.IsNegative() {
		return nil, apperrors.NewAppError(400, "expenditure amount must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	expenditure := domain.Expenditure{
		ExpenditureID: uuid.NewString(),
		WorkplaceID:   workplaceID,
		DivisionID:    req.DivisionID,
		Category:      req.Category,
		Amount:        req.Amount,
		SpentAt:       req.SpentAt,
		Description:   req.Description,
		AuditFields:   newAudit(userID, now),
	}
	if err := s.repo.SaveExpenditure(ctx, expenditure); err != nil {
		s.LogError(ctx, err, "Failed to save expenditure", slog.String("category", req.Category))
		return nil, err
	}
	s.publish(ctx, expendituresTable, domain.ActionInsert, expenditure.ExpenditureID, workplaceID)
	return &expenditure, nil
}

func (s *billingService) UpdateExpenditure(ctx context.Context, workplaceID, expenditureID string, req dto.UpdateExpenditureRequest, userID string) (*domain.Expenditure, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	expenditure, err := s.repo.FindExpenditureByID(ctx, workplaceID, expenditureID)
	if err != nil {
		return nil, err
	}
	if req.Category != nil {
		expenditure.Category = *req.Category
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, apperrors.NewAppError(400, "expenditure amount must not be negative", apperrors.ErrValidation)
		}
		expenditure.Amount = *req.Amount
	}
	if req.SpentAt != nil {
		expenditure.SpentAt = *req.SpentAt
	}
	if req.Description != nil {
		expenditure.Description = *req.Description
	}
	expenditure.LastUpdatedAt = time.Now().UTC()
	expenditure.LastUpdatedBy = userID

	if err := s.repo.UpdateExpenditure(ctx, *expenditure); err != nil {
		s.LogError(ctx, err, "Failed to update expenditure", slog.String("expenditure_id", expenditureID))
		return nil, err
	}
	s.publish(ctx, expendituresTable, domain.ActionUpdate, expenditureID, workplaceID)
	return expenditure, nil
}

func (s *billingService) DeleteExpenditure(ctx context.Context, workplaceID, expenditureID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return err
	}
	if err := s.repo.DeleteExpenditure(ctx, workplaceID, expenditureID); err != nil {
		return err
	}
	s.publish(ctx, expendituresTable, domain.ActionDelete, expenditureID, workplaceID)
	return nil
}

func (s *billingService) GetExpenditureByID(ctx context.Context, workplaceID, expenditureID, userID string) (*domain.Expenditure, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.FindExpenditureByID(ctx, workplaceID, expenditureID)
}

func (s *billingService) ListExpenditures(ctx context.Context, workplaceID, userID string) ([]domain.Expenditure, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.ListExpenditures(ctx, workplaceID)
}

// --- Payment terms ---

func (s *billingService) CreatePaymentTerm(ctx context.Context, workplaceID string, req dto.CreatePaymentTermRequest, userID string) (*domain.PaymentTerm, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	term := domain.PaymentTerm{
		PaymentTermID:   uuid.NewString(),
		WorkplaceID:     workplaceID,
		Name:            req.Name,
		NetDays:         req.NetDays,
		DiscountPercent: req.DiscountPercent,
		DiscountDays:    req.DiscountDays,
		AuditFields:     newAudit(userID, now),
	}
	if err := s.repo.SavePaymentTerm(ctx, term); err != nil {
		s.LogError(ctx, err, "Failed to save payment term", slog.String("name", req.Name))
		return nil, err
	}
	s.publish(ctx, paymentTermsTable, domain.ActionInsert, term.PaymentTermID, workplaceID)
	return &term, nil
}

func (s *billingService) UpdatePaymentTerm(ctx context.Context, workplaceID, paymentTermID string, req dto.UpdatePaymentTermRequest, userID string) (*domain.PaymentTerm, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	term, err := s.repo.FindPaymentTermByID(ctx, workplaceID, paymentTermID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		term.Name = *req.Name
	}
	if req.NetDays != nil {
		term.NetDays = *req.NetDays
	}
	if req.DiscountPercent != nil {
		term.DiscountPercent = *req.DiscountPercent
	}
	if req.DiscountDays != nil {
		term.DiscountDays = *req.DiscountDays
	}
	term.LastUpdatedAt = time.Now().UTC()
	term.LastUpdatedBy = userID

	if err := s.repo.UpdatePaymentTerm(ctx, *term); err != nil {
		s.LogError(ctx, err, "Failed to update payment term", slog.String("payment_term_id", paymentTermID))
		return nil, err
	}
	s.publish(ctx, paymentTermsTable, domain.ActionUpdate, paymentTermID, workplaceID)
	return term, nil
}

func (s *billingService) DeletePaymentTerm(ctx context.Context, workplaceID, paymentTermID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return err
	}
	if err := s.repo.DeletePaymentTerm(ctx, workplaceID, paymentTermID); err != nil {
		return err
	}
	s.publish(ctx, paymentTermsTable, domain.ActionDelete, paymentTermID, workplaceID)
	return nil
}

func (s *billingService) GetPaymentTermByID(ctx context.Context, workplaceID, paymentTermID, userID string) (*domain.PaymentTerm, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.FindPaymentTermByID(ctx, workplaceID, paymentTermID)
}

func (s *billingService) ListPaymentTerms(ctx context.Context, workplaceID, userID string) ([]domain.PaymentTerm, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.ListPaymentTerms(ctx, workplaceID)
}

// --- Payment schedules ---

func (s *billingService) CreatePaymentSchedule(ctx context.Context, workplaceID string, req dto.CreatePaymentScheduleRequest, userID string) (*domain.PaymentSchedule, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Amount.IsNegative() {
		return nil, apperrors.NewAppError(400, "installment amount must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	schedule := domain.PaymentSchedule{
		PaymentScheduleID: uuid.NewString(),
		WorkplaceID:       workplaceID,
		ContractID:        req.ContractID,
		DueDate:           req.DueDate,
		Amount:            req.Amount,
		Status:            domain.SchedulePending,
		AuditFields:       newAudit(userID, now),
	}
	if err := s.repo.SavePaymentSchedule(ctx, schedule); err != nil {
		s.LogError(ctx, err, "Failed to save payment schedule", slog.String("contract_id", req.ContractID))
		return nil, err
	}
	s.publish(ctx, paymentSchedulesTable, domain.ActionInsert, schedule.PaymentScheduleID, workplaceID)
	return &schedule, nil
}

func (s *billingService) UpdatePaymentSchedule(ctx context.Context, workplaceID, scheduleID string, req dto.UpdatePaymentScheduleRequest, userID string) (*domain.PaymentSchedule, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	schedule, err := s.repo.FindPaymentScheduleByID(ctx, workplaceID, scheduleID)
	if err != nil {
		return nil, err
	}
	if req.DueDate != nil {
		schedule.DueDate = *req.DueDate
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, apperrors.NewAppError(400, "installment amount must not be negative", apperrors.ErrValidation)
		}
		schedule.Amount = *req.Amount
	}
	if req.Status != nil {
		schedule.Status = *req.Status
	}
	schedule.LastUpdatedAt = time.Now().UTC()
	schedule.LastUpdatedBy = userID

	if err := s.repo.UpdatePaymentSchedule(ctx, *schedule); err != nil {
		s.LogError(ctx, err, "Failed to update payment schedule", slog.String("schedule_id", scheduleID))
		return nil, err
	}
	s.publish(ctx, paymentSchedulesTable, domain.ActionUpdate, scheduleID, workplaceID)
	return schedule, nil
}

func (s *billingService) DeletePaymentSchedule(ctx context.Context, workplaceID, scheduleID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return err
	}
	if err := s.repo.DeletePaymentSchedule(ctx, workplaceID, scheduleID); err != nil {
		return err
	}
	s.publish(ctx, paymentSchedulesTable, domain.ActionDelete, scheduleID, workplaceID)
	return nil
}

func (s *billingService) GetPaymentScheduleByID(ctx context.Context, workplaceID, scheduleID, userID string) (*domain.PaymentSchedule, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.FindPaymentScheduleByID(ctx, workplaceID, scheduleID)
}

func (s *billingService) ListPaymentSchedules(ctx context.Context, workplaceID, contractID, userID string) ([]domain.PaymentSchedule, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.ListPaymentSchedules(ctx, workplaceID, contractID)
}
