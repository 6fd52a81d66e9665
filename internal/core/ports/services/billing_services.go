package services

import (
	"context"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
)

// BillSvc defines operations for vendor bills.
type BillSvc interface {
	GetBillByID(ctx context.Context, workplaceID, billID, userID string) (*domain.Bill, error)
	ListBills(ctx context.Context, workplaceID, userID string) ([]domain.Bill, error)
	CreateBill(ctx context.Context, workplaceID string, req dto.CreateBillRequest, userID string) (*domain.Bill, error)
	UpdateBill(ctx context.Context, workplaceID, billID string, req dto.UpdateBillRequest, userID string) (*domain.Bill, error)
	DeleteBill(ctx context.Context, workplaceID, billID, userID string) error
}

// ReceivableSvc defines operations for receivables.
type ReceivableSvc interface {
	GetReceivableByID(ctx context.Context, workplaceID, receivableID, userID string) (*domain.Receivable, error)
	ListReceivables(ctx context.Context, workplaceID, userID string) ([]domain.Receivable, error)
	CreateReceivable(ctx context.Context, workplaceID string, req dto.CreateReceivableRequest, userID string) (*domain.Receivable, error)
	UpdateReceivable(ctx context.Context, workplaceID, receivableID string, req dto.UpdateReceivableRequest, userID string) (*domain.Receivable, error)
	DeleteReceivable(ctx context.Context, workplaceID, receivableID, userID string) error
}

// ExpenditureSvc defines operations for expenditures.
type ExpenditureSvc interface {
	GetExpenditureByID(ctx context.Context, workplaceID, expenditureID, userID string) (*domain.Expenditure, error)
	ListExpenditures(ctx context.Context, workplaceID, userID string) ([]domain.Expenditure, error)
	CreateExpenditure(ctx context.Context, workplaceID string, req dto.CreateExpenditureRequest, userID string) (*domain.Expenditure, error)
	UpdateExpenditure(ctx context.Context, workplaceID, expenditureID string, req dto.UpdateExpenditureRequest, userID string) (*domain.Expenditure, error)
	DeleteExpenditure(ctx context.Context, workplaceID, expenditureID, userID string) error
}

// PaymentTermSvc defines operations for payment terms.
type PaymentTermSvc interface {
	GetPaymentTermByID(ctx context.Context, workplaceID, paymentTermID, userID string) (*domain.PaymentTerm, error)
	ListPaymentTerms(ctx context.Context, workplaceID, userID string) ([]domain.PaymentTerm, error)
	CreatePaymentTerm(ctx context.Context, workplaceID string, req dto.CreatePaymentTermRequest, userID string) (*domain.PaymentTerm, error)
	UpdatePaymentTerm(ctx context.Context, workplaceID, paymentTermID string, req dto.UpdatePaymentTermRequest, userID string) (*domain.PaymentTerm, error)
	DeletePaymentTerm(ctx context.Context, workplaceID, paymentTermID, userID string) error
}

// PaymentScheduleSvc defines operations for payment schedules.
type PaymentScheduleSvc interface {
	GetPaymentScheduleByID(ctx context.Context, workplaceID, scheduleID, userID string) (*domain.PaymentSchedule, error)
	ListPaymentSchedules(ctx context.Context, workplaceID, contractID, userID string) ([]domain.PaymentSchedule, error)
	CreatePaymentSchedule(ctx context.Context, workplaceID string, req dto.CreatePaymentScheduleRequest, userID string) (*domain.PaymentSchedule, error)
	UpdatePaymentSchedule(ctx context.Context, workplaceID, scheduleID string, req dto.UpdatePaymentScheduleRequest, userID string) (*domain.PaymentSchedule, error)
	DeletePaymentSchedule(ctx context.Context, workplaceID, scheduleID, userID string) error
}

// BillingSvcFacade combines the accounts-payable/receivable services.
type BillingSvcFacade interface {
	BillSvc
	ReceivableSvc
	ExpenditureSvc
	PaymentTermSvc
	PaymentScheduleSvc
}
