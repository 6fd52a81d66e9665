package repositories

import (
	"context"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
)

// BillRepository defines persistence for vendor bills.
type BillRepository interface {
	FindBillByID(ctx context.Context, workplaceID, billID string) (*domain.Bill, error)
	ListBills(ctx context.Context, workplaceID string) ([]domain.Bill, error)
	SaveBill(ctx context.Context, bill domain.Bill) error
	UpdateBill(ctx context.Context, bill domain.Bill) error
	DeleteBill(ctx context.Context, workplaceID, billID string) error
}

// ReceivableRepository defines persistence for receivables.
type ReceivableRepository interface {
	FindReceivableByID(ctx context.Context, workplaceID, receivableID string) (*domain.Receivable, error)
	ListReceivables(ctx context.Context, workplaceID string) ([]domain.Receivable, error)
	SaveReceivable(ctx context.Context, receivable domain.Receivable) error
	UpdateReceivable(ctx context.Context, receivable domain.Receivable) error
	DeleteReceivable(ctx context.Context, workplaceID, receivableID string) error
}

// ExpenditureRepository defines persistence for expenditures.
type ExpenditureRepository interface {
	FindExpenditureByID(ctx context.Context, workplaceID, expenditureID string) (*domain.Expenditure, error)
	ListExpenditures(ctx context.Context, workplaceID string) ([]domain.Expenditure, error)
	SaveExpenditure(ctx context.Context, expenditure domain.Expenditure) error
	UpdateExpenditure(ctx context.Context, expenditure domain.Expenditure) error
	DeleteExpenditure(ctx context.Context, workplaceID, expenditureID string) error
}

// PaymentTermRepository defines persistence for payment terms.
type PaymentTermRepository interface {
	FindPaymentTermByID(ctx context.Context, workplaceID, paymentTermID string) (*domain.PaymentTerm, error)
	ListPaymentTerms(ctx context.Context, workplaceID string) ([]domain.PaymentTerm, error)
	SavePaymentTerm(ctx context.Context, term domain.PaymentTerm) error
	UpdatePaymentTerm(ctx context.Context, term domain.PaymentTerm) error
	DeletePaymentTerm(ctx context.Context, workplaceID, paymentTermID string) error
}

// PaymentScheduleRepository defines persistence for payment schedules.
type PaymentScheduleRepository interface {
	FindPaymentScheduleByID(ctx context.Context, workplaceID, scheduleID string) (*domain.PaymentSchedule, error)
	ListPaymentSchedules(ctx context.Context, workplaceID string, contractID string) ([]domain.PaymentSchedule, error)
	SavePaymentSchedule(ctx context.Context, schedule domain.PaymentSchedule) error
	UpdatePaymentSchedule(ctx context.Context, schedule domain.PaymentSchedule) error
	DeletePaymentSchedule(ctx context.Context, workplaceID, scheduleID string) error
}

// BillingRepositoryFacade combines the accounts-payable/receivable repositories.
type BillingRepositoryFacade interface {
	BillRepository
	ReceivableRepository
	ExpenditureRepository
	PaymentTermRepository
	PaymentScheduleRepository
}
