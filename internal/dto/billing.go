package dto

import (
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBillRequest records a new vendor bill.
type CreateBillRequest struct {
	VendorID   string          `json:"vendorID" binding:"required"`
	BillNumber string          `json:"billNumber" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	DueDate    time.Time       `json:"dueDate" binding:"required"`
	Notes      string          `json:"notes"`
}

// UpdateBillRequest applies a partial update to a bill.
type UpdateBillRequest struct {
	Amount  *decimal.Decimal   `json:"amount"`
	DueDate *time.Time         `json:"dueDate"`
	Status  *domain.BillStatus `json:"status"`
	Notes   *string            `json:"notes"`
}

// CreateReceivableRequest records a new receivable.
type CreateReceivableRequest struct {
	CustomerName string          `json:"customerName" binding:"required"`
	Reference    string          `json:"reference"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	DueDate      time.Time       `json:"dueDate" binding:"required"`
	Notes        string          `json:"notes"`
}

// UpdateReceivableRequest applies a partial update to a receivable.
type UpdateReceivableRequest struct {
	Amount  *decimal.Decimal         `json:"amount"`
	DueDate *time.Time               `json:"dueDate"`
	Status  *domain.ReceivableStatus `json:"status"`
	Notes   *string                  `json:"notes"`
}

// CreateExpenditureRequest records a new expenditure.
type CreateExpenditureRequest struct {
	DivisionID  string          `json:"divisionID"`
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	SpentAt     time.Time       `json:"spentAt" binding:"required"`
	Description string          `json:"description"`
}

// UpdateExpenditureRequest applies a partial update to an expenditure.
type UpdateExpenditureRequest struct {
	Category    *string          `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	SpentAt     *time.Time       `json:"spentAt"`
	Description *string          `json:"description"`
}

// CreatePaymentTermRequest creates a new payment term.
type CreatePaymentTermRequest struct {
	Name            string          `json:"name" binding:"required"`
	NetDays         int             `json:"netDays" binding:"required,min=0"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountDays    int             `json:"discountDays"`
}

// UpdatePaymentTermRequest applies a partial update to a payment term.
type UpdatePaymentTermRequest struct {
	Name            *string          `json:"name"`
	NetDays         *int             `json:"netDays"`
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	DiscountDays    *int             `json:"discountDays"`
}

// CreatePaymentScheduleRequest creates one planned installment.
type CreatePaymentScheduleRequest struct {
	ContractID string          `json:"contractID" binding:"required"`
	DueDate    time.Time       `json:"dueDate" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// UpdatePaymentScheduleRequest applies a partial update to an installment.
type UpdatePaymentScheduleRequest struct {
	DueDate *time.Time             `json:"dueDate"`
	Amount  *decimal.Decimal       `json:"amount"`
	Status  *domain.ScheduleStatus `json:"status"`
}
