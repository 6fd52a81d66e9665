package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus tracks a payable bill's lifecycle.
type BillStatus string

const (
	BillOpen    BillStatus = "OPEN"
	BillPaid    BillStatus = "PAID"
	BillOverdue BillStatus = "OVERDUE"
	BillVoided  BillStatus = "VOIDED"
)

// Bill is a payable owed to a vendor.
type Bill struct {
	BillID      string          `json:"billID"`
	WorkplaceID string          `json:"workplaceID"`
	VendorID    string          `json:"vendorID"`
	BillNumber  string          `json:"billNumber"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"dueDate"`
	Status      BillStatus      `json:"status"`
	Notes       string          `json:"notes"`
	AuditFields
}

// ReceivableStatus tracks a receivable's lifecycle.
type ReceivableStatus string

const (
	ReceivableOpen      ReceivableStatus = "OPEN"
	ReceivableCollected ReceivableStatus = "COLLECTED"
	ReceivableWrittenOff ReceivableStatus = "WRITTEN_OFF"
)

// Receivable is an amount owed to the business by a customer.
type Receivable struct {
	ReceivableID string           `json:"receivableID"`
	WorkplaceID  string           `json:"workplaceID"`
	CustomerName string           `json:"customerName"`
	Reference    string           `json:"reference"`
	Amount       decimal.Decimal  `json:"amount"`
	DueDate      time.Time        `json:"dueDate"`
	Status       ReceivableStatus `json:"status"`
	Notes        string           `json:"notes"`
	AuditFields
}

// Expenditure is a recorded outgoing payment, optionally tied to a division.
type Expenditure struct {
	ExpenditureID string          `json:"expenditureID"`
	WorkplaceID   string          `json:"workplaceID"`
	DivisionID    string          `json:"divisionID"` // Nullable
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	SpentAt       time.Time       `json:"spentAt"`
	Description   string          `json:"description"`
	AuditFields
}

// PaymentTerm defines net/discount payment conditions referenced by contracts.
type PaymentTerm struct {
	PaymentTermID   string          `json:"paymentTermID"`
	WorkplaceID     string          `json:"workplaceID"`
	Name            string          `json:"name"`
	NetDays         int             `json:"netDays"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountDays    int             `json:"discountDays"`
	AuditFields
}

// ScheduleStatus tracks one installment of a payment schedule.
type ScheduleStatus string

const (
	SchedulePending ScheduleStatus = "PENDING"
	SchedulePaid    ScheduleStatus = "PAID"
	ScheduleSkipped ScheduleStatus = "SKIPPED"
)

// PaymentSchedule is one planned installment against a contract.
type PaymentSchedule struct {
	PaymentScheduleID string          `json:"paymentScheduleID"`
	WorkplaceID       string          `json:"workplaceID"`
	ContractID        string          `json:"contractID"`
	DueDate           time.Time       `json:"dueDate"`
	Amount            decimal.Decimal `json:"amount"`
	Status            ScheduleStatus  `json:"status"`
	AuditFields
}
