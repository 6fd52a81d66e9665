package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Division is an internal business unit expenditures can be attributed to.
type Division struct {
	DivisionID  string `json:"divisionID"`
	WorkplaceID string `json:"workplaceID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ManagerName string `json:"managerName"`
	AuditFields
}

// ContractStatus tracks a contract's lifecycle.
type ContractStatus string

const (
	ContractDraft      ContractStatus = "DRAFT"
	ContractActive     ContractStatus = "ACTIVE"
	ContractTerminated ContractStatus = "TERMINATED"
	ContractExpired    ContractStatus = "EXPIRED"
)

// Contract is an agreement with an external party, optionally carrying
// payment terms and a schedule of installments.
type Contract struct {
	ContractID    string          `json:"contractID"`
	WorkplaceID   string          `json:"workplaceID"`
	DivisionID    string          `json:"divisionID"` // Nullable
	PartyName     string          `json:"partyName"`
	StartsAt      time.Time       `json:"startsAt"`
	EndsAt        time.Time       `json:"endsAt"`
	Value         decimal.Decimal `json:"value"`
	Status        ContractStatus  `json:"status"`
	PaymentTermID string          `json:"paymentTermID"` // Nullable
	AuditFields
}
