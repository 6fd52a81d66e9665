package dto

import (
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDivisionRequest creates a business division.
type CreateDivisionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ManagerName string `json:"managerName"`
}

// UpdateDivisionRequest applies a partial update to a division.
type UpdateDivisionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ManagerName *string `json:"managerName"`
}

// CreateContractRequest creates a contract.
type CreateContractRequest struct {
	DivisionID    string          `json:"divisionID"`
	PartyName     string          `json:"partyName" binding:"required"`
	StartsAt      time.Time       `json:"startsAt" binding:"required"`
	EndsAt        time.Time       `json:"endsAt" binding:"required"`
	Value         decimal.Decimal `json:"value" binding:"required"`
	PaymentTermID string          `json:"paymentTermID"`
}

// UpdateContractRequest applies a partial update to a contract.
type UpdateContractRequest struct {
	PartyName     *string                `json:"partyName"`
	EndsAt        *time.Time             `json:"endsAt"`
	Value         *decimal.Decimal       `json:"value"`
	Status        *domain.ContractStatus `json:"status"`
	PaymentTermID *string                `json:"paymentTermID"`
}
