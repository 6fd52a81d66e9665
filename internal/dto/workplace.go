package dto

import (
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
)

// CreateWorkplaceRequest creates a new workplace owned by the caller.
type CreateWorkplaceRequest struct {
	Name                string `json:"name" binding:"required"`
	Description         string `json:"description"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode" binding:"omitempty,len=3"`
}

// AddUserToWorkplaceRequest grants a user membership in a workplace.
type AddUserToWorkplaceRequest struct {
	UserID string                   `json:"userID" binding:"required"`
	Role   domain.UserWorkplaceRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// WorkplaceResponse is the API shape of a workplace.
type WorkplaceResponse struct {
	WorkplaceID         string    `json:"workplaceID"`
	Name                string    `json:"name"`
	Description         string    `json:"description,omitempty"`
	DefaultCurrencyCode *string   `json:"defaultCurrencyCode,omitempty"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ToWorkplaceResponse converts a domain.Workplace to its API shape.
func ToWorkplaceResponse(w *domain.Workplace) WorkplaceResponse {
	return WorkplaceResponse{
		WorkplaceID:         w.WorkplaceID,
		Name:                w.Name,
		Description:         w.Description,
		DefaultCurrencyCode: w.DefaultCurrencyCode,
		IsActive:            w.IsActive,
		CreatedAt:           w.CreatedAt,
	}
}

// ToWorkplaceResponses converts a slice of workplaces.
func ToWorkplaceResponses(workplaces []domain.Workplace) []WorkplaceResponse {
	responses := make([]WorkplaceResponse, len(workplaces))
	for i := range workplaces {
		responses[i] = ToWorkplaceResponse(&workplaces[i])
	}
	return responses
}
