package domain

import "time"

// Workplace is the tenancy boundary: every business row belongs to exactly one
// workplace, and access is granted through workplace membership roles rather
// than client-side user-id stamping.
type Workplace struct {
	WorkplaceID         string  `json:"workplaceID"`
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode"`
	IsActive            bool    `json:"isActive"`
	AuditFields
}

// UserWorkplaceRole defines the possible roles a user can have within a workplace.
type UserWorkplaceRole string

const (
	RoleAdmin    UserWorkplaceRole = "ADMIN"
	RoleMember   UserWorkplaceRole = "MEMBER"
	RoleReadOnly UserWorkplaceRole = "READONLY"
	RoleRemoved  UserWorkplaceRole = "REMOVED"
)

// UserWorkplace represents the membership of a User in a Workplace.
type UserWorkplace struct {
	UserID      string            `json:"userID"`
	UserName    string            `json:"userName"`
	WorkplaceID string            `json:"workplaceID"`
	Role        UserWorkplaceRole `json:"role"`
	JoinedAt    time.Time         `json:"joinedAt"`
}
