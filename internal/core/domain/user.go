package domain

import "time"

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents a user of the application in the domain.
type User struct {
	UserID       string       `json:"userID"` // Primary Key (UUID)
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	AuthProvider AuthProvider `json:"authProvider"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete
}
