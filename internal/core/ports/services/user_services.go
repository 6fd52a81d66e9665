package services

import (
	"context"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	// FindOrCreateOAuthUser resolves the local user for an external identity,
	// creating one on first login.
	FindOrCreateOAuthUser(ctx context.Context, provider domain.AuthProvider, email, name string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserLifecycleSvc defines operations for managing user lifecycle.
type UserLifecycleSvc interface {
	// DeleteUser marks a user as deleted (soft delete).
	DeleteUser(ctx context.Context, userID string, requestingUserID string) error
}

// UserAuthSvc defines operations for user authentication.
type UserAuthSvc interface {
	// AuthenticateUser authenticates a local user with email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
	// ValidateRefreshToken checks a raw refresh token against the stored hash.
	ValidateRefreshToken(ctx context.Context, userID, rawToken string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
}
