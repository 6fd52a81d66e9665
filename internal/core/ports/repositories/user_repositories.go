package repositories

import (
	"context"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindUserCredentials returns the stored password hash for a local user.
	FindUserCredentials(ctx context.Context, email string) (*domain.User, string, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	// FindRefreshTokenDetails returns the stored refresh token hash and expiry for a user.
	FindRefreshTokenDetails(ctx context.Context, userID string) (string, time.Time, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User, passwordHash string) error
	UpdateUser(ctx context.Context, user domain.User) error
	MarkUserDeleted(ctx context.Context, userID string, deletedBy string, deletedAt time.Time) error
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
