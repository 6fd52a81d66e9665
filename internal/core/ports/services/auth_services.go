package services

import (
	"context"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade handles JWT access tokens and refresh token rotation.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// GenerateRefreshToken issues a new raw refresh token, storing only its hash.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// RotateRefreshToken validates the presented token and issues a replacement.
	RotateRefreshToken(ctx context.Context, userID, rawToken string) (*domain.User, string, time.Time, error)
	// RevokeRefreshToken clears the stored refresh token for a user.
	RevokeRefreshToken(ctx context.Context, userID string) error
}

// GoogleOAuthSvcFacade handles the Google authorization-code flow.
type GoogleOAuthSvcFacade interface {
	// GetAuthCodeURL builds the Google consent URL for the given CSRF state.
	GetAuthCodeURL(state string) string
	// ExchangeCodeForToken trades an authorization code for Google tokens.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken verifies the ID token signature and audience.
	ValidateGoogleIDToken(ctx context.Context, idToken string) (*idtoken.Payload, error)
}
