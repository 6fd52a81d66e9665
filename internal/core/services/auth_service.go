package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/apperrors"
	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/utils"
	"github.com/bizdesk/bizdesk_backend/pkg/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

const refreshTokenByteLength = 32

type tokenService struct {
	BaseService
	userSvc portssvc.UserSvcFacade
	cfg     *config.Config
}

// NewTokenService creates the service issuing access and refresh tokens.
func NewTokenService(userSvc portssvc.UserSvcFacade, cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{userSvc: userSvc, cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiry := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, apperrors.NewAppError(500, "failed to issue access token", apperrors.ErrInternal)
	}
	return token, expiry, nil
}

func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	raw, err := utils.GenerateSecureRandomString(refreshTokenByteLength)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate refresh token")
		return "", time.Time{}, apperrors.NewAppError(500, "failed to issue refresh token", apperrors.ErrInternal)
	}

	expiry := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	if err := s.userSvc.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(raw), expiry); err != nil {
		return "", time.Time{}, err
	}
	return raw, expiry, nil
}

// RotateRefreshToken validates the presented token and replaces it. The old
// token is dead after this call whether or not the caller persists the new one.
func (s *tokenService) RotateRefreshToken(ctx context.Context, userID, rawToken string) (*domain.User, string, time.Time, error) {
	user, err := s.userSvc.ValidateRefreshToken(ctx, userID, rawToken)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	newRaw, expiry, err := s.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, newRaw, expiry, nil
}

func (s *tokenService) RevokeRefreshToken(ctx context.Context, userID string) error {
	return s.userSvc.ClearRefreshToken(ctx, userID)
}

type googleOAuthHandlerService struct {
	BaseService
	oauthConfig *oauth2.Config
	clientID    string
}

// NewGoogleOAuthService creates the service handling the Google
// authorization-code flow.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthHandlerService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Endpoint:     google.Endpoint,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
		},
		clientID: cfg.GoogleClientID,
	}
}

var _ portssvc.GoogleOAuthSvcFacade = (*googleOAuthHandlerService)(nil)

func (s *googleOAuthHandlerService) GetAuthCodeURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (s *googleOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Google code exchange failed")
		return nil, apperrors.NewAppError(401, "failed to exchange authorization code", apperrors.ErrForbidden)
	}
	return token, nil
}

func (s *googleOAuthHandlerService) ValidateGoogleIDToken(ctx context.Context, idToken string) (*idtoken.Payload, error) {
	payload, err := idtoken.Validate(ctx, idToken, s.clientID)
	if err != nil {
		s.LogError(ctx, err, "Google ID token validation failed")
		return nil, apperrors.NewAppError(401, "invalid identity token", apperrors.ErrForbidden)
	}
	return payload, nil
}
