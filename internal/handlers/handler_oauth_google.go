package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/bizdesk/bizdesk_backend/internal/middleware"
	"github.com/bizdesk/bizdesk_backend/internal/utils"
	"github.com/bizdesk/bizdesk_backend/pkg/config"
	"github.com/gin-gonic/gin"
)

const oauthStateCookieName = "oauth_state"

// googleOAuthHandler handles the Google authorization-code login flow.
type googleOAuthHandler struct {
	oauthService portssvc.GoogleOAuthSvcFacade
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

func registerGoogleOAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	if cfg.GoogleClientID == "" {
		return
	}
	h := &googleOAuthHandler{
		oauthService: services.GoogleOAuth,
		userService:  services.User,
		tokenService: services.Token,
		cfg:          cfg,
	}

	google := rg.Group("/api/v1/auth/google")
	{
		google.GET("/login", h.login)
		google.GET("/callback", h.callback)
	}
}

// login godoc
// @Summary Start Google login
// @Description Redirects the browser to the Google consent screen.
// @Tags auth
// @Success 307 "Redirect to Google"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *googleOAuthHandler) login(c *gin.Context) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start login"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookieName, state, 300, "/api/v1/auth/google", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.GetAuthCodeURL(state))
}

// callback godoc
// @Summary Google login callback
// @Description Exchanges the authorization code, provisions the user and returns tokens.
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "CSRF state"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *googleOAuthHandler) callback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	expectedState, err := c.Cookie(oauthStateCookieName)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid state"})
		return
	}
	c.SetCookie(oauthStateCookieName, "", -1, "/api/v1/auth/google", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing authorization code"})
		return
	}

	token, err := h.oauthService.ExchangeCodeForToken(c.Request.Context(), code)
	if err != nil {
		respondServiceError(c, err, "Failed to complete Google login")
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google response missing identity token"})
		return
	}
	payload, err := h.oauthService.ValidateGoogleIDToken(c.Request.Context(), rawIDToken)
	if err != nil {
		respondServiceError(c, err, "Failed to complete Google login")
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google identity has no email"})
		return
	}
	if name == "" {
		name = email
	}

	user, err := h.userService.FindOrCreateOAuthUser(c.Request.Context(), domain.ProviderGoogle, email, name)
	if err != nil {
		respondServiceError(c, err, "Failed to complete Google login")
		return
	}

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err, "Failed to generate token")
		return
	}
	refreshToken, _, err := h.tokenService.GenerateRefreshToken(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err, "Failed to generate token")
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		h.cfg.RefreshTokenCookieName,
		user.UserID+"."+refreshToken,
		int(h.cfg.RefreshTokenExpiryDuration.Seconds()),
		h.cfg.RefreshTokenCookiePath,
		"",
		h.cfg.IsProduction,
		true,
	)

	logger.Info("Google login completed", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{
		UserID:      user.UserID,
		Name:        user.Name,
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	})
}
