package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/bizdesk/bizdesk_backend/internal/middleware"
	"github.com/bizdesk/bizdesk_backend/pkg/config"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication related requests.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

func newAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *authHandler {
	return &authHandler{
		userService:  services.User,
		tokenService: services.Token,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services, cfg)

	// 5 requests per minute per IP on the credential endpoints
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.login)
		auth.POST("/register", h.register)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", h.logout)
	}
}

func (h *authHandler) setRefreshCookie(c *gin.Context, rawToken string, maxAgeSeconds int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		h.cfg.RefreshTokenCookieName,
		rawToken,
		maxAgeSeconds,
		h.cfg.RefreshTokenCookiePath,
		"",
		h.cfg.IsProduction,
		true,
	)
}

// login godoc
// @Summary User login
// @Description Authenticates a user, returns a JWT access token and sets the refresh token cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
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
	h.setRefreshCookie(c, user.UserID+"."+refreshToken, int(h.cfg.RefreshTokenExpiryDuration.Seconds()))

	c.JSON(http.StatusOK, dto.LoginResponse{
		UserID:      user.UserID,
		Name:        user.Name,
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	})
}

// register godoc
// @Summary Register new user
// @Description Creates a new local user account.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.CreateUserRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Conflict (email exists)"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	newUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to register user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// refresh godoc
// @Summary Refresh access token
// @Description Rotates the refresh token cookie and returns a new access token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	userID, rawToken, ok := h.readRefreshCookie(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Missing refresh token"})
		return
	}

	user, newRefreshToken, _, err := h.tokenService.RotateRefreshToken(c.Request.Context(), userID, rawToken)
	if err != nil {
		// Kill the cookie so the client stops retrying a dead token.
		h.setRefreshCookie(c, "", -1)
		respondServiceError(c, err, "Failed to refresh token")
		return
	}

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err, "Failed to generate token")
		return
	}
	h.setRefreshCookie(c, user.UserID+"."+newRefreshToken, int(h.cfg.RefreshTokenExpiryDuration.Seconds()))

	c.JSON(http.StatusOK, dto.LoginResponse{
		UserID:      user.UserID,
		Name:        user.Name,
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	})
}

// logout godoc
// @Summary Log out
// @Description Revokes the refresh token and clears the cookie.
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	if userID, _, ok := h.readRefreshCookie(c); ok {
		if err := h.tokenService.RevokeRefreshToken(c.Request.Context(), userID); err != nil {
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Error("Failed to revoke refresh token", slog.String("error", err.Error()))
		}
	}
	h.setRefreshCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

// readRefreshCookie splits the "userID.token" cookie value set at login.
func (h *authHandler) readRefreshCookie(c *gin.Context) (userID, rawToken string, ok bool) {
	value, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || value == "" {
		return "", "", false
	}
	for i := 0; i < len(value); i++ {
		if value[i] == '.' {
			return value[:i], value[i+1:], value[:i] != "" && value[i+1:] != ""
		}
	}
	return "", "", false
}
