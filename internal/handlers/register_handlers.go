package handlers

import (
	"github.com/bizdesk/bizdesk_backend/cmd/docs"
	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/middleware"
	"github.com/bizdesk/bizdesk_backend/internal/platform/events"
	"github.com/bizdesk/bizdesk_backend/pkg/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	hub *events.Hub,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes
	registerAuthRoutes(r, cfg, services)
	registerGoogleOAuthRoutes(r, cfg, services)

	setupAPIV1Routes(r, cfg, services, hub)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	hub *events.Hub,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerWorkplaceRoutes(v1, services.Workplace)
	registerExtractionRoutes(v1, services.Extraction)

	// Everything below is workplace-scoped: the workplace ID in the path is
	// checked against the caller's membership inside the service layer.
	wp := v1.Group("/workplaces/:workplace_id")
	registerAccountRoutes(wp, services.Account)
	registerLedgerRoutes(wp, services.Ledger)
	registerBillingRoutes(wp, services.Billing)
	registerFleetRoutes(wp, services.Fleet)
	registerCatalogRoutes(wp, services.Catalog)
	registerOrgRoutes(wp, services.Org)
	registerEventRoutes(wp, services.Workplace, hub)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
