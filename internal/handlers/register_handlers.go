package handlers

import (
	"github.com/finfam/family_finance_app/cmd/docs"
	"github.com/finfam/family_finance_app/internal/core/domain"
	portssvc "github.com/finfam/family_finance_app/internal/core/ports/services"
	"github.com/finfam/family_finance_app/internal/middleware"
	"github.com/finfam/family_finance_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// the service facade interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	RegisterCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes
	registerAuthRoutes(r, cfg, services)

	// Authenticated API v1 routes
	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to per-entity
// route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerFamilyRoutes(v1, services.Family)
	registerAccountRoutes(v1, services.Account)
	RegisterLiabilityRoutes(v1, services.Liability)
}

// RegisterCustomValidators installs the request-binding validators for the
// liability DTOs.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("liabilitytype", func(fl validator.FieldLevel) bool {
		switch domain.LiabilityType(fl.Field().String()) {
		case domain.CreditCard, domain.Loan, domain.Mortgage, domain.BNPL, domain.OtherDebt:
			return true
		}
		return false
	})
	_ = v.RegisterValidation("dayofmonth", func(fl validator.FieldLevel) bool {
		day := fl.Field().Int()
		return day >= 1 && day <= 31
	})
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
