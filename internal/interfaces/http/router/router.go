package router

import (
	"time"

	"github.com/finman/backend/internal/infrastructure/auth"
	"github.com/finman/backend/internal/infrastructure/logger"
	"github.com/finman/backend/internal/interfaces/http/handler"
	"github.com/finman/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles everything the router wires up
type Handlers struct {
	Auth       *handler.AuthHandler
	Debt       *handler.DebtHandler
	Payment    *handler.PaymentHandler
	Instrument *handler.InstrumentHandler
	Income     *handler.IncomeHandler
	Webhook    *handler.WebhookHandler
	Status     *handler.StatusHandler
}

// Config holds router configuration
type Config struct {
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	CORS           middleware.CORSConfig
	MaxBodyBytes   int64
	Logger         *zap.Logger
}

// Setup registers middleware and all routes on the engine
func Setup(engine *gin.Engine, h Handlers, cfg Config) {
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	engine.Use(middleware.Secure())
	if cfg.MaxBodyBytes > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	}
	engine.Use(middleware.Timeout(30 * time.Second))

	jwtCfg := middleware.DefaultJWTConfig(cfg.JWTService)
	jwtCfg.TokenBlacklist = cfg.TokenBlacklist
	jwtCfg.Logger = cfg.Logger

	api := engine.Group("/api")
	api.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))

	api.GET("/status", h.Status.Get)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.GET("/me", h.Auth.Me)
	}

	debtGroup := api.Group("/debt")
	{
		debtGroup.POST("", h.Debt.Create)
		debtGroup.POST("/list", h.Debt.List)
	}

	paymentGroup := api.Group("/payment")
	{
		paymentGroup.POST("", h.Payment.Create)
		paymentGroup.POST("/list", h.Payment.List)
		paymentGroup.POST("/refund/:id", h.Payment.Refund)
	}

	api.POST("/account", h.Instrument.CreateAccount)
	api.POST("/financialInstrument", h.Instrument.Create)
	api.GET("/financialInstrument", h.Instrument.List)
	api.POST("/income", h.Income.Create)

	webhookGroup := api.Group("/webhook")
	{
		webhookGroup.POST("/", h.Webhook.Handle)
		webhookGroup.POST("", h.Webhook.Handle)
	}
}
