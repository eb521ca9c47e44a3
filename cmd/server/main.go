package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	financeapp "github.com/finman/backend/internal/application/finance"
	identityapp "github.com/finman/backend/internal/application/identity"
	"github.com/finman/backend/internal/application/notification"
	"github.com/finman/backend/internal/infrastructure/auth"
	"github.com/finman/backend/internal/infrastructure/config"
	"github.com/finman/backend/internal/infrastructure/event"
	"github.com/finman/backend/internal/infrastructure/logger"
	"github.com/finman/backend/internal/infrastructure/migration"
	"github.com/finman/backend/internal/infrastructure/persistence"
	"github.com/finman/backend/internal/infrastructure/scheduler"
	"github.com/finman/backend/internal/infrastructure/telegram"
	"github.com/finman/backend/internal/interfaces/chat"
	"github.com/finman/backend/internal/interfaces/http/handler"
	"github.com/finman/backend/internal/interfaces/http/middleware"
	"github.com/finman/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting finman backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if cfg.Database.MigrateOnStart {
		if err := runMigrations(db, cfg.Database.MigrationsPath, log); err != nil {
			log.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	debtRepo := persistence.NewGormDebtRepository(db.DB)
	installmentRepo := persistence.NewGormInstallmentRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	instrumentRepo := persistence.NewGormFinancialInstrumentRepository(db.DB)
	incomeRepo := persistence.NewGormIncomeRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	recurrenceRepo := persistence.NewGormRecurrenceRepository(db.DB)

	// Token blacklist: Redis when available, otherwise process-local
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		blacklist = redisBlacklist
		log.Info("Redis token blacklist enabled")
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Using in-memory token blacklist; logout does not survive restarts")
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Application services
	paymentService := financeapp.NewPaymentService(debtRepo, installmentRepo, paymentRepo, instrumentRepo, eventBus, log)
	debtService := financeapp.NewDebtService(debtRepo, installmentRepo, instrumentRepo, categoryRepo, paymentService, eventBus, log)
	instrumentService := financeapp.NewInstrumentService(instrumentRepo, log)
	incomeService := financeapp.NewIncomeService(incomeRepo, instrumentRepo, categoryRepo, log)
	recurrenceService := financeapp.NewRecurrenceService(recurrenceRepo, debtService, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)

	// Telegram integration is optional; without a token the webhook
	// still parses updates but replies go nowhere
	var sender telegram.Sender
	if cfg.Telegram.Token != "" {
		client := telegram.NewClient(cfg.Telegram, log)
		sender = client

		notifier := notification.NewNotifier(userRepo, client, log)
		eventBus.Subscribe(notifier)
		log.Info("Debt notifications enabled", zap.Strings("events", notifier.EventTypes()))
	} else {
		log.Warn("TELEGRAM_API_TOKEN not set; chat replies and notifications disabled")
	}

	dispatcher := chat.NewDispatcher(userRepo, debtService, paymentService, incomeService, log)

	// Recurrence scheduler
	if cfg.Scheduler.Enabled {
		recurrenceScheduler := scheduler.NewRecurrenceScheduler(scheduler.RecurrenceSchedulerConfig{
			CheckInterval: cfg.Scheduler.CheckInterval,
		}, recurrenceService, log)
		if err := recurrenceScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start recurrence scheduler", zap.Error(err))
		}
		defer recurrenceScheduler.Stop()
		log.Info("Recurrence scheduler started",
			zap.Duration("check_interval", cfg.Scheduler.CheckInterval))
	}

	// HTTP layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow))
	}

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Debt:       handler.NewDebtHandler(debtService),
		Payment:    handler.NewPaymentHandler(paymentService),
		Instrument: handler.NewInstrumentHandler(instrumentService),
		Income:     handler.NewIncomeHandler(incomeService),
		Webhook:    handler.NewWebhookHandler(dispatcher, sender, log),
		Status:     handler.NewStatusHandler(db, version),
	}
	router.Setup(engine, handlers, router.Config{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		CORS: middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           middleware.DefaultCORSConfig().MaxAge,
		},
		MaxBodyBytes: cfg.HTTP.MaxBodySize,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.WriteTimeout*2)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func runMigrations(db *persistence.Database, path string, log *zap.Logger) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	migrator, err := migration.New(sqlDB, path, log)
	if err != nil {
		return err
	}
	return migrator.Up()
}
