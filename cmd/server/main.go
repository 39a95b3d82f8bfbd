package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/xiri/xiri-api/internal/adapter/http"
	"github.com/xiri/xiri-api/internal/adapter/http/handler"
	"github.com/xiri/xiri-api/internal/adapter/http/middleware"
	postgresRepo "github.com/xiri/xiri-api/internal/adapter/repository/postgres"
	redisRepo "github.com/xiri/xiri-api/internal/adapter/repository/redis"
	"github.com/xiri/xiri-api/internal/infrastructure/auth"
	"github.com/xiri/xiri-api/internal/infrastructure/config"
	"github.com/xiri/xiri-api/internal/infrastructure/directory"
	"github.com/xiri/xiri-api/internal/infrastructure/eventpublisher"
	"github.com/xiri/xiri-api/internal/infrastructure/logger"
	"github.com/xiri/xiri-api/internal/infrastructure/logging"
	"github.com/xiri/xiri-api/internal/infrastructure/metrics"
	"github.com/xiri/xiri-api/internal/infrastructure/postgres"
	"github.com/xiri/xiri-api/internal/infrastructure/redis"
	"github.com/xiri/xiri-api/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("migrations applied")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	vendorRepo := postgresRepo.NewVendorRepository(pool)
	jobRepo := postgresRepo.NewJobRepository(pool)
	reportRepo := postgresRepo.NewAuditReportRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	territoryRepo := postgresRepo.NewTerritoryRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	retrier := postgresRepo.NewRetrier()
	idGen := postgresRepo.NewULIDGenerator()
	sessionStore := redisRepo.NewSessionStore(redisClient, cfg.SessionTTL)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	vendorDirectory := newVendorDirectory(cfg)

	// Initialize use cases
	sessionUC := usecase.NewSessionUseCase(userRepo, sessionStore, cache, outboxRepo, idGen, retrier, appLogger, cfg.ProfileCacheTTL)
	userUC := usecase.NewUserUseCase(userRepo, idGen)
	vendorUC := usecase.NewVendorUseCase(vendorRepo, territoryRepo, vendorDirectory, outboxRepo, idGen, appLogger)
	jobUC := usecase.NewJobUseCase(txManager, jobRepo, vendorRepo, reportRepo, outboxRepo, idGen)
	accountUC := usecase.NewAccountUseCase(accountRepo, outboxRepo, idGen, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(sessionUC, jwtManager, m)
	userHandler := handler.NewUserHandler(userUC)
	vendorHandler := handler.NewVendorHandler(vendorUC, m)
	jobHandler := handler.NewJobHandler(jobUC, m)
	auditHandler := handler.NewAuditHandler(jobUC, m)
	accountHandler := handler.NewAccountHandler(accountUC, m)
	territoryHandler := handler.NewTerritoryHandler(territoryRepo)
	pageHandler := handler.NewPageHandler(userUC, vendorUC, jobUC, accountUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	authenticator := middleware.NewAuthenticator(jwtManager, sessionUC, m, appLogger)
	loginLimiter := middleware.NewRateLimiter(float64(cfg.LoginRateLimit), cfg.LoginRateBurst).
		WithMetrics(m, "login")
	go loginLimiter.StartCleanup(ctx, time.Hour)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:      authHandler,
		PageHandler:      pageHandler,
		UserHandler:      userHandler,
		VendorHandler:    vendorHandler,
		JobHandler:       jobHandler,
		AuditHandler:     auditHandler,
		AccountHandler:   accountHandler,
		TerritoryHandler: territoryHandler,
		HealthHandler:    healthHandler,
		Authenticator:    authenticator,
		IdempotencyStore: idempotencyStore,
		LoginLimiter:     loginLimiter,
		Metrics:          m,
		Logger:           appLogger,
	})

	// Relay activity events from the outbox to the activity channel.
	publisherLogger := logging.New(slogLevel(cfg.LogLevel), cfg.LogFormat)
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewRedisPublisher(redisClient, cfg.ActivityChannel),
		Logger:     publisherLogger.Logger,
		BatchSize:  cfg.PublisherBatchSize,
		Interval:   cfg.PublisherInterval,
	})
	go func() {
		if err := publisher.Start(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	stop()

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// newVendorDirectory builds the upstream directory client. Sourcing degrades
// to the local vendor store when no upstream is configured.
func newVendorDirectory(cfg *config.Config) usecase.VendorDirectory {
	if cfg.DirectoryURL == "" {
		return nil
	}
	return directory.NewClient(cfg.DirectoryURL, cfg.DirectoryTimeout)
}

func slogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
