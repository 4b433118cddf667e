// @title English Placement API
// @version 1.0
// @description Samples stratified English placement tests and grades them into quick3 and CEFR levels.
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "english-placement/cmd/api/docs"
	"english-placement/internal/adapter"
	"english-placement/internal/cache"
	"english-placement/internal/config"
	"english-placement/internal/database"
	"english-placement/internal/domain"
	"english-placement/internal/handler"
	"english-placement/internal/logger"
	"english-placement/internal/metrics"
	"english-placement/internal/middleware"
	"english-placement/internal/repository"
	"english-placement/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer func() { _ = logger.Sync() }()

	metrics.Init()
	ctx := context.Background()

	repo, closeRepo, err := openQuestionRepository(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to open question bank", zap.String("driver", cfg.Bank.Driver), zap.Error(err))
	}
	defer closeRepo()

	// Redis is optional; without it every lookup goes to the bank
	var cacheAdapter domain.Cache
	var bank domain.QuestionBank = repo
	if cache.Enabled(cfg.Redis) {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, running without question cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
			bank = service.NewCachedQuestionBank(repo, cacheAdapter, cfg.Redis.QuestionTTL)
			appLogger.Info("Question cache enabled", zap.String("address", cfg.Redis.Address), zap.Duration("ttl", cfg.Redis.QuestionTTL))
		}
	} else {
		appLogger.Info("Redis is not configured, running without question cache")
	}

	app := newApp(cfg,
		service.NewPlacementService(bank),
		service.NewHealthService(repo, cacheAdapter),
	)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env), zap.String("bank", cfg.Bank.Driver))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

// openQuestionRepository connects the configured bank driver. The memory
// driver is filled from the seed workbook at startup.
func openQuestionRepository(ctx context.Context, cfg *config.Config) (domain.QuestionRepository, func(), error) {
	switch cfg.Bank.Driver {
	case config.BankDriverOracle:
		db, err := database.NewSQLXOracleDB(cfg.GetDSN())
		if err != nil {
			return nil, nil, err
		}
		return repository.NewQuestionDatabaseAdapter(db), func() { _ = db.Close() }, nil

	case config.BankDriverMemory:
		f, err := os.Open(cfg.Bank.SeedFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open seed file: %w", err)
		}
		defer f.Close()

		bank := repository.NewMemoryQuestionBank()
		report, err := service.NewImportService(bank, nil, logger.Get()).
			ImportWorkbook(ctx, f, service.ImportOptions{Sheet: cfg.Bank.SeedSheet})
		if err != nil {
			return nil, nil, err
		}
		logger.Get().Info("Loaded seed workbook",
			zap.String("file", cfg.Bank.SeedFile),
			zap.Strings("sheets", report.Sheets),
			zap.Int("questions", report.Created),
			zap.Int("failed_rows", report.FailedRows),
		)
		return bank, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown bank driver %q", cfg.Bank.Driver)
	}
}

// newApp builds the fiber application with every route mounted
func newApp(cfg *config.Config, placementService service.PlacementService, healthService service.HealthService) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(middleware.Metrics())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: "GET,HEAD,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	placementHandler := handler.NewPlacementHandler(placementService)
	healthHandler := handler.NewHealthHandler(healthService)
	validator := middleware.NewValidationMiddleware()

	// fiber registers HEAD alongside every GET route
	app.Get("/", healthHandler.Root)
	app.Get("/metrics", middleware.PrometheusHandler())
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Get("/health", healthHandler.Health)

	englishTest := api.Group("/english-test")
	englishTest.Get("/questions", validator.ValidateSampleParams(), placementHandler.GetQuestions)
	englishTest.Post("/grade", placementHandler.Grade)

	return app
}
