package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/routes"
	"learnhub/backend/services/advisor"
	"learnhub/backend/store"
	"learnhub/backend/utils"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatal("Error initializing database", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Error getting database handle", "error", err)
	}
	defer sqlDB.Close()

	s := store.New(db, logger)

	// The advisor stays unconfigured without an API key; the AI route then
	// answers with a configuration error.
	var gen advisor.Generator
	if cfg.GeminiAPIKey != "" {
		g, err := advisor.NewGeminiGenerator(context.Background(), cfg, logger)
		if err != nil {
			logger.Fatal("Error initializing AI client", "error", err)
		}
		gen = g
	} else {
		logger.Warn("GEMINI_API_KEY is not set, AI advisor disabled")
	}
	adv := advisor.New(gen, logger)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "learnhub",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: middleware.ErrorHandler(cfg.IsProduction(), logger),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))
	app.Use(middleware.MetricsMiddleware())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := sqlDB.PingContext(c.UserContext()); err != nil {
			return utils.NewAppError(fiber.StatusServiceUnavailable, "database unavailable", err)
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Setup routes
	routes.SetupRoutes(app, s, cfg, logger, adv)
	app.Use(middleware.NotFound)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	// Start server
	logger.Info("server starting", "port", cfg.ServerPort, "env", cfg.Env)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}
