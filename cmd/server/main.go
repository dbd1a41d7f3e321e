package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/cardkeep/cardkeep-api/internal/config"
	"github.com/cardkeep/cardkeep-api/internal/database"
	"github.com/cardkeep/cardkeep-api/internal/handlers"
	"github.com/cardkeep/cardkeep-api/internal/middleware"
	"github.com/cardkeep/cardkeep-api/internal/services"

	_ "github.com/cardkeep/cardkeep-api/docs/api" // Swagger docs
)

// @title CardKeep API
// @version 1.0.0
// @description Trading-card game API: decks, collections and pack opening
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/cardkeep/cardkeep-api

// @license.name MIT

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("cardkeep")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Create handlers
	deckHandler := &handlers.DeckHandler{DB: db}
	collectionHandler := &handlers.CollectionHandler{DB: db}
	diagnosticsHandler := &handlers.DiagnosticsHandler{DB: db}
	packHandler := &handlers.PackHandler{Packs: services.NewPackClient(cfg)}
	adminHandler := &handlers.AdminHandler{DB: db}
	callbackHandler := &handlers.AuthCallbackHandler{DB: db, Cfg: cfg}

	// Auth callback (redirect flow, no JSON body)
	app.Get("/auth/callback", callbackHandler.Callback)

	// API routes under /api
	api := app.Group("/api")

	// Unauthenticated diagnostics
	api.Get("/test-simple", diagnosticsHandler.TestSimple)
	api.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// Authenticated routes
	authUser := middleware.AuthUser(cfg)
	api.Get("/decks", authUser, deckHandler.ListDecks)
	api.Post("/decks", authUser, deckHandler.CreateDeck)
	api.Get("/decks/:id", authUser, deckHandler.GetDeck)
	api.Get("/cards", authUser, collectionHandler.ListCards)
	api.Get("/test-db", authUser, diagnosticsHandler.TestDB)
	api.Post("/open-pack", authUser, packHandler.OpenPack)

	// Admin-only catalog routes
	admin := api.Group("/admin", middleware.AuthAdmin(cfg, db))
	admin.Get("/card-definitions", adminHandler.ListCardDefinitions)

	// No catch-all: router misses fall through to handlers.ErrorHandler,
	// which keeps the native 405 for wrong-method requests

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}
