package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/sunstate-labs/agentcrm/internal/config"
	"github.com/sunstate-labs/agentcrm/internal/database"
	"github.com/sunstate-labs/agentcrm/internal/handlers"
	"github.com/sunstate-labs/agentcrm/internal/middleware"
	"github.com/sunstate-labs/agentcrm/internal/token"
	"github.com/sunstate-labs/agentcrm/internal/types"

	_ "github.com/sunstate-labs/agentcrm/docs/api" // Swagger docs
)

// @title AgentCRM API
// @version 1.0.0
// @description Multi-tenant CRM backend for real-estate agents

// @contact.name API Support
// @contact.url https://github.com/sunstate-labs/agentcrm

// @host localhost:3001
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load .env if present, then configuration. The signing secret is
	// mandatory; the process refuses to start without it.
	_ = godotenv.Load()
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

	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTExpiresIn)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowHeaders:     "Accept, Authorization, Content-Type, X-Api-Version",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("agentcrm")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Create handlers
	healthHandler := &handlers.HealthHandler{Config: cfg, DB: db}
	authHandler := &handlers.AuthHandler{DB: db, Tokens: tokens}
	contactHandler := &handlers.ContactHandler{DB: db}
	dealHandler := &handlers.DealHandler{DB: db}
	taskHandler := &handlers.TaskHandler{DB: db}
	interactionHandler := &handlers.InteractionHandler{DB: db}
	documentHandler := &handlers.DocumentHandler{DB: db}
	leadHandler := &handlers.LeadHandler{DB: db}

	// Health check (no auth)
	app.Get("/health", healthHandler.Check)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Auth routes (register/login public, me authenticated)
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.Auth(tokens), authHandler.Me)

	requireAuth := middleware.Auth(tokens)

	// Contact routes
	contacts := api.Group("/contacts", requireAuth)
	contacts.Get("/", contactHandler.List)
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/:id", contactHandler.Get)
	contacts.Put("/:id", contactHandler.Update)
	contacts.Delete("/:id", contactHandler.Delete)

	// Deal routes; the static summary path registers before the :id matcher
	deals := api.Group("/deals", requireAuth)
	deals.Get("/", dealHandler.List)
	deals.Post("/", dealHandler.Create)
	deals.Get("/pipeline/summary", dealHandler.PipelineSummary)
	deals.Get("/:id", dealHandler.Get)
	deals.Put("/:id", dealHandler.Update)
	deals.Delete("/:id", dealHandler.Delete)

	// Task routes
	tasks := api.Group("/tasks", requireAuth)
	tasks.Get("/", taskHandler.List)
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/:id", taskHandler.Get)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)

	// Interaction routes
	interactions := api.Group("/interactions", requireAuth)
	interactions.Get("/contact/:contactId", interactionHandler.ListByContact)
	interactions.Post("/", interactionHandler.Create)
	interactions.Delete("/:id", interactionHandler.Delete)

	// Document routes (metadata only)
	documents := api.Group("/documents", requireAuth)
	documents.Get("/", documentHandler.List)
	documents.Post("/", documentHandler.Create)
	documents.Get("/:id", documentHandler.Get)
	documents.Delete("/:id", documentHandler.Delete)

	// Lead catalog routes
	leads := api.Group("/leads", requireAuth)
	leads.Get("/sources", leadHandler.Sources)
	leads.Get("/available", leadHandler.Available)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler converts errors that escape a handler into the uniform
// error body. CustomError carries its own status; everything else is a 500
// with no internal detail exposed.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var custom *types.CustomError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &custom):
		code = custom.Code
		message = custom.Message
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
