package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	_ "datawalt/docs" // swagger docs
	"datawalt/internal/cache"
	"datawalt/internal/config"
	"datawalt/internal/database"
	"datawalt/internal/featureflags"
	"datawalt/internal/middleware"
	"datawalt/internal/models"
	"datawalt/internal/repository"
	"datawalt/internal/service"
	"datawalt/internal/views"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const appName = "Datawalt Adds"

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	views          *views.Renderer
	featureFlags   *featureflags.Manager
	listingRepo    repository.ListingRepository
	listingService *service.ListingService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Redis is optional; without it every read goes to the database.
	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	renderer, err := views.New()
	if err != nil {
		return nil, err
	}

	if cfg.ListCacheTTLSeconds > 0 {
		cache.SetListTTL(time.Duration(cfg.ListCacheTTLSeconds) * time.Second)
	}

	listingRepo := repository.NewListingRepository(db)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("datawalt-adds"),
		views:          renderer,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		listingRepo:    listingRepo,
		listingService: service.NewListingService(listingRepo),
	}
	// built here so Start and Shutdown only ever read s.app
	s.app = s.NewApp()
	return s, nil
}

// NewApp builds a Fiber app with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
	}
	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err.Error())
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError("", err))
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Context Middleware to propagate request and trace IDs
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Listing images are arbitrary external URLs, so cross-origin embedding stays open.
	app.Use(helmet.New(helmet.Config{
		CrossOriginEmbedderPolicy: "unsafe-none",
	}))

	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://127.0.0.1:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: appName + " Metrics Dashboard",
	}))
	api.Get("/swagger/*", swagger.HandlerDefault)
	api.Get("/feature-flags", s.GetFeatureFlags)

	anuncios := api.Group("/anuncios")
	anuncios.Get("/categorias", s.GetCategories)
	anuncios.Get("/", s.GetListings)
	anuncios.Post("/", s.CreateListing)
	anuncios.Put("/", s.UpdateListing)
	anuncios.Delete("/", s.DeleteListing)

	// Server-rendered pages
	app.Get("/", s.BrowseView)
	app.Get("/anuncio/:id", s.DetailView)
	app.Post("/anuncio/:id/favorito", s.ToggleFavoriteAction)
	app.Get("/nuevo", s.NewListingPage)
	app.Post("/nuevo", s.CreateListingAction)
	// Specific /eliminar routes before the generic edit routes
	app.Get("/editar/:id/eliminar", s.DeleteConfirmPage)
	app.Post("/editar/:id/eliminar", s.DeleteListingAction)
	app.Get("/editar/:id", s.EditListingPage)
	app.Post("/editar/:id", s.UpdateListingAction)
}

// Start listens on the configured port until Shutdown is called.
func (s *Server) Start() error {
	middleware.Logger.Info("Server starting", "port", s.config.Port, "env", s.config.Env)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown stops accepting requests, then closes the database and Redis.
// Every step runs even if an earlier one fails.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http: %w", err))
		}
	}
	if sqlDB, err := s.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		middleware.Logger.Error("Server shutdown finished with errors", "error", err.Error())
		return err
	}
	middleware.Logger.Info("Server shutdown complete")
	return nil
}
