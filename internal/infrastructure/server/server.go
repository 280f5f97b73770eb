package server

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cardboard/core/docs"
	httpHandlers "github.com/cardboard/core/internal/adapters/http"
	"github.com/cardboard/core/internal/adapters/repository"
	"github.com/cardboard/core/internal/application/services"
	"github.com/cardboard/core/internal/infrastructure/config"
	"github.com/cardboard/core/internal/infrastructure/database"
	"github.com/cardboard/core/internal/infrastructure/logger"
	"github.com/cardboard/core/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	db      *database.DB
	cache   ports.CacheRepository
	metrics *httpMetrics
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return services.ValidationError(err)
	}
	return nil
}

// New creates a new server instance. cache is used for resolved default
// configs; pass a no-op cache when Redis is disabled.
func New(cfg *config.Config, db *database.DB, cache ports.CacheRepository, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	validate := services.NewValidator()
	e.Validator = &CustomValidator{validator: validate}

	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	e.HTTPErrorHandler = httpHandlers.ErrorHandler(appLogger)

	// Initialize repositories
	cardRepo := repository.NewCardRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	// Initialize services
	resolver := services.NewDefaultResolver(templateRepo, cache, cfg.Redis.TemplateTTL, appLogger)
	cardService := services.NewCardService(cardRepo, templateRepo, resolver, validate, appLogger)

	server := &Server{
		echo:    e,
		config:  cfg,
		logger:  appLogger.WithComponent("server"),
		db:      db,
		cache:   cache,
		metrics: newHTTPMetrics(),
	}

	var operations = server.metrics.cardOperations
	if !cfg.Metrics.Enabled {
		operations = nil
	}
	cardHandler := httpHandlers.NewCardHandler(cardService, appLogger, operations)

	server.setupMiddleware()
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}
	server.setupRoutes(cardHandler)

	return server, nil
}

// Echo exposes the underlying router, mainly for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(cardHandler *httpHandlers.CardHandler) {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := s.echo.Group("/api/v1")
	cardHandler.Register(v1.Group("/cards"))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	status := "ok"
	checks := make(map[string]interface{})

	if err := s.db.HealthCheck(ctx); err != nil {
		status = "error"
		checks["database"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "ok",
			"stats":  s.db.GetConnectionInfo(),
		}
	}

	if s.config.Redis.Enabled {
		if err := s.cache.Ping(ctx); err != nil {
			// Resolution still works without the cache.
			if status == "ok" {
				status = "degraded"
			}
			checks["cache"] = map[string]interface{}{
				"status": "error",
				"error":  err.Error(),
			}
		} else {
			checks["cache"] = map[string]interface{}{"status": "ok"}
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
			"go":  runtime.Version(),
		},
	}

	if status == "error" {
		return c.JSON(http.StatusServiceUnavailable, response)
	}
	return c.JSON(http.StatusOK, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.db.HealthCheck(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	if err := s.echo.Start(address); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}
