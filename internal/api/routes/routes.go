package routes

import (
	"hirepath-api/internal/aggregator"
	"hirepath-api/internal/api/handlers"
	"hirepath-api/internal/api/middleware"
	"hirepath-api/internal/cache"
	"hirepath-api/internal/config"
	"hirepath-api/internal/matcher"
	"hirepath-api/internal/parser"
	"hirepath-api/internal/quota"
	"hirepath-api/internal/store"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// Deps bundles the pipeline components the routes need.
type Deps struct {
	Store       store.Store
	Search      *aggregator.Service
	Guard       *quota.Guard
	ResultCache *cache.ResultCache
	Matcher     *matcher.Orchestrator
	Parser      *parser.Client
}

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, deps Deps) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	e.Use(middleware.TimeoutConfig(cfg.Server.ReadTimeout))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(deps.Store))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(deps.Guard, deps.ResultCache))

	// API routes
	api := e.Group("/api")
	{
		api.GET("/jobs", handlers.ListJobsHandler(deps.Search))
		api.POST("/jobs", handlers.CreateJobHandler(deps.Store))

		api.GET("/my-resumes", handlers.ListResumesHandler(deps.Store))
		api.POST("/upload-resume", handlers.UploadResumeHandler(deps.Parser, deps.Store))
		api.DELETE("/resume/:id", handlers.DeleteResumeHandler(deps.Store))

		api.POST("/matches", handlers.MatchResumeHandler(deps.Matcher, deps.Store))
		api.POST("/save-matches", handlers.SaveMatchesHandler(deps.Store))
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"service": "HirePath Job Discovery",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
