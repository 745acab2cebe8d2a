package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	_ "github.com/fullstacktime/project-tracker/docs"
	"github.com/fullstacktime/project-tracker/internal/api/handler"
	"github.com/fullstacktime/project-tracker/internal/api/middleware"
	"github.com/fullstacktime/project-tracker/internal/core/ports"
	"github.com/fullstacktime/project-tracker/internal/core/service"
	pgstore "github.com/fullstacktime/project-tracker/internal/infrastructure/db/postgres"
	redisstore "github.com/fullstacktime/project-tracker/internal/infrastructure/db/redis"
	"github.com/fullstacktime/project-tracker/internal/infrastructure/http/handlers"
	"github.com/fullstacktime/project-tracker/internal/pkg/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; refresh-token revocation is then not enforced.
func NewRouter(db *gorm.DB, rdb *redis.Client, tokens *token.Manager, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tracker"))

	// --- Dependencies ---
	userRepo := pgstore.NewUserRepository(db)
	projectRepo := pgstore.NewProjectRepository(db)

	var denylist ports.TokenDenylist
	if rdb != nil {
		denylist = redisstore.NewTokenDenylist(rdb, tokens.RefreshTTL())
	}

	authService := service.NewAuthService(userRepo, tokens, denylist, log)
	projectService := service.NewProjectService(projectRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	authMiddleware := middleware.Auth(tokens)

	// --- Auth routes ---
	e.POST("/api/auth/register/", authHandler.Register)
	e.POST("/api/token/", authHandler.ObtainToken)
	e.POST("/api/token/refresh/", authHandler.RefreshToken)
	e.POST("/api/auth/logout/", authHandler.Logout, authMiddleware)

	// --- Project routes (bearer token required) ---
	projects := e.Group("/api/projects", authMiddleware)
	projects.GET("/", projectHandler.List)
	projects.POST("/", projectHandler.Create)
	projects.GET("/:id/", projectHandler.Get)
	projects.PUT("/:id/", projectHandler.Replace)
	projects.PATCH("/:id/", projectHandler.Patch)
	projects.DELETE("/:id/", projectHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
