package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/pulsefeed/content-service/docs"
	"github.com/pulsefeed/content-service/internal/api/handler"
	"github.com/pulsefeed/content-service/internal/api/middleware"
	"github.com/pulsefeed/content-service/internal/core/ports"
	"github.com/pulsefeed/content-service/internal/core/service"
	"github.com/pulsefeed/content-service/internal/infrastructure/config"
	mongodb "github.com/pulsefeed/content-service/internal/infrastructure/db/mongo"
	redisdb "github.com/pulsefeed/content-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, activity ports.ActivityPublisher, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("content"))
	e.Use(middleware.NoSniff())

	// --- Dependencies ---
	credRepo := mongodb.NewCredentialRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	sessions := redisdb.NewSessionRegistry(rdb, cfg.SessionTTL)

	authService := service.NewAuthService(credRepo, sessions, log)
	postService := service.NewPostService(postRepo, activity, log)

	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL)
	postHandler := handler.NewPostHandler(postService)
	requireSession := middleware.Auth(authService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, requireSession)
	e.GET("/auth/me", authHandler.Me, requireSession)

	// --- Post routes ---
	e.GET("/posts", postHandler.List)
	e.POST("/posts", postHandler.Create, requireSession)
	e.DELETE("/posts/:id", postHandler.Delete, requireSession)
	e.POST("/posts/:id/like", postHandler.Like, requireSession)
	e.POST("/posts/:id/comment", postHandler.Comment, requireSession)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
