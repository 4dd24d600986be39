package api

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/voicedeck/recorder-api/docs"
	"github.com/voicedeck/recorder-api/internal/api/handler"
	"github.com/voicedeck/recorder-api/internal/api/middleware"
	"github.com/voicedeck/recorder-api/internal/core/ports"
	"github.com/voicedeck/recorder-api/internal/core/service"
	"github.com/voicedeck/recorder-api/internal/infrastructure/config"
	"github.com/voicedeck/recorder-api/internal/infrastructure/db/postgres"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	log zerolog.Logger,
	pool *pgxpool.Pool,
	rdb *redis.Client,
	storage ports.ObjectStorage,
	sessions ports.SessionManager,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.BodyLimit(fmt.Sprintf("%dM", cfg.Upload.MaxSizeMiB+1)))
	e.Use(echoprometheus.NewMiddleware("recorder"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	recordingRepo := postgres.NewRecordingRepository(pool)
	authService := service.NewAuthService(userRepo)
	recordingService := service.NewRecordingService(recordingRepo, storage, cfg.MaxUploadBytes(), log)

	authHandler := handler.NewAuthHandler(authService, sessions, cfg.Session.TTL, cfg.IsProduction())
	recordingHandler := handler.NewRecordingHandler(recordingService)
	requireSession := middleware.Session(sessions)

	// --- Auth routes ---
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/logout", authHandler.Logout)
	e.GET("/api/user", authHandler.CurrentUser, requireSession)

	// --- Recording routes (session required) ---
	recordings := e.Group("/api/recordings", requireSession)
	recordings.POST("", recordingHandler.Create)
	recordings.GET("", recordingHandler.List)
	recordings.PATCH("/:id", recordingHandler.Rename)
	recordings.DELETE("/:id", recordingHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Static browser client; local blobs are served from /uploads ---
	e.Static("/", cfg.WebDir)
	if cfg.Storage.Backend == "local" {
		e.Static("/uploads", cfg.Storage.LocalDir)
	}

	return e
}
