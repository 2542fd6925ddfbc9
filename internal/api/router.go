package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookinglab/admin-portal/internal/api/handler"
	"github.com/bookinglab/admin-portal/internal/api/middleware"
	"github.com/bookinglab/admin-portal/internal/core/ports"
	"github.com/bookinglab/admin-portal/internal/core/service"
	"github.com/bookinglab/admin-portal/internal/infrastructure/config"
	mongodb "github.com/bookinglab/admin-portal/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb is nil when the in-process session backend is configured; the readiness
// probe then skips the redis check.
func NewRouter(db *mongo.Database, rdb *redis.Client, sessions ports.SessionStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, sessions, cfg.Session.Timeout, log)
	authHandler := handler.NewAuthHandler(authService, cfg.Session.CookieName, cfg.Session.CookieSecure)

	scheduleRepo := mongodb.NewScheduleRepository(db)
	scheduleService := service.NewScheduleService(scheduleRepo, log)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)

	sessionGate := middleware.Session(authService, cfg.Session.CookieName)
	publicLimiter := middleware.NewRateLimiter(cfg.Public.RateLimit, cfg.Public.RateBurst, 5*time.Minute)

	// --- Auth surface ---
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	// --- Admin flow: session-gated dependent queries ---
	admin := e.Group("/api", sessionGate)
	admin.GET("/days", scheduleHandler.ListDays)
	admin.GET("/schedules", scheduleHandler.ListSchedules)

	// --- Public flow: same projection, rate-limited instead of gated ---
	public := e.Group("/public", publicLimiter.Middleware())
	public.GET("/days", scheduleHandler.ListDays)
	public.GET("/schedules", scheduleHandler.ListSchedules)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
