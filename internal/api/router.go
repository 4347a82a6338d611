package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/microblog/user-service/internal/api/handler"
	"github.com/microblog/user-service/internal/api/middleware"
	"github.com/microblog/user-service/internal/core/ports"
)

// Dependencies carries everything the router wires into handlers and
// middleware. Throttle may be nil to disable login throttling.
type Dependencies struct {
	Users    ports.UserService
	Throttle middleware.Throttle
	Mongo    *mongo.Database
	Redis    *redis.Client
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("user_service"))

	// --- Handlers ---
	userHandler := handler.NewUserHandler(deps.Users)
	loginHandler := handler.NewLoginHandler()
	requireAuth := middleware.RequireBasicAuth(deps.Users, deps.Throttle)
	optionalAuth := middleware.OptionalBasicAuth(deps.Users)

	// --- API routes ---
	e.POST("/api/1.0/users", userHandler.Signup)
	e.GET("/api/1.0/users", userHandler.List, optionalAuth)
	e.POST("/api/1.0/login", loginHandler.Login, requireAuth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
