package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/usermgmt/user-management-api/internal/api/handler"
	"github.com/usermgmt/user-management-api/internal/api/middleware"
	"github.com/usermgmt/user-management-api/internal/core/domain"
	"github.com/usermgmt/user-management-api/internal/core/service"
	"github.com/usermgmt/user-management-api/internal/infrastructure/config"
	mongodb "github.com/usermgmt/user-management-api/internal/infrastructure/db/mongo"
	rediscache "github.com/usermgmt/user-management-api/internal/infrastructure/db/redis"
	"github.com/usermgmt/user-management-api/internal/infrastructure/http/handlers"
	"github.com/usermgmt/user-management-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the service then runs without the listing cache.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("usermgmt"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	authService := service.NewAuthService(userRepo, hasher, log)

	var cache service.ListingCache
	if rdb != nil {
		cache = rediscache.NewPageCache(rdb, cfg.Redis.PageCacheTTL)
	}
	userService := service.NewUserService(userRepo, hasher, cache, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	// Every request passes the policy gate before reaching a handler.
	e.Use(middleware.Security(domain.DefaultPolicy(cfg.BasePath), authService))

	// --- User routes ---
	g := e.Group(cfg.BasePath)
	g.POST("/register", authHandler.Register)
	g.GET("/page", userHandler.Page)
	g.POST("", userHandler.CreateBatch)
	g.GET("", userHandler.List)
	g.GET("/:id", userHandler.Get)
	g.PUT("/:id", userHandler.Update)
	g.DELETE("/:id", userHandler.Delete)

	// --- Health probes ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
