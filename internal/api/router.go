package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/newsphere/content-service/docs"
	"github.com/newsphere/content-service/internal/api/handler"
	"github.com/newsphere/content-service/internal/api/middleware"
	"github.com/newsphere/content-service/internal/core/ports"
	"github.com/newsphere/content-service/internal/core/service"
	mongodb "github.com/newsphere/content-service/internal/infrastructure/db/mongo"
	redisdb "github.com/newsphere/content-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, payments ports.PaymentProvider, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("newsphere"))

	// --- Dependencies ---
	articleRepo := mongodb.NewArticleRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	publisherRepo := mongodb.NewPublisherRepository(db)
	trendingCache := redisdb.NewTrendingCache(rdb)

	gate := service.NewGate(userRepo)
	articleService := service.NewArticleService(articleRepo, gate, trendingCache, log)
	userService := service.NewUserService(userRepo, gate, log)
	subscriptionService := service.NewSubscriptionService(userRepo, log)
	publisherService := service.NewPublisherService(publisherRepo, gate, log)

	articleHandler := handler.NewArticleHandler(articleService)
	userHandler := handler.NewUserHandler(userService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	paymentHandler := handler.NewPaymentHandler(payments)
	publisherHandler := handler.NewPublisherHandler(publisherService)

	// --- Public routes ---
	e.GET("/articles", articleHandler.List)
	e.GET("/articles/trending", articleHandler.Trending)
	e.GET("/articles/:id", articleHandler.Get)
	e.POST("/articles/:id/view", articleHandler.RecordView)
	e.GET("/publishers", publisherHandler.List)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(jwtSecret))
	v1.POST("/articles", articleHandler.Submit)
	v1.GET("/articles/mine", articleHandler.Mine)
	v1.PUT("/articles/:id", articleHandler.Edit)
	v1.DELETE("/articles/:id", articleHandler.Delete)
	v1.POST("/users", userHandler.Ensure)
	v1.GET("/subscription", subscriptionHandler.Entitlement)
	v1.POST("/subscription/activate", subscriptionHandler.Activate)
	v1.POST("/payments/intent", paymentHandler.CreateIntent)

	// Admin authorization is enforced by the service-layer gate against the
	// stored role; the route group only guarantees a verified principal.
	admin := v1.Group("/admin")
	admin.GET("/articles", articleHandler.Pending)
	admin.POST("/articles/:id/approve", articleHandler.Approve)
	admin.POST("/articles/:id/decline", articleHandler.Decline)
	admin.GET("/users", userHandler.List)
	admin.PUT("/users/:id/role", userHandler.SetRole)
	admin.DELETE("/users/:id", userHandler.Delete)
	admin.POST("/publishers", publisherHandler.Create)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
