package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/getmentor/persons-api/config"
	"github.com/getmentor/persons-api/internal/handlers"
	"github.com/getmentor/persons-api/internal/middleware"
	"github.com/getmentor/persons-api/internal/services"
	"github.com/getmentor/persons-api/pkg/logger"
	"github.com/getmentor/persons-api/pkg/metrics"
	"github.com/getmentor/persons-api/pkg/profiling"
	"github.com/getmentor/persons-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// apiHandlers groups the handlers served by the router
type apiHandlers struct {
	health  *handlers.HealthHandler
	person  *handlers.PersonHandler
	login   *handlers.LoginHandler
	contact *handlers.ContactHandler
	image   *handlers.ImageHandler
}

func newAPIHandlers() apiHandlers {
	return apiHandlers{
		health:  handlers.NewHealthHandler(),
		person:  handlers.NewPersonHandler(services.NewPersonService()),
		login:   handlers.NewLoginHandler(services.NewLoginService()),
		contact: handlers.NewContactHandler(services.NewContactService()),
		image:   handlers.NewImageHandler(services.NewImageService()),
	}
}

// registerAPIRoutes registers the person, login, contact and image routes
func registerAPIRoutes(router *gin.Engine, cfg *config.Config, h apiHandlers) {
	router.GET("/", h.health.Home)

	// JSON and form endpoints share one body limit
	bounded := router.Group("/", middleware.BodySizeLimitMiddleware(cfg.Limits.MaxBodyBytes))
	bounded.POST("/person/new", h.person.CreatePerson)
	bounded.POST("/person/detail", h.person.SearchPerson)
	bounded.PUT("/person/:person_id", h.person.UpdatePerson)
	bounded.POST("/login", h.login.Login)
	bounded.POST("/contact", h.contact.SubmitContact)
	router.GET("/person/detail/:person_id", h.person.GetPerson)

	// Uploads are read whole; no size limit applies
	router.POST("/post-image", h.image.UploadImages)
	router.POST("/post-image/single", h.image.UploadImage)
}

// corsConfig allows every origin unless ALLOWED_CORS_ORIGINS narrows it down
func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length", "Deprecation"},
		MaxAge:        12 * time.Hour,
	}

	origins := append([]string{}, cfg.Server.AllowedOrigins...)
	if cfg.IsDevelopment() && len(origins) > 0 {
		origins = append(origins, "http://localhost:3000", "http://127.0.0.1:3000")
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true // the contact form reads the ads cookie
	}
	return c
}

// newRouter builds the gin engine with global middleware and all routes
func newRouter(cfg *config.Config) *gin.Engine {
	handlers.SetupValidator()

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.MaxMultipartMemory = cfg.Limits.MaxMultipartMemoryBytes

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(cors.New(corsConfig(cfg)))

	h := newAPIHandlers()

	// Operational endpoints
	router.GET("/healthcheck", h.health.Healthcheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerAPIRoutes(router, cfg, h)

	return router
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting persons API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	tracerShutdown, err := tracing.InitTracer(cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.LogError(shutdownErr, "Failed to shutdown tracer")
		}
	}()

	stopProfiler, err := profiling.InitProfiler(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	metrics.RecordInfrastructureMetrics()

	router := newRouter(cfg)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
