package main

import (
	"log"
	"time"

	"integrity-gateway/internal/config"
	"integrity-gateway/internal/controller"
	"integrity-gateway/internal/ingest"
	"integrity-gateway/internal/middleware"
	"integrity-gateway/internal/parser"
	"integrity-gateway/internal/relational"
	"integrity-gateway/internal/security"
	"integrity-gateway/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize the relational source. A missing database is a degraded
	// mode, not a startup failure: runs then see an empty relational snapshot.
	var db *gorm.DB
	if cfg.Database.Enabled {
		db, err = config.InitDatabase(cfg)
		if err != nil {
			log.Printf("Warning: database unavailable, continuing without relational source: %v", err)
			db = nil
		}
	}

	// Initialize optional bucket ingestion
	var ingestor *ingest.BucketIngestor
	if cfg.Ingest.Enabled {
		ingestor, err = ingest.NewBucketIngestor(&ingest.BucketConfig{
			Endpoint:  cfg.Ingest.Endpoint,
			AccessKey: cfg.Ingest.AccessKey,
			SecretKey: cfg.Ingest.SecretKey,
			Bucket:    cfg.Ingest.Bucket,
			Prefix:    cfg.Ingest.Prefix,
			Region:    cfg.Ingest.Region,
			Secure:    cfg.Ingest.Secure,
		})
		if err != nil {
			log.Fatalf("Failed to configure bucket ingestion: %v", err)
		}
	}

	// Initialize the pipeline
	registry := parser.NewRegistry()
	relationalSource := relational.NewMySQLCollaborator(db, cfg.Database.Table)
	integrityService := service.NewIntegrityService(registry, relationalSource)

	// Initialize security
	jwtManager := security.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.JWTExpiration)
	authMiddleware := security.NewAuthMiddleware(jwtManager)

	// Initialize rate limiting
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPM:             cfg.Security.RateLimitPerMinute,
		Burst:           cfg.Security.RateLimitBurst,
		CleanupInterval: 5 * time.Minute,
	})

	// Initialize controllers
	integrityController := controller.NewIntegrityController(integrityService, ingestor, cfg.Server.MaxUploadBytes)
	healthController := controller.NewHealthController(db)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.Cors())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.Metrics())

	if cfg.Security.EnableRateLimit {
		router.Use(rateLimiter.RateLimit())
	}

	// Health and metrics endpoints (always available)
	router.GET("/health", healthController.HealthCheck)
	router.GET("/metrics", middleware.PrometheusHandler())

	// API v1 group
	api := router.Group("/api/v1")

	// Public endpoints (no authentication required)
	public := api.Group("")
	{
		public.GET("/health", healthController.HealthCheck)
		public.GET("/integrity/formats", integrityController.GetSupportedFormats)
	}

	// Pipeline endpoints (authentication required when enabled)
	auth := api.Group("")
	if cfg.Security.EnableAuth {
		auth.Use(authMiddleware.RequireAuth())
	}
	{
		integrity := auth.Group("/integrity")
		{
			integrity.POST("/run", integrityController.RunIntegrity)
			integrity.POST("/run-bucket", integrityController.RunBucket)
		}
	}

	// Start server
	log.Printf("Starting server on port %s", cfg.Server.Port)
	log.Printf("Health check available at: http://localhost:%s/health", cfg.Server.Port)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
