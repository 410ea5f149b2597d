package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"citizen_registry/internal/config"
	"citizen_registry/internal/handler"
	"citizen_registry/internal/metrics"
	"citizen_registry/internal/middleware"
	"citizen_registry/internal/repository"
	"citizen_registry/internal/service"
	"citizen_registry/internal/storage"
	"citizen_registry/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("Failed to load DB config: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		log.Fatalf("JWT_SECRET_KEY not set in environment")
	}
	jwtExpHoursStr := os.Getenv("JWT_EXPIRATION_HOURS")
	jwtExpHours, err := strconv.ParseInt(jwtExpHoursStr, 10, 64)
	if err != nil {
		log.Printf("Invalid JWT_EXPIRATION_HOURS, defaulting to 24: %v", err)
		jwtExpHours = 24
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads" // Staging area for bulk NIN files
	}
	if err := os.MkdirAll(uploadsDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create uploads directory %s: %v", uploadsDir, err)
	}
	log.Printf("Bulk uploads will be staged in: %s", uploadsDir)

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(dbPool); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- Redis (optional stats cache) ---
	redisClient, err := config.ConnectRedis()
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Println("Dashboard stats cache enabled")
	}

	// --- Image Storage ---
	imageStore, err := storage.NewS3ImageStore(context.Background(), storage.S3Config{
		Region:        os.Getenv("S3_REGION"),
		Endpoint:      os.Getenv("S3_ENDPOINT"),
		AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		SecretKey:     os.Getenv("S3_SECRET_KEY"),
		Bucket:        os.Getenv("S3_BUCKET"),
		PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
	})
	if err != nil {
		log.Fatalf("Failed to configure image storage: %v", err)
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(jwtSecret, jwtExpHours)
	appMetrics := metrics.New()

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	ninRepo := repository.NewNINRecordRepository(dbPool)
	regRepo := repository.NewRegistrationRepository(dbPool)
	auditRepo := repository.NewAuditLogRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, jwtUtil)
	importService := service.NewImportService(ninRepo, appMetrics)
	registryService := service.NewRegistryService(ninRepo, regRepo, redisClient)
	registerService := service.NewRegisterService(regRepo, imageStore, appMetrics)

	// --- Seed Initial Admin ---
	if err := authService.SeedInitialAdmin(context.Background()); err != nil {
		log.Fatalf("Failed to seed initial admin: %v", err)
	}

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	publicHandler := handler.NewPublicHandler(registerService)
	adminHandler := handler.NewAdminHandler(importService, registryService, uploadsDir)

	// --- Setup Gin Router ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()

	// Simple CORS middleware (allow all for development)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// --- Initialize Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)
	auditMW := middleware.AuditMiddleware(auditRepo)

	// --- Register Routes ---
	apiGroup := router.Group("/api")
	authHandler.RegisterAuthRoutes(apiGroup)
	publicHandler.RegisterPublicRoutes(apiGroup)
	adminHandler.RegisterAdminRoutes(apiGroup, jwtAuthMW, auditMW)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(context.Background()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + serverPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
