package main

import (
	"context"                      // context package is needed for Redis operations
	"log"                          // log package is needed for logging
	"net/http"                     // HTTP status codes
	"os"                           // Uploads directory bootstrap
	"kindkart/internal/api"        // Custom package for API handlers
	"kindkart/internal/config"     // Custom package for configuration
	"kindkart/internal/middleware" // Custom package for middleware

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database; TranslateError maps duplicate keys to gorm.ErrDuplicatedKey
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Ensure the uploads directory exists before serving or storing photos
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logrus.Fatalf("failed to create uploads dir: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	r.Use(middleware.CORSMiddleware()) // CORS headers for the web front-end variants

	// Serve uploaded profile photos
	r.Static("/uploads", cfg.UploadDir)

	apiGroup := r.Group("/api") // All routes live under /api

	// Auth routes
	apiGroup.POST("/auth/signup", api.SignupHandler(db))                // Signup endpoint
	apiGroup.POST("/auth/login", api.LoginHandler(db, cfg.JWTSecret))   // Login endpoint
	apiGroup.GET("/auth/me", middleware.JWTAuthMiddleware(cfg.JWTSecret), api.MeHandler(db)) // Token-holder profile

	// Donation routes
	apiGroup.POST("/payments/process", api.ProcessPaymentHandler(db, redisClient))              // Direct donation endpoint
	apiGroup.POST("/checkout", api.CheckoutHandler(db, redisClient))                            // Cart checkout endpoint
	apiGroup.GET("/users/:id/donations/summary", api.DonationSummaryHandler(db, redisClient)) // Donation summary endpoint
	apiGroup.GET("/donations/:id/details", api.DonationDetailsHandler(db, redisClient))         // Donation details endpoint
	apiGroup.DELETE("/donations/:id", api.DeleteDonationHandler(db, redisClient))               // Donation delete endpoint

	// Contact and feedback intake
	apiGroup.POST("/contact", api.ContactHandler(db))   // Contact form endpoint
	apiGroup.POST("/feedback", api.FeedbackHandler(db)) // Feedback form endpoint

	// Profile routes
	apiGroup.GET("/users/profile", api.GetProfileCompatHandler(db))               // Compat lookup via query/header
	apiGroup.GET("/users/:id/profile", api.GetProfileHandler(db))                 // Profile lookup endpoint
	apiGroup.PUT("/users/:id/profile", api.UpdateProfileHandler(db, cfg.UploadDir)) // Profile update endpoint

	// Admin routes (protected, admin only)
	adminGroup := apiGroup.Group("/admin")
	// Protect admin routes with JWT and AdminOnly middleware
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("/messages", api.ListContactMessagesHandler(db, redisClient)) // Contact intake listing
	adminGroup.GET("/feedback", api.ListFeedbackHandler(db, redisClient))        // Feedback intake listing

	// Unmatched /api routes return JSON, not the default plain 404
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found", "requested": c.Request.URL.Path})
	})

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
