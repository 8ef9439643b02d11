package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rudracore/portal-api/config"
	"github.com/rudracore/portal-api/controllers"
	"github.com/rudracore/portal-api/middleware"
	"github.com/rudracore/portal-api/models"
	"github.com/rudracore/portal-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting RudraCore client portal API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.Service{}, &models.Order{}, &models.Profile{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize the identity provider client
	services.InitIdentityService(cfg)

	// Initialize the delivery link resolver
	if _, err := services.InitDeliveryService(); err != nil {
		log.Fatalf("Failed to initialize delivery service: %v", err)
	}

	// Initialize Gin router
	router := gin.Default()
	router.Use(cors.Default())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Authentication endpoints (no session required)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", controllers.Signup)
			auth.POST("/login", controllers.Login)
			auth.GET("/session", controllers.GetSession)
			auth.POST("/logout", middleware.EnsureValidToken(cfg), controllers.Logout)
		}

		// Protected endpoints
		protected := v1.Group("")
		protected.Use(middleware.EnsureValidToken(cfg))
		{
			protected.GET("/services", controllers.ListServices)
			protected.GET("/orders", controllers.ListOrders)
			protected.POST("/orders", controllers.CreateOrder)
			protected.GET("/delivery", controllers.GetDelivery)
			protected.GET("/dashboard", controllers.GetDashboard)
			protected.GET("/users/me", controllers.GetMyProfile)
			protected.PUT("/users/me", controllers.UpdateMyProfile)
		}
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "RudraCore portal API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
