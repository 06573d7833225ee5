package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oshmenu/menu-service/internal/api"
	"github.com/oshmenu/menu-service/internal/auth"
	"github.com/oshmenu/menu-service/internal/db"
	"github.com/oshmenu/menu-service/internal/logging"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.SetOutput(os.Stdout)
	log.Printf("Menu Service starting (GIT_SHA=%s BUILD_TIME=%s)", os.Getenv("GIT_SHA"), os.Getenv("BUILD_TIME"))

	// Initialize database connection (non-fatal; allow process to start for /live)
	database, err := db.NewDatabase()
	if err != nil {
		log.Printf("[WARN] Database initialization failed at startup: %v", err)
		database = nil
	}
	if database != nil {
		defer database.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := database.InitSchema(ctx); err != nil {
			log.Printf("[WARN] Schema initialization failed: %v", err)
		}
		cancel()
	}

	// Initialize handlers
	handler := api.NewHandler(database, auth.StaticVerifierFromEnv())

	// Set up Gin router
	router := setupRouter(handler)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Set up graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := router.Run(":" + port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}

func setupRouter(handler *api.Handler) *gin.Engine {
	// Set Gin mode based on environment
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware
	router.Use(logging.RequestID())
	router.Use(logging.JSONLogger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Serve uploaded files for local development
	router.Static("/uploads", "./uploads")

	// Health and readiness endpoints
	router.GET("/live", func(c *gin.Context) { c.Status(200) })
	router.GET("/ready", handler.Health)
	router.GET("/health", handler.Health)

	// API routes
	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/auth/login", handler.Login)

		// Public reads for the customer-facing menu
		apiGroup.GET("/categories", handler.GetCategories)
		apiGroup.GET("/products", handler.GetProducts)
		apiGroup.GET("/products/:id", handler.GetProduct)
		apiGroup.GET("/branches", handler.GetBranches)
		apiGroup.GET("/branding", handler.GetBranding)

		// Protected admin endpoints
		admin := apiGroup.Group("")
		admin.Use(api.AuthMiddleware(), api.AdminMiddleware())
		{
			admin.POST("/categories", handler.CreateCategory)
			admin.PUT("/categories/reorder", handler.ReorderCategories)
			admin.PUT("/categories/:id", handler.UpdateCategory)
			admin.DELETE("/categories/:id", handler.DeleteCategory)

			admin.POST("/products", handler.CreateProduct)
			admin.PUT("/products/reorder", handler.ReorderProducts)
			admin.PUT("/products/:id", handler.UpdateProduct)
			admin.DELETE("/products/:id", handler.DeleteProduct)

			admin.POST("/branches", handler.CreateBranch)
			admin.PUT("/branches/:id", handler.UpdateBranch)
			admin.DELETE("/branches/:id", handler.DeleteBranch)

			admin.PUT("/branding", handler.UpdateBranding)

			admin.POST("/uploads", handler.UploadImage)
		}
	}

	// Root endpoint for basic info
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "menu-service",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	return router
}

// corsMiddleware adds CORS headers to allow cross-origin requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
