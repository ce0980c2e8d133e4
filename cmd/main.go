package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"librostock/internal/handlers"
	"librostock/internal/jobs"
	"librostock/internal/middleware"
	"librostock/internal/repositories"
	"librostock/internal/services"
	"librostock/internal/sessions"
	"librostock/pkg/database"
)

const version = "1.0.0"

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
	exportBucket    = "librostock-exports"
)

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(context.Background(), pool); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret, sessions will not survive restarts")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	// Create repositories
	bookRepo := repositories.NewBookRepo(pool)
	inventoryRepo := repositories.NewInventoryRepo(pool)
	movementRepo := repositories.NewMovementRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	posRepo := repositories.NewPointOfSaleRepo(pool)

	// Create session store
	sessionStore := sessions.NewRedisStore(redisAddr, redisPassword, redisDB)

	// Create services
	bookSvc := services.NewBookService(bookRepo)
	inventorySvc := services.NewInventoryService(pool, inventoryRepo, movementRepo, bookRepo, userRepo)
	userSvc := services.NewUserService(userRepo, posRepo)
	posSvc := services.NewPointOfSaleService(posRepo)
	authSvc := services.NewAuthService(userRepo, sessionStore, jwtSecret, accessTokenTTL, refreshTokenTTL)
	exportSvc := services.NewExportService(movementRepo, minioSvc, exportBucket)

	if err := userSvc.EnsureAdminUser(context.Background()); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// Create handlers
	bookHandlers := handlers.NewBookHandlers(bookSvc)
	inventoryHandlers := handlers.NewInventoryHandlers(inventorySvc)
	movementHandlers := handlers.NewMovementHandlers(inventorySvc, exportSvc)
	userHandlers := handlers.NewUserHandlers(userSvc)
	posHandlers := handlers.NewPointOfSaleHandlers(posSvc)
	authHandlers := handlers.NewAuthHandlers(authSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, sessionStore)

	// Background jobs
	scheduler, err := jobs.NewScheduler(inventorySvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)

	// API routes
	v1 := e.Group("/v1")

	// Authentication routes (no JWT required)
	auth := v1.Group("/auth")
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.POST("/logout", authHandlers.Logout)

	// Protected routes
	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(middleware.JWTConfig(jwtSecret)))

	// Book routes
	protected.GET("/libros", bookHandlers.ListBooks)
	protected.POST("/libros", bookHandlers.CreateBook)
	protected.GET("/libros/:id", bookHandlers.GetBook)
	protected.PATCH("/libros/:id", bookHandlers.PatchBook)
	protected.DELETE("/libros/:id", bookHandlers.DeleteBook, middleware.RequireAdmin())

	// Inventory routes
	protected.GET("/inventario", inventoryHandlers.ListInventory)
	protected.GET("/inventario/stock-bajo", inventoryHandlers.LowStock)
	protected.POST("/inventario/:libro_id", inventoryHandlers.CreateInventory)
	protected.GET("/inventario/:libro_id", inventoryHandlers.GetStock)
	protected.POST("/inventario/:libro_id/ajustar", inventoryHandlers.AdjustStock)
	protected.PUT("/inventario/:libro_id/fijar", inventoryHandlers.SetStock)

	// Movement routes
	protected.GET("/movimientos", movementHandlers.ListMovements)
	protected.POST("/movimientos", movementHandlers.CreateMovement)
	protected.POST("/movimientos/export", movementHandlers.ExportMovements)

	// User routes (admin only)
	users := protected.Group("/usuarios", middleware.RequireAdmin())
	users.GET("", userHandlers.ListUsers)
	users.POST("", userHandlers.CreateUser)
	users.GET("/:id", userHandlers.GetUser)
	users.PATCH("/:id", userHandlers.PatchUser)
	users.DELETE("/:id", userHandlers.DeleteUser)

	// Point of sale routes
	protected.GET("/puntos-venta", posHandlers.ListPointsOfSale)
	protected.POST("/puntos-venta", posHandlers.CreatePointOfSale, middleware.RequireAdmin())
	protected.GET("/puntos-venta/:id", posHandlers.GetPointOfSale)
	protected.PATCH("/puntos-venta/:id", posHandlers.PatchPointOfSale, middleware.RequireAdmin())
	protected.DELETE("/puntos-venta/:id", posHandlers.DeletePointOfSale, middleware.RequireAdmin())

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Librostock server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
