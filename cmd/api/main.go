package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-stocktrack/internal/handler"
	"go-stocktrack/internal/middleware"
	"go-stocktrack/internal/model"
	"go-stocktrack/internal/policy"
	"go-stocktrack/internal/repository"
	"go-stocktrack/internal/service"
	"go-stocktrack/internal/ws"
	"go-stocktrack/pkg/database"
	"go-stocktrack/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func main() {
	// 1. Load env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	zlog := logger.New(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	// 2. Setup database
	db := database.ConnectDB()
	if err := db.AutoMigrate(&model.User{}, &model.Category{}, &model.Supplier{}, &model.Product{}); err != nil {
		zlog.Fatal().Err(err).Msg("auto migration failed")
	}

	// 3. Seed default admin user
	userRepo := repository.NewUserRepo(db)
	seedAdmin(userRepo, zlog)

	// 4. Websocket hub for realtime stock events
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency injection (wiring layers)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	productRepo := repository.NewProductRepo(db)
	reportRepo := repository.NewReportRepo(db)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	invService := service.NewInventoryService(productRepo, categoryRepo, supplierRepo, wsHub)
	catalogService := service.NewCatalogService(categoryRepo, supplierRepo, productRepo, db, wsHub)
	reportService := service.NewReportService(reportRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(invService)
	categoryHandler := handler.NewCategoryHandler(catalogService)
	supplierHandler := handler.NewSupplierHandler(catalogService)
	dashHandler := handler.NewDashboardHandler(reportService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "StockTrack API v1.0",
	})

	app.Use(fiberlogger.New()) // Request logging
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth())

	// Products: everyone views, Staff+Admin create/update, Admin deletes
	protected.Get("/products", middleware.RequirePermission(policy.ActionProductView), productHandler.GetProducts)
	protected.Get("/products/:id", middleware.RequirePermission(policy.ActionProductView), productHandler.GetProduct)
	protected.Post("/products", middleware.RequirePermission(policy.ActionProductCreate), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePermission(policy.ActionProductUpdate), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequirePermission(policy.ActionProductDelete), productHandler.DeleteProduct)

	// Categories: Admin-only mutation, deletion cascades
	protected.Get("/categories", middleware.RequirePermission(policy.ActionProductView), categoryHandler.GetCategories)
	protected.Post("/categories", middleware.RequirePermission(policy.ActionCategoryManage), categoryHandler.CreateCategory)
	protected.Put("/categories/:id", middleware.RequirePermission(policy.ActionCategoryManage), categoryHandler.UpdateCategory)
	protected.Delete("/categories/:id", middleware.RequirePermission(policy.ActionCategoryManage), categoryHandler.DeleteCategory)

	// Suppliers: Admin-only mutation, deletion cascades
	protected.Get("/suppliers", middleware.RequirePermission(policy.ActionProductView), supplierHandler.GetSuppliers)
	protected.Post("/suppliers", middleware.RequirePermission(policy.ActionSupplierManage), supplierHandler.CreateSupplier)
	protected.Put("/suppliers/:id", middleware.RequirePermission(policy.ActionSupplierManage), supplierHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", middleware.RequirePermission(policy.ActionSupplierManage), supplierHandler.DeleteSupplier)

	// User management: Admin only
	protected.Get("/users", middleware.RequirePermission(policy.ActionUserManage), userHandler.GetUsers)
	protected.Get("/users/:id", middleware.RequirePermission(policy.ActionUserManage), userHandler.GetUser)
	protected.Post("/users", middleware.RequirePermission(policy.ActionUserManage), userHandler.CreateUser)
	protected.Put("/users/:id/role", middleware.RequirePermission(policy.ActionUserManage), userHandler.UpdateUserRole)
	protected.Delete("/users/:id", middleware.RequirePermission(policy.ActionUserManage), userHandler.DeleteUser)

	// Dashboard analytics
	protected.Get("/reports/dashboard-stats", middleware.RequirePermission(policy.ActionDashboardView), dashHandler.GetDashboardStats)

	// Websocket route for realtime stock events
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			zlog.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Fatal().Err(err).Msg("server forced to shutdown")
	}

	zlog.Info().Msg("server exited")
}

// seedAdmin creates the default admin account if it doesn't exist yet
func seedAdmin(userRepo repository.UserRepository, zlog zerolog.Logger) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}

	_, err := userRepo.FindByEmail(email)
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		// A transient store failure is not "admin absent"
		zlog.Warn().Err(err).Msg("failed to look up admin user, skipping seed")
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	admin := &model.User{
		Email:    email,
		FullName: "Administrator",
		Role:     model.RoleAdmin,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword(password); err != nil {
		zlog.Warn().Err(err).Msg("failed to hash admin password")
		return
	}

	if err := userRepo.Create(admin); err != nil {
		zlog.Warn().Err(err).Msg("failed to create admin user")
		return
	}

	zlog.Info().Str("email", email).Msg("admin user created")
}
