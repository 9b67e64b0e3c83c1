package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-suministros-api/internal/handler"
	"go-suministros-api/internal/middleware"
	"go-suministros-api/internal/model"
	"go-suministros-api/internal/notifier"
	"go-suministros-api/internal/repository"
	"go-suministros-api/internal/service"
	"go-suministros-api/internal/ws"
	"go-suministros-api/pkg/database"
	applogger "go-suministros-api/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Logger
	zlog, err := applogger.Init(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer zlog.Sync()

	// 3. Setup Database
	db := database.ConnectDB()
	if err := db.AutoMigrate(&model.User{}, &model.Product{}, &model.Supplier{}, &model.Sale{}); err != nil {
		zlog.Fatal("auto-migration failed", zap.Error(err))
	}

	// 4. WebSocket Hub for dashboard events
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	userRepo := repository.NewUserRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	mailer := notifier.NewMailer(notifier.MailConfigFromEnv())

	authService := service.NewAuthService(userRepo, db)
	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(productRepo, supplierRepo, wsHub)
	supplierService := service.NewSupplierService(supplierRepo)
	saleService := service.NewSaleService(productRepo, saleRepo, db, mailer, wsHub, zlog)
	reportService := service.NewReportService(productRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(catalogService, reportService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	saleHandler := handler.NewSaleHandler(saleService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Suministros Informaticos API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	// Authentication only; role checks live inside the services.
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Product routes. Fixed paths registered before the :id wildcard.
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/alerts", productHandler.GetStockAlerts)
	protected.Get("/products/statistics", productHandler.GetStatistics)
	protected.Get("/products/report", productHandler.GetProductReport)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)

	// Supplier routes
	protected.Get("/suppliers", supplierHandler.GetSuppliers)
	protected.Get("/suppliers/:id", supplierHandler.GetSupplier)
	protected.Post("/suppliers", supplierHandler.CreateSupplier)
	protected.Put("/suppliers/:id", supplierHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", supplierHandler.DeleteSupplier)

	// Sale routes
	protected.Post("/sales", saleHandler.Purchase)
	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/mine", saleHandler.GetMySales)

	// User management routes
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Put("/users/:id", userHandler.UpdateUser)

	// WebSocket Route
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

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Fatal("server forced to shutdown")
	}

	zlog.Info("server exited")
}
