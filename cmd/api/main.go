package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/handler"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/middleware"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/model"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/repository"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/service"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/ws"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/cache"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Product{},
		&model.RetailMargin{},
		&model.WholesaleMargin{},
		&model.Expense{},
		&model.Customer{},
		&model.Sale{},
		&model.ChangeHistory{},
		&model.User{},
	)

	// 3. Seed the back-office admin account
	userRepo := repository.NewUserRepo(db)
	seedAdmin(userRepo)

	// 4. Optional Redis cache for the storefront catalog
	if enabled, err := cache.Init(); err != nil {
		log.Printf("Warning: Redis unavailable, catalog cache disabled: %v", err)
	} else if enabled {
		log.Println("Catalog cache enabled")
	}

	// 5. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 6. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	retailMarginRepo := repository.NewRetailMarginRepo(db)
	wholesaleMarginRepo := repository.NewWholesaleMarginRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	historyRepo := repository.NewHistoryRepo(db)

	authService := service.NewAuthService(userRepo)
	catalogService := service.NewCatalogService(productRepo, db, wsHub)
	marginService := service.NewMarginService(productRepo, retailMarginRepo, wholesaleMarginRepo, historyRepo, wsHub)
	expenseService := service.NewExpenseService(expenseRepo)
	customerService := service.NewCustomerService(customerRepo, saleRepo)
	storefrontService := service.NewStorefrontService(productRepo, saleRepo)
	reportService := service.NewReportService(productRepo, saleRepo, expenseRepo)
	historyService := service.NewHistoryService(historyRepo)

	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	marginHandler := handler.NewMarginHandler(marginService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	customerHandler := handler.NewCustomerHandler(customerService)
	storefrontHandler := handler.NewStorefrontHandler(storefrontService)
	reportHandler := handler.NewReportHandler(reportService, historyService)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Amar Castanhas API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 8. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	// Storefront and login need no token
	api.Post("/auth/login", authHandler.Login)

	store := api.Group("/store")
	store.Get("/products", storefrontHandler.GetCatalog)
	store.Post("/checkout", storefrontHandler.Checkout)

	// ============ PROTECTED ROUTES ============
	// Everything below is the back-office, single admin account
	admin := api.Group("/admin", middleware.RequireAuth(userRepo))

	admin.Get("/overview", reportHandler.GetOverview)
	admin.Get("/history", reportHandler.GetHistory)

	admin.Get("/products", catalogHandler.GetProducts)
	admin.Post("/products", catalogHandler.CreateProduct)
	admin.Put("/products/:id", catalogHandler.UpdateProduct)
	admin.Delete("/products/:id", catalogHandler.DeleteProduct)
	admin.Put("/products/:id/active", catalogHandler.SetActive)
	admin.Put("/products/:id/stock", catalogHandler.SetInStock)
	admin.Post("/products/import", catalogHandler.ImportCSV)
	admin.Get("/products/export", catalogHandler.ExportCSV)

	admin.Get("/margins/retail", marginHandler.GetRetailMargins)
	admin.Put("/margins/retail/:id", marginHandler.SaveRetailMargin)
	admin.Post("/margins/retail/apply-all", marginHandler.ApplyGlobalRetailMargin)
	admin.Get("/margins/wholesale", marginHandler.GetWholesaleMargins)
	admin.Put("/margins/wholesale/:id", marginHandler.SaveWholesaleMargin)
	admin.Post("/margins/wholesale/apply-all", marginHandler.ApplyGlobalWholesaleMargins)

	admin.Get("/expenses", expenseHandler.GetExpenses)
	admin.Post("/expenses", expenseHandler.CreateExpense)
	admin.Put("/expenses/:id", expenseHandler.UpdateExpense)
	admin.Delete("/expenses/:id", expenseHandler.DeleteExpense)
	admin.Get("/expenses/summary", expenseHandler.GetSummary)
	admin.Get("/expenses/categories", expenseHandler.GetCategories)

	admin.Get("/customers", customerHandler.GetCustomers)
	admin.Post("/customers", customerHandler.CreateCustomer)
	admin.Put("/customers/:id", customerHandler.UpdateCustomer)
	admin.Put("/customers/:id/active", customerHandler.SetCustomerActive)
	admin.Delete("/customers/:id", customerHandler.DeleteCustomer)

	admin.Get("/sales", customerHandler.GetSales)
	admin.Post("/sales", customerHandler.CreateSale)
	admin.Delete("/sales/:id", customerHandler.DeleteSale)

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

	// 9. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin guarantees the single admin login exists on first boot.
func seedAdmin(userRepo repository.UserRepository) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	if err := service.SeedAdmin(userRepo, email, password, "Administrador"); err != nil {
		log.Printf("Warning: Failed to seed admin user: %v", err)
	} else {
		log.Printf("Admin account ready: %s", email)
	}
}
