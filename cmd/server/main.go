package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/machzaul/Tubes-Pemweb/config"
	"github.com/machzaul/Tubes-Pemweb/internal/handler"
	"github.com/machzaul/Tubes-Pemweb/internal/middleware"
	"github.com/machzaul/Tubes-Pemweb/internal/models"
	"github.com/machzaul/Tubes-Pemweb/internal/service"
	"github.com/machzaul/Tubes-Pemweb/pkg/database"
)

func main() {
	// 1. Load Configuration
	config.LoadConfig()

	// 2. Connect to Database
	database.Connect()

	// 3. Auto-Migrate Models
	log.Println("Running migrations...")
	err := database.DB.AutoMigrate(
		&models.Product{},
		&models.CustomerInfo{},
		&models.Order{},
		&models.OrderItem{},
		&models.Admin{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully.")

	// 3a. Seed Data
	database.SeedAdmin()
	if config.AppConfig.Defaults.SeedCatalog {
		database.SeedCatalog()
	}

	// 4. Initialize Router
	r := gin.Default()

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 5. Setup Routes
	orderService := service.NewOrderService(database.DB)

	productHandler := &handler.ProductHandler{}
	customerHandler := &handler.CustomerHandler{}
	orderHandler := handler.NewOrderHandler(orderService)
	authHandler := &handler.AuthHandler{}
	siteHandler := &handler.SiteHandler{}

	api := r.Group("/api")
	{
		// Public storefront
		api.GET("/site", siteHandler.GetSiteInfo)
		api.GET("/products", productHandler.ListProducts)
		api.GET("/products/:id", productHandler.GetProduct)

		// Checkout and order tracking
		api.POST("/orders", orderHandler.CreateOrder)
		api.GET("/track/:orderId", orderHandler.GetOrderByOrderID)

		// Admin auth
		api.POST("/admin/login", authHandler.Login)
		api.POST("/admin/logout", authHandler.Logout)
		api.POST("/admin/create", authHandler.CreateAdmin)
	}

	// Admin-protected management surface
	admin := r.Group("/api")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.GET("/admin/profile", authHandler.GetProfile)

		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)

		admin.GET("/customers", customerHandler.ListCustomers)
		admin.GET("/customers/:id", customerHandler.GetCustomer)
		admin.POST("/customers", customerHandler.CreateCustomer)
		admin.PUT("/customers/:id", customerHandler.UpdateCustomer)
		admin.DELETE("/customers/:id", customerHandler.DeleteCustomer)

		admin.GET("/orders", orderHandler.ListOrders)
		admin.GET("/orders/:id", orderHandler.GetOrder)
		admin.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
		admin.DELETE("/orders/:id", orderHandler.DeleteOrder)
	}

	// 6. Start Server
	port := config.AppConfig.Server.Port
	log.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
