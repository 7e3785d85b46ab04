package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"restaurant_manager/internal/config"
	"restaurant_manager/internal/database"
	"restaurant_manager/internal/handlers"
	"restaurant_manager/internal/migrations"
	"restaurant_manager/internal/redis"
	"restaurant_manager/internal/repository"
	"restaurant_manager/internal/services"
	"restaurant_manager/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Seed the reference tables the forms and orders depend on
	if err := migrations.SeedReferenceData(db); err != nil {
		log.Fatal("Failed to seed reference data:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	productRepo := repository.NewProductRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	orderRepo := repository.NewOrderRepository(db, repository.NewOrderHeaderCreator())
	boxRepo := repository.NewBoxRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// Initialize services
	categoryService := services.NewCategoryService(categoryRepo, redisClient, zapLogger)
	ingredientService := services.NewIngredientService(ingredientRepo, referenceRepo, redisClient, zapLogger)
	productService := services.NewProductService(productRepo, categoryRepo, ingredientRepo, redisClient, zapLogger)
	orderService := services.NewOrderService(orderRepo, productRepo, referenceRepo, saleRepo, redisClient, zapLogger)
	cartService := services.NewCartService(redisClient, productRepo, orderService,
		time.Duration(cfg.CartTTL)*time.Second, zapLogger)
	boxService := services.NewBoxService(boxRepo, repository.NewBoxProcedures(db), redisClient, zapLogger)
	reportService := services.NewReportService(saleRepo, redisClient, zapLogger)

	// Initialize handlers
	format := handlers.NewFormatter(cfg.CurrencySymbol)
	catalogHandler := handlers.NewCatalogHandler(categoryService, ingredientService, productService, referenceRepo, cfg.PageSize)
	orderHandler := handlers.NewOrderHandler(orderService, cartService, format, cfg.PageSize)
	boxHandler := handlers.NewBoxHandler(boxService, format, cfg.PageSize)
	reportHandler := handlers.NewReportHandler(reportService, format, cfg.PageSize)

	// Setup routes
	router := gin.New()
	router.Use(handlers.RequestLogger(zapLogger), gin.Recovery())

	api := router.Group("/api")
	{
		api.GET("/categories", catalogHandler.ListCategories)
		api.POST("/categories", catalogHandler.CreateCategory)
		api.GET("/categories/:code", catalogHandler.GetCategory)
		api.PUT("/categories/:code", catalogHandler.UpdateCategory)
		api.DELETE("/categories/:code", catalogHandler.DeactivateCategory)

		api.GET("/ingredients", catalogHandler.ListIngredients)
		api.POST("/ingredients", catalogHandler.CreateIngredient)
		api.GET("/ingredients/:code", catalogHandler.GetIngredient)
		api.PUT("/ingredients/:code", catalogHandler.UpdateIngredient)
		api.DELETE("/ingredients/:code", catalogHandler.DeactivateIngredient)

		api.GET("/products", catalogHandler.ListProducts)
		api.POST("/products", catalogHandler.CreateProduct)
		api.GET("/products/:code", catalogHandler.GetProduct)
		api.PUT("/products/:code", catalogHandler.UpdateProduct)
		api.DELETE("/products/:code", catalogHandler.DeactivateProduct)
		api.GET("/products/:code/recipe", catalogHandler.GetRecipe)
		api.PUT("/products/:code/recipe", catalogHandler.SetRecipe)

		api.GET("/units", catalogHandler.ListUnits)
		api.GET("/payment-methods", catalogHandler.ListPaymentMethods)
		api.GET("/order-types", catalogHandler.ListOrderTypes)
		api.GET("/states", catalogHandler.ListStates)

		api.GET("/orders", orderHandler.List)
		api.POST("/orders", orderHandler.Create)
		api.GET("/orders/:id", orderHandler.Get)
		api.PUT("/orders/:id", orderHandler.Update)
		api.PUT("/orders/:id/state", orderHandler.SetState)
		api.DELETE("/orders/:id", orderHandler.Deactivate)

		api.GET("/cart/:session_id", orderHandler.GetCart)
		api.POST("/cart/:session_id/products", orderHandler.AddCartProduct)
		api.DELETE("/cart/:session_id/products/:code", orderHandler.RemoveCartProduct)
		api.PUT("/cart/:session_id/products/:code/ingredients", orderHandler.PersonalizeCartProduct)
		api.POST("/cart/:session_id/submit", orderHandler.SubmitCart)

		api.GET("/boxes", boxHandler.History)
		api.GET("/boxes/today", boxHandler.Today)
		api.POST("/boxes/open", boxHandler.Open)
		api.POST("/boxes/:id/close", boxHandler.Close)

		api.GET("/reports/sales", reportHandler.ListSales)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
