package main

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"restaurant_manager/internal/config"
	"restaurant_manager/internal/database"
	"restaurant_manager/internal/migrations"
	"restaurant_manager/internal/models"
)

// Seeds a development database with reference data and a small demo catalog.
func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.SeedReferenceData(db); err != nil {
		log.Fatal("Failed to seed reference data:", err)
	}

	categories := []models.Category{
		{Code: 1, Name: "Fast Food", Active: true},
		{Code: 2, Name: "Italian", Active: true},
		{Code: 3, Name: "Drinks", Active: true},
	}
	for _, c := range categories {
		if err := db.FirstOrCreate(&models.Category{}, c).Error; err != nil {
			log.Fatal("Failed to seed categories:", err)
		}
	}

	ingredients := []models.Ingredient{
		{Code: 1, Name: "Beef patty", UnitID: 1, Quantity: decimal.NewFromInt(50), Active: true},
		{Code: 2, Name: "Cheese", UnitID: 2, Quantity: decimal.NewFromInt(2000), Active: true},
		{Code: 3, Name: "Tomato sauce", UnitID: 4, Quantity: decimal.NewFromInt(5000), Active: true},
		{Code: 4, Name: "Lettuce", UnitID: 2, Quantity: decimal.NewFromInt(1500), Active: true},
	}
	for _, i := range ingredients {
		if err := db.FirstOrCreate(&models.Ingredient{}, i).Error; err != nil {
			log.Fatal("Failed to seed ingredients:", err)
		}
	}

	products := []models.Product{
		{Code: 1, Name: "Hamburger", CategoryCode: 1, Price: decimal.NewFromInt(3500), Quantity: 40, Active: true},
		{Code: 2, Name: "Pizza", CategoryCode: 2, Price: decimal.NewFromInt(4500), Quantity: 25, Active: true},
		{Code: 3, Name: "Cola", CategoryCode: 3, Price: decimal.NewFromInt(800), Quantity: 100, Active: true},
	}
	for _, p := range products {
		if err := db.FirstOrCreate(&models.Product{}, p).Error; err != nil {
			log.Fatal("Failed to seed products:", err)
		}
	}

	fmt.Println("Database initialized successfully!")
}
