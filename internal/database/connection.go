package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"restaurant_manager/internal/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	// Configure GORM. TranslateError turns unique-violation errors from the
	// driver into gorm.ErrDuplicatedKey so services can tell duplicates apart.
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(databaseURL), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto migrate all models
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Constraints AutoMigrate cannot express
	if err := createIndexes(db); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database connected and migrated successfully")
	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.UnitOfMeasurement{},
		&models.PaymentMethod{},
		&models.OrderType{},
		&models.StateType{},
		&models.Ingredient{},
		&models.Product{},
		&models.ProductIngredient{},
		&models.Order{},
		&models.OrderDetail{},
		&models.OrderIngredient{},
		&models.Box{},
		&models.Sale{},
	)
}

// createIndexes adds the partial unique index that closes the race window on
// "one open box per calendar day": two concurrent opens cannot both commit.
func createIndexes(db *gorm.DB) error {
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_open_box_per_day
		 ON boxes ((opened_at::date))
		 WHERE closed_at IS NULL`,
	).Error
}
