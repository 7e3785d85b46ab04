package migrations

import (
	"log"

	"gorm.io/gorm"

	"restaurant_manager/internal/models"
)

// SeedReferenceData inserts the read-only reference rows the application
// expects: units of measurement, payment methods, order types and states.
// FirstOrCreate keeps reruns idempotent.
func SeedReferenceData(db *gorm.DB) error {
	log.Println("Seeding reference data...")

	units := []models.UnitOfMeasurement{
		{ID: 1, Name: "Unit"},
		{ID: 2, Name: "Gram"},
		{ID: 3, Name: "Kilogram"},
		{ID: 4, Name: "Milliliter"},
		{ID: 5, Name: "Liter"},
	}
	for _, u := range units {
		if err := db.FirstOrCreate(&models.UnitOfMeasurement{}, u).Error; err != nil {
			return err
		}
	}

	paymentMethods := []models.PaymentMethod{
		{ID: models.PaymentMethodCash, Name: "Cash"},
		{ID: models.PaymentMethodCard, Name: "Card"},
		{ID: models.PaymentMethodSinpe, Name: "SINPE"},
	}
	for _, m := range paymentMethods {
		if err := db.FirstOrCreate(&models.PaymentMethod{}, m).Error; err != nil {
			return err
		}
	}

	orderTypes := []models.OrderType{
		{ID: models.OrderTypeTakeout, Name: "Takeout"},
		{ID: models.OrderTypeDineIn, Name: "Dine-in"},
	}
	for _, t := range orderTypes {
		if err := db.FirstOrCreate(&models.OrderType{}, t).Error; err != nil {
			return err
		}
	}

	states := []models.StateType{
		{ID: models.StatePending, Name: "Pending"},
		{ID: models.StateFinalized, Name: "Finalized"},
	}
	for _, s := range states {
		if err := db.FirstOrCreate(&models.StateType{}, s).Error; err != nil {
			return err
		}
	}

	return nil
}
