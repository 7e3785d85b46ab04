package repository

import (
	"gorm.io/gorm"

	"restaurant_manager/internal/models"
)

type SaleRepository interface {
	Create(sale *models.Sale) error
	List(filter ListFilter) ([]models.Sale, int64, error)
}

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(sale *models.Sale) error {
	return r.db.Create(sale).Error
}

// List filters sales by customer-name substring, or by a same-day range on
// the bill date when the query was date-shaped.
func (r *saleRepository) List(filter ListFilter) ([]models.Sale, int64, error) {
	base := r.db.Model(&models.Sale{})
	if filter.ByDate {
		base = base.Where("bill_date BETWEEN ? AND ?", filter.DayStart, filter.DayEnd)
	} else if filter.Query != "" {
		base = base.Where("customer_name ILIKE ?", "%"+filter.Query+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sales []models.Sale
	err := base.Preload("PaymentMethod").
		Order("id asc").
		Offset(offset(filter.Page, filter.PageSize)).
		Limit(filter.PageSize).
		Find(&sales).Error
	return sales, total, err
}
