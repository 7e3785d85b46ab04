package repository

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant_manager/internal/models"
)

type OrderRepository interface {
	Create(customerName string, paymentMethodID, orderTypeID uint, total decimal.Decimal, details []models.OrderDetail) (*models.Order, error)
	GetByID(id uint) (*models.Order, error)
	List(filter ListFilter) ([]models.Order, int64, error)
	Replace(orderID uint, customerName string, paymentMethodID, orderTypeID uint, total decimal.Decimal, details []models.OrderDetail) error
	UpdateState(orderID, stateID uint) error
	Deactivate(orderID uint) error
}

type orderRepository struct {
	db     *gorm.DB
	header OrderHeaderCreator
}

func NewOrderRepository(db *gorm.DB, header OrderHeaderCreator) OrderRepository {
	return &orderRepository{db: db, header: header}
}

// Create allocates the header through the injected creator and inserts every
// detail line with its ingredient flags, all inside one transaction. Any
// failure rolls the whole order back; readers never see a headless or
// partial order.
func (r *orderRepository) Create(customerName string, paymentMethodID, orderTypeID uint, total decimal.Decimal, details []models.OrderDetail) (*models.Order, error) {
	var order *models.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = r.header.CreateHeader(tx, customerName, paymentMethodID, orderTypeID)
		if err != nil {
			return fmt.Errorf("failed to create order header: %w", err)
		}

		if err := insertDetails(tx, order.ID, details); err != nil {
			return err
		}

		order.TotalPrice = total
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("total_price", total).Error; err != nil {
			return fmt.Errorf("failed to set order total: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func insertDetails(tx *gorm.DB, orderID uint, details []models.OrderDetail) error {
	for i := range details {
		ingredients := details[i].Ingredients
		details[i].ID = 0
		details[i].OrderID = orderID
		details[i].Ingredients = nil
		if err := tx.Create(&details[i]).Error; err != nil {
			return fmt.Errorf("failed to create order detail: %w", err)
		}

		// De-duplicate by ingredient code, last write wins, then skip any
		// code already recorded for this detail.
		byCode := make(map[int]models.OrderIngredient, len(ingredients))
		order := make([]int, 0, len(ingredients))
		for _, ing := range ingredients {
			if _, seen := byCode[ing.IngredientCode]; !seen {
				order = append(order, ing.IngredientCode)
			}
			byCode[ing.IngredientCode] = ing
		}
		for _, code := range order {
			ing := byCode[code]
			ing.ID = 0
			ing.OrderDetailID = details[i].ID
			if err := tx.Create(&ing).Error; err != nil {
				return fmt.Errorf("failed to create order ingredient: %w", err)
			}
		}
		details[i].Ingredients = ingredients
	}
	return nil
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Details").
		Preload("Details.Product").
		Preload("Details.Ingredients").
		Preload("PaymentMethod").
		Preload("OrderType").
		Preload("State").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List filters active orders by customer name or order-type name, or by a
// same-day range on the order date when the query was date-shaped.
func (r *orderRepository) List(filter ListFilter) ([]models.Order, int64, error) {
	base := r.db.Model(&models.Order{}).
		Joins("LEFT JOIN order_types ON order_types.id = orders.order_type_id").
		Where("orders.active = ?", true)
	if filter.ByDate {
		base = base.Where("orders.order_date BETWEEN ? AND ?", filter.DayStart, filter.DayEnd)
	} else if filter.Query != "" {
		like := "%" + filter.Query + "%"
		base = base.Where("orders.customer_name ILIKE ? OR order_types.name ILIKE ?", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := base.Preload("PaymentMethod").
		Preload("OrderType").
		Preload("State").
		Order("orders.id asc").
		Offset(offset(filter.Page, filter.PageSize)).
		Limit(filter.PageSize).
		Find(&orders).Error
	return orders, total, err
}

// Replace is the destructive full-replace edit: delete every existing detail
// and ingredient flag, update the header, reinsert the submitted state. One
// transaction end to end.
func (r *orderRepository) Replace(orderID uint, customerName string, paymentMethodID, orderTypeID uint, total decimal.Decimal, details []models.OrderDetail) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}

		if err := tx.Where(
			"order_detail_id IN (?)",
			tx.Model(&models.OrderDetail{}).Select("id").Where("order_id = ?", orderID),
		).Delete(&models.OrderIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to delete order ingredients: %w", err)
		}
		if err := tx.Where("order_id = ?", orderID).
			Delete(&models.OrderDetail{}).Error; err != nil {
			return fmt.Errorf("failed to delete order details: %w", err)
		}

		now := time.Now()
		if err := tx.Model(&models.Order{}).Where("id = ?", orderID).
			Updates(map[string]interface{}{
				"customer_name":     customerName,
				"payment_method_id": paymentMethodID,
				"order_type_id":     orderTypeID,
				"total_price":       total,
				"payment_date":      &now,
			}).Error; err != nil {
			return fmt.Errorf("failed to update order header: %w", err)
		}

		return insertDetails(tx, orderID, details)
	})
}

func (r *orderRepository) UpdateState(orderID, stateID uint) error {
	result := r.db.Model(&models.Order{}).Where("id = ?", orderID).Update("state_id", stateID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) Deactivate(orderID uint) error {
	return r.db.Model(&models.Order{}).Where("id = ?", orderID).Update("active", false).Error
}
