package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a sale header. It owns its detail lines and their ingredient
// flags exclusively: an edit deletes and reinserts the whole set. Orders are
// never hard-deleted, only marked inactive.
type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	Number          string          `json:"number" gorm:"uniqueIndex;not null"`
	CustomerName    string          `json:"customer_name" gorm:"not null;index"`
	PaymentMethodID uint            `json:"payment_method_id" gorm:"not null"`
	OrderTypeID     uint            `json:"order_type_id" gorm:"not null"`
	StateID         uint            `json:"state_id" gorm:"not null"`
	TotalPrice      decimal.Decimal `json:"total_price" gorm:"type:decimal(12,4);not null"`
	OrderDate       time.Time       `json:"order_date" gorm:"not null;index"`
	PaymentDate     *time.Time      `json:"payment_date"`
	Active          bool            `json:"active" gorm:"default:true"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	PaymentMethod *PaymentMethod `json:"payment_method,omitempty" gorm:"foreignKey:PaymentMethodID"`
	OrderType     *OrderType     `json:"order_type,omitempty" gorm:"foreignKey:OrderTypeID"`
	State         *StateType     `json:"state,omitempty" gorm:"foreignKey:StateID"`
	Details       []OrderDetail  `json:"details,omitempty" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderDetail is one product line on an order.
type OrderDetail struct {
	ID          uint `json:"id" gorm:"primaryKey"`
	OrderID     uint `json:"order_id" gorm:"not null;index"`
	ProductCode int  `json:"product_code" gorm:"not null"`
	Quantity    int  `json:"quantity" gorm:"not null"`

	Product     *Product          `json:"product,omitempty" gorm:"foreignKey:ProductCode;references:Code"`
	Ingredients []OrderIngredient `json:"ingredients,omitempty" gorm:"foreignKey:OrderDetailID"`
}

func (OrderDetail) TableName() string {
	return "order_details"
}

// OrderIngredient records whether a default recipe ingredient was kept or
// left out for one specific detail line. Unique per (detail, ingredient).
type OrderIngredient struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	OrderDetailID  uint `json:"order_detail_id" gorm:"not null;index;uniqueIndex:idx_detail_ingredient"`
	IngredientCode int  `json:"ingredient_code" gorm:"not null;uniqueIndex:idx_detail_ingredient"`
	Used           bool `json:"used" gorm:"not null;default:true"`
}

func (OrderIngredient) TableName() string {
	return "order_ingredients"
}
