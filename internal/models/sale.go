package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the billing record written when an order is finalized. It feeds
// the sales report and the box-closing totals.
type Sale struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	OrderID         uint            `json:"order_id" gorm:"not null;index"`
	CustomerName    string          `json:"customer_name" gorm:"not null;index"`
	PaymentMethodID uint            `json:"payment_method_id" gorm:"not null"`
	BillDate        time.Time       `json:"bill_date" gorm:"not null;index"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	CreatedAt       time.Time       `json:"created_at"`

	PaymentMethod *PaymentMethod `json:"payment_method,omitempty" gorm:"foreignKey:PaymentMethodID"`
}

func (Sale) TableName() string {
	return "sales"
}
