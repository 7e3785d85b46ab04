package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient is a raw material consumed by product recipes. Quantity is the
// on-hand stock and allows decimals for units like kg or liters.
type Ingredient struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Code      int             `json:"code" gorm:"uniqueIndex;not null"`
	Name      string          `json:"name" gorm:"not null;index"`
	UnitID    uint            `json:"unit_id" gorm:"not null"`
	Quantity  decimal.Decimal `json:"quantity" gorm:"type:decimal(10,4);not null;default:0"`
	Active    bool            `json:"active" gorm:"default:true"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Unit *UnitOfMeasurement `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
