package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable menu item. Code is the user-assigned business key.
// A product owns its recipe lines exclusively; edits replace the whole set.
type Product struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Code         int             `json:"code" gorm:"uniqueIndex;not null"`
	Name         string          `json:"name" gorm:"not null;index"`
	Description  string          `json:"description" gorm:"type:text"`
	CategoryCode int             `json:"category_code" gorm:"not null"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity     int             `json:"quantity" gorm:"not null;default:0"`
	Active       bool            `json:"active" gorm:"default:true"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	Recipe []ProductIngredient `json:"recipe,omitempty" gorm:"foreignKey:ProductCode;references:Code"`
}

func (Product) TableName() string {
	return "products"
}

// ProductIngredient is one recipe line: the amount of an ingredient consumed
// per unit of product sold. (product, ingredient) pairs are unique.
type ProductIngredient struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	ProductCode    int             `json:"product_code" gorm:"not null;uniqueIndex:idx_product_ingredient"`
	IngredientCode int             `json:"ingredient_code" gorm:"not null;uniqueIndex:idx_product_ingredient"`
	Quantity       decimal.Decimal `json:"quantity" gorm:"type:decimal(10,4);not null"`
	UnitID         uint            `json:"unit_id" gorm:"not null"`
	CreatedAt      time.Time       `json:"created_at"`

	Ingredient *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientCode;references:Code"`
}

func (ProductIngredient) TableName() string {
	return "product_ingredients"
}
