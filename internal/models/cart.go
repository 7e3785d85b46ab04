package models

import (
	"github.com/shopspring/decimal"
)

// Cart is the staging area for an order being composed. It lives in Redis
// keyed by session, so it survives page reloads but is scoped to one
// in-progress order per user session.
type Cart struct {
	CustomerName    string     `json:"customer_name"`
	PaymentMethodID uint       `json:"payment_method_id"`
	OrderTypeID     uint       `json:"order_type_id"`
	Lines           []CartLine `json:"lines"`
}

// CartLine is one staged product with its ingredient customization.
type CartLine struct {
	ProductCode int              `json:"product_code"`
	Name        string           `json:"name"`
	Price       decimal.Decimal  `json:"price"`
	Quantity    int              `json:"quantity"`
	Ingredients []CartIngredient `json:"ingredients"`
}

// CartIngredient is one include/exclude choice for a recipe ingredient.
type CartIngredient struct {
	IngredientCode int  `json:"ingredient_code"`
	Included       bool `json:"included"`
}

// AddProduct merges into an existing line by incrementing its quantity, with
// the new customization replacing the old one when provided. Unknown
// products are appended as a new line.
func (c *Cart) AddProduct(code int, name string, price decimal.Decimal, quantity int, ingredients []CartIngredient) {
	for i := range c.Lines {
		if c.Lines[i].ProductCode == code {
			c.Lines[i].Quantity += quantity
			if ingredients != nil {
				c.Lines[i].Ingredients = ingredients
			}
			return
		}
	}
	if ingredients == nil {
		ingredients = []CartIngredient{}
	}
	c.Lines = append(c.Lines, CartLine{
		ProductCode: code,
		Name:        name,
		Price:       price,
		Quantity:    quantity,
		Ingredients: ingredients,
	})
}

// RemoveProduct drops the staged line entirely.
func (c *Cart) RemoveProduct(code int) {
	lines := c.Lines[:0]
	for _, line := range c.Lines {
		if line.ProductCode != code {
			lines = append(lines, line)
		}
	}
	c.Lines = lines
}

// Personalize replaces the ingredient set of an already-staged line. It
// reports false when the product is not staged.
func (c *Cart) Personalize(code int, ingredients []CartIngredient) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductCode == code {
			c.Lines[i].Ingredients = ingredients
			return true
		}
	}
	return false
}

// Total is the staged sum of price times quantity across all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
