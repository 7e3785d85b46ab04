package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddProduct(t *testing.T) {
	cart := &Cart{}

	cart.AddProduct(1, "Hamburger", decimal.NewFromInt(3500), 2, nil)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Empty(t, cart.Lines[0].Ingredients)

	// Re-adding the same product merges by incrementing the quantity.
	cart.AddProduct(1, "Hamburger", decimal.NewFromInt(3500), 1, nil)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)

	// A customization on a merge replaces the previous one.
	custom := []CartIngredient{{IngredientCode: 4, Included: false}}
	cart.AddProduct(1, "Hamburger", decimal.NewFromInt(3500), 1, custom)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 4, cart.Lines[0].Quantity)
	assert.Equal(t, custom, cart.Lines[0].Ingredients)

	// A merge without customization keeps the existing one.
	cart.AddProduct(1, "Hamburger", decimal.NewFromInt(3500), 1, nil)
	assert.Equal(t, custom, cart.Lines[0].Ingredients)

	cart.AddProduct(3, "Cola", decimal.NewFromInt(800), 1, nil)
	assert.Len(t, cart.Lines, 2)
}

func TestCartRemoveProduct(t *testing.T) {
	cart := &Cart{}
	cart.AddProduct(1, "Hamburger", decimal.NewFromInt(3500), 1, nil)
	cart.AddProduct(3, "Cola", decimal.NewFromInt(800), 2, nil)

	cart.RemoveProduct(1)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].ProductCode)

	// Removing something not staged is a no-op.
	cart.RemoveProduct(99)
	assert.Len(t, cart.Lines, 1)
}

func TestCartPersonalize(t *testing.T) {
	cart := &Cart{}
	cart.AddProduct(1, "Hamburger", decimal.NewFromInt(3500), 1, []CartIngredient{
		{IngredientCode: 2, Included: true},
		{IngredientCode: 4, Included: true},
	})

	replaced := []CartIngredient{{IngredientCode: 2, Included: true}, {IngredientCode: 4, Included: false}}
	assert.True(t, cart.Personalize(1, replaced))
	assert.Equal(t, replaced, cart.Lines[0].Ingredients)

	assert.False(t, cart.Personalize(99, replaced))
}

func TestCartTotal(t *testing.T) {
	cart := &Cart{}
	assert.True(t, cart.Total().IsZero())

	cart.AddProduct(1, "Hamburger", decimal.NewFromInt(3500), 2, nil)
	cart.AddProduct(3, "Cola", decimal.NewFromInt(800), 3, nil)
	assert.True(t, cart.Total().Equal(decimal.NewFromInt(9400)))
}
