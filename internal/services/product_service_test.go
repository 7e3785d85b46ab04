package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"restaurant_manager/internal/models"
)

func newProductFixture() (ProductService, *fakeProductRepo) {
	products := newFakeProductRepo()
	categories := newFakeCategoryRepo()
	ingredients := newFakeIngredientRepo()

	_ = categories.Create(&models.Category{Code: 1, Name: "Fast Food", Active: true})
	_ = ingredients.Create(&models.Ingredient{Code: 1, Name: "Beef patty", UnitID: 1, Active: true})
	_ = ingredients.Create(&models.Ingredient{Code: 2, Name: "Cheese", UnitID: 2, Active: true})

	svc := NewProductService(products, categories, ingredients, newFakeCache(), zap.NewNop())
	return svc, products
}

func productInput(code int) ProductInput {
	return ProductInput{
		Code:         code,
		Name:         "Hamburger",
		CategoryCode: 1,
		Price:        decimal.NewFromInt(3500),
		Quantity:     40,
	}
}

func TestProductCreateResolvesRecipeUnits(t *testing.T) {
	svc, _ := newProductFixture()

	product, err := svc.Create(productInput(1), []RecipeLineInput{
		{IngredientCode: 1, Quantity: decimal.NewFromInt(1)},
		{IngredientCode: 2, Quantity: decimal.NewFromInt(2)},
	})
	require.NoError(t, err)
	require.Len(t, product.Recipe, 2)

	// Units come from the linked ingredients, never from the caller.
	assert.EqualValues(t, 1, product.Recipe[0].UnitID)
	assert.EqualValues(t, 2, product.Recipe[1].UnitID)
}

func TestProductCreateMissingCategory(t *testing.T) {
	svc, _ := newProductFixture()

	input := productInput(1)
	input.CategoryCode = 99
	_, err := svc.Create(input, nil)
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestProductCreateMissingIngredient(t *testing.T) {
	svc, _ := newProductFixture()

	_, err := svc.Create(productInput(1), []RecipeLineInput{
		{IngredientCode: 99, Quantity: decimal.NewFromInt(1)},
	})
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestProductCreateDuplicate(t *testing.T) {
	svc, _ := newProductFixture()

	_, err := svc.Create(productInput(1), nil)
	require.NoError(t, err)

	_, err = svc.Create(productInput(1), nil)
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestProductCreateValidation(t *testing.T) {
	svc, _ := newProductFixture()

	input := productInput(1)
	input.Price = decimal.NewFromInt(-1)
	_, err := svc.Create(input, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(productInput(1), []RecipeLineInput{
		{IngredientCode: 1, Quantity: decimal.NewFromInt(-1)},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProductRecipeDuplicateLinesCollapseToLast(t *testing.T) {
	svc, _ := newProductFixture()

	product, err := svc.Create(productInput(1), []RecipeLineInput{
		{IngredientCode: 1, Quantity: decimal.NewFromInt(1)},
		{IngredientCode: 1, Quantity: decimal.NewFromInt(3)},
	})
	require.NoError(t, err)
	require.Len(t, product.Recipe, 1)
	assert.Equal(t, 1, product.Recipe[0].IngredientCode)
	assert.True(t, product.Recipe[0].Quantity.Equal(decimal.NewFromInt(3)))
}

func TestProductSetRecipeFullReplace(t *testing.T) {
	svc, _ := newProductFixture()

	_, err := svc.Create(productInput(1), []RecipeLineInput{
		{IngredientCode: 1, Quantity: decimal.NewFromInt(1)},
		{IngredientCode: 2, Quantity: decimal.NewFromInt(2)},
	})
	require.NoError(t, err)

	replacement := []RecipeLineInput{{IngredientCode: 2, Quantity: decimal.NewFromInt(5)}}
	require.NoError(t, svc.SetRecipe(1, replacement))

	recipe, err := svc.GetRecipe(1)
	require.NoError(t, err)
	require.Len(t, recipe, 1)
	assert.Equal(t, 2, recipe[0].IngredientCode)
	assert.True(t, recipe[0].Quantity.Equal(decimal.NewFromInt(5)))

	// Resubmitting the same set changes nothing.
	require.NoError(t, svc.SetRecipe(1, replacement))
	again, err := svc.GetRecipe(1)
	require.NoError(t, err)
	assert.Equal(t, recipe, again)

	// An empty set clears the recipe.
	require.NoError(t, svc.SetRecipe(1, nil))
	recipe, err = svc.GetRecipe(1)
	require.NoError(t, err)
	assert.Empty(t, recipe)

	assert.ErrorIs(t, svc.SetRecipe(99, replacement), ErrNotFound)
}

func TestProductUpdateIgnoresCategory(t *testing.T) {
	svc, repo := newProductFixture()

	_, err := svc.Create(productInput(1), nil)
	require.NoError(t, err)

	input := productInput(1)
	input.Name = "Double Hamburger"
	input.Price = decimal.NewFromInt(5000)
	input.CategoryCode = 99
	updated, err := svc.Update(input)
	require.NoError(t, err)
	assert.Equal(t, "Double Hamburger", updated.Name)

	stored, err := repo.GetByCode(1)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CategoryCode)
	assert.True(t, stored.Price.Equal(decimal.NewFromInt(5000)))

	_, err = svc.Update(productInput(99))
	assert.ErrorIs(t, err, ErrNotFound)
}
