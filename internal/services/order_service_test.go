package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"restaurant_manager/internal/models"
)

type orderFixture struct {
	svc    OrderService
	orders *fakeOrderRepo
	sales  *fakeSaleRepo
	cache  *fakeCache
}

func newOrderFixture() orderFixture {
	orders := newFakeOrderRepo()
	products := newFakeProductRepo()
	sales := &fakeSaleRepo{}
	cache := newFakeCache()

	_ = products.Create(&models.Product{Code: 1, Name: "Hamburger", CategoryCode: 1, Price: decimal.NewFromInt(3500), Active: true})
	_ = products.Create(&models.Product{Code: 3, Name: "Cola", CategoryCode: 3, Price: decimal.NewFromInt(800), Active: true})

	svc := NewOrderService(orders, products, newFakeRefs(), sales, cache, zap.NewNop())
	return orderFixture{svc: svc, orders: orders, sales: sales, cache: cache}
}

func orderInput() OrderInput {
	return OrderInput{
		CustomerName:    "Maria",
		PaymentMethodID: models.PaymentMethodCash,
		OrderTypeID:     models.OrderTypeTakeout,
		Lines: []OrderLineInput{
			{ProductCode: 1, Quantity: 2, Ingredients: []IngredientSelection{
				{IngredientCode: 2, Included: true},
				{IngredientCode: 4, Included: false},
			}},
			{ProductCode: 3, Quantity: 1},
		},
	}
}

func TestOrderCreate(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.Create(orderInput())
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.NotEmpty(t, order.Number)
	assert.EqualValues(t, models.StatePending, order.StateID)

	// 2 * 3500 + 1 * 800, priced from the catalog rows.
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(7800)))

	stored, err := f.svc.Get(order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Details, 2)
	require.Len(t, stored.Details[0].Ingredients, 2)
	assert.True(t, stored.Details[0].Ingredients[0].Used)
	assert.False(t, stored.Details[0].Ingredients[1].Used)
}

func TestOrderCreateValidation(t *testing.T) {
	f := newOrderFixture()

	input := orderInput()
	input.CustomerName = "  "
	_, err := f.svc.Create(input)
	assert.ErrorIs(t, err, ErrValidation)

	input = orderInput()
	input.Lines = nil
	_, err = f.svc.Create(input)
	assert.ErrorIs(t, err, ErrValidation)

	input = orderInput()
	input.Lines[0].Quantity = 0
	_, err = f.svc.Create(input)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrderCreateMissingReferences(t *testing.T) {
	f := newOrderFixture()

	input := orderInput()
	input.PaymentMethodID = 99
	_, err := f.svc.Create(input)
	assert.ErrorIs(t, err, ErrMissingReference)

	input = orderInput()
	input.OrderTypeID = 99
	_, err = f.svc.Create(input)
	assert.ErrorIs(t, err, ErrMissingReference)

	input = orderInput()
	input.Lines[0].ProductCode = 99
	_, err = f.svc.Create(input)
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestOrderUpdateFullReplace(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.Create(orderInput())
	require.NoError(t, err)

	update := OrderInput{
		CustomerName:    "Carlos",
		PaymentMethodID: models.PaymentMethodCard,
		OrderTypeID:     models.OrderTypeDineIn,
		Lines:           []OrderLineInput{{ProductCode: 3, Quantity: 4}},
	}
	require.NoError(t, f.svc.Update(order.ID, update))

	stored, err := f.svc.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carlos", stored.CustomerName)
	assert.EqualValues(t, models.PaymentMethodCard, stored.PaymentMethodID)
	assert.True(t, stored.TotalPrice.Equal(decimal.NewFromInt(3200)))
	require.Len(t, stored.Details, 1)
	assert.Equal(t, 3, stored.Details[0].ProductCode)
	assert.NotNil(t, stored.PaymentDate)
}

func TestOrderUpdateEmptyLinesLeavesOrderUntouched(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.Create(orderInput())
	require.NoError(t, err)

	update := orderInput()
	update.CustomerName = "Carlos"
	update.Lines = nil
	assert.ErrorIs(t, f.svc.Update(order.ID, update), ErrValidation)

	stored, err := f.svc.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", stored.CustomerName)
	assert.Len(t, stored.Details, 2)
	assert.Nil(t, stored.PaymentDate)
}

func TestOrderUpdateNotFound(t *testing.T) {
	f := newOrderFixture()
	assert.ErrorIs(t, f.svc.Update(99, orderInput()), ErrNotFound)
}

func TestOrderFinalizeRecordsSale(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.Create(orderInput())
	require.NoError(t, err)
	require.Empty(t, f.sales.sales)

	require.NoError(t, f.svc.SetState(order.ID, models.StateFinalized))

	require.Len(t, f.sales.sales, 1)
	sale := f.sales.sales[0]
	assert.Equal(t, order.ID, sale.OrderID)
	assert.Equal(t, "Maria", sale.CustomerName)
	assert.EqualValues(t, models.PaymentMethodCash, sale.PaymentMethodID)
	assert.True(t, sale.Amount.Equal(order.TotalPrice))
	assert.Contains(t, f.cache.invalidated, "sales")

	stored, err := f.svc.Get(order.ID)
	require.NoError(t, err)
	assert.EqualValues(t, models.StateFinalized, stored.StateID)
}

func TestOrderSetStateGuards(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.Create(orderInput())
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.SetState(order.ID, 99), ErrMissingReference)
	assert.ErrorIs(t, f.svc.SetState(404, models.StateFinalized), ErrNotFound)

	// Only finalization records a sale.
	require.NoError(t, f.svc.SetState(order.ID, models.StatePending))
	assert.Empty(t, f.sales.sales)
}

func TestOrderDeactivate(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.Create(orderInput())
	require.NoError(t, err)

	require.NoError(t, f.svc.Deactivate(order.ID))
	items, total, err := f.svc.List("x", 1, 5)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.EqualValues(t, 0, total)

	assert.ErrorIs(t, f.svc.Deactivate(99), ErrNotFound)
}
