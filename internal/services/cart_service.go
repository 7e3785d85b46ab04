package services

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"restaurant_manager/internal/models"
	"restaurant_manager/internal/redis"
	"restaurant_manager/internal/repository"
)

// CartService stages an order per session before it is committed through
// the order service. Failed submissions leave the staged cart intact so the
// user can retry.
type CartService interface {
	Get(sessionID string) (*models.Cart, error)
	AddProduct(sessionID string, productCode, quantity int, ingredients []models.CartIngredient) (*models.Cart, error)
	RemoveProduct(sessionID string, productCode int) (*models.Cart, error)
	Personalize(sessionID string, productCode int, ingredients []models.CartIngredient) (*models.Cart, error)
	Submit(sessionID string, customerName string, paymentMethodID, orderTypeID uint) (*models.Order, error)
}

type cartService struct {
	store    CartStore
	products repository.ProductRepository
	orders   OrderService
	ttl      time.Duration
	logger   *zap.Logger
}

func NewCartService(store CartStore, products repository.ProductRepository, orders OrderService, ttl time.Duration, logger *zap.Logger) CartService {
	return &cartService{
		store:    store,
		products: products,
		orders:   orders,
		ttl:      ttl,
		logger:   logger,
	}
}

// Get returns the session's staged cart; a session without one gets a fresh
// empty cart.
func (s *cartService) Get(sessionID string) (*models.Cart, error) {
	cart, err := s.store.GetCart(sessionID)
	if errors.Is(err, redis.ErrCacheMiss) {
		return &models.Cart{Lines: []models.CartLine{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddProduct stages a product. With no explicit customization (quick-add),
// every default recipe ingredient is implicitly included. Re-adding a staged
// product increments its quantity, and an explicit customization replaces
// the previous one.
func (s *cartService) AddProduct(sessionID string, productCode, quantity int, ingredients []models.CartIngredient) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, validationErr("quantity must be positive")
	}

	product, err := s.products.GetByCode(productCode)
	if err != nil {
		return nil, translate(err)
	}

	cart, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if ingredients == nil && len(product.Recipe) > 0 {
		ingredients = make([]models.CartIngredient, 0, len(product.Recipe))
		for _, line := range product.Recipe {
			ingredients = append(ingredients, models.CartIngredient{
				IngredientCode: line.IngredientCode,
				Included:       true,
			})
		}
	}

	cart.AddProduct(product.Code, product.Name, product.Price, quantity, ingredients)
	if err := s.store.SetCart(sessionID, cart, s.ttl); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) RemoveProduct(sessionID string, productCode int) (*models.Cart, error) {
	cart, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	cart.RemoveProduct(productCode)
	if err := s.store.SetCart(sessionID, cart, s.ttl); err != nil {
		return nil, err
	}
	return cart, nil
}

// Personalize replaces a staged line's ingredient choices. The dialog path
// starts with everything opted out, so a submission with nothing included is
// rejected.
func (s *cartService) Personalize(sessionID string, productCode int, ingredients []models.CartIngredient) (*models.Cart, error) {
	anyIncluded := false
	for _, ing := range ingredients {
		if ing.Included {
			anyIncluded = true
			break
		}
	}
	if !anyIncluded {
		return nil, validationErr("select at least one ingredient")
	}

	cart, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if !cart.Personalize(productCode, ingredients) {
		return nil, ErrNotFound
	}
	if err := s.store.SetCart(sessionID, cart, s.ttl); err != nil {
		return nil, err
	}
	return cart, nil
}

// Submit maps the staged lines into the persistence engine. Success clears
// the cart; failure leaves it untouched and surfaces the error.
func (s *cartService) Submit(sessionID string, customerName string, paymentMethodID, orderTypeID uint) (*models.Order, error) {
	cart, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, validationErr("order must contain at least one product")
	}

	lines := make([]OrderLineInput, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		selections := make([]IngredientSelection, 0, len(line.Ingredients))
		for _, ing := range line.Ingredients {
			selections = append(selections, IngredientSelection{
				IngredientCode: ing.IngredientCode,
				Included:       ing.Included,
			})
		}
		lines = append(lines, OrderLineInput{
			ProductCode: line.ProductCode,
			Quantity:    line.Quantity,
			Ingredients: selections,
		})
	}

	order, err := s.orders.Create(OrderInput{
		CustomerName:    customerName,
		PaymentMethodID: paymentMethodID,
		OrderTypeID:     orderTypeID,
		Lines:           lines,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteCart(sessionID); err != nil {
		s.logger.Warn("failed to clear submitted cart", zap.String("session", sessionID), zap.Error(err))
	}
	return order, nil
}
