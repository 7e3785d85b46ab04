package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"restaurant_manager/internal/models"
	"restaurant_manager/internal/repository"
)

// IngredientSelection is one include/exclude flag submitted for a detail
// line.
type IngredientSelection struct {
	IngredientCode int
	Included       bool
}

// OrderLineInput is one submitted product line.
type OrderLineInput struct {
	ProductCode int
	Quantity    int
	Ingredients []IngredientSelection
}

// OrderInput is the shape shared by create and update: header fields plus
// the complete desired line set.
type OrderInput struct {
	CustomerName    string
	PaymentMethodID uint
	OrderTypeID     uint
	Lines           []OrderLineInput
}

type OrderService interface {
	Create(input OrderInput) (*models.Order, error)
	Get(orderID uint) (*models.Order, error)
	List(query string, page, pageSize int) ([]models.Order, int64, error)
	Update(orderID uint, input OrderInput) error
	SetState(orderID, stateID uint) error
	Deactivate(orderID uint) error
}

type orderService struct {
	repo     repository.OrderRepository
	products repository.ProductRepository
	refs     repository.ReferenceRepository
	sales    repository.SaleRepository
	cache    ListCache
	logger   *zap.Logger
}

func NewOrderService(
	repo repository.OrderRepository,
	products repository.ProductRepository,
	refs repository.ReferenceRepository,
	sales repository.SaleRepository,
	cache ListCache,
	logger *zap.Logger,
) OrderService {
	return &orderService{
		repo:     repo,
		products: products,
		refs:     refs,
		sales:    sales,
		cache:    cache,
		logger:   logger,
	}
}

type orderPage struct {
	Items []models.Order `json:"items"`
	Total int64          `json:"total"`
}

// Create validates the referenced entities, resolves prices, and persists
// header, details and ingredient flags as one transaction. Nothing is left
// behind on failure.
func (s *orderService) Create(input OrderInput) (*models.Order, error) {
	details, total, err := s.prepare(input)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.Create(input.CustomerName, input.PaymentMethodID, input.OrderTypeID, total, details)
	if err != nil {
		s.logger.Error("order creation failed", zap.Error(err))
		return nil, translate(err)
	}

	s.invalidate()
	s.logger.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.String("number", order.Number),
		zap.Int("lines", len(details)))
	return order, nil
}

func (s *orderService) Get(orderID uint) (*models.Order, error) {
	order, err := s.repo.GetByID(orderID)
	if err != nil {
		return nil, translate(err)
	}
	return order, nil
}

func (s *orderService) List(query string, page, pageSize int) ([]models.Order, int64, error) {
	if query == "" && page <= 1 {
		var cached orderPage
		if err := s.cache.GetList("orders", &cached); err == nil {
			return cached.Items, cached.Total, nil
		}
	}

	filter := repository.NewListFilter(query, page, pageSize)
	items, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}

	if query == "" && page <= 1 {
		if err := s.cache.SetList("orders", orderPage{Items: items, Total: total}, listCacheTTL); err != nil {
			s.logger.Warn("failed to cache order list", zap.Error(err))
		}
	}
	return items, total, nil
}

// Update is a destructive full-replace: callers resubmit the complete
// desired state. An empty line list is rejected before any write, leaving
// the stored order untouched.
func (s *orderService) Update(orderID uint, input OrderInput) error {
	details, total, err := s.prepare(input)
	if err != nil {
		return err
	}

	if err := s.repo.Replace(orderID, input.CustomerName, input.PaymentMethodID, input.OrderTypeID, total, details); err != nil {
		s.logger.Error("order update failed", zap.Uint("order_id", orderID), zap.Error(err))
		return translate(err)
	}

	s.invalidate()
	return nil
}

// SetState moves the order to a new state. Finalizing records the sale that
// feeds the report and the box-closing totals.
func (s *orderService) SetState(orderID, stateID uint) error {
	ok, err := s.refs.StateExists(stateID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMissingReference
	}

	order, err := s.repo.GetByID(orderID)
	if err != nil {
		return translate(err)
	}

	if err := s.repo.UpdateState(orderID, stateID); err != nil {
		return translate(err)
	}

	if stateID == models.StateFinalized {
		sale := &models.Sale{
			OrderID:         order.ID,
			CustomerName:    order.CustomerName,
			PaymentMethodID: order.PaymentMethodID,
			BillDate:        time.Now(),
			Amount:          order.TotalPrice,
		}
		if err := s.sales.Create(sale); err != nil {
			s.logger.Error("failed to record sale for finalized order",
				zap.Uint("order_id", orderID), zap.Error(err))
			return err
		}
		if err := s.cache.InvalidateList("sales"); err != nil {
			s.logger.Warn("failed to invalidate sales list cache", zap.Error(err))
		}
	}

	s.invalidate()
	return nil
}

func (s *orderService) Deactivate(orderID uint) error {
	if _, err := s.repo.GetByID(orderID); err != nil {
		return translate(err)
	}
	if err := s.repo.Deactivate(orderID); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// prepare validates an order submission and maps it into detail rows plus
// the resolved total price.
func (s *orderService) prepare(input OrderInput) ([]models.OrderDetail, decimal.Decimal, error) {
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, decimal.Zero, validationErr("customer name is required")
	}
	if len(input.Lines) == 0 {
		return nil, decimal.Zero, validationErr("order must contain at least one product")
	}
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, decimal.Zero, validationErr("line quantity must be positive")
		}
	}

	ok, err := s.refs.PaymentMethodExists(input.PaymentMethodID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if !ok {
		return nil, decimal.Zero, ErrMissingReference
	}
	ok, err = s.refs.OrderTypeExists(input.OrderTypeID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if !ok {
		return nil, decimal.Zero, ErrMissingReference
	}

	codes := make([]int, 0, len(input.Lines))
	for _, line := range input.Lines {
		codes = append(codes, line.ProductCode)
	}
	products, err := s.products.GetByCodes(codes)
	if err != nil {
		return nil, decimal.Zero, err
	}
	priceByCode := make(map[int]decimal.Decimal, len(products))
	for _, p := range products {
		priceByCode[p.Code] = p.Price
	}

	details := make([]models.OrderDetail, 0, len(input.Lines))
	total := decimal.Zero
	for _, line := range input.Lines {
		price, ok := priceByCode[line.ProductCode]
		if !ok {
			return nil, decimal.Zero, ErrMissingReference
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))

		ingredients := make([]models.OrderIngredient, 0, len(line.Ingredients))
		for _, sel := range line.Ingredients {
			ingredients = append(ingredients, models.OrderIngredient{
				IngredientCode: sel.IngredientCode,
				Used:           sel.Included,
			})
		}
		details = append(details, models.OrderDetail{
			ProductCode: line.ProductCode,
			Quantity:    line.Quantity,
			Ingredients: ingredients,
		})
	}
	return details, total, nil
}

func (s *orderService) invalidate() {
	if err := s.cache.InvalidateList("orders"); err != nil {
		s.logger.Warn("failed to invalidate order list cache", zap.Error(err))
	}
}
