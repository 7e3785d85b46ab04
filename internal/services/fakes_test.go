package services

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant_manager/internal/models"
	"restaurant_manager/internal/redis"
	"restaurant_manager/internal/repository"
)

// In-memory fakes for the repository and cache interfaces, shared by the
// service tests.

type fakeCache struct {
	data        map[string][]byte
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) SetList(entity string, payload interface{}, _ time.Duration) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	c.data["list:"+entity] = raw
	return nil
}

func (c *fakeCache) GetList(entity string, dest interface{}) error {
	raw, ok := c.data["list:"+entity]
	if !ok {
		return redis.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *fakeCache) InvalidateList(entity string) error {
	delete(c.data, "list:"+entity)
	c.invalidated = append(c.invalidated, entity)
	return nil
}

type fakeCartStore struct {
	carts map[string]*models.Cart
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[string]*models.Cart)}
}

func (s *fakeCartStore) SetCart(sessionID string, cart *models.Cart, _ time.Duration) error {
	copied := *cart
	s.carts[sessionID] = &copied
	return nil
}

func (s *fakeCartStore) GetCart(sessionID string) (*models.Cart, error) {
	cart, ok := s.carts[sessionID]
	if !ok {
		return nil, redis.ErrCacheMiss
	}
	copied := *cart
	return &copied, nil
}

func (s *fakeCartStore) DeleteCart(sessionID string) error {
	delete(s.carts, sessionID)
	return nil
}

type fakeCategoryRepo struct {
	rows map[int]*models.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{rows: make(map[int]*models.Category)}
}

func (r *fakeCategoryRepo) Create(category *models.Category) error {
	if _, ok := r.rows[category.Code]; ok {
		return gorm.ErrDuplicatedKey
	}
	copied := *category
	r.rows[category.Code] = &copied
	return nil
}

func (r *fakeCategoryRepo) GetByCode(code int) (*models.Category, error) {
	category, ok := r.rows[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *category
	return &copied, nil
}

func (r *fakeCategoryRepo) ExistsByCode(code int) (bool, error) {
	_, ok := r.rows[code]
	return ok, nil
}

func (r *fakeCategoryRepo) List(query string, page, pageSize int) ([]models.Category, int64, error) {
	var active []models.Category
	for _, c := range r.rows {
		if c.Active {
			active = append(active, *c)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Code < active[j].Code })
	return paginate(active, page, pageSize), int64(len(active)), nil
}

func (r *fakeCategoryRepo) ListActive() ([]models.Category, error) {
	items, _, err := r.List("", 1, len(r.rows)+1)
	return items, err
}

func (r *fakeCategoryRepo) Update(category *models.Category) error {
	copied := *category
	r.rows[category.Code] = &copied
	return nil
}

func (r *fakeCategoryRepo) Deactivate(code int) error {
	if c, ok := r.rows[code]; ok {
		c.Active = false
	}
	return nil
}

type fakeIngredientRepo struct {
	rows map[int]*models.Ingredient
}

func newFakeIngredientRepo() *fakeIngredientRepo {
	return &fakeIngredientRepo{rows: make(map[int]*models.Ingredient)}
}

func (r *fakeIngredientRepo) Create(ingredient *models.Ingredient) error {
	if _, ok := r.rows[ingredient.Code]; ok {
		return gorm.ErrDuplicatedKey
	}
	copied := *ingredient
	r.rows[ingredient.Code] = &copied
	return nil
}

func (r *fakeIngredientRepo) GetByCode(code int) (*models.Ingredient, error) {
	ingredient, ok := r.rows[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *ingredient
	return &copied, nil
}

func (r *fakeIngredientRepo) GetByCodes(codes []int) ([]models.Ingredient, error) {
	var found []models.Ingredient
	for _, code := range codes {
		if ingredient, ok := r.rows[code]; ok {
			found = append(found, *ingredient)
		}
	}
	return found, nil
}

func (r *fakeIngredientRepo) ExistsByCode(code int) (bool, error) {
	_, ok := r.rows[code]
	return ok, nil
}

func (r *fakeIngredientRepo) List(query string, page, pageSize int) ([]models.Ingredient, int64, error) {
	var active []models.Ingredient
	for _, i := range r.rows {
		if i.Active {
			active = append(active, *i)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Code < active[j].Code })
	return paginate(active, page, pageSize), int64(len(active)), nil
}

func (r *fakeIngredientRepo) Update(ingredient *models.Ingredient) error {
	copied := *ingredient
	r.rows[ingredient.Code] = &copied
	return nil
}

func (r *fakeIngredientRepo) Deactivate(code int) error {
	if i, ok := r.rows[code]; ok {
		i.Active = false
	}
	return nil
}

type fakeProductRepo struct {
	rows    map[int]*models.Product
	recipes map[int][]models.ProductIngredient
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		rows:    make(map[int]*models.Product),
		recipes: make(map[int][]models.ProductIngredient),
	}
}

func (r *fakeProductRepo) Create(product *models.Product) error {
	if _, ok := r.rows[product.Code]; ok {
		return gorm.ErrDuplicatedKey
	}
	copied := *product
	copied.Recipe = nil
	r.rows[product.Code] = &copied
	r.recipes[product.Code] = append([]models.ProductIngredient(nil), product.Recipe...)
	return nil
}

func (r *fakeProductRepo) GetByCode(code int) (*models.Product, error) {
	product, ok := r.rows[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *product
	copied.Recipe = append([]models.ProductIngredient(nil), r.recipes[code]...)
	return &copied, nil
}

func (r *fakeProductRepo) GetByCodes(codes []int) ([]models.Product, error) {
	var found []models.Product
	for _, code := range codes {
		if product, ok := r.rows[code]; ok {
			found = append(found, *product)
		}
	}
	return found, nil
}

func (r *fakeProductRepo) ExistsByCode(code int) (bool, error) {
	_, ok := r.rows[code]
	return ok, nil
}

func (r *fakeProductRepo) List(query string, page, pageSize int) ([]models.Product, int64, error) {
	var active []models.Product
	for _, p := range r.rows {
		if p.Active {
			active = append(active, *p)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Code < active[j].Code })
	return paginate(active, page, pageSize), int64(len(active)), nil
}

func (r *fakeProductRepo) Update(product *models.Product) error {
	copied := *product
	copied.Recipe = nil
	r.rows[product.Code] = &copied
	return nil
}

func (r *fakeProductRepo) Deactivate(code int) error {
	if p, ok := r.rows[code]; ok {
		p.Active = false
	}
	return nil
}

func (r *fakeProductRepo) ReplaceRecipe(productCode int, lines []models.ProductIngredient) error {
	r.recipes[productCode] = append([]models.ProductIngredient(nil), lines...)
	return nil
}

func (r *fakeProductRepo) GetRecipe(productCode int) ([]models.ProductIngredient, error) {
	return append([]models.ProductIngredient(nil), r.recipes[productCode]...), nil
}

type fakeOrderRepo struct {
	nextID  uint
	orders  map[uint]*models.Order
	details map[uint][]models.OrderDetail
	fail    error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		nextID:  1,
		orders:  make(map[uint]*models.Order),
		details: make(map[uint][]models.OrderDetail),
	}
}

func (r *fakeOrderRepo) Create(customerName string, paymentMethodID, orderTypeID uint, total decimal.Decimal, details []models.OrderDetail) (*models.Order, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	order := &models.Order{
		ID:              r.nextID,
		Number:          "ORD-00001",
		CustomerName:    customerName,
		PaymentMethodID: paymentMethodID,
		OrderTypeID:     orderTypeID,
		StateID:         models.StatePending,
		TotalPrice:      total,
		OrderDate:       time.Now(),
		Active:          true,
	}
	r.nextID++
	r.orders[order.ID] = order
	r.details[order.ID] = append([]models.OrderDetail(nil), details...)
	return order, nil
}

func (r *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	copied.Details = append([]models.OrderDetail(nil), r.details[id]...)
	return &copied, nil
}

func (r *fakeOrderRepo) List(filter repository.ListFilter) ([]models.Order, int64, error) {
	var active []models.Order
	for _, o := range r.orders {
		if o.Active {
			active = append(active, *o)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	return paginate(active, filter.Page, filter.PageSize), int64(len(active)), nil
}

func (r *fakeOrderRepo) Replace(orderID uint, customerName string, paymentMethodID, orderTypeID uint, total decimal.Decimal, details []models.OrderDetail) error {
	if r.fail != nil {
		return r.fail
	}
	order, ok := r.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	order.CustomerName = customerName
	order.PaymentMethodID = paymentMethodID
	order.OrderTypeID = orderTypeID
	order.TotalPrice = total
	order.PaymentDate = &now
	r.details[orderID] = append([]models.OrderDetail(nil), details...)
	return nil
}

func (r *fakeOrderRepo) UpdateState(orderID, stateID uint) error {
	order, ok := r.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.StateID = stateID
	return nil
}

func (r *fakeOrderRepo) Deactivate(orderID uint) error {
	if order, ok := r.orders[orderID]; ok {
		order.Active = false
	}
	return nil
}

type fakeRefs struct {
	units   map[uint]bool
	methods map[uint]bool
	types   map[uint]bool
	states  map[uint]bool
}

func newFakeRefs() *fakeRefs {
	return &fakeRefs{
		units:   map[uint]bool{1: true, 2: true},
		methods: map[uint]bool{models.PaymentMethodCash: true, models.PaymentMethodCard: true, models.PaymentMethodSinpe: true},
		types:   map[uint]bool{models.OrderTypeTakeout: true, models.OrderTypeDineIn: true},
		states:  map[uint]bool{models.StatePending: true, models.StateFinalized: true},
	}
}

func (r *fakeRefs) ListUnits() ([]models.UnitOfMeasurement, error)      { return nil, nil }
func (r *fakeRefs) ListPaymentMethods() ([]models.PaymentMethod, error) { return nil, nil }
func (r *fakeRefs) ListOrderTypes() ([]models.OrderType, error)         { return nil, nil }
func (r *fakeRefs) ListStates() ([]models.StateType, error)             { return nil, nil }
func (r *fakeRefs) UnitExists(id uint) (bool, error)                    { return r.units[id], nil }
func (r *fakeRefs) PaymentMethodExists(id uint) (bool, error)           { return r.methods[id], nil }
func (r *fakeRefs) OrderTypeExists(id uint) (bool, error)               { return r.types[id], nil }
func (r *fakeRefs) StateExists(id uint) (bool, error)                   { return r.states[id], nil }

type fakeSaleRepo struct {
	sales []models.Sale
}

func (r *fakeSaleRepo) Create(sale *models.Sale) error {
	r.sales = append(r.sales, *sale)
	return nil
}

func (r *fakeSaleRepo) List(filter repository.ListFilter) ([]models.Sale, int64, error) {
	return paginate(r.sales, filter.Page, filter.PageSize), int64(len(r.sales)), nil
}

type fakeBoxRepo struct {
	nextID uint
	boxes  []*models.Box
}

func newFakeBoxRepo() *fakeBoxRepo {
	return &fakeBoxRepo{nextID: 1}
}

func (r *fakeBoxRepo) GetByID(id uint) (*models.Box, error) {
	for _, box := range r.boxes {
		if box.ID == id {
			copied := *box
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBoxRepo) OpenForDay(day time.Time) (*models.Box, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	for _, box := range r.boxes {
		if box.ClosedAt == nil && !box.OpenedAt.Before(start) && box.OpenedAt.Before(end) {
			copied := *box
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeBoxRepo) List(page, pageSize int) ([]models.Box, int64, error) {
	boxes := make([]models.Box, 0, len(r.boxes))
	for _, box := range r.boxes {
		boxes = append(boxes, *box)
	}
	sort.Slice(boxes, func(i, j int) bool { return boxes[i].OpenedAt.After(boxes[j].OpenedAt) })
	return paginate(boxes, page, pageSize), int64(len(boxes)), nil
}

// fakeBoxProcedures backs both lifecycle primitives against fakeBoxRepo.
type fakeBoxProcedures struct {
	repo *fakeBoxRepo
}

func (p *fakeBoxProcedures) Open(fund decimal.Decimal) (*models.Box, error) {
	box := &models.Box{
		ID:          p.repo.nextID,
		OpenedAt:    time.Now(),
		OpeningFund: fund,
	}
	p.repo.nextID++
	p.repo.boxes = append(p.repo.boxes, box)
	copied := *box
	return &copied, nil
}

func (p *fakeBoxProcedures) Close(boxID uint) (*models.Box, error) {
	for _, box := range p.repo.boxes {
		if box.ID == boxID {
			now := time.Now()
			zero := decimal.Zero
			total := zero
			closing := box.OpeningFund.Add(total)
			box.ClosedAt = &now
			box.CashSales = &zero
			box.CardSales = &zero
			box.TotalSales = &total
			box.ClosingAmount = &closing
			copied := *box
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return append([]T(nil), items[start:end]...)
}
