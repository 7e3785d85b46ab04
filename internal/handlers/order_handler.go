package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurant_manager/internal/models"
	"restaurant_manager/internal/repository"
	"restaurant_manager/internal/services"
)

// OrderHandler serves the order listing and mutations plus the per-session
// cart used to compose an order before submission.
type OrderHandler struct {
	orders   services.OrderService
	cart     services.CartService
	format   Formatter
	pageSize int
}

func NewOrderHandler(orders services.OrderService, cart services.CartService, format Formatter, pageSize int) *OrderHandler {
	return &OrderHandler{orders: orders, cart: cart, format: format, pageSize: pageSize}
}

type ingredientSelectionRequest struct {
	IngredientCode int  `json:"ingredient_code"`
	Included       bool `json:"included"`
}

type orderLineRequest struct {
	ProductCode int                          `json:"product_code"`
	Quantity    int                          `json:"quantity"`
	Ingredients []ingredientSelectionRequest `json:"ingredients"`
}

type orderRequest struct {
	CustomerName    string             `json:"customer_name"`
	PaymentMethodID uint               `json:"payment_method_id"`
	OrderTypeID     uint               `json:"order_type_id"`
	Lines           []orderLineRequest `json:"lines"`
}

func (r orderRequest) toInput() services.OrderInput {
	lines := make([]services.OrderLineInput, 0, len(r.Lines))
	for _, line := range r.Lines {
		selections := make([]services.IngredientSelection, 0, len(line.Ingredients))
		for _, sel := range line.Ingredients {
			selections = append(selections, services.IngredientSelection{
				IngredientCode: sel.IngredientCode,
				Included:       sel.Included,
			})
		}
		lines = append(lines, services.OrderLineInput{
			ProductCode: line.ProductCode,
			Quantity:    line.Quantity,
			Ingredients: selections,
		})
	}
	return services.OrderInput{
		CustomerName:    r.CustomerName,
		PaymentMethodID: r.PaymentMethodID,
		OrderTypeID:     r.OrderTypeID,
		Lines:           lines,
	}
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		badRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format")
		return
	}

	order, err := h.orders.Create(req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "order_id": order.ID, "number": order.Number})
}

// orderRow is the flat display shape the order table consumes.
type orderRow struct {
	ID            uint   `json:"id"`
	Number        string `json:"number"`
	State         string `json:"state"`
	TotalPrice    string `json:"total_price"`
	OrderDate     string `json:"order_date"`
	PaymentMethod string `json:"payment_method"`
	PaymentDate   string `json:"payment_date"`
	CustomerName  string `json:"customer_name"`
	OrderType     string `json:"order_type"`
}

func (h *OrderHandler) toRow(o models.Order) orderRow {
	row := orderRow{
		ID:           o.ID,
		Number:       o.Number,
		TotalPrice:   h.format.Price(o.TotalPrice),
		OrderDate:    h.format.Date(o.OrderDate),
		PaymentDate:  h.format.DateOr(o.PaymentDate, "Pending"),
		CustomerName: o.CustomerName,
	}
	if o.State != nil {
		row.State = o.State.Name
	}
	if o.PaymentMethod != nil {
		row.PaymentMethod = o.PaymentMethod.Name
	}
	if o.OrderType != nil {
		row.OrderType = o.OrderType.Name
	}
	return row
}

func (h *OrderHandler) List(c *gin.Context) {
	query, page := listParams(c)
	items, total, err := h.orders.List(query, page, h.pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	rows := make([]orderRow, 0, len(items))
	for _, o := range items {
		rows = append(rows, h.toRow(o))
	}
	c.JSON(http.StatusOK, gin.H{
		"rows":        rows,
		"total":       total,
		"total_pages": repository.TotalPages(total, h.pageSize),
		"page":        page,
	})
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	order, err := h.orders.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format")
		return
	}

	if err := h.orders.Update(id, req.toInput()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *OrderHandler) SetState(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		StateID uint `json:"state_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format")
		return
	}

	if err := h.orders.SetState(id, req.StateID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *OrderHandler) Deactivate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.orders.Deactivate(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Cart endpoints. The session id scopes one staged order per user.

func (h *OrderHandler) GetCart(c *gin.Context) {
	cart, err := h.cart.Get(c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *OrderHandler) AddCartProduct(c *gin.Context) {
	var req struct {
		ProductCode int                          `json:"product_code"`
		Quantity    int                          `json:"quantity"`
		Ingredients []ingredientSelectionRequest `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format")
		return
	}

	// A request without the ingredients key is a quick-add: the service
	// fills in the default recipe with everything included.
	var ingredients []models.CartIngredient
	if req.Ingredients != nil {
		ingredients = make([]models.CartIngredient, 0, len(req.Ingredients))
		for _, sel := range req.Ingredients {
			ingredients = append(ingredients, models.CartIngredient{
				IngredientCode: sel.IngredientCode,
				Included:       sel.Included,
			})
		}
	}

	cart, err := h.cart.AddProduct(c.Param("session_id"), req.ProductCode, req.Quantity, ingredients)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *OrderHandler) RemoveCartProduct(c *gin.Context) {
	code, ok := codeParam(c)
	if !ok {
		return
	}
	cart, err := h.cart.RemoveProduct(c.Param("session_id"), code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *OrderHandler) PersonalizeCartProduct(c *gin.Context) {
	code, ok := codeParam(c)
	if !ok {
		return
	}
	var req struct {
		Ingredients []ingredientSelectionRequest `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format")
		return
	}

	ingredients := make([]models.CartIngredient, 0, len(req.Ingredients))
	for _, sel := range req.Ingredients {
		ingredients = append(ingredients, models.CartIngredient{
			IngredientCode: sel.IngredientCode,
			Included:       sel.Included,
		})
	}

	cart, err := h.cart.Personalize(c.Param("session_id"), code, ingredients)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *OrderHandler) SubmitCart(c *gin.Context) {
	var req struct {
		CustomerName    string `json:"customer_name"`
		PaymentMethodID uint   `json:"payment_method_id"`
		OrderTypeID     uint   `json:"order_type_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format")
		return
	}

	order, err := h.cart.Submit(c.Param("session_id"), req.CustomerName, req.PaymentMethodID, req.OrderTypeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "order_id": order.ID, "number": order.Number})
}
