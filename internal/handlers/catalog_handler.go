package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"restaurant_manager/internal/repository"
	"restaurant_manager/internal/services"
)

// CatalogHandler serves categories, ingredients, products and their recipes,
// plus the reference-data dropdown sources.
type CatalogHandler struct {
	categories  services.CategoryService
	ingredients services.IngredientService
	products    services.ProductService
	refs        repository.ReferenceRepository
	pageSize    int
}

func NewCatalogHandler(
	categories services.CategoryService,
	ingredients services.IngredientService,
	products services.ProductService,
	refs repository.ReferenceRepository,
	pageSize int,
) *CatalogHandler {
	return &CatalogHandler{
		categories:  categories,
		ingredients: ingredients,
		products:    products,
		refs:        refs,
		pageSize:    pageSize,
	}
}

func listParams(c *gin.Context) (query string, page int) {
	query = c.Query("query")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return query, page
}

func codeParam(c *gin.Context) (int, bool) {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil {
		badRequest(c, "invalid code")
		return 0, false
	}
	return code, true
}

// Form fields arrive as strings and are parsed before use.
func parseDecimal(c *gin.Context, field, value string) (decimal.Decimal, bool) {
	if value == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		badRequest(c, "invalid "+field)
		return decimal.Decimal{}, false
	}
	return d, true
}

// Categories

type categoryRequest struct {
	Code int    `json:"code"`
	Name string `json:"name" binding:"required"`
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format")
		return
	}

	category, err := h.categories.Create(req.Code, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "category": category})
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	query, page := listParams(c)
	items, total, err := h.categories.List(query, page, h.pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rows":        items,
		"total":       total,
		"total_pages": repository.TotalPages(total, h.pageSize),
		"page":        page,
	})
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	code, ok := codeParam(c)
	if !ok {
		return
	}
	category, err := h.categories.Get(code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	code, ok := codeParam(c)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format")
		return
	}

	category, err := h.categories.UpdateName(code, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "category": category})
}

func (h *CatalogHandler) DeactivateCategory(c *gin.Context) {
	code, ok := codeParam(c)
	if !ok {
		return
	}
	if err := h.categories.Deactivate(code); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Ingredients

type ingredientRequest struct {
	Code     int    `json:"code"`
	Name     string `json:"name" binding:"required"`
	UnitID   uint   `json:"unit_id"`
	Quantity string `json:"quantity"`
}

func (h *CatalogHandler) CreateIngredient(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format")
		return
	}
	quantity, ok := parseDecimal(c, "quantity", req.Quantity)
	if !ok {
		return
	}

	ingredient, err := h.ingredients.Create(req.Code, req.Name, req.UnitID, quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "ingredient": ingredient})
}

func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	query, page := listParams(c)
	items, total, err := h.ingredients.List(query, page, h.pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rows":        items,
		"total":       total,
		"total_pages": repository.TotalPages(total, h.pageSize),
		"page":        page,
	})
}

func (h *CatalogHandler) GetIngredient(c *gin.Context) {
	code, ok := codeParam(c)
	if !ok {
		return
	}
	ingredient, err := h.ingredients.Get(code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *CatalogHandler) UpdateIngredient(c *gin.Context) {
	code, ok := codeParam(c)
	if !ok {
		return
	}
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format")
		return
	}
	quantity, ok := parseDecimal(c, "quantity", req.Quantity)
	if !ok {
		return
	}

	ingredient, err := h.ingredients.Update(code, req.Name, req.UnitID, quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "ingredient": ingredient})
}

func (h *CatalogHandler) DeactivateIngredient(c *gin.Context) {
	code, ok := codeParam(c)
	if !ok {
		return
	}
	if err := h.ingredients.Deactivate(code); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Products

type recipeLineRequest struct {
	IngredientCode int    `json:"ingredient_code"`
	Quantity       string `json:"quantity"`
}

type productRequest struct {
	Code         int                 `json:"code"`
	Name         string              `json:"name" binding:"required"`
	Description  string              `json:"description"`
	CategoryCode int                 `json:"category_code"`
	Price        string              `json:"price"`
	Quantity     int                 `json:"quantity"`
	Recipe       []recipeLineRequest `json:"recipe"`
}

func (h *CatalogHandler) parseRecipe(c *gin.Context, raw []recipeLineRequest) ([]services.RecipeLineInput, bool) {
	lines := make([]services.RecipeLineInput, 0, len(raw))
	for _, line := range raw {
		// Missing or blank quantities default to zero.
		quantity, ok := parseDecimal(c, "recipe quantity", line.Quantity)
		if !ok {
			return nil, false
		}
		lines = append(lines, services.RecipeLineInput{
			IngredientCode: line.IngredientCode,
			Quantity:       quantity,
		})
	}
	return lines, true
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format")
		return
	}
	price, ok := parseDecimal(c, "price", req.Price)
	if !ok {
		return
	}
	recipe, ok := h.parseRecipe(c, req.Recipe)
	if !ok {
		return
	}

	product, err := h.products.Create(services.ProductInput{
		Code:         req.Code,
		Name:         req.Name,
		Description:  req.Description,
		CategoryCode: req.CategoryCode,
		Price:        price,
		Quantity:     req.Quantity,
	}, recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	query, page := listParams(c)
	items, total, err := h.products.List(query, page, h.pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rows":        items,
		"total":       total,
		"total_pages": repository.TotalPages(total, h.pageSize),
		"page":        page,
	})
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	code, ok := codeParam(c)
	if !ok {
		return
	}
	product, err := h.products.Get(code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	code, ok := codeParam(c)
	if !ok {
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format")
		return
	}
	price, ok := parseDecimal(c, "price", req.Price)
	if !ok {
		return
	}

	product, err := h.products.Update(services.ProductInput{
		Code:        code,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func (h *CatalogHandler) DeactivateProduct(c *gin.Context) {
	code, ok := codeParam(c)
	if !ok {
		return
	}
	if err := h.products.Deactivate(code); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CatalogHandler) GetRecipe(c *gin.Context) {
	code, ok := codeParam(c)
	if !ok {
		return
	}
	recipe, err := h.products.GetRecipe(code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *CatalogHandler) SetRecipe(c *gin.Context) {
	code, ok := codeParam(c)
	if !ok {
		return
	}
	var req struct {
		Lines []recipeLineRequest `json:"lines"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format")
		return
	}
	lines, ok := h.parseRecipe(c, req.Lines)
	if !ok {
		return
	}

	if err := h.products.SetRecipe(code, lines); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Reference data for the form dropdowns.

func (h *CatalogHandler) ListUnits(c *gin.Context) {
	units, err := h.refs.ListUnits()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": units})
}

func (h *CatalogHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.refs.ListPaymentMethods()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": methods})
}

func (h *CatalogHandler) ListOrderTypes(c *gin.Context) {
	types, err := h.refs.ListOrderTypes()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": types})
}

func (h *CatalogHandler) ListStates(c *gin.Context) {
	states, err := h.refs.ListStates()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": states})
}
