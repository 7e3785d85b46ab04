package services

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"restaurant_manager/internal/models"
	"restaurant_manager/internal/repository"
)

// RecipeLineInput is one submitted recipe line. The unit is resolved from
// the ingredient being linked, never taken from the caller.
type RecipeLineInput struct {
	IngredientCode int
	Quantity       decimal.Decimal
}

// ProductInput carries the product fields shared by create and update.
type ProductInput struct {
	Code         int
	Name         string
	Description  string
	CategoryCode int
	Price        decimal.Decimal
	Quantity     int
}

type ProductService interface {
	Create(input ProductInput, recipe []RecipeLineInput) (*models.Product, error)
	Get(code int) (*models.Product, error)
	List(query string, page, pageSize int) ([]models.Product, int64, error)
	Update(input ProductInput) (*models.Product, error)
	Deactivate(code int) error
	SetRecipe(productCode int, lines []RecipeLineInput) error
	GetRecipe(productCode int) ([]models.ProductIngredient, error)
}

type productService struct {
	repo        repository.ProductRepository
	categories  repository.CategoryRepository
	ingredients repository.IngredientRepository
	cache       ListCache
	logger      *zap.Logger
}

func NewProductService(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	ingredients repository.IngredientRepository,
	cache ListCache,
	logger *zap.Logger,
) ProductService {
	return &productService{
		repo:        repo,
		categories:  categories,
		ingredients: ingredients,
		cache:       cache,
		logger:      logger,
	}
}

type productPage struct {
	Items []models.Product `json:"items"`
	Total int64            `json:"total"`
}

func (s *productService) Create(input ProductInput, recipe []RecipeLineInput) (*models.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	// The category must resolve to an existing row; a dangling reference
	// aborts the operation rather than guessing.
	if _, err := s.categories.GetByCode(input.CategoryCode); err != nil {
		return nil, missingRef(err)
	}

	exists, err := s.repo.ExistsByCode(input.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateKey
	}

	lines, err := s.resolveRecipe(recipe)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Code:         input.Code,
		Name:         input.Name,
		Description:  input.Description,
		CategoryCode: input.CategoryCode,
		Price:        input.Price,
		Quantity:     input.Quantity,
		Active:       true,
		Recipe:       lines,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, translate(err)
	}

	s.invalidate()
	s.logger.Info("product created",
		zap.Int("code", input.Code),
		zap.String("name", input.Name),
		zap.Int("recipe_lines", len(lines)))
	return product, nil
}

func (s *productService) Get(code int) (*models.Product, error) {
	product, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, translate(err)
	}
	return product, nil
}

func (s *productService) List(query string, page, pageSize int) ([]models.Product, int64, error) {
	if query == "" && page <= 1 {
		var cached productPage
		if err := s.cache.GetList("products", &cached); err == nil {
			return cached.Items, cached.Total, nil
		}
	}

	items, total, err := s.repo.List(query, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	if query == "" && page <= 1 {
		if err := s.cache.SetList("products", productPage{Items: items, Total: total}, listCacheTTL); err != nil {
			s.logger.Warn("failed to cache product list", zap.Error(err))
		}
	}
	return items, total, nil
}

// Update edits the mutable fields only. Code and category are immutable
// after creation; the submitted category is ignored.
func (s *productService) Update(input ProductInput) (*models.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	product, err := s.repo.GetByCode(input.Code)
	if err != nil {
		return nil, translate(err)
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Quantity = input.Quantity
	product.Recipe = nil
	if err := s.repo.Update(product); err != nil {
		return nil, translate(err)
	}

	s.invalidate()
	return product, nil
}

func (s *productService) Deactivate(code int) error {
	if _, err := s.repo.GetByCode(code); err != nil {
		return translate(err)
	}
	if err := s.repo.Deactivate(code); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// SetRecipe replaces the product's recipe with exactly the submitted set.
func (s *productService) SetRecipe(productCode int, recipe []RecipeLineInput) error {
	if _, err := s.repo.GetByCode(productCode); err != nil {
		return translate(err)
	}

	lines, err := s.resolveRecipe(recipe)
	if err != nil {
		return err
	}
	if err := s.repo.ReplaceRecipe(productCode, lines); err != nil {
		return translate(err)
	}

	s.invalidate()
	return nil
}

func (s *productService) GetRecipe(productCode int) ([]models.ProductIngredient, error) {
	if _, err := s.repo.GetByCode(productCode); err != nil {
		return nil, translate(err)
	}
	return s.repo.GetRecipe(productCode)
}

// resolveRecipe validates submitted lines and resolves each line's unit from
// the ingredient it links. Duplicate ingredient codes collapse to the last
// submitted line, matching full-replace semantics.
func (s *productService) resolveRecipe(recipe []RecipeLineInput) ([]models.ProductIngredient, error) {
	if len(recipe) == 0 {
		return nil, nil
	}

	byCode := make(map[int]RecipeLineInput, len(recipe))
	codes := make([]int, 0, len(recipe))
	for _, line := range recipe {
		if line.Quantity.IsNegative() {
			return nil, validationErr("recipe quantity cannot be negative")
		}
		if _, seen := byCode[line.IngredientCode]; !seen {
			codes = append(codes, line.IngredientCode)
		}
		byCode[line.IngredientCode] = line
	}

	ingredients, err := s.ingredients.GetByCodes(codes)
	if err != nil {
		return nil, err
	}
	unitByCode := make(map[int]uint, len(ingredients))
	for _, ing := range ingredients {
		unitByCode[ing.Code] = ing.UnitID
	}

	lines := make([]models.ProductIngredient, 0, len(codes))
	for _, code := range codes {
		unitID, ok := unitByCode[code]
		if !ok {
			return nil, ErrMissingReference
		}
		lines = append(lines, models.ProductIngredient{
			IngredientCode: code,
			Quantity:       byCode[code].Quantity,
			UnitID:         unitID,
		})
	}
	return lines, nil
}

func validateProduct(input ProductInput) error {
	if input.Code <= 0 {
		return validationErr("product code must be positive")
	}
	if strings.TrimSpace(input.Name) == "" {
		return validationErr("product name is required")
	}
	if input.Price.IsNegative() {
		return validationErr("product price cannot be negative")
	}
	if input.Quantity < 0 {
		return validationErr("product quantity cannot be negative")
	}
	return nil
}

func missingRef(err error) error {
	if translated := translate(err); translated == ErrNotFound {
		return ErrMissingReference
	}
	return err
}

func (s *productService) invalidate() {
	if err := s.cache.InvalidateList("products"); err != nil {
		s.logger.Warn("failed to invalidate product list cache", zap.Error(err))
	}
}
