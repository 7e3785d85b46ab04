package services

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"restaurant_manager/internal/models"
	"restaurant_manager/internal/repository"
)

type IngredientService interface {
	Create(code int, name string, unitID uint, quantity decimal.Decimal) (*models.Ingredient, error)
	Get(code int) (*models.Ingredient, error)
	List(query string, page, pageSize int) ([]models.Ingredient, int64, error)
	Update(code int, name string, unitID uint, quantity decimal.Decimal) (*models.Ingredient, error)
	Deactivate(code int) error
}

type ingredientService struct {
	repo   repository.IngredientRepository
	refs   repository.ReferenceRepository
	cache  ListCache
	logger *zap.Logger
}

func NewIngredientService(repo repository.IngredientRepository, refs repository.ReferenceRepository, cache ListCache, logger *zap.Logger) IngredientService {
	return &ingredientService{repo: repo, refs: refs, cache: cache, logger: logger}
}

type ingredientPage struct {
	Items []models.Ingredient `json:"items"`
	Total int64               `json:"total"`
}

func (s *ingredientService) Create(code int, name string, unitID uint, quantity decimal.Decimal) (*models.Ingredient, error) {
	if err := s.validate(code, name, unitID, quantity); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByCode(code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateKey
	}

	ingredient := &models.Ingredient{
		Code:     code,
		Name:     name,
		UnitID:   unitID,
		Quantity: quantity,
		Active:   true,
	}
	if err := s.repo.Create(ingredient); err != nil {
		return nil, translate(err)
	}

	s.invalidate()
	s.logger.Info("ingredient created", zap.Int("code", code), zap.String("name", name))
	return ingredient, nil
}

func (s *ingredientService) Get(code int) (*models.Ingredient, error) {
	ingredient, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, translate(err)
	}
	return ingredient, nil
}

func (s *ingredientService) List(query string, page, pageSize int) ([]models.Ingredient, int64, error) {
	if query == "" && page <= 1 {
		var cached ingredientPage
		if err := s.cache.GetList("ingredients", &cached); err == nil {
			return cached.Items, cached.Total, nil
		}
	}

	items, total, err := s.repo.List(query, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	if query == "" && page <= 1 {
		if err := s.cache.SetList("ingredients", ingredientPage{Items: items, Total: total}, listCacheTTL); err != nil {
			s.logger.Warn("failed to cache ingredient list", zap.Error(err))
		}
	}
	return items, total, nil
}

// Update changes the mutable fields: name, unit and on-hand quantity. The
// business key never changes.
func (s *ingredientService) Update(code int, name string, unitID uint, quantity decimal.Decimal) (*models.Ingredient, error) {
	if err := s.validate(code, name, unitID, quantity); err != nil {
		return nil, err
	}

	ingredient, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, translate(err)
	}

	ingredient.Name = name
	ingredient.UnitID = unitID
	ingredient.Quantity = quantity
	ingredient.Unit = nil
	if err := s.repo.Update(ingredient); err != nil {
		return nil, translate(err)
	}

	s.invalidate()
	return ingredient, nil
}

func (s *ingredientService) Deactivate(code int) error {
	if _, err := s.repo.GetByCode(code); err != nil {
		return translate(err)
	}
	if err := s.repo.Deactivate(code); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *ingredientService) validate(code int, name string, unitID uint, quantity decimal.Decimal) error {
	if code <= 0 {
		return validationErr("ingredient code must be positive")
	}
	if strings.TrimSpace(name) == "" {
		return validationErr("ingredient name is required")
	}
	if quantity.IsNegative() {
		return validationErr("ingredient quantity cannot be negative")
	}

	ok, err := s.refs.UnitExists(unitID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMissingReference
	}
	return nil
}

func (s *ingredientService) invalidate() {
	if err := s.cache.InvalidateList("ingredients"); err != nil {
		s.logger.Warn("failed to invalidate ingredient list cache", zap.Error(err))
	}
}
