package repository

import (
	"restaurant_manager/internal/models"

	"gorm.io/gorm"
)

type IngredientRepository interface {
	Create(ingredient *models.Ingredient) error
	GetByCode(code int) (*models.Ingredient, error)
	GetByCodes(codes []int) ([]models.Ingredient, error)
	ExistsByCode(code int) (bool, error)
	List(query string, page, pageSize int) ([]models.Ingredient, int64, error)
	Update(ingredient *models.Ingredient) error
	Deactivate(code int) error
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) Create(ingredient *models.Ingredient) error {
	return r.db.Create(ingredient).Error
}

func (r *ingredientRepository) GetByCode(code int) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.Preload("Unit").Where("code = ?", code).First(&ingredient).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetByCodes(codes []int) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := r.db.Where("code IN ?", codes).Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepository) ExistsByCode(code int) (bool, error) {
	var count int64
	err := r.db.Model(&models.Ingredient{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// List filters active ingredients by name or unit name, case-insensitive.
func (r *ingredientRepository) List(query string, page, pageSize int) ([]models.Ingredient, int64, error) {
	base := r.db.Model(&models.Ingredient{}).
		Joins("LEFT JOIN units_of_measurement ON units_of_measurement.id = ingredients.unit_id").
		Where("ingredients.active = ?", true)
	if query != "" {
		like := "%" + query + "%"
		base = base.Where("ingredients.name ILIKE ? OR units_of_measurement.name ILIKE ?", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ingredients []models.Ingredient
	err := base.Preload("Unit").
		Order("ingredients.code asc").
		Offset(offset(page, pageSize)).
		Limit(pageSize).
		Find(&ingredients).Error
	return ingredients, total, err
}

func (r *ingredientRepository) Update(ingredient *models.Ingredient) error {
	return r.db.Save(ingredient).Error
}

func (r *ingredientRepository) Deactivate(code int) error {
	return r.db.Model(&models.Ingredient{}).Where("code = ?", code).Update("active", false).Error
}
