package repository

import (
	"restaurant_manager/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *models.Category) error
	GetByCode(code int) (*models.Category, error)
	ExistsByCode(code int) (bool, error)
	List(query string, page, pageSize int) ([]models.Category, int64, error)
	ListActive() ([]models.Category, error)
	Update(category *models.Category) error
	Deactivate(code int) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) GetByCode(code int) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("code = ?", code).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ExistsByCode(code int) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *categoryRepository) List(query string, page, pageSize int) ([]models.Category, int64, error) {
	base := r.db.Model(&models.Category{}).Where("active = ?", true)
	if query != "" {
		base = base.Where("name ILIKE ?", "%"+query+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []models.Category
	err := base.Order("code asc").
		Offset(offset(page, pageSize)).
		Limit(pageSize).
		Find(&categories).Error
	return categories, total, err
}

func (r *categoryRepository) ListActive() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("active = ?", true).Order("code asc").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepository) Deactivate(code int) error {
	return r.db.Model(&models.Category{}).Where("code = ?", code).Update("active", false).Error
}
