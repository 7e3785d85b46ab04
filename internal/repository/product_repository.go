package repository

import (
	"fmt"

	"restaurant_manager/internal/models"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *models.Product) error
	GetByCode(code int) (*models.Product, error)
	GetByCodes(codes []int) ([]models.Product, error)
	ExistsByCode(code int) (bool, error)
	List(query string, page, pageSize int) ([]models.Product, int64, error)
	Update(product *models.Product) error
	Deactivate(code int) error
	ReplaceRecipe(productCode int, lines []models.ProductIngredient) error
	GetRecipe(productCode int) ([]models.ProductIngredient, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts the product and its initial recipe snapshot in one
// transaction.
func (r *productRepository) Create(product *models.Product) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		recipe := product.Recipe
		product.Recipe = nil
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		for i := range recipe {
			recipe[i].ID = 0
			recipe[i].ProductCode = product.Code
			if err := tx.Create(&recipe[i]).Error; err != nil {
				return fmt.Errorf("failed to create recipe line: %w", err)
			}
		}
		product.Recipe = recipe
		return nil
	})
}

func (r *productRepository) GetByCode(code int) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Recipe").Preload("Recipe.Ingredient").
		Where("code = ?", code).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByCodes(codes []int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Recipe").Where("code IN ?", codes).Find(&products).Error
	return products, err
}

func (r *productRepository) ExistsByCode(code int) (bool, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// List filters active products by product name or category name,
// case-insensitive substring on either.
func (r *productRepository) List(query string, page, pageSize int) ([]models.Product, int64, error) {
	base := r.db.Model(&models.Product{}).
		Joins("LEFT JOIN categories ON categories.code = products.category_code").
		Where("products.active = ?", true)
	if query != "" {
		like := "%" + query + "%"
		base = base.Where("products.name ILIKE ? OR categories.name ILIKE ?", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := base.Order("products.code asc").
		Offset(offset(page, pageSize)).
		Limit(pageSize).
		Find(&products).Error
	return products, total, err
}

func (r *productRepository) Update(product *models.Product) error {
	// Recipe lines are replaced through ReplaceRecipe, never saved here.
	return r.db.Omit("Recipe").Save(product).Error
}

func (r *productRepository) Deactivate(code int) error {
	return r.db.Model(&models.Product{}).Where("code = ?", code).Update("active", false).Error
}

// ReplaceRecipe sets the product's recipe to exactly the given lines:
// delete-all-then-reinsert inside one transaction, so readers never see a
// half-replaced recipe.
func (r *productRepository) ReplaceRecipe(productCode int, lines []models.ProductIngredient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_code = ?", productCode).
			Delete(&models.ProductIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to delete existing recipe: %w", err)
		}
		for i := range lines {
			lines[i].ID = 0
			lines[i].ProductCode = productCode
			if err := tx.Create(&lines[i]).Error; err != nil {
				return fmt.Errorf("failed to create recipe line: %w", err)
			}
		}
		return nil
	})
}

func (r *productRepository) GetRecipe(productCode int) ([]models.ProductIngredient, error) {
	var lines []models.ProductIngredient
	err := r.db.Preload("Ingredient").
		Where("product_code = ?", productCode).
		Order("ingredient_code asc").
		Find(&lines).Error
	return lines, err
}
