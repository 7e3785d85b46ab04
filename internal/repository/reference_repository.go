package repository

import (
	"gorm.io/gorm"

	"restaurant_manager/internal/models"
)

// ReferenceRepository reads the seeded reference tables and answers the
// existence checks behind referential validation.
type ReferenceRepository interface {
	ListUnits() ([]models.UnitOfMeasurement, error)
	ListPaymentMethods() ([]models.PaymentMethod, error)
	ListOrderTypes() ([]models.OrderType, error)
	ListStates() ([]models.StateType, error)
	UnitExists(id uint) (bool, error)
	PaymentMethodExists(id uint) (bool, error)
	OrderTypeExists(id uint) (bool, error)
	StateExists(id uint) (bool, error)
}

type referenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) ListUnits() ([]models.UnitOfMeasurement, error) {
	var units []models.UnitOfMeasurement
	err := r.db.Order("id asc").Find(&units).Error
	return units, err
}

func (r *referenceRepository) ListPaymentMethods() ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := r.db.Order("id asc").Find(&methods).Error
	return methods, err
}

func (r *referenceRepository) ListOrderTypes() ([]models.OrderType, error) {
	var types []models.OrderType
	err := r.db.Order("id asc").Find(&types).Error
	return types, err
}

func (r *referenceRepository) ListStates() ([]models.StateType, error) {
	var states []models.StateType
	err := r.db.Order("id asc").Find(&states).Error
	return states, err
}

func (r *referenceRepository) UnitExists(id uint) (bool, error) {
	return r.exists(&models.UnitOfMeasurement{}, id)
}

func (r *referenceRepository) PaymentMethodExists(id uint) (bool, error) {
	return r.exists(&models.PaymentMethod{}, id)
}

func (r *referenceRepository) OrderTypeExists(id uint) (bool, error) {
	return r.exists(&models.OrderType{}, id)
}

func (r *referenceRepository) StateExists(id uint) (bool, error) {
	return r.exists(&models.StateType{}, id)
}

func (r *referenceRepository) exists(model interface{}, id uint) (bool, error) {
	var count int64
	err := r.db.Model(model).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
