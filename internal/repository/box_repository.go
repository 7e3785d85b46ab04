package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"restaurant_manager/internal/models"
)

type BoxRepository interface {
	GetByID(id uint) (*models.Box, error)
	OpenForDay(day time.Time) (*models.Box, error)
	List(page, pageSize int) ([]models.Box, int64, error)
}

type boxRepository struct {
	db *gorm.DB
}

func NewBoxRepository(db *gorm.DB) BoxRepository {
	return &boxRepository{db: db}
}

func (r *boxRepository) GetByID(id uint) (*models.Box, error) {
	var box models.Box
	err := r.db.First(&box, id).Error
	if err != nil {
		return nil, err
	}
	return &box, nil
}

// OpenForDay returns the still-open box whose opening timestamp falls within
// the given calendar day, or nil when the day has none.
func (r *boxRepository) OpenForDay(day time.Time) (*models.Box, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var box models.Box
	err := r.db.Where("opened_at >= ? AND opened_at < ? AND closed_at IS NULL", start, end).
		First(&box).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &box, nil
}

// List returns box history newest-open-first.
func (r *boxRepository) List(page, pageSize int) ([]models.Box, int64, error) {
	var total int64
	if err := r.db.Model(&models.Box{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var boxes []models.Box
	err := r.db.Order("opened_at desc").
		Offset(offset(page, pageSize)).
		Limit(pageSize).
		Find(&boxes).Error
	return boxes, total, err
}
