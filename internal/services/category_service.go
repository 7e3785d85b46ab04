package services

import (
	"strings"

	"go.uber.org/zap"

	"restaurant_manager/internal/models"
	"restaurant_manager/internal/repository"
)

type CategoryService interface {
	Create(code int, name string) (*models.Category, error)
	Get(code int) (*models.Category, error)
	List(query string, page, pageSize int) ([]models.Category, int64, error)
	UpdateName(code int, name string) (*models.Category, error)
	Deactivate(code int) error
}

type categoryService struct {
	repo   repository.CategoryRepository
	cache  ListCache
	logger *zap.Logger
}

func NewCategoryService(repo repository.CategoryRepository, cache ListCache, logger *zap.Logger) CategoryService {
	return &categoryService{repo: repo, cache: cache, logger: logger}
}

type categoryPage struct {
	Items []models.Category `json:"items"`
	Total int64             `json:"total"`
}

func (s *categoryService) Create(code int, name string) (*models.Category, error) {
	if code <= 0 {
		return nil, validationErr("category code must be positive")
	}
	if strings.TrimSpace(name) == "" {
		return nil, validationErr("category name is required")
	}

	// Pre-check gives the friendly duplicate message; the unique index on
	// code closes the remaining race.
	exists, err := s.repo.ExistsByCode(code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateKey
	}

	category := &models.Category{Code: code, Name: name, Active: true}
	if err := s.repo.Create(category); err != nil {
		return nil, translate(err)
	}

	s.invalidate()
	s.logger.Info("category created", zap.Int("code", code), zap.String("name", name))
	return category, nil
}

func (s *categoryService) Get(code int) (*models.Category, error) {
	category, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, translate(err)
	}
	return category, nil
}

func (s *categoryService) List(query string, page, pageSize int) ([]models.Category, int64, error) {
	if query == "" && page <= 1 {
		var cached categoryPage
		if err := s.cache.GetList("categories", &cached); err == nil {
			return cached.Items, cached.Total, nil
		}
	}

	items, total, err := s.repo.List(query, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	if query == "" && page <= 1 {
		if err := s.cache.SetList("categories", categoryPage{Items: items, Total: total}, listCacheTTL); err != nil {
			s.logger.Warn("failed to cache category list", zap.Error(err))
		}
	}
	return items, total, nil
}

func (s *categoryService) UpdateName(code int, name string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, validationErr("category name is required")
	}

	category, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, translate(err)
	}

	category.Name = name
	if err := s.repo.Update(category); err != nil {
		return nil, translate(err)
	}

	s.invalidate()
	return category, nil
}

// Deactivate soft-deletes: the row stays, the active flag flips. Calling it
// on an already-inactive category is a no-op.
func (s *categoryService) Deactivate(code int) error {
	if _, err := s.repo.GetByCode(code); err != nil {
		return translate(err)
	}
	if err := s.repo.Deactivate(code); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *categoryService) invalidate() {
	if err := s.cache.InvalidateList("categories"); err != nil {
		s.logger.Warn("failed to invalidate category list cache", zap.Error(err))
	}
}
