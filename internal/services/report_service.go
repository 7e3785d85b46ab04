package services

import (
	"go.uber.org/zap"

	"restaurant_manager/internal/models"
	"restaurant_manager/internal/repository"
)

// ReportService serves the sales report: billing records filtered by
// customer name or bill date.
type ReportService interface {
	ListSales(query string, page, pageSize int) ([]models.Sale, int64, error)
}

type reportService struct {
	sales  repository.SaleRepository
	cache  ListCache
	logger *zap.Logger
}

func NewReportService(sales repository.SaleRepository, cache ListCache, logger *zap.Logger) ReportService {
	return &reportService{sales: sales, cache: cache, logger: logger}
}

type salePage struct {
	Items []models.Sale `json:"items"`
	Total int64         `json:"total"`
}

func (s *reportService) ListSales(query string, page, pageSize int) ([]models.Sale, int64, error) {
	if query == "" && page <= 1 {
		var cached salePage
		if err := s.cache.GetList("sales", &cached); err == nil {
			return cached.Items, cached.Total, nil
		}
	}

	filter := repository.NewListFilter(query, page, pageSize)
	items, total, err := s.sales.List(filter)
	if err != nil {
		return nil, 0, err
	}

	if query == "" && page <= 1 {
		if err := s.cache.SetList("sales", salePage{Items: items, Total: total}, listCacheTTL); err != nil {
			s.logger.Warn("failed to cache sales list", zap.Error(err))
		}
	}
	return items, total, nil
}
