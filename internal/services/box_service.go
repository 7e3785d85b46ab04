package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"restaurant_manager/internal/models"
	"restaurant_manager/internal/repository"
)

// BoxService drives the cash-register lifecycle: Closed -> Open -> Closed,
// with at most one open box per calendar day.
type BoxService interface {
	OpenToday(fund decimal.Decimal) (*models.Box, error)
	CloseBox(boxID uint) (*models.Box, error)
	OpenBoxForToday() (*models.Box, error)
	History(page, pageSize int) ([]models.Box, int64, error)
}

type boxService struct {
	repo       repository.BoxRepository
	procedures repository.BoxProcedures
	cache      ListCache
	logger     *zap.Logger
}

func NewBoxService(repo repository.BoxRepository, procedures repository.BoxProcedures, cache ListCache, logger *zap.Logger) BoxService {
	return &boxService{repo: repo, procedures: procedures, cache: cache, logger: logger}
}

type boxPage struct {
	Items []models.Box `json:"items"`
	Total int64        `json:"total"`
}

// OpenToday opens a new session with the given opening fund. Rejected when
// today already has an open box; the partial unique index catches the race
// the lifecycle check cannot.
func (s *boxService) OpenToday(fund decimal.Decimal) (*models.Box, error) {
	if fund.IsNegative() {
		return nil, validationErr("opening fund cannot be negative")
	}

	open, err := s.repo.OpenForDay(time.Now())
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, ErrBoxAlreadyOpen
	}

	box, err := s.procedures.Open(fund)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBoxAlreadyOpen
		}
		return nil, err
	}

	s.invalidate()
	s.logger.Info("cash register opened",
		zap.Uint("box_id", box.ID),
		zap.String("opening_fund", fund.StringFixed(2)))
	return box, nil
}

// CloseBox finalizes an open session. The close procedure computes the final
// totals from the sales recorded while the box was open.
func (s *boxService) CloseBox(boxID uint) (*models.Box, error) {
	box, err := s.repo.GetByID(boxID)
	if err != nil {
		return nil, translate(err)
	}
	if !box.IsOpen() {
		return nil, ErrBoxClosed
	}

	closed, err := s.procedures.Close(boxID)
	if err != nil {
		return nil, translate(err)
	}

	s.invalidate()
	s.logger.Info("cash register closed", zap.Uint("box_id", boxID))
	return closed, nil
}

// OpenBoxForToday returns today's open session, or nil when the register is
// closed.
func (s *boxService) OpenBoxForToday() (*models.Box, error) {
	return s.repo.OpenForDay(time.Now())
}

func (s *boxService) History(page, pageSize int) ([]models.Box, int64, error) {
	if page <= 1 {
		var cached boxPage
		if err := s.cache.GetList("boxes", &cached); err == nil {
			return cached.Items, cached.Total, nil
		}
	}

	items, total, err := s.repo.List(page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	if page <= 1 {
		if err := s.cache.SetList("boxes", boxPage{Items: items, Total: total}, listCacheTTL); err != nil {
			s.logger.Warn("failed to cache box history", zap.Error(err))
		}
	}
	return items, total, nil
}

func (s *boxService) invalidate() {
	if err := s.cache.InvalidateList("boxes"); err != nil {
		s.logger.Warn("failed to invalidate box history cache", zap.Error(err))
	}
}
