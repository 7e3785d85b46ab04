package repository

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant_manager/internal/models"
)

// OrderHeaderCreator is the transactional primitive that allocates an order
// header: id, order number and default state. It runs inside the caller's
// transaction and returns the created row directly, so callers never have to
// re-query by a non-unique field to find what they just created.
type OrderHeaderCreator interface {
	CreateHeader(tx *gorm.DB, customerName string, paymentMethodID, orderTypeID uint) (*models.Order, error)
}

// BoxProcedures are the opaque open/close primitives for a cash-register
// session. Close owns the computation of final totals from recorded sales.
type BoxProcedures interface {
	Open(fund decimal.Decimal) (*models.Box, error)
	Close(boxID uint) (*models.Box, error)
}

type headerCreator struct{}

func NewOrderHeaderCreator() OrderHeaderCreator {
	return headerCreator{}
}

// CreateHeader draws the id from the orders sequence and derives the order
// number from it, so concurrent creations cannot collide.
func (headerCreator) CreateHeader(tx *gorm.DB, customerName string, paymentMethodID, orderTypeID uint) (*models.Order, error) {
	var id int64
	err := tx.Raw("SELECT nextval(pg_get_serial_sequence('orders', 'id'))").Scan(&id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to allocate order id: %w", err)
	}

	order := &models.Order{
		ID:              uint(id),
		Number:          fmt.Sprintf("ORD-%05d", id),
		CustomerName:    customerName,
		PaymentMethodID: paymentMethodID,
		OrderTypeID:     orderTypeID,
		StateID:         models.StatePending,
		TotalPrice:      decimal.Zero,
		OrderDate:       time.Now(),
		Active:          true,
	}
	if err := tx.Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

type boxProcedures struct {
	db *gorm.DB
}

func NewBoxProcedures(db *gorm.DB) BoxProcedures {
	return &boxProcedures{db: db}
}

// Open inserts a new open session. The partial unique index on open boxes
// rejects a second open for the same calendar day at commit time, closing
// the check-then-open race.
func (p *boxProcedures) Open(fund decimal.Decimal) (*models.Box, error) {
	box := &models.Box{
		OpenedAt:    time.Now(),
		OpeningFund: fund,
	}
	if err := p.db.Create(box).Error; err != nil {
		return nil, err
	}
	return box, nil
}

// Close finalizes the session: sales recorded since the box opened are
// summed into a cash bucket and a card/SINPE bucket, and the closing amount
// is the opening fund plus total sales.
func (p *boxProcedures) Close(boxID uint) (*models.Box, error) {
	var box models.Box
	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&box, boxID).Error; err != nil {
			return err
		}
		if !box.IsOpen() {
			return gorm.ErrRecordNotFound
		}

		now := time.Now()
		cash, err := sumSales(tx, box.OpenedAt, now, true)
		if err != nil {
			return fmt.Errorf("failed to sum cash sales: %w", err)
		}
		card, err := sumSales(tx, box.OpenedAt, now, false)
		if err != nil {
			return fmt.Errorf("failed to sum card sales: %w", err)
		}

		total := cash.Add(card)
		closing := box.OpeningFund.Add(total)
		box.CashSales = &cash
		box.CardSales = &card
		box.TotalSales = &total
		box.ClosingAmount = &closing
		box.ClosedAt = &now
		return tx.Save(&box).Error
	})
	if err != nil {
		return nil, err
	}
	return &box, nil
}

func sumSales(tx *gorm.DB, from, to time.Time, cash bool) (decimal.Decimal, error) {
	query := tx.Model(&models.Sale{}).Where("bill_date BETWEEN ? AND ?", from, to)
	if cash {
		query = query.Where("payment_method_id = ?", models.PaymentMethodCash)
	} else {
		query = query.Where("payment_method_id <> ?", models.PaymentMethodCash)
	}

	var result struct {
		Total decimal.Decimal
	}
	err := query.Select("COALESCE(SUM(amount), 0) AS total").Scan(&result).Error
	return result.Total, err
}
