package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Box is one cash-register session. A box with a nil ClosedAt is open; at
// most one box per calendar day may be open, enforced by a partial unique
// index created alongside the schema.
type Box struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	OpenedAt      time.Time        `json:"opened_at" gorm:"not null;index"`
	ClosedAt      *time.Time       `json:"closed_at"`
	OpeningFund   decimal.Decimal  `json:"opening_fund" gorm:"type:decimal(12,2);not null"`
	CashSales     *decimal.Decimal `json:"cash_sales" gorm:"type:decimal(12,2)"`
	CardSales     *decimal.Decimal `json:"card_sales" gorm:"type:decimal(12,2)"`
	TotalSales    *decimal.Decimal `json:"total_sales" gorm:"type:decimal(12,2)"`
	ClosingAmount *decimal.Decimal `json:"closing_amount" gorm:"type:decimal(12,2)"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (Box) TableName() string {
	return "boxes"
}

// IsOpen reports whether the session has not been closed yet.
func (b *Box) IsOpen() bool {
	return b.ClosedAt == nil
}
