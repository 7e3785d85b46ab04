package handlers

import (
	"time"

	"github.com/shopspring/decimal"
)

const notAvailable = "Not available"

// Formatter renders stored values into the display strings the back-office
// tables expect: currency-prefixed two-decimal money, ISO dates, and the
// "Pending"/"Not available" sentinels for missing values.
type Formatter struct {
	currency string
}

func NewFormatter(currency string) Formatter {
	return Formatter{currency: currency}
}

// Money renders with two decimals, or "Not available" for a missing value.
func (f Formatter) Money(d *decimal.Decimal) string {
	if d == nil {
		return notAvailable
	}
	return f.currency + d.StringFixed(2)
}

// MoneyOrZero renders a missing value as zero instead of "Not available".
// Box closing totals use this.
func (f Formatter) MoneyOrZero(d *decimal.Decimal) string {
	if d == nil {
		return f.currency + "0.00"
	}
	return f.currency + d.StringFixed(2)
}

// Price renders order totals with four decimals and no currency prefix.
func (f Formatter) Price(d decimal.Decimal) string {
	return d.StringFixed(4)
}

func (f Formatter) Date(t time.Time) string {
	return t.Format("2006-01-02")
}

func (f Formatter) DateOr(t *time.Time, fallback string) string {
	if t == nil {
		return fallback
	}
	return t.Format("2006-01-02")
}
