package model

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Quote is a point-in-time price and fundamentals view of a single ticker.
// Optional fields stay invalid/nil when the provider has no value for them.
type Quote struct {
	Symbol        string
	CurrentPrice  decimal.Decimal
	PreviousClose decimal.Decimal
	MarketCap     decimal.NullDecimal
	PERatio       decimal.NullDecimal
	Sector        *string
	Name          *string
}

// PercentChange returns (current - previous) / previous * 100. A zero previous
// close yields zero; market clients reject such quotes before they get here.
func (q Quote) PercentChange() decimal.Decimal {
	if q.PreviousClose.IsZero() {
		return decimal.Zero
	}
	return q.CurrentPrice.Sub(q.PreviousClose).Div(q.PreviousClose).Mul(hundred)
}

type PricePoint struct {
	Date  time.Time
	Close decimal.Decimal
}

type SectorIndexInfo struct {
	Symbol        *string
	Name          *string
	MarketCap     decimal.NullDecimal
	PERatio       decimal.NullDecimal
	PercentChange decimal.NullDecimal
}

type Snapshot struct {
	Ticker      string
	ChartHTML   string
	Quote       Quote
	SectorIndex SectorIndexInfo
	Sentiment   *string
}
