package model

import (
	"math"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/shopspring/decimal"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
	}{
		{name: "gain", current: 110, previous: 100},
		{name: "loss", current: 187.44, previous: 190.12},
		{name: "flat", current: 42, previous: 42},
		{name: "penny stock", current: 0.0123, previous: 0.0119},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Quote{
				CurrentPrice:  decimal.NewFromFloat(tt.current),
				PreviousClose: decimal.NewFromFloat(tt.previous),
			}

			want := (tt.current - tt.previous) / tt.previous * 100
			got := q.PercentChange().InexactFloat64()

			assert.Equal(t, true, math.Abs(got-want) < 1e-9)
		})
	}
}

func TestPercentChangeZeroPreviousClose(t *testing.T) {
	q := Quote{CurrentPrice: decimal.NewFromInt(5)}
	assert.Equal(t, true, q.PercentChange().IsZero())
}
