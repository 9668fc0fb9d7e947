package market

import (
	"context"
	"strings"
	"time"

	"github.com/Falmousl/Finance-Project/internal/model"
	"github.com/Falmousl/Finance-Project/pkg/dataerr"
	"github.com/shopspring/decimal"
)

const (
	defaultAttempts = 2
	defaultBackoff  = 300 * time.Millisecond
)

type Client interface {
	GetQuote(ctx context.Context, ticker string) (*model.Quote, error)
	GetHistory(ctx context.Context, ticker string, lookbackDays int) ([]model.PricePoint, error)
	Name() string
}

func checkTicker(ticker string) error {
	if strings.TrimSpace(ticker) == "" {
		return dataerr.ErrInvalidTicker
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func validPrices(current, previous decimal.Decimal) bool {
	return current.IsPositive() && previous.IsPositive()
}
