package handler

import (
	"time"

	"github.com/Falmousl/Finance-Project/internal/model"
	"github.com/shopspring/decimal"
)

type InvestmentRequest struct {
	InvestmentID string `json:"investment_id" form:"investment_id"`
}

type CredentialsRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// SnapshotInfo mirrors the dashboard's info block. Absent values marshal as null.
type SnapshotInfo struct {
	CurrentPrice  float64  `json:"current_price"`
	PercentChange float64  `json:"percent_change"`
	MarketCap     *float64 `json:"market_cap"`
	PERatio       *float64 `json:"pe_ratio"`
	ETFName       *string  `json:"etf_name"`
	ETFSymbol     *string  `json:"etf_symbol"`
	ETFMarketCap  *float64 `json:"etf_market_cap"`
	ETFPE         *float64 `json:"etf_pe"`
	ETFChange     *float64 `json:"etf_change"`
	Sentiment     *string  `json:"sentiment"`
}

type SnapshotResponse struct {
	PlotHTML string       `json:"plot_html"`
	Info     SnapshotInfo `json:"info"`
}

type WatchlistItemResponse struct {
	ID        int64  `json:"id"`
	Ticker    string `json:"ticker"`
	CreatedAt string `json:"created_at"`
}

type WatchlistResponse struct {
	Items []WatchlistItemResponse `json:"items"`
}

func ToSnapshotResponse(s *model.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		PlotHTML: s.ChartHTML,
		Info: SnapshotInfo{
			CurrentPrice:  s.Quote.CurrentPrice.InexactFloat64(),
			PercentChange: s.Quote.PercentChange().InexactFloat64(),
			MarketCap:     floatOrNil(s.Quote.MarketCap),
			PERatio:       floatOrNil(s.Quote.PERatio),
			ETFName:       s.SectorIndex.Name,
			ETFSymbol:     s.SectorIndex.Symbol,
			ETFMarketCap:  floatOrNil(s.SectorIndex.MarketCap),
			ETFPE:         floatOrNil(s.SectorIndex.PERatio),
			ETFChange:     floatOrNil(s.SectorIndex.PercentChange),
			Sentiment:     s.Sentiment,
		},
	}
}

func toWatchlistResponse(items []model.WatchlistItem) WatchlistResponse {
	res := WatchlistResponse{Items: make([]WatchlistItemResponse, len(items))}
	for i, item := range items {
		res.Items[i] = WatchlistItemResponse{
			ID:        item.ID,
			Ticker:    item.Ticker,
			CreatedAt: item.CreatedAt.Format(time.RFC3339),
		}
	}
	return res
}

func floatOrNil(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}
