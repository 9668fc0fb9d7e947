package market

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/Falmousl/Finance-Project/internal/model"
	"github.com/Falmousl/Finance-Project/pkg/dataerr"
	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
	"github.com/shopspring/decimal"
)

// finnhub reports market capitalization in millions
var million = decimal.NewFromInt(1_000_000)

// peMetrics are tried in order; the first present one wins.
var peMetrics = []string{"peTTM", "peBasicExclExtraTTM", "peNormalizedAnnual"}

type FinnHubClient struct {
	client   *finnhub.DefaultApiService
	attempts int
	backoff  time.Duration
}

func NewFinnHubClient(apiKey string) *FinnHubClient {
	return newFinnHubClient(apiKey, &http.Client{Timeout: 30 * time.Second})
}

func newFinnHubClient(apiKey string, httpClient *http.Client) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.HTTPClient = httpClient
	return &FinnHubClient{
		client:   finnhub.NewAPIClient(cfg).DefaultApi,
		attempts: defaultAttempts,
		backoff:  defaultBackoff,
	}
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}

func (c *FinnHubClient) GetQuote(ctx context.Context, ticker string) (*model.Quote, error) {
	if err := checkTicker(ticker); err != nil {
		return nil, err
	}

	var res finnhub.Quote
	err := dataerr.Retry(ctx, c.attempts, c.backoff, func(ctx context.Context) error {
		q, resp, err := c.client.Quote(ctx).Symbol(ticker).Execute()
		if err != nil {
			return classify("finnhub quote", resp, err)
		}
		res = q
		return nil
	})
	if err != nil {
		return nil, err
	}

	// unknown symbols come back as an all-zero quote
	if (res.C == nil || *res.C == 0) && (res.Pc == nil || *res.Pc == 0) {
		return nil, fmt.Errorf("finnhub: no data for %s: %w", ticker, dataerr.ErrNotFound)
	}
	if res.C == nil || res.Pc == nil {
		return nil, fmt.Errorf("finnhub: %s: current price or previous close missing: %w", ticker, dataerr.ErrMalformedResponse)
	}

	quote := &model.Quote{
		Symbol:        ticker,
		CurrentPrice:  decimal.NewFromFloat32(*res.C),
		PreviousClose: decimal.NewFromFloat32(*res.Pc),
	}
	if !validPrices(quote.CurrentPrice, quote.PreviousClose) {
		return nil, fmt.Errorf("finnhub: %s: non-positive price: %w", ticker, dataerr.ErrMalformedResponse)
	}

	// profile and metrics are enrichment; their failures leave the fields absent
	if profile, _, err := c.client.CompanyProfile2(ctx).Symbol(ticker).Execute(); err == nil {
		quote.Name = nonEmpty(profile.Name)
		quote.Sector = nonEmpty(profile.FinnhubIndustry)
		if profile.MarketCapitalization != nil && *profile.MarketCapitalization > 0 {
			quote.MarketCap = decimal.NewNullDecimal(decimal.NewFromFloat32(*profile.MarketCapitalization).Mul(million))
		}
	}

	if financials, _, err := c.client.CompanyBasicFinancials(ctx).Symbol(ticker).Metric("all").Execute(); err == nil && financials.Metric != nil {
		quote.PERatio = peFromMetrics(*financials.Metric)
	}

	return quote, nil
}

func peFromMetrics(metrics map[string]interface{}) decimal.NullDecimal {
	for _, key := range peMetrics {
		if v, ok := metrics[key].(float64); ok {
			return decimal.NewNullDecimal(decimal.NewFromFloat(v))
		}
	}
	return decimal.NullDecimal{}
}

func (c *FinnHubClient) GetHistory(ctx context.Context, ticker string, lookbackDays int) ([]model.PricePoint, error) {
	if err := checkTicker(ticker); err != nil {
		return nil, err
	}

	to := time.Now()
	from := to.AddDate(0, 0, -lookbackDays)

	var candles finnhub.StockCandles
	err := dataerr.Retry(ctx, c.attempts, c.backoff, func(ctx context.Context) error {
		res, resp, err := c.client.StockCandles(ctx).Symbol(ticker).Resolution("D").From(from.Unix()).To(to.Unix()).Execute()
		if err != nil {
			return classify("finnhub candles", resp, err)
		}
		candles = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	if candles.S != nil && *candles.S == "no_data" {
		return nil, fmt.Errorf("finnhub candles: no data for %s: %w", ticker, dataerr.ErrNotFound)
	}
	if candles.C == nil || candles.T == nil {
		return []model.PricePoint{}, nil
	}

	closes, stamps := *candles.C, *candles.T
	points := make([]model.PricePoint, 0, len(stamps))
	for i, ts := range stamps {
		if i >= len(closes) {
			break
		}
		points = append(points, model.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: decimal.NewFromFloat32(closes[i]),
		})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}

func classify(source string, resp *http.Response, err error) error {
	if resp == nil {
		return dataerr.Unavailable(source, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", source, dataerr.ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return dataerr.Unavailable(source, err)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: access denied: %w: %w", source, dataerr.ErrUpstreamUnavailable, err)
	}
	return fmt.Errorf("%s: %w: %w", source, dataerr.ErrMalformedResponse, err)
}
