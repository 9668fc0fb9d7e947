package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Falmousl/Finance-Project/internal/model"
	"github.com/Falmousl/Finance-Project/pkg/dataerr"
	"github.com/shopspring/decimal"
)

const (
	yahooCookieURL  = "https://fc.yahoo.com"
	yahooCrumbURL   = "https://query1.finance.yahoo.com/v1/test/getcrumb"
	yahooSummaryURL = "https://query2.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=price,summaryDetail,assetProfile&crumb=%s"
	yahooChartURL   = "https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d"
	userAgent       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var errCrumbRejected = errors.New("yahoo: crumb rejected")

// YahooClient reads quotes from the quoteSummary endpoint and daily closes from
// the chart endpoint. The crumb is shared by all requests made through the client.
type YahooClient struct {
	httpClient *http.Client
	attempts   int
	backoff    time.Duration

	mu    sync.Mutex
	crumb string
}

func NewYahooClient() *YahooClient {
	jar, _ := cookiejar.New(nil)
	return &YahooClient{
		httpClient: &http.Client{Timeout: 30 * time.Second, Jar: jar},
		attempts:   defaultAttempts,
		backoff:    defaultBackoff,
	}
}

func (c *YahooClient) Name() string {
	return "Yahoo"
}

func (c *YahooClient) GetQuote(ctx context.Context, ticker string) (*model.Quote, error) {
	if err := checkTicker(ticker); err != nil {
		return nil, err
	}

	var quote *model.Quote
	err := dataerr.Retry(ctx, c.attempts, c.backoff, func(ctx context.Context) error {
		q, err := c.fetchQuote(ctx, ticker)
		if errors.Is(err, errCrumbRejected) {
			c.resetCrumb()
			q, err = c.fetchQuote(ctx, ticker)
			if errors.Is(err, errCrumbRejected) {
				err = dataerr.Unavailable("yahoo fetch", err)
			}
		}
		quote = q
		return err
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (c *YahooClient) fetchQuote(ctx context.Context, ticker string) (*model.Quote, error) {
	crumb, err := c.getCrumb(ctx)
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf(yahooSummaryURL, url.PathEscape(ticker), url.QueryEscape(crumb))
	body, status, err := c.get(ctx, u)
	if err != nil {
		return nil, dataerr.Unavailable("yahoo fetch", err)
	}

	switch {
	case status == http.StatusUnauthorized:
		return nil, errCrumbRejected
	case status == http.StatusNotFound:
		return nil, fmt.Errorf("yahoo: %s: %w", ticker, dataerr.ErrNotFound)
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return nil, dataerr.Unavailable("yahoo fetch", fmt.Errorf("status %d", status))
	case status != http.StatusOK:
		return nil, fmt.Errorf("yahoo: status %d, body: %s: %w", status, truncate(body), dataerr.ErrUpstreamUnavailable)
	}

	var raw yahooSummary
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w: %w", dataerr.ErrMalformedResponse, err)
	}

	if raw.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s: %w", raw.QuoteSummary.Error.Description, dataerr.ErrNotFound)
	}
	if len(raw.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no data for %s: %w", ticker, dataerr.ErrNotFound)
	}

	return raw.QuoteSummary.Result[0].toQuote(ticker)
}

func (c *YahooClient) GetHistory(ctx context.Context, ticker string, lookbackDays int) ([]model.PricePoint, error) {
	if err := checkTicker(ticker); err != nil {
		return nil, err
	}

	var points []model.PricePoint
	err := dataerr.Retry(ctx, c.attempts, c.backoff, func(ctx context.Context) error {
		p, err := c.fetchHistory(ctx, ticker, lookbackDays)
		points = p
		return err
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

func (c *YahooClient) fetchHistory(ctx context.Context, ticker string, lookbackDays int) ([]model.PricePoint, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -lookbackDays)

	u := fmt.Sprintf(yahooChartURL, url.PathEscape(ticker), from.Unix(), to.Unix())
	body, status, err := c.get(ctx, u)
	if err != nil {
		return nil, dataerr.Unavailable("yahoo chart", err)
	}

	switch {
	case status == http.StatusNotFound:
		return nil, fmt.Errorf("yahoo chart: %s: %w", ticker, dataerr.ErrNotFound)
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return nil, dataerr.Unavailable("yahoo chart", fmt.Errorf("status %d", status))
	case status != http.StatusOK:
		return nil, fmt.Errorf("yahoo chart: status %d, body: %s: %w", status, truncate(body), dataerr.ErrUpstreamUnavailable)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo chart decode: %w: %w", dataerr.ErrMalformedResponse, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart api error: %s: %w", chart.Chart.Error.Description, dataerr.ErrNotFound)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo chart: no data for %s: %w", ticker, dataerr.ErrNotFound)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return []model.PricePoint{}, nil
	}
	closes := result.Indicators.Quote[0].Close

	points := make([]model.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// null closes are holidays or halted sessions
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, model.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: decimal.NewFromFloat(*closes[i]),
		})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}

func (c *YahooClient) getCrumb(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.crumb != "" {
		return c.crumb, nil
	}

	// fc.yahoo.com answers 404 but still sets the session cookie the crumb is bound to
	if _, _, err := c.get(ctx, yahooCookieURL); err != nil {
		return "", dataerr.Unavailable("yahoo cookie", err)
	}

	body, status, err := c.get(ctx, yahooCrumbURL)
	if err != nil {
		return "", dataerr.Unavailable("yahoo crumb", err)
	}
	crumb := strings.TrimSpace(string(body))
	if status != http.StatusOK || crumb == "" || strings.Contains(crumb, "html") {
		return "", dataerr.Unavailable("yahoo crumb", fmt.Errorf("status %d", status))
	}

	c.crumb = crumb
	return crumb, nil
}

func (c *YahooClient) resetCrumb() {
	c.mu.Lock()
	c.crumb = ""
	c.mu.Unlock()
}

func (c *YahooClient) get(ctx context.Context, u string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func truncate(body []byte) string {
	const max = 200
	if len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "..."
}

type yahooValue struct {
	Raw *float64 `json:"raw"`
}

func (v *yahooValue) nullDecimal() decimal.NullDecimal {
	if v == nil || v.Raw == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*v.Raw))
}

type yahooSummary struct {
	QuoteSummary struct {
		Result []yahooSummaryResult `json:"result"`
		Error  *yahooError          `json:"error"`
	} `json:"quoteSummary"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type yahooSummaryResult struct {
	Price *struct {
		Symbol                     string      `json:"symbol"`
		LongName                   *string     `json:"longName"`
		ShortName                  *string     `json:"shortName"`
		RegularMarketPrice         *yahooValue `json:"regularMarketPrice"`
		RegularMarketPreviousClose *yahooValue `json:"regularMarketPreviousClose"`
		MarketCap                  *yahooValue `json:"marketCap"`
	} `json:"price"`
	SummaryDetail *struct {
		PreviousClose *yahooValue `json:"previousClose"`
		TrailingPE    *yahooValue `json:"trailingPE"`
		MarketCap     *yahooValue `json:"marketCap"`
	} `json:"summaryDetail"`
	AssetProfile *struct {
		Sector *string `json:"sector"`
	} `json:"assetProfile"`
}

func (r yahooSummaryResult) toQuote(ticker string) (*model.Quote, error) {
	if r.Price == nil {
		return nil, fmt.Errorf("yahoo: %s: price module missing: %w", ticker, dataerr.ErrMalformedResponse)
	}

	current := r.Price.RegularMarketPrice.nullDecimal()
	previous := r.Price.RegularMarketPreviousClose.nullDecimal()
	marketCap := r.Price.MarketCap.nullDecimal()

	var pe decimal.NullDecimal
	if r.SummaryDetail != nil {
		if !previous.Valid {
			previous = r.SummaryDetail.PreviousClose.nullDecimal()
		}
		if !marketCap.Valid {
			marketCap = r.SummaryDetail.MarketCap.nullDecimal()
		}
		pe = r.SummaryDetail.TrailingPE.nullDecimal()
	}

	if !current.Valid || !previous.Valid || !validPrices(current.Decimal, previous.Decimal) {
		return nil, fmt.Errorf("yahoo: %s: current price or previous close missing: %w", ticker, dataerr.ErrMalformedResponse)
	}

	name := nonEmpty(r.Price.LongName)
	if name == nil {
		name = nonEmpty(r.Price.ShortName)
	}

	var sector *string
	if r.AssetProfile != nil {
		sector = nonEmpty(r.AssetProfile.Sector)
	}

	symbol := r.Price.Symbol
	if symbol == "" {
		symbol = ticker
	}

	return &model.Quote{
		Symbol:        symbol,
		CurrentPrice:  current.Decimal,
		PreviousClose: previous.Decimal,
		MarketCap:     marketCap,
		PERatio:       pe,
		Sector:        sector,
		Name:          name,
	}, nil
}

type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}
