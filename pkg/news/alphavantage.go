package news

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Falmousl/Finance-Project/pkg/dataerr"
)

const alphaVantageURL = "https://www.alphavantage.co/query"

type AlphaVantageClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewAlphaVantageClient(apiKey string) *AlphaVantageClient {
	return &AlphaVantageClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *AlphaVantageClient) Name() string {
	return "AlphaVantage"
}

func (c *AlphaVantageClient) FetchRecent(ctx context.Context, ticker string, from, to time.Time, limit int) ([]Article, error) {
	q := url.Values{}
	q.Set("function", "NEWS_SENTIMENT")
	q.Set("tickers", ticker)
	q.Set("time_from", from.Format("20060102T1504"))
	q.Set("time_to", to.Format("20060102T1504"))
	q.Set("sort", "RELEVANCE")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, alphaVantageURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("alphavantage request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, dataerr.Unavailable("alphavantage fetch", err)
	}
	defer resp.Body.Close()

	var raw avResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w: %w", dataerr.ErrMalformedResponse, err)
	}

	// rate limiting and bad keys come back as 200 with an explanatory field
	if raw.Information != "" || raw.ErrorMessage != "" {
		return nil, dataerr.Unavailable("alphavantage", fmt.Errorf("%s%s", raw.Information, raw.ErrorMessage))
	}

	articles := make([]Article, 0, len(raw.Feed))
	for _, item := range raw.Feed {
		publishedAt, err := time.Parse("20060102T150405", item.TimePublished)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			ExternalID:  generateExternalID(item.URL),
			Headline:    item.Title,
			Description: item.Summary,
			URL:         item.URL,
			Publisher:   item.Source,
			PublishedAt: publishedAt,
			Source:      c.Name(),
		})
	}

	return limitArticles(articles, limit), nil
}

func generateExternalID(url string) string {
	sum := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x", sum)[:16]
}

type avResponse struct {
	Feed         []avFeedItem `json:"feed"`
	Information  string       `json:"Information"`
	ErrorMessage string       `json:"Error Message"`
}

type avFeedItem struct {
	Title         string  `json:"title"`
	Summary       *string `json:"summary"`
	URL           string  `json:"url"`
	Source        string  `json:"source"`
	TimePublished string  `json:"time_published"`
}
