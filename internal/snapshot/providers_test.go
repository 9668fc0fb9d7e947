package snapshot

import (
	"testing"
	"time"

	"github.com/Falmousl/Finance-Project/internal/config"
	"github.com/go-playground/assert/v2"
)

func TestNewFromConfig(t *testing.T) {
	tests := []struct {
		name           string
		market         string
		news           string
		llm            string
		wantMarket     string
		wantNews       string
		wantSummarizer string
		wantErr        bool
	}{
		{name: "defaults", market: "yahoo", news: "newsapi", llm: "openai", wantMarket: "Yahoo", wantNews: "NewsAPI", wantSummarizer: "gpt-4o"},
		{name: "finnhub everywhere", market: "finnhub", news: "finnhub", llm: "anthropic", wantMarket: "FinnHub", wantNews: "FinnHub", wantSummarizer: "claude-4.5-haiku"},
		{name: "unknown market", market: "bloomberg", news: "newsapi", llm: "openai", wantErr: true},
		{name: "unknown news", market: "yahoo", news: "reddit", llm: "openai", wantErr: true},
		{name: "unknown llm", market: "yahoo", news: "newsapi", llm: "gemini", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Providers.Market = tt.market
			cfg.Providers.News = tt.news
			cfg.Providers.LLM = tt.llm
			cfg.Providers.UpstreamTimeout = 5 * time.Second
			cfg.Keys.NewsAPI = "k"
			cfg.Keys.FinnHub = "k"
			cfg.Keys.OpenAI = "k"
			cfg.Keys.Anthropic = "k"

			a, err := NewFromConfig(cfg)
			if tt.wantErr {
				assert.NotEqual(t, nil, err)
				return
			}

			assert.Equal(t, nil, err)
			assert.Equal(t, tt.wantMarket, a.market.Name())
			assert.Equal(t, tt.wantNews, a.news.Name())
			assert.Equal(t, tt.wantSummarizer, a.summarizer.Name())
			assert.Equal(t, 5*time.Second, a.timeout)
		})
	}
}
