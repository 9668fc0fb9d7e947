package snapshot

import (
	"fmt"

	"github.com/Falmousl/Finance-Project/internal/config"
	"github.com/Falmousl/Finance-Project/pkg/llm"
	"github.com/Falmousl/Finance-Project/pkg/market"
	"github.com/Falmousl/Finance-Project/pkg/news"
)

// NewFromConfig wires the configured market, news and llm providers into an Assembler.
func NewFromConfig(cfg *config.Config) (*Assembler, error) {
	var m market.Client
	switch cfg.Providers.Market {
	case config.ProviderYahoo:
		m = market.NewYahooClient()
	case config.ProviderFinnHub:
		m = market.NewFinnHubClient(cfg.Keys.FinnHub)
	default:
		return nil, fmt.Errorf("unknown market provider %q", cfg.Providers.Market)
	}

	var n news.Client
	switch cfg.Providers.News {
	case config.ProviderNewsAPI:
		n = news.NewNewsAPIClient(cfg.Keys.NewsAPI)
	case config.ProviderFinnHub:
		n = news.NewFinnHubClient(cfg.Keys.FinnHub)
	case config.ProviderAlphaVantage:
		n = news.NewAlphaVantageClient(cfg.Keys.AlphaVantage)
	case config.ProviderMassive:
		n = news.NewMassiveClient(cfg.Keys.Massive)
	default:
		return nil, fmt.Errorf("unknown news provider %q", cfg.Providers.News)
	}

	var s llm.Summarizer
	switch cfg.Providers.LLM {
	case config.ProviderOpenAI:
		s = llm.NewOpenAIClient(cfg.Keys.OpenAI)
	case config.ProviderAnthropic:
		s = llm.NewAnthropicClient(cfg.Keys.Anthropic)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Providers.LLM)
	}

	return NewAssembler(m, n, s, cfg.Providers.UpstreamTimeout), nil
}
