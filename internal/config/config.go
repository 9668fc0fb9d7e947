package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"

	ProviderYahoo        = "yahoo"
	ProviderFinnHub      = "finnhub"
	ProviderNewsAPI      = "newsapi"
	ProviderAlphaVantage = "alphavantage"
	ProviderMassive      = "massive"
	ProviderOpenAI       = "openai"
	ProviderAnthropic    = "anthropic"
)

type Config struct {
	Server struct {
		Port        string   `yaml:"port"`
		FrontendURL string   `yaml:"frontend_url"`
		Origins     []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Store struct {
		Driver      string `yaml:"driver"`
		DatabaseURL string `yaml:"database_url"`
		SQLitePath  string `yaml:"sqlite_path"`
	} `yaml:"store"`
	Session struct {
		RedisURL   string        `yaml:"redis_url"`
		TTL        time.Duration `yaml:"ttl"`
		SweepCron  string        `yaml:"sweep_cron"`
		CookieName string        `yaml:"cookie_name"`
		Secure     bool          `yaml:"secure"`
	} `yaml:"session"`
	Providers struct {
		Market          string        `yaml:"market"`
		News            string        `yaml:"news"`
		LLM             string        `yaml:"llm"`
		UpstreamTimeout time.Duration `yaml:"upstream_timeout"`
	} `yaml:"providers"`
	Keys struct {
		NewsAPI      string `yaml:"news_api"`
		FinnHub      string `yaml:"finnhub"`
		AlphaVantage string `yaml:"alpha_vantage"`
		Massive      string `yaml:"massive"`
		OpenAI       string `yaml:"openai"`
		Anthropic    string `yaml:"anthropic"`
	} `yaml:"keys"`
}

// Load reads the optional YAML file at path, then .env, then applies
// environment overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.FrontendURL, "FRONTEND_URL")
	setString(&c.Store.Driver, "STORE_DRIVER")
	setString(&c.Store.DatabaseURL, "DATABASE_URL")
	setString(&c.Store.SQLitePath, "SQLITE_PATH")
	setString(&c.Session.RedisURL, "REDIS_URL")
	setString(&c.Session.SweepCron, "SESSION_SWEEP_CRON")
	setString(&c.Providers.Market, "MARKET_PROVIDER")
	setString(&c.Providers.News, "NEWS_PROVIDER")
	setString(&c.Providers.LLM, "LLM_PROVIDER")
	setString(&c.Keys.NewsAPI, "NEWS_API_KEY")
	setString(&c.Keys.FinnHub, "FINNHUB_API_KEY")
	setString(&c.Keys.AlphaVantage, "ALPHA_VANTAGE_API_KEY")
	setString(&c.Keys.Massive, "MASSIVE_API_KEY")
	setString(&c.Keys.OpenAI, "OPENAI_API_KEY")
	setString(&c.Keys.Anthropic, "ANTHROPIC_API_KEY")

	if err := setDuration(&c.Session.TTL, "SESSION_TTL"); err != nil {
		return err
	}
	if err := setDuration(&c.Providers.UpstreamTimeout, "UPSTREAM_TIMEOUT"); err != nil {
		return err
	}
	if v := os.Getenv("SESSION_SECURE"); v != "" {
		c.Session.Secure = v == "true" || v == "1"
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if len(c.Server.Origins) == 0 {
		c.Server.Origins = []string{"http://localhost:3000"}
	}
	if c.Server.FrontendURL != "" {
		c.Server.Origins = append(c.Server.Origins, c.Server.FrontendURL)
	}
	if c.Store.Driver == "" {
		c.Store.Driver = StoreDriverPostgres
		if c.Store.DatabaseURL == "" && c.Store.SQLitePath != "" {
			c.Store.Driver = StoreDriverSQLite
		}
	}
	if c.Store.SQLitePath == "" {
		c.Store.SQLitePath = "data/finance.db"
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = 24 * time.Hour
	}
	if c.Session.SweepCron == "" {
		c.Session.SweepCron = "@every 5m"
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "session_token"
	}
	if c.Providers.Market == "" {
		c.Providers.Market = ProviderYahoo
	}
	if c.Providers.News == "" {
		c.Providers.News = ProviderNewsAPI
	}
	if c.Providers.LLM == "" {
		c.Providers.LLM = ProviderOpenAI
	}
	if c.Providers.UpstreamTimeout == 0 {
		c.Providers.UpstreamTimeout = 10 * time.Second
	}
}

// Validate checks that the selected store and providers have what they need.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("store.database_url is required for the postgres driver")
		}
	case StoreDriverSQLite:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	return c.ValidateProviders()
}

// ValidateProviders checks only the market, news and llm settings.
func (c *Config) ValidateProviders() error {
	switch c.Providers.Market {
	case ProviderYahoo:
	case ProviderFinnHub:
		if c.Keys.FinnHub == "" {
			return fmt.Errorf("keys.finnhub is required for the finnhub market provider")
		}
	default:
		return fmt.Errorf("unknown market provider %q", c.Providers.Market)
	}

	var newsKey string
	switch c.Providers.News {
	case ProviderNewsAPI:
		newsKey = c.Keys.NewsAPI
	case ProviderFinnHub:
		newsKey = c.Keys.FinnHub
	case ProviderAlphaVantage:
		newsKey = c.Keys.AlphaVantage
	case ProviderMassive:
		newsKey = c.Keys.Massive
	default:
		return fmt.Errorf("unknown news provider %q", c.Providers.News)
	}
	if newsKey == "" {
		return fmt.Errorf("an API key is required for the %s news provider", c.Providers.News)
	}

	switch c.Providers.LLM {
	case ProviderOpenAI:
		if c.Keys.OpenAI == "" {
			return fmt.Errorf("keys.openai is required for the openai llm provider")
		}
	case ProviderAnthropic:
		if c.Keys.Anthropic == "" {
			return fmt.Errorf("keys.anthropic is required for the anthropic llm provider")
		}
	default:
		return fmt.Errorf("unknown llm provider %q", c.Providers.LLM)
	}

	if c.Providers.UpstreamTimeout <= 0 {
		return fmt.Errorf("providers.upstream_timeout must be positive")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = d
	return nil
}
