package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://localhost/finance")

	cfg, err := Load("missing.yaml")

	assert.Equal(t, nil, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, ProviderYahoo, cfg.Providers.Market)
	assert.Equal(t, ProviderNewsAPI, cfg.Providers.News)
	assert.Equal(t, ProviderOpenAI, cfg.Providers.LLM)
	assert.Equal(t, 10*time.Second, cfg.Providers.UpstreamTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "session_token", cfg.Session.CookieName)
}

func TestLoadYAMLWithEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: "9000"
store:
  driver: sqlite
  sqlite_path: /tmp/finance.db
providers:
  news: finnhub
  upstream_timeout: 5s
keys:
  finnhub: yaml-key
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FINNHUB_API_KEY", "env-key")
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg, err := Load(path)

	assert.Equal(t, nil, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/finance.db", cfg.Store.SQLitePath)
	assert.Equal(t, "env-key", cfg.Keys.FinnHub)
	assert.Equal(t, ProviderAnthropic, cfg.Providers.LLM)
	assert.Equal(t, 5*time.Second, cfg.Providers.UpstreamTimeout)
	assert.Equal(t, nil, cfg.Validate())
}

func TestLoadInvalidDuration(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("UPSTREAM_TIMEOUT", "soon")

	_, err := Load("missing.yaml")

	assert.NotEqual(t, nil, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.applyDefaults()
		cfg.Store.DatabaseURL = "postgres://localhost/finance"
		cfg.Keys.NewsAPI = "news"
		cfg.Keys.OpenAI = "sk"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "postgres without url", mutate: func(c *Config) { c.Store.DatabaseURL = "" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "mysql" }, wantErr: true},
		{name: "missing news key", mutate: func(c *Config) { c.Keys.NewsAPI = "" }, wantErr: true},
		{name: "missing openai key", mutate: func(c *Config) { c.Keys.OpenAI = "" }, wantErr: true},
		{name: "finnhub market without key", mutate: func(c *Config) { c.Providers.Market = ProviderFinnHub }, wantErr: true},
		{name: "unknown llm", mutate: func(c *Config) { c.Providers.LLM = "gemini" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
