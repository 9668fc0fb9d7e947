package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Falmousl/Finance-Project/internal/config"
	"github.com/Falmousl/Finance-Project/internal/handler"
	"github.com/Falmousl/Finance-Project/internal/snapshot"
)

func main() {
	ticker := flag.String("ticker", "", "ticker symbol to assemble, e.g. AAPL")
	configPath := flag.String("config", "config.yaml", "optional YAML config file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	if *ticker == "" {
		log.Fatalf("-ticker is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	if err := cfg.ValidateProviders(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	assembler, err := snapshot.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("error configuring providers: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*cfg.Providers.UpstreamTimeout+10*time.Second)
	defer cancel()

	start := time.Now()
	snap, err := assembler.Assemble(ctx, *ticker)
	if err != nil {
		log.Fatalf("error assembling snapshot for %s: %v", *ticker, err)
	}
	slog.Info("snapshot assembled", "ticker", snap.Ticker, "elapsed", time.Since(start).String())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(handler.ToSnapshotResponse(snap)); err != nil {
		log.Fatalf("error encoding snapshot: %v", err)
	}
}
