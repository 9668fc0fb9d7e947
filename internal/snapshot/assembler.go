package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Falmousl/Finance-Project/internal/model"
	"github.com/Falmousl/Finance-Project/pkg/chart"
	"github.com/Falmousl/Finance-Project/pkg/dataerr"
	"github.com/Falmousl/Finance-Project/pkg/llm"
	"github.com/Falmousl/Finance-Project/pkg/market"
	"github.com/Falmousl/Finance-Project/pkg/news"
	"github.com/Falmousl/Finance-Project/pkg/sector"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	LookbackDays   = 180
	NewsWindowDays = 30
	DefaultTimeout = 10 * time.Second
)

// Assembler builds a Snapshot for one ticker. The quote is mandatory; chart,
// sector index, news and sentiment degrade to absent on failure.
type Assembler struct {
	market     market.Client
	news       news.Client
	summarizer llm.Summarizer
	timeout    time.Duration
	now        func() time.Time
}

func NewAssembler(m market.Client, n news.Client, s llm.Summarizer, timeout time.Duration) *Assembler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Assembler{
		market:     m,
		news:       n,
		summarizer: s,
		timeout:    timeout,
		now:        time.Now,
	}
}

func (a *Assembler) Assemble(ctx context.Context, ticker string) (*model.Snapshot, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return nil, dataerr.ErrInvalidTicker
	}

	var (
		quote    *model.Quote
		history  []model.PricePoint
		articles []news.Article
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		callCtx, cancel := context.WithTimeout(gctx, a.timeout)
		defer cancel()

		q, err := a.market.GetQuote(callCtx, ticker)
		if err != nil {
			return fmt.Errorf("quote %s: %w", ticker, err)
		}
		quote = q
		return nil
	})

	g.Go(func() error {
		callCtx, cancel := context.WithTimeout(gctx, a.timeout)
		defer cancel()

		h, err := a.market.GetHistory(callCtx, ticker, LookbackDays)
		if err != nil {
			if gctx.Err() != nil {
				return nil
			}
			slog.Warn("history unavailable, rendering empty chart",
				"ticker", ticker, "provider", a.market.Name(), "error", err)
			return nil
		}
		history = h
		return nil
	})

	g.Go(func() error {
		callCtx, cancel := context.WithTimeout(gctx, a.timeout)
		defer cancel()

		to := a.now().UTC()
		from := to.AddDate(0, 0, -NewsWindowDays)

		list, err := a.news.FetchRecent(callCtx, ticker, from, to, news.DefaultLimit)
		if err != nil {
			if gctx.Err() != nil {
				return nil
			}
			slog.Warn("news unavailable, summarizing without articles",
				"ticker", ticker, "provider", a.news.Name(), "error", err)
			return nil
		}
		if len(list) > news.DefaultLimit {
			list = list[:news.DefaultLimit]
		}
		articles = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &model.Snapshot{
		Ticker:    ticker,
		ChartHTML: chart.Render(history),
		Quote:     *quote,
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		snap.SectorIndex = a.sectorIndex(ctx, ticker, quote.Sector)
	}()

	go func() {
		defer wg.Done()
		snap.Sentiment = a.sentiment(ctx, ticker, news.Descriptions(articles))
	}()

	wg.Wait()

	return snap, nil
}

// sectorIndex looks up the sector ETF. Both an unmapped sector and a failed
// lookup leave every field absent.
func (a *Assembler) sectorIndex(ctx context.Context, ticker string, sectorName *string) model.SectorIndexInfo {
	symbol := sector.Resolve(sectorName)
	if symbol == nil {
		return model.SectorIndexInfo{}
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	q, err := a.market.GetQuote(callCtx, *symbol)
	if err != nil {
		slog.Warn("sector index unavailable",
			"ticker", ticker, "index", *symbol, "error", err)
		return model.SectorIndexInfo{}
	}

	return model.SectorIndexInfo{
		Symbol:        symbol,
		Name:          q.Name,
		MarketCap:     q.MarketCap,
		PERatio:       q.PERatio,
		PercentChange: decimal.NewNullDecimal(q.PercentChange()),
	}
}

func (a *Assembler) sentiment(ctx context.Context, ticker string, descriptions []*string) *string {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.summarizer.Summarize(callCtx, ticker, descriptions)
	if err != nil {
		slog.Warn("sentiment unavailable",
			"ticker", ticker, "provider", a.summarizer.Name(), "articles", len(descriptions), "error", err)
		return nil
	}
	return &text
}
