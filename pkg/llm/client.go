package llm

import "context"

// Summarizer turns a ticker and its recent article descriptions into a short
// free-text analysis. Output is opaque and non-deterministic.
type Summarizer interface {
	Summarize(ctx context.Context, ticker string, descriptions []*string) (string, error)
	Name() string
}
