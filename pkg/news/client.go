package news

import (
	"context"
	"time"
)

const DefaultLimit = 15

type Article struct {
	ExternalID  string
	Headline    string
	Description *string
	URL         string
	Source      string
	PublishedAt time.Time
	Publisher   string
}

// Client fetches articles mentioning a ticker within [from, to], in the
// provider's ranking order, at most limit of them. A successful response with
// no matches is an empty slice, not an error.
type Client interface {
	FetchRecent(ctx context.Context, ticker string, from, to time.Time, limit int) ([]Article, error)
	Name() string
}

// Descriptions returns the article descriptions in order, keeping absent ones as nil.
func Descriptions(articles []Article) []*string {
	out := make([]*string, len(articles))
	for i, a := range articles {
		out[i] = a.Description
	}
	return out
}

func limitArticles(articles []Article, limit int) []Article {
	if limit > 0 && len(articles) > limit {
		return articles[:limit]
	}
	return articles
}
