package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestFinnHubFetchRecent(t *testing.T) {
	var gotSymbol, gotFrom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSymbol = r.URL.Query().Get("symbol")
		gotFrom = r.URL.Query().Get("from")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"headline":"Apple earnings","summary":"Apple beat estimates.","url":"https://example.com/1","datetime":1767571200,"source":"CNBC"},
			{"id":2,"headline":"Apple supplier news","url":"https://example.com/2","datetime":1767484800,"source":"Yahoo"}
		]`))
	}))
	defer srv.Close()

	httpClient := srv.Client()
	httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}
	client := newFinnHubClient("test-key", httpClient)

	to := time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)
	articles, err := client.FetchRecent(context.Background(), "AAPL", to.AddDate(0, 0, -30), to, 1)

	assert.Equal(t, nil, err)
	assert.Equal(t, "AAPL", gotSymbol)
	assert.Equal(t, "2025-12-07", gotFrom)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "1", articles[0].ExternalID)
	assert.Equal(t, "Apple beat estimates.", *articles[0].Description)
	assert.Equal(t, "CNBC", articles[0].Publisher)
	assert.Equal(t, "FinnHub", articles[0].Source)
}
