package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Falmousl/Finance-Project/pkg/dataerr"
	"github.com/go-playground/assert/v2"
	"github.com/openai/openai-go/option"
)

func newTestOpenAIClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIClient("test-key", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
}

func chatCompletion(content string, choices int) map[string]interface{} {
	list := make([]map[string]interface{}, choices)
	for i := range list {
		list[i] = map[string]interface{}{
			"index":         i,
			"finish_reason": "stop",
			"message":       map[string]interface{}{"role": "assistant", "content": content},
		}
	}
	return map[string]interface{}{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1767571200,
		"model":   "gpt-4o",
		"choices": list,
	}
}

func TestOpenAISummarize(t *testing.T) {
	var body string
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion("  Apple shares rose on strong demand.  ", 1))
	})

	d := "Apple reported record iPhone sales."
	got, err := client.Summarize(context.Background(), "AAPL", []*string{&d})

	assert.Equal(t, nil, err)
	assert.Equal(t, "Apple shares rose on strong demand.", got)
	assert.Equal(t, true, strings.Contains(body, `"model":"gpt-4o"`))
	assert.Equal(t, true, strings.Contains(body, "Apple reported record iPhone sales."))
}

func TestOpenAISummarizeNoChoices(t *testing.T) {
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion("", 0))
	})

	_, err := client.Summarize(context.Background(), "AAPL", nil)

	assert.Equal(t, true, errors.Is(err, dataerr.ErrEmptyResponse))
}

func TestOpenAISummarizeProviderError(t *testing.T) {
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"bad request","type":"invalid_request_error"}}`))
	})

	_, err := client.Summarize(context.Background(), "AAPL", nil)

	assert.Equal(t, true, errors.Is(err, dataerr.ErrUpstreamUnavailable))
}
