package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/Falmousl/Finance-Project/pkg/dataerr"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicClient(apiKey string, opts ...option.RequestOption) *AnthropicClient {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(1)}, opts...)
	client := anthropic.NewClient(opts...)
	return &AnthropicClient{
		client:    &client,
		model:     anthropic.Model("claude-haiku-4-5"),
		modelName: "claude-4.5-haiku",
	}
}

func (c *AnthropicClient) Name() string {
	return c.modelName
}

func (c *AnthropicClient) Summarize(ctx context.Context, ticker string, descriptions []*string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 512,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(sentimentPrompt(ticker, descriptions))),
		},
	})

	if err != nil {
		return "", dataerr.Unavailable("anthropic API error", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no response from anthropic: %w", dataerr.ErrEmptyResponse)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		sb.WriteString(block.Text)
	}

	content := strings.TrimSpace(sb.String())
	if content == "" {
		return "", fmt.Errorf("blank response from anthropic: %w", dataerr.ErrEmptyResponse)
	}

	return content, nil
}
