// Package anthropic adapts the Anthropic Messages API to extractor.Generator.
package anthropic

import (
	"context"
	"fmt"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
	"github.com/heartmarshall/quizbank-backend/internal/extractor"
)

// Client sends one prompt per call. SDK retries are disabled; retrying is the
// caller's decision.
type Client struct {
	client  anthropic.Client
	timeout time.Duration
}

// New creates a Client. Extra request options (base URL, HTTP client) are
// appended after the API key.
func New(apiKey string, timeout time.Duration, opts ...option.RequestOption) *Client {
	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &Client{
		client:  anthropic.NewClient(reqOpts...),
		timeout: timeout,
	}
}

// Generate implements extractor.Generator.
func (c *Client) Generate(ctx context.Context, prompt string, opts extractor.GenerateOptions) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(opts.Model),
		MaxTokens:   int64(opts.MaxOutputTokens),
		Temperature: anthropic.Float(opts.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String(), nil
}
