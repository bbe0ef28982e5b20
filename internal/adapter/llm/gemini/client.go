// Package gemini adapts the Google Gemini API to extractor.Generator.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
	"github.com/heartmarshall/quizbank-backend/internal/extractor"
)

// Client wraps a genai client. A GenerativeModel is built per call so that
// concurrent calls never share sampling settings.
type Client struct {
	client  *genai.Client
	timeout time.Duration
}

// New creates a Gemini client.
func New(ctx context.Context, apiKey string, timeout time.Duration) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client, timeout: timeout}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// Generate implements extractor.Generator.
func (c *Client) Generate(ctx context.Context, prompt string, opts extractor.GenerateOptions) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	model := c.client.GenerativeModel(opts.Model)
	model.SetTemperature(float32(opts.Temperature))
	model.SetMaxOutputTokens(int32(opts.MaxOutputTokens))
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}

	return responseText(resp), nil
}

// responseText concatenates the text parts of the first candidate. An empty
// result is left for the extractor to reject as malformed.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
