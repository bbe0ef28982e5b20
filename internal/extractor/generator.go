package extractor

import "context"

// GenerateOptions are the sampling settings passed with every prompt.
type GenerateOptions struct {
	Model           string
	MaxOutputTokens int
	Temperature     float64
}

// Generator is the external text-generation collaborator: prompt in, text
// out. Implementations impose their own timeouts; any returned error is
// treated as the service being unavailable.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}
