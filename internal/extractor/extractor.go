// Package extractor turns a block of raw exam text into a structured
// multiple-choice question.
//
// The structured path asks a text-generation service for JSON. When the
// reply breaks the JSON contract, a deterministic line-pattern parser takes
// over. Network failures are not masked by the fallback: they surface as
// domain.ErrCollaboratorUnavailable so the caller can retry, skip or abort.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
)

// Extractor holds only its collaborators and settings; calls share no state.
type Extractor struct {
	gen Generator
	cfg Config
	log *slog.Logger
}

// New creates an Extractor. Zero config fields take package defaults.
func New(gen Generator, cfg Config, log *slog.Logger) *Extractor {
	return &Extractor{
		gen: gen,
		cfg: cfg.withDefaults(),
		log: log.With("component", "extractor"),
	}
}

// ExtractQuestion tries the structured path, then the fallback parser.
//
//   - domain.ErrCollaboratorUnavailable is returned as is (retryable).
//   - A malformed reply, or a reply without choices, triggers the fallback.
//   - domain.ErrUnextractable is returned when the fallback finds nothing.
func (e *Extractor) ExtractQuestion(ctx context.Context, raw string) (*domain.Question, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("empty source text: %w", domain.ErrUnextractable)
	}

	q, err := e.Extract(ctx, raw)
	switch {
	case err == nil && len(q.Choices) > 0:
		return q, nil
	case errors.Is(err, domain.ErrCollaboratorUnavailable):
		return nil, err
	case err != nil:
		e.log.InfoContext(ctx, "structured extraction failed, using fallback", slog.String("error", err.Error()))
	default:
		e.log.InfoContext(ctx, "structured extraction returned no choices, using fallback")
	}

	fq, ok := ExtractFallback(raw, e.cfg.TitleMaxRunes)
	if !ok {
		return nil, fmt.Errorf("no question or choice lines found: %w", domain.ErrUnextractable)
	}

	e.log.WarnContext(ctx, "question extracted by fallback, first choice assumed correct",
		slog.String("title", fq.Title),
		slog.Int("choices", len(fq.Choices)),
	)
	return fq, nil
}
