package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
)

// reply mirrors the JSON contract stated in the prompt. Pointers tell a
// missing key apart from a zero value.
type reply struct {
	Title       string        `json:"title"`
	Question    *string       `json:"question"`
	Choices     []replyChoice `json:"choices"`
	Explanation string        `json:"explanation"`
	Difficulty  string        `json:"difficulty"`
}

type replyChoice struct {
	Text      *string `json:"text"`
	IsCorrect *bool   `json:"is_correct"`
}

// Extract runs the structured path: one generator call, then strict parsing
// of the reply. Errors wrap domain.ErrCollaboratorUnavailable or
// domain.ErrMalformedResponse.
func (e *Extractor) Extract(ctx context.Context, raw string) (*domain.Question, error) {
	text, truncated := e.prepareInput(raw)
	if truncated {
		e.log.DebugContext(ctx, "source text truncated",
			slog.Int("runes", utf8.RuneCountInString(raw)),
			slog.Int("budget", e.cfg.InputBudget),
		)
	}

	out, err := e.gen.Generate(ctx, buildPrompt(text), e.cfg.generateOptions())
	if err != nil {
		if errors.Is(err, domain.ErrCollaboratorUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrCollaboratorUnavailable, err)
	}

	q, err := e.parseReply(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return q, nil
}

// prepareInput cuts the text to the input budget. Text within the budget is
// forwarded byte for byte.
func (e *Extractor) prepareInput(raw string) (string, bool) {
	return domain.TruncateRunes(raw, e.cfg.InputBudget)
}

func (e *Extractor) parseReply(out string) (*domain.Question, error) {
	body := stripCodeFence(out)
	if body == "" {
		return nil, errors.New("empty reply")
	}

	var r reply
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	if r.Question == nil || strings.TrimSpace(*r.Question) == "" {
		return nil, errors.New("question is missing")
	}
	if len(r.Choices) == 0 {
		return nil, errors.New("choices is empty")
	}

	choices := make([]domain.Choice, len(r.Choices))
	for i, c := range r.Choices {
		if c.Text == nil || strings.TrimSpace(*c.Text) == "" {
			return nil, fmt.Errorf("choice %d has no text", i)
		}
		if c.IsCorrect == nil {
			return nil, fmt.Errorf("choice %d has no is_correct flag", i)
		}
		choices[i] = domain.Choice{Text: strings.TrimSpace(*c.Text), Correct: *c.IsCorrect}
	}

	q := &domain.Question{
		Title:       strings.TrimSpace(r.Title),
		Body:        strings.TrimSpace(*r.Question),
		Choices:     choices,
		Explanation: strings.TrimSpace(r.Explanation),
		Difficulty:  domain.Difficulty(strings.ToLower(strings.TrimSpace(r.Difficulty))),
		Method:      domain.ExtractionMethodLLM,
	}
	if q.Title == "" {
		q.Title = deriveTitle(q.Body, e.cfg.TitleMaxRunes)
	}
	if q.Explanation == "" {
		q.Explanation = NoExplanation
	}
	if !q.Difficulty.IsValid() {
		q.Difficulty = domain.DefaultDifficulty
	}
	q.LowConfidence = q.CorrectCount() != 1

	return q, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl != -1 {
		s = s[nl+1:]
	} else {
		// Single line fence: ```{...}```
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// deriveTitle takes the first non-blank line of body and cuts it to max runes,
// marking the cut with an ellipsis.
func deriveTitle(body string, max int) string {
	first := body
	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			first = line
			break
		}
	}
	title, cut := domain.TruncateRunes(strings.TrimSpace(first), max)
	if cut {
		return title + titleEllipsis
	}
	return title
}
