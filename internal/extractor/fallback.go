package extractor

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
)

var (
	// A-D or 1-4 (ASCII or full-width) followed by a separator.
	choiceLinePattern = regexp.MustCompile(`^(?:[A-Da-dＡ-Ｄａ-ｄ]|[1-4１-４])\s*[.．)）:：、]\s*(.*)$`)

	explanationLinePattern = regexp.MustCompile(`^(?:解説|正解|解答|答え|(?i:correct answer|explanation|answer))\s*[:：]`)
)

type section int

const (
	sectionQuestion section = iota
	sectionChoices
	sectionExplanation
)

// ExtractFallback parses raw text with line patterns only. It never touches
// the network and always returns the same output for the same input.
//
// The parser has no signal for which choice is correct: the first choice is
// marked correct and the result is flagged LowConfidence. A bare label with
// no text on its line or a continuation line is dropped. It reports false
// when no question line or no non-empty choice was found.
func ExtractFallback(raw string, titleMaxRunes int) (*domain.Question, bool) {
	if titleMaxRunes <= 0 {
		titleMaxRunes = DefaultTitleMaxRunes
	}

	var (
		questionLines    []string
		explanationLines []string
		choices          []domain.Choice
		active           = sectionQuestion
	)

	for _, line := range strings.Split(domain.NormalizeLineEndings(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := choiceLinePattern.FindStringSubmatch(line); m != nil {
			choices = append(choices, domain.Choice{Text: strings.TrimSpace(m[1])})
			active = sectionChoices
			continue
		}

		if explanationLinePattern.MatchString(line) {
			explanationLines = append(explanationLines, line)
			active = sectionExplanation
			continue
		}

		switch active {
		case sectionQuestion:
			questionLines = append(questionLines, line)
		case sectionChoices:
			last := &choices[len(choices)-1]
			if last.Text == "" {
				last.Text = line
			} else {
				last.Text += " " + line
			}
		case sectionExplanation:
			explanationLines = append(explanationLines, line)
		}
	}

	choices = dropEmptyChoices(choices)
	if len(questionLines) == 0 || len(choices) == 0 {
		return nil, false
	}

	choices[0].Correct = true

	explanation := strings.Join(explanationLines, "\n")
	if explanation == "" {
		explanation = NoExplanation
	}

	return &domain.Question{
		Title:         deriveTitle(questionLines[0], titleMaxRunes),
		Body:          strings.Join(questionLines, "\n"),
		Choices:       choices,
		Explanation:   explanation,
		Difficulty:    domain.DefaultDifficulty,
		Method:        domain.ExtractionMethodFallback,
		LowConfidence: true,
	}, true
}

func dropEmptyChoices(choices []domain.Choice) []domain.Choice {
	kept := choices[:0]
	for _, c := range choices {
		if c.Text != "" {
			kept = append(kept, c)
		}
	}
	return kept
}
