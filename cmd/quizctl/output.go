package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
	"github.com/heartmarshall/quizbank-backend/internal/service/importer"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type choiceView struct {
	Text    string `json:"text"    yaml:"text"`
	Correct bool   `json:"correct" yaml:"correct"`
}

type questionView struct {
	Title         string       `json:"title"                    yaml:"title"`
	Body          string       `json:"body"                     yaml:"body"`
	Choices       []choiceView `json:"choices"                  yaml:"choices"`
	Explanation   string       `json:"explanation"              yaml:"explanation"`
	Difficulty    string       `json:"difficulty"               yaml:"difficulty"`
	Method        string       `json:"method"                   yaml:"method"`
	LowConfidence bool         `json:"low_confidence,omitempty" yaml:"low_confidence,omitempty"`
	Language      string       `json:"language,omitempty"       yaml:"language,omitempty"`
}

type previewView struct {
	Blocks    int            `json:"blocks"              yaml:"blocks"`
	Truncated bool           `json:"truncated,omitempty" yaml:"truncated,omitempty"`
	Skipped   int            `json:"skipped"             yaml:"skipped"`
	Failed    int            `json:"failed"              yaml:"failed"`
	Questions []questionView `json:"questions"           yaml:"questions"`
}

func newPreviewView(r *importer.ImportResult) previewView {
	v := previewView{
		Blocks:    r.Blocks,
		Truncated: r.Truncated,
		Skipped:   r.Skipped,
		Failed:    r.Failed,
		Questions: make([]questionView, 0, len(r.Questions)),
	}
	for _, q := range r.Questions {
		v.Questions = append(v.Questions, newQuestionView(q))
	}
	return v
}

func newQuestionView(q domain.Question) questionView {
	choices := make([]choiceView, len(q.Choices))
	for i, c := range q.Choices {
		choices[i] = choiceView{Text: c.Text, Correct: c.Correct}
	}
	return questionView{
		Title:         q.Title,
		Body:          q.Body,
		Choices:       choices,
		Explanation:   q.Explanation,
		Difficulty:    q.Difficulty.String(),
		Method:        q.Method.String(),
		LowConfidence: q.LowConfidence,
		Language:      q.Language,
	}
}

// writePreview prints previewed questions as JSON or YAML.
func writePreview(w io.Writer, format string, r *importer.ImportResult) error {
	v := newPreviewView(r)
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// writeOutcomes prints one row per block followed by the totals.
func writeOutcomes(w io.Writer, r *importer.ImportResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BLOCK\tSTATUS\tQUESTION\tMETHOD\tNOTE")
	for _, o := range r.Outcomes {
		id := "-"
		if o.QuestionID != nil {
			id = o.QuestionID.String()
		}
		method := "-"
		if o.Method != "" {
			method = o.Method.String()
		}
		note := o.Reason
		if o.LowConfidence {
			note = "low confidence"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", o.Index, o.Status, id, method, note)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d blocks: %d saved, %d skipped, %d failed, %d low confidence\n",
		r.Blocks, r.Saved, r.Skipped, r.Failed, r.LowConfidence)
	if r.Truncated {
		fmt.Fprintln(w, "input truncated: only the first blocks were processed")
	}
}
