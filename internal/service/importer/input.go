package importer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
)

const maxSourceLength = 255

// ImportInput holds the parameters of an import or preview.
type ImportInput struct {
	// Source names the material (file name, URL); stored on every question.
	Source string
	Text   string
	// Format defaults to text.
	Format domain.SourceFormat
}

// Validate checks all fields and collects all errors.
func (i ImportInput) Validate(maxTextBytes int) error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Text) == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	if maxTextBytes > 0 && len(i.Text) > maxTextBytes {
		errs = append(errs, domain.FieldError{Field: "text", Message: fmt.Sprintf("max %d bytes", maxTextBytes)})
	}
	if i.Format != "" && !i.Format.IsValid() {
		errs = append(errs, domain.FieldError{Field: "format", Message: "must be text or html"})
	}
	if len(i.Source) > maxSourceLength {
		errs = append(errs, domain.FieldError{Field: "source", Message: fmt.Sprintf("max %d characters", maxSourceLength)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// BlockStatus is the fate of one source block.
type BlockStatus string

const (
	// BlockSaved: a question was extracted and stored.
	BlockSaved BlockStatus = "saved"
	// BlockExtracted: a question was extracted; preview does not store it.
	BlockExtracted BlockStatus = "extracted"
	// BlockSkipped: the block holds no recognisable question.
	BlockSkipped BlockStatus = "skipped"
	// BlockFailed: generation stayed unavailable after retries, or storage failed.
	BlockFailed BlockStatus = "failed"
)

// BlockOutcome reports what happened to one block.
type BlockOutcome struct {
	Index         int                     `json:"index"`
	Status        BlockStatus             `json:"status"`
	Reason        string                  `json:"reason,omitempty"`
	QuestionID    *uuid.UUID              `json:"question_id,omitempty"`
	Method        domain.ExtractionMethod `json:"method,omitempty"`
	LowConfidence bool                    `json:"low_confidence,omitempty"`
}

// ImportResult summarises a batch. Questions is filled by Preview only.
type ImportResult struct {
	Blocks        int               `json:"blocks"`
	Truncated     bool              `json:"truncated"`
	Extracted     int               `json:"extracted"`
	Saved         int               `json:"saved"`
	Skipped       int               `json:"skipped"`
	Failed        int               `json:"failed"`
	LowConfidence int               `json:"low_confidence"`
	Outcomes      []BlockOutcome    `json:"outcomes"`
	Questions     []domain.Question `json:"questions,omitempty"`
}

func (r *ImportResult) record(o BlockOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case BlockSaved:
		r.Saved++
		r.Extracted++
	case BlockExtracted:
		r.Extracted++
	case BlockSkipped:
		r.Skipped++
	case BlockFailed:
		r.Failed++
	}
	if o.LowConfidence && (o.Status == BlockSaved || o.Status == BlockExtracted) {
		r.LowConfidence++
	}
}
