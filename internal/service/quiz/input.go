package quiz

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
)

// ListInput holds the parameters for listing questions.
type ListInput struct {
	Difficulty    *domain.Difficulty
	Source        *string
	LowConfidence *bool
	Limit         int
	Offset        int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Difficulty != nil && !i.Difficulty.IsValid() {
		errs = append(errs, domain.FieldError{Field: "difficulty", Message: "must be easy, medium or hard"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > MaxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SetCorrectChoiceInput marks one choice as the correct answer.
type SetCorrectChoiceInput struct {
	QuestionID  uuid.UUID
	ChoiceIndex int
}

// Validate checks all fields and collects all errors.
func (i SetCorrectChoiceInput) Validate() error {
	return validateAnswerRef(i.QuestionID, i.ChoiceIndex)
}

// SubmitAnswerInput records a practice answer.
type SubmitAnswerInput struct {
	QuestionID  uuid.UUID
	ChoiceIndex int
}

// Validate checks all fields and collects all errors.
func (i SubmitAnswerInput) Validate() error {
	return validateAnswerRef(i.QuestionID, i.ChoiceIndex)
}

func validateAnswerRef(id uuid.UUID, index int) error {
	var errs []domain.FieldError
	if id == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "question_id", Message: "required"})
	}
	if index < 0 {
		errs = append(errs, domain.FieldError{Field: "choice_index", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AnswerResult tells the learner how they did.
type AnswerResult struct {
	Correct      bool   `json:"correct"`
	CorrectIndex int    `json:"correct_index"`
	Explanation  string `json:"explanation"`
	// LowConfidence warns that the stored answer key itself may be wrong.
	LowConfidence bool `json:"low_confidence"`
}
