package quiz

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
)

// GetQuestion returns a single question by ID.
func (s *Service) GetQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	return q, nil
}

// ListQuestions returns a page of questions and the total match count.
func (s *Service) ListQuestions(ctx context.Context, input ListInput) ([]domain.Question, int, error) {
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	questions, total, err := s.questions.List(ctx, domain.QuestionFilter{
		Difficulty:    input.Difficulty,
		Source:        input.Source,
		LowConfidence: input.LowConfidence,
		Limit:         limit,
		Offset:        input.Offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list questions: %w", err)
	}
	return questions, total, nil
}

// DeleteQuestion removes a question and its practice history.
func (s *Service) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}

	s.log.InfoContext(ctx, "question deleted", slog.String("question_id", id.String()))
	return nil
}

// SetCorrectChoice records a manual correction of the answer key: exactly
// the chosen choice becomes correct and the question is no longer flagged
// low confidence.
func (s *Service) SetCorrectChoice(ctx context.Context, input SetCorrectChoiceInput) (*domain.Question, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	q, err := s.questions.GetByID(ctx, input.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	if input.ChoiceIndex >= len(q.Choices) {
		return nil, domain.NewValidationError("choice_index", fmt.Sprintf("out of range (question has %d choices)", len(q.Choices)))
	}

	choices := make([]domain.Choice, len(q.Choices))
	for i, c := range q.Choices {
		choices[i] = domain.Choice{Text: c.Text, Correct: i == input.ChoiceIndex}
	}

	if err := s.questions.UpdateChoices(ctx, q.ID, choices, false); err != nil {
		return nil, fmt.Errorf("update choices: %w", err)
	}

	s.log.InfoContext(ctx, "answer key corrected",
		slog.String("question_id", q.ID.String()),
		slog.Int("choice_index", input.ChoiceIndex),
		slog.Bool("was_low_confidence", q.LowConfidence),
	)

	q.Choices = choices
	q.LowConfidence = false
	return q, nil
}

// SubmitAnswer checks a practice answer and records the attempt.
func (s *Service) SubmitAnswer(ctx context.Context, input SubmitAnswerInput) (*AnswerResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	q, err := s.questions.GetByID(ctx, input.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	if input.ChoiceIndex >= len(q.Choices) {
		return nil, domain.NewValidationError("choice_index", fmt.Sprintf("out of range (question has %d choices)", len(q.Choices)))
	}

	correct := q.Choices[input.ChoiceIndex].Correct
	if err := s.questions.CreateAttempt(ctx, &domain.Attempt{
		QuestionID:  q.ID,
		ChoiceIndex: input.ChoiceIndex,
		Correct:     correct,
	}); err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	return &AnswerResult{
		Correct:       correct,
		CorrectIndex:  q.CorrectIndex(),
		Explanation:   q.Explanation,
		LowConfidence: q.LowConfidence,
	}, nil
}

// Stats summarises the bank and practice history.
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	stats, err := s.questions.Stats(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("stats: %w", err)
	}
	return stats, nil
}
