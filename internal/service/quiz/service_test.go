package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
)

func newTestService(t *testing.T, mock *questionRepoMock) *Service {
	t.Helper()
	return NewService(slog.Default(), mock)
}

func sampleQuestion() *domain.Question {
	return &domain.Question{
		ID:   uuid.New(),
		Body: "日本の首都は？",
		Choices: []domain.Choice{
			{Text: "東京", Correct: true},
			{Text: "大阪"},
			{Text: "京都"},
		},
		Explanation:   "東京です。",
		LowConfidence: true,
	}
}

func getReturns(q *domain.Question) func(context.Context, uuid.UUID) (*domain.Question, error) {
	return func(_ context.Context, id uuid.UUID) (*domain.Question, error) {
		if id != q.ID {
			return nil, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
		}
		cp := *q
		cp.Choices = append([]domain.Choice(nil), q.Choices...)
		return &cp, nil
	}
}

func assertValidationField(t *testing.T, err error, field string) {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	for _, fe := range ve.Errors {
		if fe.Field == field {
			return
		}
	}
	t.Errorf("expected field error for %q, got %+v", field, ve.Errors)
}

// ---------------------------------------------------------------------------
// GetQuestion / DeleteQuestion
// ---------------------------------------------------------------------------

func TestGetQuestion_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &questionRepoMock{GetByIDFunc: getReturns(sampleQuestion())})

	_, err := svc.GetQuestion(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestDeleteQuestion(t *testing.T) {
	t.Parallel()

	var deleted uuid.UUID
	svc := newTestService(t, &questionRepoMock{DeleteFunc: func(_ context.Context, id uuid.UUID) error {
		deleted = id
		return nil
	}})

	id := uuid.New()
	if err := svc.DeleteQuestion(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != id {
		t.Errorf("deleted %s, want %s", deleted, id)
	}
}

// ---------------------------------------------------------------------------
// ListQuestions
// ---------------------------------------------------------------------------

func TestListQuestions_DefaultLimitAndFilters(t *testing.T) {
	t.Parallel()

	mock := &questionRepoMock{ListFunc: func(context.Context, domain.QuestionFilter) ([]domain.Question, int, error) {
		return []domain.Question{*sampleQuestion()}, 7, nil
	}}
	svc := newTestService(t, mock)

	hard := domain.DifficultyHard
	src := "exam.pdf"
	got, total, err := svc.ListQuestions(context.Background(), ListInput{Difficulty: &hard, Source: &src, Offset: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 7 || len(got) != 1 {
		t.Errorf("total=%d len=%d, want 7/1", total, len(got))
	}

	calls := mock.ListCalls()
	if len(calls) != 1 {
		t.Fatalf("List calls: got %d, want 1", len(calls))
	}
	f := calls[0]
	if f.Limit != DefaultLimit || f.Offset != 5 {
		t.Errorf("limit/offset = %d/%d, want %d/5", f.Limit, f.Offset, DefaultLimit)
	}
	if f.Difficulty == nil || *f.Difficulty != hard || f.Source == nil || *f.Source != src {
		t.Errorf("filters not passed through: %+v", f)
	}
}

func TestListQuestions_Validation(t *testing.T) {
	t.Parallel()

	bad := domain.Difficulty("extreme")
	tests := []struct {
		name  string
		input ListInput
		field string
	}{
		{"negative limit", ListInput{Limit: -1}, "limit"},
		{"limit too large", ListInput{Limit: MaxLimit + 1}, "limit"},
		{"negative offset", ListInput{Offset: -1}, "offset"},
		{"unknown difficulty", ListInput{Difficulty: &bad}, "difficulty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newTestService(t, &questionRepoMock{})
			_, _, err := svc.ListQuestions(context.Background(), tt.input)
			assertValidationField(t, err, tt.field)
		})
	}
}

// ---------------------------------------------------------------------------
// SetCorrectChoice
// ---------------------------------------------------------------------------

func TestSetCorrectChoice_Success(t *testing.T) {
	t.Parallel()

	q := sampleQuestion()
	mock := &questionRepoMock{
		GetByIDFunc:       getReturns(q),
		UpdateChoicesFunc: func(context.Context, uuid.UUID, []domain.Choice, bool) error { return nil },
	}
	svc := newTestService(t, mock)

	got, err := svc.SetCorrectChoice(context.Background(), SetCorrectChoiceInput{QuestionID: q.ID, ChoiceIndex: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.LowConfidence {
		t.Error("LowConfidence should be cleared")
	}
	if got.CorrectCount() != 1 || got.CorrectIndex() != 2 {
		t.Errorf("choices = %+v, want only index 2 correct", got.Choices)
	}

	calls := mock.UpdateChoicesCalls()
	if len(calls) != 1 {
		t.Fatalf("UpdateChoices calls: got %d, want 1", len(calls))
	}
	if calls[0].LowConfidence {
		t.Error("UpdateChoices should clear low confidence")
	}
	for i, c := range calls[0].Choices {
		if c.Text != q.Choices[i].Text {
			t.Errorf("choice %d text changed: %q", i, c.Text)
		}
		if c.Correct != (i == 2) {
			t.Errorf("choice %d correct = %v", i, c.Correct)
		}
	}
}

func TestSetCorrectChoice_OutOfRange(t *testing.T) {
	t.Parallel()

	q := sampleQuestion()
	mock := &questionRepoMock{GetByIDFunc: getReturns(q)}
	svc := newTestService(t, mock)

	_, err := svc.SetCorrectChoice(context.Background(), SetCorrectChoiceInput{QuestionID: q.ID, ChoiceIndex: 3})
	assertValidationField(t, err, "choice_index")
	if len(mock.UpdateChoicesCalls()) != 0 {
		t.Error("UpdateChoices should not be called")
	}
}

func TestSetCorrectChoice_InvalidInput(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &questionRepoMock{})

	_, err := svc.SetCorrectChoice(context.Background(), SetCorrectChoiceInput{ChoiceIndex: -1})
	assertValidationField(t, err, "question_id")
	assertValidationField(t, err, "choice_index")
}

// ---------------------------------------------------------------------------
// SubmitAnswer / Stats
// ---------------------------------------------------------------------------

func TestSubmitAnswer(t *testing.T) {
	t.Parallel()

	q := sampleQuestion()

	tests := []struct {
		name        string
		index       int
		wantCorrect bool
	}{
		{"correct", 0, true},
		{"wrong", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &questionRepoMock{
				GetByIDFunc:       getReturns(q),
				CreateAttemptFunc: func(context.Context, *domain.Attempt) error { return nil },
			}
			svc := newTestService(t, mock)

			res, err := svc.SubmitAnswer(context.Background(), SubmitAnswerInput{QuestionID: q.ID, ChoiceIndex: tt.index})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Correct != tt.wantCorrect {
				t.Errorf("Correct = %v, want %v", res.Correct, tt.wantCorrect)
			}
			if res.CorrectIndex != 0 || res.Explanation != q.Explanation || !res.LowConfidence {
				t.Errorf("unexpected result: %+v", res)
			}

			attempts := mock.CreateAttemptCalls()
			if len(attempts) != 1 {
				t.Fatalf("CreateAttempt calls: got %d, want 1", len(attempts))
			}
			if attempts[0].QuestionID != q.ID || attempts[0].ChoiceIndex != tt.index || attempts[0].Correct != tt.wantCorrect {
				t.Errorf("attempt = %+v", attempts[0])
			}
		})
	}
}

func TestSubmitAnswer_OutOfRange(t *testing.T) {
	t.Parallel()

	q := sampleQuestion()
	mock := &questionRepoMock{GetByIDFunc: getReturns(q)}
	svc := newTestService(t, mock)

	_, err := svc.SubmitAnswer(context.Background(), SubmitAnswerInput{QuestionID: q.ID, ChoiceIndex: 9})
	assertValidationField(t, err, "choice_index")
}

func TestSubmitAnswer_UnknownQuestion(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &questionRepoMock{GetByIDFunc: getReturns(sampleQuestion())})

	_, err := svc.SubmitAnswer(context.Background(), SubmitAnswerInput{QuestionID: uuid.New()})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestStats_WrapsError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	svc := newTestService(t, &questionRepoMock{StatsFunc: func(context.Context) (domain.Stats, error) {
		return domain.Stats{}, boom
	}})

	_, err := svc.Stats(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got: %v", err)
	}
}
