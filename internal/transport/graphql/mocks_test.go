package graphql

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
	"github.com/heartmarshall/quizbank-backend/internal/service/quiz"
)

type quizServiceMock struct {
	GetQuestionFunc      func(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	ListQuestionsFunc    func(ctx context.Context, input quiz.ListInput) ([]domain.Question, int, error)
	DeleteQuestionFunc   func(ctx context.Context, id uuid.UUID) error
	SetCorrectChoiceFunc func(ctx context.Context, input quiz.SetCorrectChoiceInput) (*domain.Question, error)
	SubmitAnswerFunc     func(ctx context.Context, input quiz.SubmitAnswerInput) (*quiz.AnswerResult, error)
	StatsFunc            func(ctx context.Context) (domain.Stats, error)
}

func (m *quizServiceMock) GetQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	return m.GetQuestionFunc(ctx, id)
}

func (m *quizServiceMock) ListQuestions(ctx context.Context, input quiz.ListInput) ([]domain.Question, int, error) {
	return m.ListQuestionsFunc(ctx, input)
}

func (m *quizServiceMock) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	return m.DeleteQuestionFunc(ctx, id)
}

func (m *quizServiceMock) SetCorrectChoice(ctx context.Context, input quiz.SetCorrectChoiceInput) (*domain.Question, error) {
	return m.SetCorrectChoiceFunc(ctx, input)
}

func (m *quizServiceMock) SubmitAnswer(ctx context.Context, input quiz.SubmitAnswerInput) (*quiz.AnswerResult, error) {
	return m.SubmitAnswerFunc(ctx, input)
}

func (m *quizServiceMock) Stats(ctx context.Context) (domain.Stats, error) {
	return m.StatsFunc(ctx)
}

type attemptCounterMock struct {
	counts map[uuid.UUID]domain.AttemptCounts
	err    error

	mu    sync.Mutex
	calls [][]uuid.UUID
}

func (m *attemptCounterMock) AttemptCounts(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.AttemptCounts, error) {
	m.mu.Lock()
	m.calls = append(m.calls, append([]uuid.UUID(nil), ids...))
	m.mu.Unlock()
	return m.counts, m.err
}

func (m *attemptCounterMock) Calls() [][]uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
