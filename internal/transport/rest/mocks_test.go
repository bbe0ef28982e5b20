package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
	"github.com/heartmarshall/quizbank-backend/internal/service/importer"
	"github.com/heartmarshall/quizbank-backend/internal/service/quiz"
)

type importServiceMock struct {
	ImportFunc  func(ctx context.Context, input importer.ImportInput) (*importer.ImportResult, error)
	PreviewFunc func(ctx context.Context, input importer.ImportInput) (*importer.ImportResult, error)

	mu          sync.Mutex
	importCalls []importer.ImportInput
}

func (m *importServiceMock) Import(ctx context.Context, input importer.ImportInput) (*importer.ImportResult, error) {
	if m.ImportFunc == nil {
		panic("importServiceMock.ImportFunc: method is nil but Import was just called")
	}
	m.mu.Lock()
	m.importCalls = append(m.importCalls, input)
	m.mu.Unlock()
	return m.ImportFunc(ctx, input)
}

func (m *importServiceMock) Preview(ctx context.Context, input importer.ImportInput) (*importer.ImportResult, error) {
	if m.PreviewFunc == nil {
		panic("importServiceMock.PreviewFunc: method is nil but Preview was just called")
	}
	return m.PreviewFunc(ctx, input)
}

func (m *importServiceMock) ImportCalls() []importer.ImportInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.importCalls
}

type quizServiceMock struct {
	GetQuestionFunc      func(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	ListQuestionsFunc    func(ctx context.Context, input quiz.ListInput) ([]domain.Question, int, error)
	DeleteQuestionFunc   func(ctx context.Context, id uuid.UUID) error
	SetCorrectChoiceFunc func(ctx context.Context, input quiz.SetCorrectChoiceInput) (*domain.Question, error)
	SubmitAnswerFunc     func(ctx context.Context, input quiz.SubmitAnswerInput) (*quiz.AnswerResult, error)
	StatsFunc            func(ctx context.Context) (domain.Stats, error)
}

func (m *quizServiceMock) GetQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	if m.GetQuestionFunc == nil {
		panic("quizServiceMock.GetQuestionFunc: method is nil but GetQuestion was just called")
	}
	return m.GetQuestionFunc(ctx, id)
}

func (m *quizServiceMock) ListQuestions(ctx context.Context, input quiz.ListInput) ([]domain.Question, int, error) {
	if m.ListQuestionsFunc == nil {
		panic("quizServiceMock.ListQuestionsFunc: method is nil but ListQuestions was just called")
	}
	return m.ListQuestionsFunc(ctx, input)
}

func (m *quizServiceMock) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	if m.DeleteQuestionFunc == nil {
		panic("quizServiceMock.DeleteQuestionFunc: method is nil but DeleteQuestion was just called")
	}
	return m.DeleteQuestionFunc(ctx, id)
}

func (m *quizServiceMock) SetCorrectChoice(ctx context.Context, input quiz.SetCorrectChoiceInput) (*domain.Question, error) {
	if m.SetCorrectChoiceFunc == nil {
		panic("quizServiceMock.SetCorrectChoiceFunc: method is nil but SetCorrectChoice was just called")
	}
	return m.SetCorrectChoiceFunc(ctx, input)
}

func (m *quizServiceMock) SubmitAnswer(ctx context.Context, input quiz.SubmitAnswerInput) (*quiz.AnswerResult, error) {
	if m.SubmitAnswerFunc == nil {
		panic("quizServiceMock.SubmitAnswerFunc: method is nil but SubmitAnswer was just called")
	}
	return m.SubmitAnswerFunc(ctx, input)
}

func (m *quizServiceMock) Stats(ctx context.Context) (domain.Stats, error) {
	if m.StatsFunc == nil {
		panic("quizServiceMock.StatsFunc: method is nil but Stats was just called")
	}
	return m.StatsFunc(ctx)
}
