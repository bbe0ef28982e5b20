package quiz

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
)

// questionRepoMock is a mock implementation of questionRepo.
type questionRepoMock struct {
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	ListFunc          func(ctx context.Context, f domain.QuestionFilter) ([]domain.Question, int, error)
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
	UpdateChoicesFunc func(ctx context.Context, id uuid.UUID, choices []domain.Choice, lowConfidence bool) error
	CreateAttemptFunc func(ctx context.Context, a *domain.Attempt) error
	StatsFunc         func(ctx context.Context) (domain.Stats, error)

	mu    sync.Mutex
	calls struct {
		List          []domain.QuestionFilter
		UpdateChoices []updateChoicesCall
		CreateAttempt []domain.Attempt
	}
}

type updateChoicesCall struct {
	ID            uuid.UUID
	Choices       []domain.Choice
	LowConfidence bool
}

func (m *questionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	if m.GetByIDFunc == nil {
		panic("questionRepoMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *questionRepoMock) List(ctx context.Context, f domain.QuestionFilter) ([]domain.Question, int, error) {
	if m.ListFunc == nil {
		panic("questionRepoMock.ListFunc: method is nil but List was just called")
	}
	m.mu.Lock()
	m.calls.List = append(m.calls.List, f)
	m.mu.Unlock()
	return m.ListFunc(ctx, f)
}

func (m *questionRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("questionRepoMock.DeleteFunc: method is nil but Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

func (m *questionRepoMock) UpdateChoices(ctx context.Context, id uuid.UUID, choices []domain.Choice, lowConfidence bool) error {
	if m.UpdateChoicesFunc == nil {
		panic("questionRepoMock.UpdateChoicesFunc: method is nil but UpdateChoices was just called")
	}
	m.mu.Lock()
	m.calls.UpdateChoices = append(m.calls.UpdateChoices, updateChoicesCall{ID: id, Choices: choices, LowConfidence: lowConfidence})
	m.mu.Unlock()
	return m.UpdateChoicesFunc(ctx, id, choices, lowConfidence)
}

func (m *questionRepoMock) CreateAttempt(ctx context.Context, a *domain.Attempt) error {
	if m.CreateAttemptFunc == nil {
		panic("questionRepoMock.CreateAttemptFunc: method is nil but CreateAttempt was just called")
	}
	m.mu.Lock()
	m.calls.CreateAttempt = append(m.calls.CreateAttempt, *a)
	m.mu.Unlock()
	return m.CreateAttemptFunc(ctx, a)
}

func (m *questionRepoMock) Stats(ctx context.Context) (domain.Stats, error) {
	if m.StatsFunc == nil {
		panic("questionRepoMock.StatsFunc: method is nil but Stats was just called")
	}
	return m.StatsFunc(ctx)
}

func (m *questionRepoMock) ListCalls() []domain.QuestionFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.List
}

func (m *questionRepoMock) UpdateChoicesCalls() []updateChoicesCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.UpdateChoices
}

func (m *questionRepoMock) CreateAttemptCalls() []domain.Attempt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.CreateAttempt
}
