package importer

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
)

// questionExtractorMock is a mock implementation of questionExtractor.
type questionExtractorMock struct {
	ExtractQuestionFunc func(ctx context.Context, raw string) (*domain.Question, error)

	mu    sync.Mutex
	calls []string
}

func (m *questionExtractorMock) ExtractQuestion(ctx context.Context, raw string) (*domain.Question, error) {
	if m.ExtractQuestionFunc == nil {
		panic("questionExtractorMock.ExtractQuestionFunc: method is nil but ExtractQuestion was just called")
	}
	m.mu.Lock()
	m.calls = append(m.calls, raw)
	m.mu.Unlock()
	return m.ExtractQuestionFunc(ctx, raw)
}

// ExtractQuestionCalls returns the raw text of every call so far.
func (m *questionExtractorMock) ExtractQuestionCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// questionRepoMock is a mock implementation of questionRepo.
type questionRepoMock struct {
	SaveFunc func(ctx context.Context, q *domain.Question) (uuid.UUID, error)

	mu    sync.Mutex
	saved []domain.Question
}

func (m *questionRepoMock) Save(ctx context.Context, q *domain.Question) (uuid.UUID, error) {
	if m.SaveFunc == nil {
		panic("questionRepoMock.SaveFunc: method is nil but Save was just called")
	}
	m.mu.Lock()
	m.saved = append(m.saved, *q)
	m.mu.Unlock()
	return m.SaveFunc(ctx, q)
}

// SaveCalls returns copies of the questions passed to Save.
func (m *questionRepoMock) SaveCalls() []domain.Question {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Question(nil), m.saved...)
}

// languageDetectorMock is a mock implementation of languageDetector.
type languageDetectorMock struct {
	DetectFunc func(text string) string
}

func (m *languageDetectorMock) Detect(text string) string {
	if m.DetectFunc == nil {
		return ""
	}
	return m.DetectFunc(text)
}
