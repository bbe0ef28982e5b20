// Package quiz serves stored questions for practice and review.
package quiz

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type questionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	List(ctx context.Context, f domain.QuestionFilter) ([]domain.Question, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateChoices(ctx context.Context, id uuid.UUID, choices []domain.Choice, lowConfidence bool) error
	CreateAttempt(ctx context.Context, a *domain.Attempt) error
	Stats(ctx context.Context) (domain.Stats, error)
}

// Service provides question bank operations.
type Service struct {
	questions questionRepo
	log       *slog.Logger
}

// NewService creates a new quiz service.
func NewService(log *slog.Logger, questions questionRepo) *Service {
	return &Service{
		questions: questions,
		log:       log.With("service", "quiz"),
	}
}
