package graphql

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
	"github.com/heartmarshall/quizbank-backend/internal/service/quiz"
	"github.com/heartmarshall/quizbank-backend/internal/transport/graphql/dataloader"
)

type quizService interface {
	GetQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	ListQuestions(ctx context.Context, input quiz.ListInput) ([]domain.Question, int, error)
	DeleteQuestion(ctx context.Context, id uuid.UUID) error
	SetCorrectChoice(ctx context.Context, input quiz.SetCorrectChoiceInput) (*domain.Question, error)
	SubmitAnswer(ctx context.Context, input quiz.SubmitAnswerInput) (*quiz.AnswerResult, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

// Resolver backs the schema's fields with the quiz service. Attempt
// counts go through the request's dataloaders.
type Resolver struct {
	quiz quizService
}

func NewResolver(quiz quizService) *Resolver {
	return &Resolver{quiz: quiz}
}

// QuestionPage is one page of the questions query.
type QuestionPage struct {
	Questions []domain.Question
	Total     int
	Limit     int
	Offset    int
}

func (r *Resolver) Question(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	return r.quiz.GetQuestion(ctx, id)
}

func (r *Resolver) Questions(ctx context.Context, in quiz.ListInput) (*QuestionPage, error) {
	questions, total, err := r.quiz.ListQuestions(ctx, in)
	if err != nil {
		return nil, err
	}

	limit := in.Limit
	if limit == 0 {
		limit = quiz.DefaultLimit
	}
	return &QuestionPage{Questions: questions, Total: total, Limit: limit, Offset: in.Offset}, nil
}

func (r *Resolver) Stats(ctx context.Context) (domain.Stats, error) {
	return r.quiz.Stats(ctx)
}

// Attempts loads practice counts for one question, batched with its
// siblings in the same response.
func (r *Resolver) Attempts(ctx context.Context, questionID uuid.UUID) (domain.AttemptCounts, error) {
	return dataloader.FromContext(ctx).AttemptsByQuestionID.Load(ctx, questionID)()
}

func (r *Resolver) SetCorrectChoice(ctx context.Context, id uuid.UUID, index int) (*domain.Question, error) {
	return r.quiz.SetCorrectChoice(ctx, quiz.SetCorrectChoiceInput{QuestionID: id, ChoiceIndex: index})
}

func (r *Resolver) SubmitAnswer(ctx context.Context, id uuid.UUID, index int) (*quiz.AnswerResult, error) {
	return r.quiz.SubmitAnswer(ctx, quiz.SubmitAnswerInput{QuestionID: id, ChoiceIndex: index})
}

func (r *Resolver) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	return r.quiz.DeleteQuestion(ctx, id)
}
