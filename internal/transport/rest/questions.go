package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
	"github.com/heartmarshall/quizbank-backend/internal/service/quiz"
)

type quizService interface {
	GetQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	ListQuestions(ctx context.Context, input quiz.ListInput) ([]domain.Question, int, error)
	DeleteQuestion(ctx context.Context, id uuid.UUID) error
	SetCorrectChoice(ctx context.Context, input quiz.SetCorrectChoiceInput) (*domain.Question, error)
	SubmitAnswer(ctx context.Context, input quiz.SubmitAnswerInput) (*quiz.AnswerResult, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

const maxChoiceBody = 1 << 10

// QuestionHandler serves the stored question bank.
type QuestionHandler struct {
	svc quizService
	log *slog.Logger
}

// NewQuestionHandler creates a QuestionHandler.
func NewQuestionHandler(log *slog.Logger, svc quizService) *QuestionHandler {
	return &QuestionHandler{svc: svc, log: log.With("handler", "questions")}
}

// ListResponse is one page of questions.
type ListResponse struct {
	Questions []domain.Question `json:"questions"`
	Total     int               `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

type choiceRequest struct {
	ChoiceIndex *int `json:"choice_index"`
}

// List handles GET /questions?difficulty=&source=&low_confidence=&limit=&offset=.
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := parseListQuery(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	questions, total, err := h.svc.ListQuestions(r.Context(), input)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	limit := input.Limit
	if limit == 0 {
		limit = quiz.DefaultLimit
	}
	writeJSON(w, http.StatusOK, ListResponse{
		Questions: questions,
		Total:     total,
		Limit:     limit,
		Offset:    input.Offset,
	})
}

// Get handles GET /questions/{id}.
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	q, err := h.svc.GetQuestion(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Delete handles DELETE /questions/{id}.
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.svc.DeleteQuestion(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetCorrectChoice handles PUT /questions/{id}/correct-choice.
func (h *QuestionHandler) SetCorrectChoice(w http.ResponseWriter, r *http.Request) {
	id, index, err := h.choiceRef(w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	q, err := h.svc.SetCorrectChoice(r.Context(), quiz.SetCorrectChoiceInput{QuestionID: id, ChoiceIndex: index})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// SubmitAnswer handles POST /questions/{id}/attempts.
func (h *QuestionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, index, err := h.choiceRef(w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	res, err := h.svc.SubmitAnswer(r.Context(), quiz.SubmitAnswerInput{QuestionID: id, ChoiceIndex: index})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// Stats handles GET /stats.
func (h *QuestionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *QuestionHandler) choiceRef(w http.ResponseWriter, r *http.Request) (uuid.UUID, int, error) {
	id, err := pathID(r)
	if err != nil {
		return uuid.Nil, 0, err
	}
	var req choiceRequest
	if err := decodeJSON(w, r, maxChoiceBody, &req); err != nil {
		return uuid.Nil, 0, err
	}
	if req.ChoiceIndex == nil {
		return uuid.Nil, 0, badRequest("choice_index", "required")
	}
	return id, *req.ChoiceIndex, nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, badRequest("id", "must be a UUID")
	}
	return id, nil
}

func parseListQuery(r *http.Request) (quiz.ListInput, error) {
	q := r.URL.Query()
	var (
		input quiz.ListInput
		errs  []domain.FieldError
	)

	if v := q.Get("difficulty"); v != "" {
		d := domain.Difficulty(v)
		input.Difficulty = &d
	}
	if v := q.Get("source"); v != "" {
		input.Source = &v
	}
	if v := q.Get("low_confidence"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "low_confidence", Message: "must be true or false"})
		} else {
			input.LowConfidence = &b
		}
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{{"limit", &input.Limit}, {"offset", &input.Offset}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: p.name, Message: "must be an integer"})
			continue
		}
		*p.dst = n
	}

	if len(errs) > 0 {
		return input, domain.NewValidationErrors(errs)
	}
	return input, nil
}
