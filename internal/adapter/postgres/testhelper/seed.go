package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
)

// SeedQuestion inserts a two-choice question tagged with source and returns it.
// The first choice is the correct one.
func SeedQuestion(t *testing.T, pool *pgxpool.Pool, source string) domain.Question {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	q := domain.Question{
		ID:          uuid.New(),
		Title:       "Seeded question",
		Body:        "Which option is correct?",
		Choices:     []domain.Choice{{Text: "this one", Correct: true}, {Text: "that one"}},
		Explanation: "Because it is.",
		Difficulty:  domain.DefaultDifficulty,
		Method:      domain.ExtractionMethodLLM,
		Source:      source,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO questions (id, title, body, explanation, difficulty, method, low_confidence, language, source, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		q.ID, q.Title, q.Body, q.Explanation, string(q.Difficulty), string(q.Method),
		q.LowConfidence, q.Language, q.Source, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed question: %v", err)
	}

	for i, c := range q.Choices {
		_, err := pool.Exec(ctx,
			`INSERT INTO choices (question_id, position, text, is_correct) VALUES ($1, $2, $3, $4)`,
			q.ID, i, c.Text, c.Correct,
		)
		if err != nil {
			t.Fatalf("testhelper: seed choice: %v", err)
		}
	}

	return q
}
