// Package question implements the question bank repository on SQLite.
package question

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/quizbank-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/quizbank-backend/internal/domain"
)

// timeLayout is fixed-width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var sq = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

var questionColumns = []string{
	"id", "title", "body", "explanation", "difficulty", "method",
	"low_confidence", "language", "source", "created_at", "updated_at",
}

// Repo provides question persistence backed by a SQLite file.
type Repo struct {
	db *sql.DB
}

// New creates a new question repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Ping reports whether the database is reachable.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Save inserts q and its choices atomically and returns the stored id.
// A nil ID and zero timestamps are filled in on q.
func (r *Repo) Save(ctx context.Context, q *domain.Question) (uuid.UUID, error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	if q.UpdatedAt.IsZero() {
		q.UpdatedAt = q.CreatedAt
	}

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := sq.Insert("questions").
			Columns(questionColumns...).
			Values(q.ID.String(), q.Title, q.Body, q.Explanation, string(q.Difficulty), string(q.Method),
				q.LowConfidence, q.Language, q.Source, formatTime(q.CreatedAt), formatTime(q.UpdatedAt)).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return err
		}
		return insertChoices(ctx, tx, q.ID, q.Choices)
	})
	if err != nil {
		return uuid.Nil, sqlite.MapError(err, "question", q.ID)
	}
	return q.ID, nil
}

// UpdateChoices replaces the choices of question id and sets its
// low-confidence flag. Returns domain.ErrNotFound for an unknown id.
func (r *Repo) UpdateChoices(ctx context.Context, id uuid.UUID, choices []domain.Choice, lowConfidence bool) error {
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE questions SET low_confidence = ?, updated_at = ? WHERE id = ?`,
			lowConfidence, formatTime(time.Now().UTC()), id.String(),
		)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return sql.ErrNoRows
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM choices WHERE question_id = ?`, id.String()); err != nil {
			return err
		}
		return insertChoices(ctx, tx, id, choices)
	})
	return sqlite.MapError(err, "question", id)
}

// Delete removes a question together with its choices and attempts.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id.String())
	if err != nil {
		return sqlite.MapError(err, "question", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return sqlite.MapError(err, "question", id)
	}
	if n == 0 {
		return fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// CreateAttempt records an answer. An unknown question id maps to
// domain.ErrNotFound through the foreign key.
func (r *Repo) CreateAttempt(ctx context.Context, a *domain.Attempt) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO attempts (id, question_id, choice_index, is_correct, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.ID.String(), a.QuestionID.String(), a.ChoiceIndex, a.Correct, formatTime(a.CreatedAt),
	)
	return sqlite.MapError(err, "question", a.QuestionID)
}

// GetByID returns a question with its choices in display order.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	row := sq.Select(questionColumns...).From("questions").
		Where("id = ?", id.String()).
		RunWith(r.db).
		QueryRowContext(ctx)

	q, err := scanQuestion(row)
	if err != nil {
		return nil, sqlite.MapError(err, "question", id)
	}

	choices, err := r.loadChoices(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, sqlite.MapError(err, "question", id)
	}
	q.Choices = choices[id]
	return &q, nil
}

// List returns one page of questions matching f, newest first, and the
// total number of matches.
func (r *Repo) List(ctx context.Context, f domain.QuestionFilter) ([]domain.Question, int, error) {
	where := filterConditions(f)

	countQ := sq.Select("count(*)").From("questions")
	pageQ := sq.Select(questionColumns...).From("questions").OrderBy("created_at DESC", "id")
	if len(where) > 0 {
		countQ = countQ.Where(where)
		pageQ = pageQ.Where(where)
	}
	if f.Limit > 0 {
		pageQ = pageQ.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		if f.Limit <= 0 {
			pageQ = pageQ.Limit(uint64(1<<63 - 1))
		}
		pageQ = pageQ.Offset(uint64(f.Offset))
	}

	var total int
	if err := countQ.RunWith(r.db).QueryRowContext(ctx).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count questions: %w", err)
	}

	questions, err := r.queryQuestions(ctx, pageQ)
	if err != nil {
		return nil, 0, fmt.Errorf("list questions: %w", err)
	}

	ids := make([]uuid.UUID, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	choices, err := r.loadChoices(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("list choices: %w", err)
	}
	for i := range questions {
		questions[i].Choices = choices[questions[i].ID]
	}

	return questions, total, nil
}

// Stats counts questions and attempts across the whole bank.
func (r *Repo) Stats(ctx context.Context) (domain.Stats, error) {
	var s domain.Stats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT count(*) FROM questions),
			(SELECT count(*) FROM questions WHERE low_confidence),
			(SELECT count(*) FROM attempts),
			(SELECT count(*) FROM attempts WHERE is_correct)`,
	).Scan(&s.Questions, &s.LowConfidence, &s.Attempts, &s.CorrectAttempts)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("stats: %w", err)
	}
	return s, nil
}

// AttemptCounts returns answer tallies keyed by question id. Questions with
// no attempts are absent from the map.
func (r *Repo) AttemptCounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.AttemptCounts, error) {
	out := make(map[uuid.UUID]domain.AttemptCounts, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	rows, err := sq.Select("question_id", "count(*)", "coalesce(sum(is_correct), 0)").
		From("attempts").
		Where(squirrel.Eq{"question_id": keys}).
		GroupBy("question_id").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("attempt counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id uuid.UUID
			c  domain.AttemptCounts
		)
		if err := rows.Scan(&id, &c.Attempts, &c.Correct); err != nil {
			return nil, fmt.Errorf("scan attempt counts: %w", err)
		}
		out[id] = c
	}
	return out, rows.Err()
}

// queryQuestions drains the result set before returning so the single
// pooled connection is free for the follow-up choices query.
func (r *Repo) queryQuestions(ctx context.Context, b squirrel.SelectBuilder) ([]domain.Question, error) {
	rows, err := b.RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]domain.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *Repo) loadChoices(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.Choice, error) {
	out := make(map[uuid.UUID][]domain.Choice, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	rows, err := sq.Select("question_id", "text", "is_correct").
		From("choices").
		Where(squirrel.Eq{"question_id": keys}).
		OrderBy("question_id", "position").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			qid uuid.UUID
			c   domain.Choice
		)
		if err := rows.Scan(&qid, &c.Text, &c.Correct); err != nil {
			return nil, err
		}
		out[qid] = append(out[qid], c)
	}
	return out, rows.Err()
}

func (r *Repo) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func insertChoices(ctx context.Context, tx *sql.Tx, questionID uuid.UUID, choices []domain.Choice) error {
	if len(choices) == 0 {
		return nil
	}
	ins := sq.Insert("choices").Columns("question_id", "position", "text", "is_correct")
	for i, c := range choices {
		ins = ins.Values(questionID.String(), i, c.Text, c.Correct)
	}
	_, err := ins.RunWith(tx).ExecContext(ctx)
	return err
}

func filterConditions(f domain.QuestionFilter) squirrel.And {
	var where squirrel.And
	if f.Difficulty != nil {
		where = append(where, squirrel.Eq{"difficulty": string(*f.Difficulty)})
	}
	if f.Source != nil {
		where = append(where, squirrel.Eq{"source": *f.Source})
	}
	if f.LowConfidence != nil {
		where = append(where, squirrel.Eq{"low_confidence": *f.LowConfidence})
	}
	return where
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row scanner) (domain.Question, error) {
	var (
		q                  domain.Question
		difficulty, method string
		created, updated   string
	)
	err := row.Scan(&q.ID, &q.Title, &q.Body, &q.Explanation, &difficulty, &method,
		&q.LowConfidence, &q.Language, &q.Source, &created, &updated)
	if err != nil {
		return domain.Question{}, err
	}
	q.Difficulty = domain.Difficulty(difficulty)
	q.Method = domain.ExtractionMethod(method)
	if q.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return domain.Question{}, fmt.Errorf("parse created_at: %w", err)
	}
	if q.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return domain.Question{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return q, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
