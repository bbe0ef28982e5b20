// Package question implements the question bank repository on PostgreSQL.
// Fixed statements are plain SQL; filtered listings are built with squirrel.
package question

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/quizbank-backend/internal/adapter/postgres"
	"github.com/heartmarshall/quizbank-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var questionColumns = []string{
	"id", "title", "body", "explanation", "difficulty", "method",
	"low_confidence", "language", "source", "created_at", "updated_at",
}

// Repo provides question persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
}

// New creates a new question repository. Multi-statement writes run through
// txm and join a transaction already present in the context.
func New(pool *pgxpool.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{pool: pool, txm: txm}
}

// Ping reports whether the database is reachable.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Save inserts q and its choices atomically and returns the stored id.
// A nil ID and zero timestamps are filled in on q.
func (r *Repo) Save(ctx context.Context, q *domain.Question) (uuid.UUID, error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	if q.UpdatedAt.IsZero() {
		q.UpdatedAt = q.CreatedAt
	}

	sql, args, err := psql.Insert("questions").
		Columns(questionColumns...).
		Values(q.ID, q.Title, q.Body, q.Explanation, string(q.Difficulty), string(q.Method),
			q.LowConfidence, q.Language, q.Source, q.CreatedAt, q.UpdatedAt).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build insert question: %w", err)
	}

	err = r.txm.RunInTx(ctx, func(ctx context.Context) error {
		querier := postgres.QuerierFromCtx(ctx, r.pool)
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return err
		}
		return insertChoices(ctx, querier, q.ID, q.Choices)
	})
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "question", q.ID)
	}

	return q.ID, nil
}

// UpdateChoices replaces the choices of question id and sets its
// low-confidence flag. Returns domain.ErrNotFound for an unknown id.
func (r *Repo) UpdateChoices(ctx context.Context, id uuid.UUID, choices []domain.Choice, lowConfidence bool) error {
	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		querier := postgres.QuerierFromCtx(ctx, r.pool)
		tag, err := querier.Exec(ctx,
			`UPDATE questions SET low_confidence = $2, updated_at = now() WHERE id = $1`,
			id, lowConfidence,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		if _, err := querier.Exec(ctx, `DELETE FROM choices WHERE question_id = $1`, id); err != nil {
			return err
		}
		return insertChoices(ctx, querier, id, choices)
	})
	return postgres.MapError(err, "question", id)
}

// Delete removes a question together with its choices and attempts.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "question", id)
	}
	if tag.RowsAffected() == 0 {
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
		a.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`INSERT INTO attempts (id, question_id, choice_index, is_correct, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.QuestionID, a.ChoiceIndex, a.Correct, a.CreatedAt,
	)
	return postgres.MapError(err, "question", a.QuestionID)
}

func insertChoices(ctx context.Context, querier postgres.Querier, questionID uuid.UUID, choices []domain.Choice) error {
	if len(choices) == 0 {
		return nil
	}

	ins := psql.Insert("choices").Columns("question_id", "position", "text", "is_correct")
	for i, c := range choices {
		ins = ins.Values(questionID, i, c.Text, c.Correct)
	}
	sql, args, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert choices: %w", err)
	}

	_, err = querier.Exec(ctx, sql, args...)
	return err
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a question with its choices in display order.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(questionColumns...).From("questions").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select question: %w", err)
	}

	q, err := scanQuestion(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "question", id)
	}

	choices, err := loadChoices(ctx, querier, []uuid.UUID{id})
	if err != nil {
		return nil, postgres.MapError(err, "question", id)
	}
	q.Choices = choices[id]

	return &q, nil
}

// List returns one page of questions matching f, newest first, and the
// total number of matches.
func (r *Repo) List(ctx context.Context, f domain.QuestionFilter) ([]domain.Question, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	where := filterConditions(f)

	countQ := psql.Select("count(*)").From("questions")
	pageQ := psql.Select(questionColumns...).From("questions").OrderBy("created_at DESC", "id")
	if len(where) > 0 {
		countQ = countQ.Where(where)
		pageQ = pageQ.Where(where)
	}
	if f.Limit > 0 {
		pageQ = pageQ.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		pageQ = pageQ.Offset(uint64(f.Offset))
	}

	sql, args, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count questions: %w", err)
	}
	var total int
	if err := querier.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count questions: %w", err)
	}

	sql, args, err = pageQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list questions: %w", err)
	}
	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	questions := make([]domain.Question, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
		ids = append(ids, q.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list questions: %w", err)
	}

	choices, err := loadChoices(ctx, querier, ids)
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
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, `
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

	sql, args, err := psql.Select("question_id", "count(*)", "count(*) FILTER (WHERE is_correct)").
		From("attempts").
		Where(squirrel.Eq{"question_id": ids}).
		GroupBy("question_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build attempt counts: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
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

func loadChoices(ctx context.Context, querier postgres.Querier, ids []uuid.UUID) (map[uuid.UUID][]domain.Choice, error) {
	out := make(map[uuid.UUID][]domain.Choice, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	sql, args, err := psql.Select("question_id", "text", "is_correct").
		From("choices").
		Where(squirrel.Eq{"question_id": ids}).
		OrderBy("question_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select choices: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
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

func scanQuestion(row pgx.Row) (domain.Question, error) {
	var (
		q          domain.Question
		difficulty string
		method     string
	)
	err := row.Scan(&q.ID, &q.Title, &q.Body, &q.Explanation, &difficulty, &method,
		&q.LowConfidence, &q.Language, &q.Source, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return domain.Question{}, err
	}
	q.Difficulty = domain.Difficulty(difficulty)
	q.Method = domain.ExtractionMethod(method)
	return q, nil
}
