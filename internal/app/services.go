package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizbank-backend/internal/adapter/llm"
	"github.com/heartmarshall/quizbank-backend/internal/adapter/postgres"
	pgquestion "github.com/heartmarshall/quizbank-backend/internal/adapter/postgres/question"
	"github.com/heartmarshall/quizbank-backend/internal/adapter/sqlite"
	litequestion "github.com/heartmarshall/quizbank-backend/internal/adapter/sqlite/question"
	"github.com/heartmarshall/quizbank-backend/internal/config"
	"github.com/heartmarshall/quizbank-backend/internal/domain"
	"github.com/heartmarshall/quizbank-backend/internal/extractor"
	"github.com/heartmarshall/quizbank-backend/internal/langdetect"
	"github.com/heartmarshall/quizbank-backend/internal/service/importer"
	"github.com/heartmarshall/quizbank-backend/internal/service/quiz"
)

// questionStore is the method set shared by the PostgreSQL and SQLite
// question repositories.
type questionStore interface {
	Ping(ctx context.Context) error
	Save(ctx context.Context, q *domain.Question) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	List(ctx context.Context, f domain.QuestionFilter) ([]domain.Question, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateChoices(ctx context.Context, id uuid.UUID, choices []domain.Choice, lowConfidence bool) error
	CreateAttempt(ctx context.Context, a *domain.Attempt) error
	Stats(ctx context.Context) (domain.Stats, error)
	AttemptCounts(ctx context.Context, questionIDs []uuid.UUID) (map[uuid.UUID]domain.AttemptCounts, error)
}

var (
	_ questionStore = (*pgquestion.Repo)(nil)
	_ questionStore = (*litequestion.Repo)(nil)
)

// Services holds the wired application services and the resources behind them.
type Services struct {
	Importer *importer.Service
	Quiz     *quiz.Service
	Store    questionStore

	closers []func() error
}

// NewServices opens the configured store (running migrations), builds the
// text generator and wires the import and quiz services. Call Close when done.
func NewServices(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Services, error) {
	s := &Services{}

	store, closeStore, err := openStore(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	s.Store = store
	s.closers = append(s.closers, closeStore)

	gen, closeGen, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("text generator: %w", err)
	}
	s.closers = append(s.closers, closeGen)

	ext := extractor.New(gen, extractor.Config{
		InputBudget:     cfg.Extractor.InputBudget,
		TitleMaxRunes:   cfg.Extractor.TitleMaxRunes,
		Model:           cfg.LLM.DefaultModel(),
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		Temperature:     cfg.LLM.Temperature,
	}, log)

	s.Importer = importer.NewService(log, ext, store, langdetect.New(), importer.Config{
		MaxRetries:        cfg.Import.MaxRetries,
		InitialBackoff:    cfg.Import.InitialBackoff,
		MaxBackoff:        cfg.Import.MaxBackoff,
		MaxBlocks:         cfg.Import.MaxBlocks,
		MaxTextBytes:      cfg.Import.MaxTextBytes,
		RequestsPerMinute: cfg.LLM.RequestsPerMinute,
	})
	s.Quiz = quiz.NewService(log, store)

	log.Info("services ready",
		slog.String("store", cfg.Database.Driver),
		slog.String("llm_provider", cfg.LLM.Provider),
		slog.String("llm_model", cfg.LLM.DefaultModel()),
	)
	return s, nil
}

// Close releases resources in reverse order of acquisition.
func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func openStore(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (questionStore, func() error, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pgquestion.New(pool, postgres.NewTxManager(pool)), func() error { pool.Close(); return nil }, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlite.Migrate(ctx, db, log); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return litequestion.New(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
