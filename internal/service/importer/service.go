// Package importer turns uploaded exam material into stored questions,
// one source block at a time.
package importer

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
)

type questionExtractor interface {
	ExtractQuestion(ctx context.Context, raw string) (*domain.Question, error)
}

type questionRepo interface {
	Save(ctx context.Context, q *domain.Question) (uuid.UUID, error)
}

type languageDetector interface {
	Detect(text string) string
}

// Config bounds a single import and its use of the generation service.
type Config struct {
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	MaxBlocks         int
	MaxTextBytes      int
	RequestsPerMinute int
}

// Service imports and previews question material.
type Service struct {
	extractor questionExtractor
	repo      questionRepo
	lang      languageDetector
	limiter   *rate.Limiter
	cfg       Config
	log       *slog.Logger
}

// NewService creates a new import service. The rate limiter is shared by
// every import running on this Service, so concurrent requests together
// stay under cfg.RequestsPerMinute.
func NewService(
	log *slog.Logger,
	extractor questionExtractor,
	repo questionRepo,
	lang languageDetector,
	cfg Config,
) *Service {
	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}

	return &Service{
		extractor: extractor,
		repo:      repo,
		lang:      lang,
		limiter:   rate.NewLimiter(limit, 1),
		cfg:       cfg,
		log:       log.With("service", "importer"),
	}
}
