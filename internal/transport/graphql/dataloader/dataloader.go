// Package dataloader batches per-question lookups made while resolving a
// GraphQL request into single repository calls. Loaders live for one request.
package dataloader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

type attemptRepo interface {
	AttemptCounts(ctx context.Context, questionIDs []uuid.UUID) (map[uuid.UUID]domain.AttemptCounts, error)
}

// Loaders holds the per-request loader instances.
type Loaders struct {
	AttemptsByQuestionID *dataloader.Loader[uuid.UUID, domain.AttemptCounts]
}

// NewLoaders creates a fresh set of loaders. Results are cached for the
// lifetime of the returned value, so create one per request.
func NewLoaders(attempts attemptRepo) *Loaders {
	return &Loaders{
		AttemptsByQuestionID: newLoader(newAttemptsBatchFn(attempts)),
	}
}

func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

// newAttemptsBatchFn answers every key; questions without attempts get
// zero counts.
func newAttemptsBatchFn(repo attemptRepo) dataloader.BatchFunc[uuid.UUID, domain.AttemptCounts] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[domain.AttemptCounts] {
		counts, err := repo.AttemptCounts(ctx, keys)
		if err != nil {
			return errorResults[domain.AttemptCounts](len(keys), err)
		}

		results := make([]*dataloader.Result[domain.AttemptCounts], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[domain.AttemptCounts]{Data: counts[key]}
		}
		return results
	}
}

func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

type loadersKey struct{}

// WithLoaders stores l in ctx.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey{}, l)
}

// FromContext returns the loaders stored by Middleware. It panics when
// none are present, which means the handler was mounted without Middleware.
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey{}).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: no loaders in context")
	}
	return l
}
