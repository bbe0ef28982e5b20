package graphql

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/google/uuid"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
	"github.com/heartmarshall/quizbank-backend/internal/transport/graphql/dataloader"
)

type attemptCounter interface {
	AttemptCounts(ctx context.Context, questionIDs []uuid.UUID) (map[uuid.UUID]domain.AttemptCounts, error)
}

// NewHandler serves the schema over JSON POST. Each request gets its own
// dataloaders backed by attempts.
func NewHandler(log *slog.Logger, quiz quizService, attempts attemptCounter) http.Handler {
	srv := handler.New(NewExecutableSchema(NewResolver(quiz)))
	srv.AddTransport(transport.POST{})
	srv.SetErrorPresenter(NewErrorPresenter(log.With(slog.String("component", "graphql"))))

	return dataloader.Middleware(attempts)(srv)
}
