package graphql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
	"github.com/heartmarshall/quizbank-backend/pkg/ctxutil"
)

// NewErrorPresenter puts an error code into extensions. Request-level
// errors (syntax, validation, variable coercion) keep their message;
// unknown resolver errors are logged and replaced with "internal error".
func NewErrorPresenter(log *slog.Logger) graphql.ErrorPresenterFunc {
	return func(ctx context.Context, err error) *gqlerror.Error {
		gqlErr := graphql.DefaultErrorPresenter(ctx, err)

		cause := errors.Unwrap(gqlErr)
		if cause == nil {
			gqlErr.Extensions = withCode(gqlErr.Extensions, "GRAPHQL_VALIDATION_FAILED")
			return gqlErr
		}

		var ve *domain.ValidationError
		switch {
		case errors.As(cause, &ve):
			gqlErr.Extensions = map[string]any{
				"code":   "VALIDATION",
				"fields": ve.Errors,
			}
		case errors.Is(cause, domain.ErrNotFound):
			gqlErr.Extensions = map[string]any{"code": "NOT_FOUND"}
		case errors.Is(cause, domain.ErrAlreadyExists):
			gqlErr.Extensions = map[string]any{"code": "ALREADY_EXISTS"}
		case errors.Is(cause, context.Canceled), errors.Is(cause, context.DeadlineExceeded):
			gqlErr.Message = "request interrupted before completion"
			gqlErr.Extensions = map[string]any{"code": "INTERRUPTED"}
		default:
			log.ErrorContext(ctx, "unexpected error",
				slog.String("error", cause.Error()),
				slog.String("path", gqlErr.Path.String()),
				slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
			)
			gqlErr.Message = "internal error"
			gqlErr.Extensions = map[string]any{"code": "INTERNAL"}
		}
		return gqlErr
	}
}

func withCode(ext map[string]any, code string) map[string]any {
	if ext == nil {
		ext = make(map[string]any, 1)
	}
	ext["code"] = code
	return ext
}
