package graphql

import (
	"context"
	"strings"
	"time"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
	"github.com/heartmarshall/quizbank-backend/internal/service/quiz"
)

func (ec *execContext) query(ctx context.Context, sel ast.SelectionSet) *object {
	return ec.resolveObject(ctx, "Query", sel, nil, func(ctx context.Context, f graphql.CollectedField, path ast.Path) (any, error) {
		args := f.ArgumentMap(ec.opCtx.Variables)
		switch f.Name {
		case "question":
			id, err := uuidArg(args, "id")
			if err != nil {
				return nil, err
			}
			q, err := ec.resolver.Question(ctx, id)
			if err != nil {
				return nil, err
			}
			return ec.question(ctx, f.Selections, path, q), nil

		case "questions":
			in, err := listInput(args)
			if err != nil {
				return nil, err
			}
			page, err := ec.resolver.Questions(ctx, in)
			if err != nil {
				return nil, err
			}
			return ec.questionPage(ctx, f.Selections, path, page), nil

		case "stats":
			s, err := ec.resolver.Stats(ctx)
			if err != nil {
				return nil, err
			}
			return ec.stats(ctx, f.Selections, path, s), nil
		}
		return nil, unknownField("Query", f.Name)
	})
}

// mutation resolves root fields one after another, in document order.
func (ec *execContext) mutation(ctx context.Context, sel ast.SelectionSet) *object {
	return ec.resolveObject(ctx, "Mutation", sel, nil, func(ctx context.Context, f graphql.CollectedField, path ast.Path) (any, error) {
		args := f.ArgumentMap(ec.opCtx.Variables)
		id, err := uuidArg(args, "id")
		if err != nil {
			return nil, err
		}

		switch f.Name {
		case "setCorrectChoice":
			index, err := requiredIntArg(args, "choiceIndex")
			if err != nil {
				return nil, err
			}
			q, err := ec.resolver.SetCorrectChoice(ctx, id, index)
			if err != nil {
				return nil, err
			}
			return ec.question(ctx, f.Selections, path, q), nil

		case "submitAnswer":
			index, err := requiredIntArg(args, "choiceIndex")
			if err != nil {
				return nil, err
			}
			res, err := ec.resolver.SubmitAnswer(ctx, id, index)
			if err != nil {
				return nil, err
			}
			return ec.answerResult(ctx, f.Selections, path, res), nil

		case "deleteQuestion":
			if err := ec.resolver.DeleteQuestion(ctx, id); err != nil {
				return nil, err
			}
			return true, nil
		}
		return nil, unknownField("Mutation", f.Name)
	})
}

func (ec *execContext) question(ctx context.Context, sel ast.SelectionSet, path ast.Path, q *domain.Question) *object {
	return ec.resolveObject(ctx, "Question", sel, path, func(ctx context.Context, f graphql.CollectedField, path ast.Path) (any, error) {
		switch f.Name {
		case "id":
			return q.ID.String(), nil
		case "title":
			return q.Title, nil
		case "body":
			return q.Body, nil
		case "choices":
			return ec.choices(ctx, f.Selections, path, q.Choices), nil
		case "correctIndex":
			return q.CorrectIndex(), nil
		case "explanation":
			return q.Explanation, nil
		case "difficulty":
			return enumValue(string(q.Difficulty)), nil
		case "method":
			return enumValue(string(q.Method)), nil
		case "lowConfidence":
			return q.LowConfidence, nil
		case "language":
			return optionalString(q.Language), nil
		case "source":
			return optionalString(q.Source), nil
		case "createdAt":
			return formatDateTime(q.CreatedAt), nil
		case "updatedAt":
			return formatDateTime(q.UpdatedAt), nil
		case "attempts":
			counts, err := ec.resolver.Attempts(ctx, q.ID)
			if err != nil {
				return nil, err
			}
			return ec.attemptCounts(ctx, f.Selections, path, counts), nil
		}
		return nil, unknownField("Question", f.Name)
	})
}

func (ec *execContext) choices(ctx context.Context, sel ast.SelectionSet, path ast.Path, choices []domain.Choice) []any {
	out := make([]any, len(choices))
	for i, c := range choices {
		obj := ec.resolveObject(ctx, "Choice", sel, appendPath(path, ast.PathIndex(i)), func(_ context.Context, f graphql.CollectedField, _ ast.Path) (any, error) {
			switch f.Name {
			case "text":
				return c.Text, nil
			case "correct":
				return c.Correct, nil
			}
			return nil, unknownField("Choice", f.Name)
		})
		if obj == nil {
			return nil
		}
		out[i] = obj
	}
	return out
}

func (ec *execContext) questionPage(ctx context.Context, sel ast.SelectionSet, path ast.Path, page *QuestionPage) *object {
	return ec.resolveObject(ctx, "QuestionPage", sel, path, func(ctx context.Context, f graphql.CollectedField, path ast.Path) (any, error) {
		switch f.Name {
		case "questions":
			return ec.resolveList(ctx, len(page.Questions), path, true, func(ctx context.Context, i int, path ast.Path) any {
				return ec.question(ctx, f.Selections, path, &page.Questions[i])
			}), nil
		case "total":
			return page.Total, nil
		case "limit":
			return page.Limit, nil
		case "offset":
			return page.Offset, nil
		}
		return nil, unknownField("QuestionPage", f.Name)
	})
}

func (ec *execContext) stats(ctx context.Context, sel ast.SelectionSet, path ast.Path, s domain.Stats) *object {
	return ec.resolveObject(ctx, "Stats", sel, path, func(_ context.Context, f graphql.CollectedField, _ ast.Path) (any, error) {
		switch f.Name {
		case "questions":
			return s.Questions, nil
		case "lowConfidence":
			return s.LowConfidence, nil
		case "attempts":
			return s.Attempts, nil
		case "correctAttempts":
			return s.CorrectAttempts, nil
		}
		return nil, unknownField("Stats", f.Name)
	})
}

func (ec *execContext) attemptCounts(ctx context.Context, sel ast.SelectionSet, path ast.Path, c domain.AttemptCounts) *object {
	return ec.resolveObject(ctx, "AttemptCounts", sel, path, func(_ context.Context, f graphql.CollectedField, _ ast.Path) (any, error) {
		switch f.Name {
		case "attempts":
			return c.Attempts, nil
		case "correct":
			return c.Correct, nil
		}
		return nil, unknownField("AttemptCounts", f.Name)
	})
}

func (ec *execContext) answerResult(ctx context.Context, sel ast.SelectionSet, path ast.Path, r *quiz.AnswerResult) *object {
	return ec.resolveObject(ctx, "AnswerResult", sel, path, func(_ context.Context, f graphql.CollectedField, _ ast.Path) (any, error) {
		switch f.Name {
		case "correct":
			return r.Correct, nil
		case "correctIndex":
			return r.CorrectIndex, nil
		case "explanation":
			return r.Explanation, nil
		case "lowConfidence":
			return r.LowConfidence, nil
		}
		return nil, unknownField("AnswerResult", f.Name)
	})
}

func enumValue(s string) string {
	return strings.ToUpper(s)
}

func optionalString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// formatDateTime renders the DateTime scalar.
func formatDateTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
