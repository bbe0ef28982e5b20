package graphql

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
	"github.com/heartmarshall/quizbank-backend/internal/service/quiz"
)

func uuidArg(args map[string]any, name string) (uuid.UUID, error) {
	s, ok := args[name].(string)
	if !ok {
		return uuid.Nil, domain.NewValidationError(name, "required")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

// intArg reads an optional Int. Literals arrive as int64; variables keep
// whatever the transport decoded (json.Number or float64).
func intArg(args map[string]any, name string) (int, bool, error) {
	switch v := args[name].(type) {
	case nil:
		return 0, false, nil
	case int:
		return v, true, nil
	case int64:
		return int(v), true, nil
	case float64:
		if v == math.Trunc(v) {
			return int(v), true, nil
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true, nil
		}
	}
	return 0, false, domain.NewValidationError(name, "must be an integer")
}

func requiredIntArg(args map[string]any, name string) (int, error) {
	n, ok, err := intArg(args, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.NewValidationError(name, "required")
	}
	return n, nil
}

func stringArg(args map[string]any, name string) *string {
	if s, ok := args[name].(string); ok {
		return &s
	}
	return nil
}

func boolArg(args map[string]any, name string) *bool {
	if b, ok := args[name].(bool); ok {
		return &b
	}
	return nil
}

// listInput maps the questions() arguments. Range checks stay with the
// quiz service.
func listInput(args map[string]any) (quiz.ListInput, error) {
	in := quiz.ListInput{
		Source:        stringArg(args, "source"),
		LowConfidence: boolArg(args, "lowConfidence"),
	}
	if s := stringArg(args, "difficulty"); s != nil {
		d := domain.Difficulty(strings.ToLower(*s))
		in.Difficulty = &d
	}

	var errs []domain.FieldError
	for _, p := range []struct {
		name string
		dst  *int
	}{{"limit", &in.Limit}, {"offset", &in.Offset}} {
		n, _, err := intArg(args, p.name)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: p.name, Message: "must be an integer"})
			continue
		}
		*p.dst = n
	}
	if len(errs) > 0 {
		return quiz.ListInput{}, domain.NewValidationErrors(errs)
	}
	return in, nil
}
