package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// object is a response object that keeps the field order of the query.
type object struct {
	fields []objectField
}

type objectField struct {
	key   string
	value any
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// fieldFunc resolves one field of an object. Scalars are returned as Go
// values, nested objects as *object and lists as []any.
type fieldFunc func(ctx context.Context, f graphql.CollectedField, path ast.Path) (any, error)

type execContext struct {
	opCtx    *graphql.OperationContext
	resolver *Resolver
}

// resolveObject collects the selected fields of typeName (fragments,
// aliases and @skip/@include applied) and resolves them in order. A null
// in a non-null field makes the whole object null; the error stays on the
// field's path.
func (ec *execContext) resolveObject(ctx context.Context, typeName string, sel ast.SelectionSet, path ast.Path, resolve fieldFunc) *object {
	fields := graphql.CollectFields(ec.opCtx, sel, []string{typeName})
	out := &object{fields: make([]objectField, 0, len(fields))}

	for _, f := range fields {
		if f.Name == "__typename" {
			out.fields = append(out.fields, objectField{key: f.Alias, value: typeName})
			continue
		}

		fieldPath := appendPath(path, ast.PathName(f.Alias))
		v, err := resolve(ctx, f, fieldPath)
		if err != nil {
			ec.addError(ctx, fieldPath, err)
			v = nil
		}
		if isNull(v) && f.Definition.Type.NonNull {
			return nil
		}
		out.fields = append(out.fields, objectField{key: f.Alias, value: v})
	}
	return out
}

// resolveList resolves n elements concurrently so that loads issued by
// sibling elements share a dataloader batch. A null element nulls the list
// when elements are non-null.
func (ec *execContext) resolveList(ctx context.Context, n int, path ast.Path, elemNonNull bool, elem func(ctx context.Context, i int, path ast.Path) any) []any {
	out := make([]any, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			elemPath := appendPath(path, ast.PathIndex(i))
			defer func() {
				if r := recover(); r != nil {
					ec.addError(ctx, elemPath, fmt.Errorf("panic: %v", r))
					out[i] = nil
				}
			}()
			out[i] = elem(ctx, i, elemPath)
		}()
	}
	wg.Wait()

	if elemNonNull && slices.ContainsFunc(out, isNull) {
		return nil
	}
	return out
}

func (ec *execContext) addError(ctx context.Context, path ast.Path, err error) {
	graphql.AddError(ctx, gqlerror.WrapPath(path, err))
}

func appendPath(path ast.Path, elem ast.PathElement) ast.Path {
	return append(slices.Clone(path), elem)
}

func isNull(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case *object:
		return v == nil
	case []any:
		return v == nil
	}
	return false
}

func unknownField(typeName, field string) error {
	return fmt.Errorf("no resolver for %s.%s", typeName, field)
}
