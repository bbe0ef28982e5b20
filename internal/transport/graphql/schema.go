// Package graphql serves the question bank over GraphQL. The SDL in
// schema.graphqls is embedded; gqlgen's handler parses, validates and
// coerces each request, and executableSchema resolves the validated
// operation against the quiz service.
package graphql

import (
	"context"
	_ "embed"
	"encoding/json"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphqls
var schemaSDL string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSDL})

type executableSchema struct {
	// Only Schema and Exec are implemented. The handler never asks for
	// Complexity unless a complexity limit extension is installed.
	graphql.ExecutableSchema

	resolver *Resolver
}

// NewExecutableSchema binds the embedded schema to r.
func NewExecutableSchema(r *Resolver) graphql.ExecutableSchema {
	return &executableSchema{resolver: r}
}

func (e *executableSchema) Schema() *ast.Schema {
	return parsedSchema
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	ec := &execContext{opCtx: opCtx, resolver: e.resolver}

	var run func(ctx context.Context, sel ast.SelectionSet) *object
	switch opCtx.Operation.Operation {
	case ast.Query:
		run = ec.query
	case ast.Mutation:
		run = ec.mutation
	default:
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported GraphQL operation"))
	}

	first := true
	return func(ctx context.Context) *graphql.Response {
		if !first {
			return nil
		}
		first = false

		data, err := json.Marshal(run(ctx, opCtx.Operation.SelectionSet))
		if err != nil {
			return graphql.ErrorResponse(ctx, "encode response: %v", err)
		}
		return &graphql.Response{Data: data}
	}
}
