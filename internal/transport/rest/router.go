package rest

import (
	"net/http"

	"github.com/heartmarshall/quizbank-backend/internal/transport/middleware"
)

// Routes groups the handlers and the per-route middleware the router mounts.
type Routes struct {
	Health    *HealthHandler
	Imports   *ImportHandler
	Questions *QuestionHandler
	// Extract wraps the endpoints that spend generation quota.
	Extract middleware.Middleware
	// GraphQL is mounted at /api/v1/graphql when set.
	GraphQL http.Handler
}

// NewRouter mounts the health checks at the root and the API under /api/v1.
func NewRouter(rt Routes) *http.ServeMux {
	extract := rt.Extract
	if extract == nil {
		extract = middleware.Chain()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", rt.Health.Live)
	mux.HandleFunc("GET /ready", rt.Health.Ready)
	mux.HandleFunc("GET /health", rt.Health.Health)

	mux.Handle("POST /api/v1/extract", extract(http.HandlerFunc(rt.Imports.Extract)))
	mux.Handle("POST /api/v1/imports", extract(http.HandlerFunc(rt.Imports.Import)))

	mux.HandleFunc("GET /api/v1/questions", rt.Questions.List)
	mux.HandleFunc("GET /api/v1/questions/{id}", rt.Questions.Get)
	mux.HandleFunc("DELETE /api/v1/questions/{id}", rt.Questions.Delete)
	mux.HandleFunc("PUT /api/v1/questions/{id}/correct-choice", rt.Questions.SetCorrectChoice)
	mux.HandleFunc("POST /api/v1/questions/{id}/attempts", rt.Questions.SubmitAnswer)
	mux.HandleFunc("GET /api/v1/stats", rt.Questions.Stats)

	if rt.GraphQL != nil {
		mux.Handle("POST /api/v1/graphql", rt.GraphQL)
	}

	return mux
}
