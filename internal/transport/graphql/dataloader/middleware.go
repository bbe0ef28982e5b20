package dataloader

import "net/http"

// Middleware gives every request its own Loaders.
func Middleware(attempts attemptRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLoaders(r.Context(), NewLoaders(attempts))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
