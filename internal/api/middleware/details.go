package middleware

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/api/response"
)

// InternalDetails controls whether error responses carry the internal cause
// of server errors. Enable outside production only.
func InternalDetails(expose bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := response.WithInternalDetails(r.Context(), expose)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
