package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/taskdeck/taskdeck/internal/api/response"
	"github.com/taskdeck/taskdeck/internal/domain"
)

// Recovery middleware catches panics and returns a 500 error.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				response.Logger(r.Context()).ErrorContext(r.Context(), "panic recovered",
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				response.Error(w, r, domain.NewInternalError(
					domain.ErrCodeServer, "Internal server error", fmt.Errorf("panic: %v", rec),
				))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
