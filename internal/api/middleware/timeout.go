package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck/internal/api/response"
	"github.com/taskdeck/taskdeck/internal/domain"
)

// Timeout cancels the request context after d. If the deadline passes before
// the handler wrote anything, the client gets a SERVER_ERROR body instead of
// an empty response.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			r = r.WithContext(ctx)
			wrapped := wrapResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			if !wrapped.wroteHeader && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				response.Error(wrapped, r, domain.NewInternalError(
					domain.ErrCodeServer, "Request timed out", ctx.Err(),
				))
			}
		})
	}
}
