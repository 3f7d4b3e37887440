package middleware

import (
	"context"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/api/response"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/session"
)

type contextKey string

const (
	// UserKey is the context key for the authenticated user.
	UserKey contextKey = "user"
	// SessionKey is the context key for the validated session.
	SessionKey contextKey = "session"
)

// Authenticate resolves the session cookie to a user and stores it in the
// request context. It never rejects a request; lookup failures are logged and
// treated as anonymous. Renewed sessions get their cookie re-sent.
func Authenticate(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := session.ReadCookie(r)
			if sessionID == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := manager.Validate(r.Context(), sessionID)
			if err != nil {
				response.Logger(r.Context()).WarnContext(r.Context(), "session lookup failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if result == nil {
				next.ServeHTTP(w, r)
				return
			}

			if result.Fresh {
				http.SetCookie(w, manager.Cookie(result.Session))
			}

			ctx := context.WithValue(r.Context(), UserKey, result.User)
			ctx = context.WithValue(ctx, SessionKey, result.Session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests without an authenticated user with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r.Context()); !ok {
			response.Error(w, r, domain.NewUnauthorizedError("Not authenticated"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser retrieves the authenticated user from context.
func CurrentUser(ctx context.Context) (*domain.PublicUser, bool) {
	user, ok := ctx.Value(UserKey).(*domain.PublicUser)
	return user, ok && user != nil
}

// CurrentSession retrieves the validated session from context.
func CurrentSession(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(SessionKey).(*domain.Session)
	return s, ok && s != nil
}
