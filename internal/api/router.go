package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/taskdeck/taskdeck/internal/api/handler"
	"github.com/taskdeck/taskdeck/internal/api/middleware"
	"github.com/taskdeck/taskdeck/internal/metrics"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/session"
)

// DefaultRequestTimeout bounds each request, database work included.
const DefaultRequestTimeout = 10 * time.Second

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	DB       *sql.DB
	Sessions *session.Manager
	Auth     *service.AuthService
	Tasks    *service.TaskService
	Metrics  *metrics.Metrics
	Logger   *slog.Logger

	// Production hides internal error causes from responses.
	Production bool
	// AllowedOrigins enables CORS for browser clients when non-empty.
	AllowedOrigins []string
	// RequestTimeout defaults to DefaultRequestTimeout.
	RequestTimeout time.Duration
}

// NewRouter creates and configures the HTTP router. The API is served at the
// root and again under /api.
func NewRouter(deps Dependencies) *chi.Mux {
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	r := chi.NewRouter()

	// Global middleware chain
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.InternalDetails(!deps.Production))
	if len(deps.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(deps.AllowedOrigins))
	}
	r.Use(middleware.Timeout(timeout))

	// Initialize handlers
	systemHandler := handler.NewSystemHandler(deps.DB)
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Metrics)
	taskHandler := handler.NewTaskHandler(deps.Tasks, deps.Metrics)

	// System routes
	r.Get("/health", systemHandler.Health)
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	routes := func(r chi.Router) {
		r.Use(middleware.Authenticate(deps.Sessions))

		// Anonymous or optional-user routes
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/me", authHandler.Me)

		// Routes that require a signed-in user
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			r.Put("/auth/profile", authHandler.UpdateProfile)

			r.Get("/tasks", taskHandler.ListTasks)
			r.Post("/tasks", taskHandler.CreateTask)
			r.Put("/tasks/{id}", taskHandler.UpdateTask)
			r.Delete("/tasks/{id}", taskHandler.DeleteTask)
		})
	}

	r.Group(routes)
	r.Route("/api", routes)

	return r
}
