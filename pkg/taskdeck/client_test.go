package taskdeck_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/password"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/session"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/store/sqlite"
	"github.com/taskdeck/taskdeck/pkg/taskdeck"
)

type testServer struct {
	url  string
	auth *service.AuthService
}

func startServer(t *testing.T) *testServer {
	t.Helper()

	db, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "sdk.db"), store.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sessions := session.NewManager(sqlite.NewSessionRepository(db), session.Options{})
	auth := service.NewAuthService(sqlite.NewUserRepository(db), sessions, password.NewHasher(bcrypt.MinCost), nil)
	router := api.NewRouter(api.Dependencies{
		DB:       db,
		Sessions: sessions,
		Auth:     auth,
		Tasks:    service.NewTaskService(sqlite.NewTaskRepository(db), nil),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{url: srv.URL, auth: auth}
}

func newClient(t *testing.T, baseURL string) *taskdeck.Client {
	t.Helper()
	c, err := taskdeck.NewClient(taskdeck.WithBaseURL(baseURL))
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	_, err := taskdeck.NewClient(taskdeck.WithBaseURL("not a url"))
	assert.Error(t, err)

	_, err = taskdeck.NewClient()
	assert.NoError(t, err)

	custom := &http.Client{Timeout: time.Second}
	_, err = taskdeck.NewClient(taskdeck.WithHTTPClient(custom))
	require.NoError(t, err)
	assert.Nil(t, custom.Jar, "caller's client must not be modified")
}

func TestClient_Health(t *testing.T) {
	srv := startServer(t)
	ctx := context.Background()

	assert.NoError(t, newClient(t, srv.url).Health(ctx))

	unhealthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer unhealthy.Close()
	assert.True(t, taskdeck.IsServerUnhealthy(newClient(t, unhealthy.URL).Health(ctx)))

	// Nothing listens on a closed server's address.
	closed := httptest.NewServer(http.NotFoundHandler())
	addr := closed.URL
	closed.Close()
	assert.True(t, taskdeck.IsServerNotRunning(newClient(t, addr).Health(ctx)))
}

func TestClient_AuthFlow(t *testing.T) {
	srv := startServer(t)
	ctx := context.Background()
	c := newClient(t, srv.url)

	_, err := c.Me(ctx)
	assert.True(t, taskdeck.IsUnauthorized(err))

	user, err := c.Register(ctx, "alice@example.com", "Password1", taskdeck.WithName("Alice", "Liddell"))
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	require.NotNil(t, user.FirstName)
	assert.Equal(t, "Alice", *user.FirstName)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)

	updated, err := c.UpdateProfile(ctx, taskdeck.ClearLastName(), taskdeck.SetFirstName("Al"))
	require.NoError(t, err)
	assert.Equal(t, "Al", *updated.FirstName)
	assert.Nil(t, updated.LastName)

	require.NoError(t, c.Logout(ctx))
	_, err = c.Me(ctx)
	assert.True(t, taskdeck.IsUnauthorized(err))

	_, err = c.Login(ctx, "alice@example.com", "wrong-password")
	assert.True(t, taskdeck.IsInvalidCredentials(err))

	_, err = c.Login(ctx, "alice@example.com", "Password1")
	require.NoError(t, err)

	other := newClient(t, srv.url)
	_, err = other.Register(ctx, "alice@example.com", "Password1")
	assert.True(t, taskdeck.IsEmailExists(err))

	require.NoError(t, srv.auth.SetActive(ctx, "alice@example.com", false))
	_, err = other.Login(ctx, "alice@example.com", "Password1")
	assert.True(t, taskdeck.IsAccountDeactivated(err))
}

func TestClient_ValidationError(t *testing.T) {
	srv := startServer(t)
	c := newClient(t, srv.url)

	_, err := c.Register(context.Background(), "not-an-email", "short")
	require.True(t, taskdeck.IsValidation(err))

	var apiErr *taskdeck.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Len(t, apiErr.ValidationDetails(), 2)
}

func TestClient_TaskLifecycle(t *testing.T) {
	srv := startServer(t)
	ctx := context.Background()
	c := newClient(t, srv.url)
	_, err := c.Register(ctx, "alice@example.com", "Password1")
	require.NoError(t, err)

	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	task, err := c.CreateTask(ctx, "Buy milk",
		taskdeck.WithPriority(taskdeck.PriorityHigh),
		taskdeck.WithCategory("errands"),
		taskdeck.WithDueDate(due),
	)
	require.NoError(t, err)
	assert.Equal(t, taskdeck.StatusPending, task.Status)
	require.NotNil(t, task.Due())
	assert.True(t, task.Due().Equal(due))

	_, err = c.CreateTask(ctx, "Call mom", taskdeck.WithStatus(taskdeck.StatusCompleted))
	require.NoError(t, err)

	task, err = c.UpdateTask(ctx, task.ID, taskdeck.SetStatus(taskdeck.StatusCompleted), taskdeck.ClearDueDate())
	require.NoError(t, err)
	assert.NotNil(t, task.CompletedAt)
	assert.Nil(t, task.DueDate)
	assert.Equal(t, "errands", *task.Category)

	list, err := c.ListTasks(ctx,
		taskdeck.FilterStatus(taskdeck.StatusCompleted),
		taskdeck.SortBy(taskdeck.SortByTitle, taskdeck.SortAsc),
		taskdeck.Limit(1),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, 2, list.Pagination.TotalPages)
	require.Len(t, list.Tasks, 1)
	assert.Equal(t, "Buy milk", list.Tasks[0].Title)
	assert.Equal(t, "completed", list.Filters.Status)

	list, err = c.ListTasks(ctx, taskdeck.Search("MOM"))
	require.NoError(t, err)
	require.Len(t, list.Tasks, 1)
	assert.Equal(t, "Call mom", list.Tasks[0].Title)

	require.NoError(t, c.DeleteTask(ctx, task.ID))
	err = c.DeleteTask(ctx, task.ID)
	assert.True(t, taskdeck.IsNotFound(err))

	_, err = c.UpdateTask(ctx, 0, taskdeck.SetTitle("x"))
	assert.True(t, taskdeck.IsInvalidID(err))
}

func TestClient_APIPrefixBaseURL(t *testing.T) {
	srv := startServer(t)
	ctx := context.Background()
	c := newClient(t, srv.url+"/api/")

	_, err := c.Register(ctx, "alice@example.com", "Password1")
	require.NoError(t, err)

	_, err = c.CreateTask(ctx, "via prefix")
	require.NoError(t, err)

	list, err := c.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}
