package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
)

// setupTestDB opens a migrated database file in a temp dir.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"), store.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func strPtr(s string) *string { return &s }
func intPtr(n int64) *int64   { return &n }

func createTestUser(t *testing.T, db *sql.DB, id, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:           id,
		Email:        email,
		PasswordHash: "hash",
		IsActive:     true,
		CreatedAt:    1000,
		UpdatedAt:    1000,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createTestTask(t *testing.T, repo *TaskRepository, userID, title string, createdAt int64) *domain.Task {
	t.Helper()
	task := &domain.Task{
		UserID:    userID,
		Title:     title,
		Status:    domain.StatusPending,
		Priority:  domain.PriorityMedium,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), task))
	return task
}

func normalized(f domain.TaskFilter) domain.TaskFilter {
	f.Normalize()
	return f
}

// ============================================================================
// User Repository Tests
// ============================================================================

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{
		ID:           "u1",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		FirstName:    strPtr("Alice"),
		IsActive:     true,
		CreatedAt:    1000,
		UpdatedAt:    1000,
	}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	got, err = repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Nil(t, got.LastName)

	_, err = repo.GetByEmail(ctx, "ALICE@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "u1", "alice@example.com")

	err := repo.Create(ctx, &domain.User{ID: "u2", Email: "alice@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, store.ErrEmailTaken)

	taken, err := repo.EmailTaken(ctx, "alice@example.com", "u2")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.EmailTaken(ctx, "alice@example.com", "u1")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "u1", "alice@example.com")
	createTestUser(t, db, "u2", "bob@example.com")

	alice.FirstName = strPtr("Alice")
	alice.Email = "alice@new.example.com"
	alice.UpdatedAt = 2000
	require.NoError(t, repo.UpdateProfile(ctx, alice))

	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice@new.example.com", got.Email)
	assert.Equal(t, "Alice", *got.FirstName)
	assert.Equal(t, int64(2000), got.UpdatedAt)

	alice.Email = "bob@example.com"
	assert.ErrorIs(t, repo.UpdateProfile(ctx, alice), store.ErrEmailTaken)

	ghost := &domain.User{ID: "ghost", Email: "ghost@example.com"}
	assert.ErrorIs(t, repo.UpdateProfile(ctx, ghost), store.ErrNotFound)
}

func TestUserRepository_SetActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "u1", "alice@example.com")

	require.NoError(t, repo.SetActive(ctx, "alice@example.com", false, 5000))
	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, int64(5000), got.UpdatedAt)

	assert.ErrorIs(t, repo.SetActive(ctx, "nobody@example.com", true, 1), store.ErrNotFound)
}

// ============================================================================
// Session Repository Tests
// ============================================================================

func TestSessionRepository_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "u1", "alice@example.com")

	session := &domain.Session{ID: "s1", UserID: "u1", ExpiresAt: 9000, CreatedAt: 1000}
	require.NoError(t, repo.Create(ctx, session))

	gotSession, gotUser, err := repo.GetWithUser(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, session, gotSession)
	assert.Equal(t, "alice@example.com", gotUser.Email)

	require.NoError(t, repo.UpdateExpiry(ctx, "s1", 12000))
	gotSession, _, err = repo.GetWithUser(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(12000), gotSession.ExpiresAt)

	require.NoError(t, repo.Delete(ctx, "s1"))
	require.NoError(t, repo.Delete(ctx, "s1"), "delete must be idempotent")

	_, _, err = repo.GetWithUser(ctx, "s1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateExpiry(ctx, "s1", 1), store.ErrNotFound)
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "u1", "alice@example.com")
	for i, expiresAt := range []int64{100, 200, 300} {
		require.NoError(t, repo.Create(ctx, &domain.Session{
			ID: fmt.Sprintf("s%d", i), UserID: "u1", ExpiresAt: expiresAt, CreatedAt: 1,
		}))
	}

	n, err := repo.DeleteExpired(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, _, err = repo.GetWithUser(ctx, "s2")
	assert.NoError(t, err)

	n, err = repo.DeleteForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSessionRepository_CascadeOnUserDelete(t *testing.T) {
	db := setupTestDB(t)
	sessions := NewSessionRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "u1", "alice@example.com")
	require.NoError(t, sessions.Create(ctx, &domain.Session{ID: "s1", UserID: "u1", ExpiresAt: 9, CreatedAt: 1}))
	task := createTestTask(t, tasks, "u1", "Buy milk", 1)

	_, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = 'u1'`)
	require.NoError(t, err)

	_, _, err = sessions.GetWithUser(ctx, "s1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = tasks.GetForUser(ctx, "u1", task.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// ============================================================================
// Task Repository Tests
// ============================================================================

func TestTaskRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "u1", "alice@example.com")

	task := &domain.Task{
		UserID:      "u1",
		Title:       "Write report",
		Description: strPtr("quarterly"),
		Status:      domain.StatusInProgress,
		Priority:    domain.PriorityHigh,
		DueDate:     intPtr(1700000000000),
		Category:    strPtr("work"),
		CreatedAt:   1000,
		UpdatedAt:   1000,
	}
	require.NoError(t, repo.Create(ctx, task))
	assert.NotZero(t, task.ID)

	got, err := repo.GetForUser(ctx, "u1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, got)

	second := createTestTask(t, repo, "u1", "Another", 2000)
	assert.Greater(t, second.ID, task.ID)
}

func TestTaskRepository_OwnershipScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "u1", "alice@example.com")
	createTestUser(t, db, "u2", "bob@example.com")
	task := createTestTask(t, repo, "u1", "Private", 1000)

	_, err := repo.GetForUser(ctx, "u2", task.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	page, err := repo.List(ctx, "u2", normalized(domain.TaskFilter{}))
	require.NoError(t, err)
	assert.Empty(t, page.Tasks)
	assert.Zero(t, page.Total)

	hijack := *task
	hijack.Title = "Hijacked"
	assert.ErrorIs(t, repo.UpdateForUser(ctx, "u2", &hijack), store.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteForUser(ctx, "u2", task.ID), store.ErrNotFound)

	got, err := repo.GetForUser(ctx, "u1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", got.Title)
}

func TestTaskRepository_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "u1", "alice@example.com")
	task := createTestTask(t, repo, "u1", "Draft", 1000)

	task.Title = "Final"
	task.Description = strPtr("done")
	task.SetStatus(domain.StatusCompleted, 3000)
	task.UpdatedAt = 3000
	require.NoError(t, repo.UpdateForUser(ctx, "u1", task))

	got, err := repo.GetForUser(ctx, "u1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, int64(3000), *got.CompletedAt)

	require.NoError(t, repo.DeleteForUser(ctx, "u1", task.ID))
	assert.ErrorIs(t, repo.DeleteForUser(ctx, "u1", task.ID), store.ErrNotFound)
}

func TestTaskRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "u1", "alice@example.com")

	seed := []struct {
		title       string
		description *string
		status      domain.TaskStatus
		priority    domain.TaskPriority
		category    *string
	}{
		{"Buy milk", strPtr("at the store"), domain.StatusPending, domain.PriorityLow, strPtr("home")},
		{"Write report", strPtr("for the MILKMAN co-op"), domain.StatusCompleted, domain.PriorityHigh, strPtr("work")},
		{"Call mom", nil, domain.StatusCompleted, domain.PriorityMedium, nil},
		{"100% done_soon", nil, domain.StatusInProgress, domain.PriorityHigh, strPtr("work")},
	}
	for i, s := range seed {
		task := &domain.Task{
			UserID:      "u1",
			Title:       s.title,
			Description: s.description,
			Status:      s.status,
			Priority:    s.priority,
			Category:    s.category,
			CreatedAt:   int64(1000 * (i + 1)),
			UpdatedAt:   int64(1000 * (i + 1)),
		}
		require.NoError(t, repo.Create(ctx, task))
	}

	tests := []struct {
		name   string
		filter domain.TaskFilter
		want   []string
	}{
		{"no filter, newest first", domain.TaskFilter{}, []string{"100% done_soon", "Call mom", "Write report", "Buy milk"}},
		{"status", domain.TaskFilter{Status: "completed"}, []string{"Call mom", "Write report"}},
		{"status all", domain.TaskFilter{Status: "all"}, []string{"100% done_soon", "Call mom", "Write report", "Buy milk"}},
		{"priority", domain.TaskFilter{Priority: "high"}, []string{"100% done_soon", "Write report"}},
		{"category", domain.TaskFilter{Category: "work"}, []string{"100% done_soon", "Write report"}},
		{"search title or description, case-insensitive", domain.TaskFilter{Search: "milk"}, []string{"Write report", "Buy milk"}},
		{"search percent is literal", domain.TaskFilter{Search: "100%"}, []string{"100% done_soon"}},
		{"search underscore is literal", domain.TaskFilter{Search: "e_s"}, []string{"100% done_soon"}},
		{"search lone wildcard is literal", domain.TaskFilter{Search: "%"}, []string{"100% done_soon"}},
		{"combined", domain.TaskFilter{Status: "completed", Priority: "high", Category: "work"}, []string{"Write report"}},
		{"title ascending", domain.TaskFilter{Status: "completed", SortBy: "title", SortOrder: "asc"}, []string{"Call mom", "Write report"}},
		{"priority sorts lexically", domain.TaskFilter{SortBy: "priority", SortOrder: "asc"}, []string{"Write report", "100% done_soon", "Buy milk", "Call mom"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := repo.List(ctx, "u1", normalized(tt.filter))
			require.NoError(t, err)

			titles := make([]string, 0, len(page.Tasks))
			for _, task := range page.Tasks {
				titles = append(titles, task.Title)
			}
			assert.Equal(t, tt.want, titles)
			assert.Equal(t, len(tt.want), page.Total)
		})
	}
}

func TestTaskRepository_ListPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "u1", "alice@example.com")
	// Equal timestamps force the id tiebreaker.
	for i := 0; i < 23; i++ {
		createTestTask(t, repo, "u1", fmt.Sprintf("task %02d", i), 1000)
	}

	const limit = 5
	first, err := repo.List(ctx, "u1", normalized(domain.TaskFilter{Limit: limit}))
	require.NoError(t, err)
	assert.Equal(t, 23, first.Total)

	totalPages := domain.TotalPages(first.Total, limit)
	assert.Equal(t, 5, totalPages)

	seen := map[int64]bool{}
	for p := 1; p <= totalPages; p++ {
		page, err := repo.List(ctx, "u1", normalized(domain.TaskFilter{Page: p, Limit: limit}))
		require.NoError(t, err)
		for _, task := range page.Tasks {
			assert.False(t, seen[task.ID], "task %d returned twice", task.ID)
			seen[task.ID] = true
		}
	}
	assert.Len(t, seen, 23)

	beyond, err := repo.List(ctx, "u1", normalized(domain.TaskFilter{Page: 99, Limit: limit}))
	require.NoError(t, err)
	assert.Empty(t, beyond.Tasks)
	assert.Equal(t, 23, beyond.Total)
}
