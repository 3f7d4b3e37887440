package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
)

const taskColumns = `id, user_id, title, description, status, priority, due_date, category, created_at, updated_at, completed_at`

// sortColumns maps API sort fields onto columns. Status and priority sort by
// their stored string.
var sortColumns = map[domain.SortField]string{
	domain.SortByCreatedAt: "created_at",
	domain.SortByTitle:     "title",
	domain.SortByDueDate:   "due_date",
	domain.SortByPriority:  "priority",
	domain.SortByStatus:    "status",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// TaskRepository handles task persistence. Every read and write is scoped to
// the owning user.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a task and sets its store-assigned id.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (user_id, title, description, status, priority, due_date, category, created_at, updated_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		task.UserID,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		task.DueDate,
		task.Category,
		task.CreatedAt,
		task.UpdatedAt,
		task.CompletedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	task.ID = id
	return nil
}

// GetForUser retrieves a task by id if userID owns it.
func (r *TaskRepository) GetForUser(ctx context.Context, userID string, id int64) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return task, err
}

// List returns one page of the user's tasks matching filter, plus the number
// of matching tasks across all pages. The filter must be normalized.
func (r *TaskRepository) List(ctx context.Context, userID string, filter domain.TaskFilter) (*domain.TaskPage, error) {
	where, args := taskPredicates(userID, filter)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE `+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = sortColumns[domain.SortByCreatedAt]
	}
	direction := "DESC"
	if filter.SortOrder == domain.SortAsc {
		direction = "ASC"
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + where +
		` ORDER BY ` + column + ` ` + direction + `, id ` + direction +
		` LIMIT ? OFFSET ?`
	fetchArgs := append(args, filter.Limit, filter.Offset())

	rows, err := r.db.QueryContext(ctx, query, fetchArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.TaskPage{Tasks: tasks, Total: total}, nil
}

// UpdateForUser writes every mutable field of task if userID owns it.
func (r *TaskRepository) UpdateForUser(ctx context.Context, userID string, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, due_date = ?, category = ?, updated_at = ?, completed_at = ?
		WHERE id = ? AND user_id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		task.DueDate,
		task.Category,
		task.UpdatedAt,
		task.CompletedAt,
		task.ID,
		userID,
	)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// DeleteForUser removes a task if userID owns it.
func (r *TaskRepository) DeleteForUser(ctx context.Context, userID string, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// taskPredicates builds the WHERE conjunction shared by the count and page
// queries.
func taskPredicates(userID string, filter domain.TaskFilter) (string, []any) {
	clauses := []string{"user_id = ?"}
	args := []any{userID}

	if filter.Status != "" && filter.Status != domain.FilterAll {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Priority != "" && filter.Priority != domain.FilterAll {
		clauses = append(clauses, "priority = ?")
		args = append(args, filter.Priority)
	}
	if filter.Category != "" && filter.Category != domain.FilterAll {
		clauses = append(clauses, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(filter.Search) + "%"
		clauses = append(clauses, `(title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	return strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var description, category sql.NullString
	var dueDate, completedAt sql.NullInt64
	var status, priority string

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&description,
		&status,
		&priority,
		&dueDate,
		&category,
		&task.CreatedAt,
		&task.UpdatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	task.Description = nullString(description)
	task.Category = nullString(category)
	task.DueDate = nullInt64(dueDate)
	task.CompletedAt = nullInt64(completedAt)
	return &task, nil
}
