package service

import (
	"context"
	"errors"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/store/sqlite"
)

// TaskService handles task business logic. Every operation is scoped to the
// calling user.
type TaskService struct {
	taskRepo *sqlite.TaskRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo *sqlite.TaskRepository, now func() time.Time) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{
		taskRepo: taskRepo,
		now:      now,
	}
}

// List returns one page of the user's tasks. Out-of-range paging values are
// clamped.
func (s *TaskService) List(ctx context.Context, userID string, filter domain.TaskFilter) (*domain.TaskPage, domain.TaskFilter, error) {
	filter.Normalize()
	page, err := s.taskRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, filter, domain.NewInternalError(domain.ErrCodeFetch, "Failed to fetch tasks", err)
	}
	return page, filter, nil
}

// CreateTaskInput contains the input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *int64
	Category    *string
}

// Create creates a new task owned by userID.
func (s *TaskService) Create(ctx context.Context, userID string, input CreateTaskInput) (*domain.Task, error) {
	status := domain.StatusPending
	if input.Status != nil {
		status = *input.Status
	}
	priority := domain.PriorityMedium
	if input.Priority != nil {
		priority = *input.Priority
	}
	if err := validateEnums(status, priority); err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, domain.NewValidationError([]string{"Title is required"})
	}

	now := s.now().UnixMilli()
	task := &domain.Task{
		UserID:      userID,
		Title:       input.Title,
		Description: blankToNil(input.Description),
		Priority:    priority,
		DueDate:     input.DueDate,
		Category:    blankToNil(input.Category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	task.SetStatus(status, now)

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, domain.NewInternalError(domain.ErrCodeCreate, "Failed to create task", err)
	}
	return task, nil
}

// UpdateTaskInput contains the fields of a partial update. Nil pointers and
// unset Optionals leave the stored value untouched.
type UpdateTaskInput struct {
	Title       *string
	Description domain.Optional[string]
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     domain.Optional[int64]
	Category    domain.Optional[string]
}

// Update applies a partial update to a task owned by userID. UpdatedAt is
// refreshed even when nothing else changes.
func (s *TaskService) Update(ctx context.Context, userID string, id int64, input UpdateTaskInput) (*domain.Task, error) {
	task, err := s.taskRepo.GetForUser(ctx, userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewTaskNotFoundError()
		}
		return nil, domain.NewInternalError(domain.ErrCodeUpdate, "Failed to update task", err)
	}

	now := s.now().UnixMilli()

	if input.Title != nil {
		if *input.Title == "" {
			return nil, domain.NewValidationError([]string{"Title is required"})
		}
		task.Title = *input.Title
	}
	if input.Description.Set {
		task.Description = blankToNil(input.Description.Value)
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, domain.NewValidationError([]string{"Invalid priority"})
		}
		task.Priority = *input.Priority
	}
	if input.DueDate.Set {
		task.DueDate = input.DueDate.Value
	}
	if input.Category.Set {
		task.Category = blankToNil(input.Category.Value)
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, domain.NewValidationError([]string{"Invalid status"})
		}
		task.SetStatus(*input.Status, now)
	}
	task.UpdatedAt = now

	if err := s.taskRepo.UpdateForUser(ctx, userID, task); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewTaskNotFoundError()
		}
		return nil, domain.NewInternalError(domain.ErrCodeUpdate, "Failed to update task", err)
	}
	return task, nil
}

// Delete removes a task owned by userID. Deleting twice reports not found
// the second time.
func (s *TaskService) Delete(ctx context.Context, userID string, id int64) error {
	if err := s.taskRepo.DeleteForUser(ctx, userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.NewTaskNotFoundError()
		}
		return domain.NewInternalError(domain.ErrCodeDelete, "Failed to delete task", err)
	}
	return nil
}

func validateEnums(status domain.TaskStatus, priority domain.TaskPriority) error {
	var details []string
	if !status.IsValid() {
		details = append(details, "Invalid status")
	}
	if !priority.IsValid() {
		details = append(details, "Invalid priority")
	}
	if len(details) > 0 {
		return domain.NewValidationError(details)
	}
	return nil
}

// blankToNil stores empty optional text as NULL.
func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
