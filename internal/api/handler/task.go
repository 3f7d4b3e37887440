package handler

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/api/middleware"
	"github.com/taskdeck/taskdeck/internal/api/request"
	"github.com/taskdeck/taskdeck/internal/api/response"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/metrics"
	"github.com/taskdeck/taskdeck/internal/service"
)

// TaskResponse wraps a task with a message.
type TaskResponse struct {
	Task    *domain.Task `json:"task"`
	Message string       `json:"message"`
}

// FiltersEcho reports the filters a list was computed with.
type FiltersEcho struct {
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Category string `json:"category"`
	Search   string `json:"search"`
}

// TaskListResponse is the body of GET /tasks.
type TaskListResponse struct {
	Tasks      []*domain.Task          `json:"tasks"`
	Total      int                     `json:"total"`
	Pagination response.PaginationMeta `json:"pagination"`
	Filters    FiltersEcho             `json:"filters"`
}

// TaskHandler handles task CRUD operations for the signed-in user.
type TaskHandler struct {
	tasks   *service.TaskService
	metrics *metrics.Metrics
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *service.TaskService, m *metrics.Metrics) *TaskHandler {
	return &TaskHandler{tasks: tasks, metrics: m}
}

// ListTasks handles GET /tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())

	page, filter, err := h.tasks.List(r.Context(), user.ID, request.ParseTaskFilter(r))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, TaskListResponse{
		Tasks:      page.Tasks,
		Total:      page.Total,
		Pagination: response.NewPaginationMeta(filter.Page, filter.Limit, page.Total),
		Filters: FiltersEcho{
			Status:   filter.Status,
			Priority: filter.Priority,
			Category: filter.Category,
			Search:   filter.Search,
		},
	})
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())

	var req request.CreateTaskRequest
	if err := request.DecodeAndValidate(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	task, err := h.tasks.Create(r.Context(), user.ID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      statusPtr(req.Status),
		Priority:    priorityPtr(req.Priority),
		DueDate:     req.DueDate.Millis(),
		Category:    req.Category,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	h.metrics.TaskCreated()
	response.Created(w, TaskResponse{Task: task, Message: "Task created successfully"})
}

// UpdateTask handles PUT /tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())

	id, err := request.ParseTaskID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var req request.UpdateTaskRequest
	if err := request.DecodeAndValidate(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	task, err := h.tasks.Update(r.Context(), user.ID, id, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      statusPtr(req.Status),
		Priority:    priorityPtr(req.Priority),
		DueDate:     request.OptionalMillis(req.DueDate),
		Category:    req.Category,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, TaskResponse{Task: task, Message: "Task updated successfully"})
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())

	id, err := request.ParseTaskID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.tasks.Delete(r.Context(), user.ID, id); err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, "Task deleted successfully")
}

func statusPtr(s *string) *domain.TaskStatus {
	if s == nil {
		return nil
	}
	status := domain.TaskStatus(*s)
	return &status
}

func priorityPtr(p *string) *domain.TaskPriority {
	if p == nil {
		return nil
	}
	priority := domain.TaskPriority(*p)
	return &priority
}
