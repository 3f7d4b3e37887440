package taskdeck

import "time"

// TaskStatus represents the current state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// TaskPriority represents how urgent a task is.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// SortField is a task attribute lists can be ordered by.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByTitle     SortField = "title"
	SortByDueDate   SortField = "dueDate"
	SortByPriority  SortField = "priority"
	SortByStatus    SortField = "status"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// User is the account signed in on the client.
type User struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	IsActive      bool    `json:"isActive"`
	EmailVerified bool    `json:"emailVerified"`
	CreatedAt     int64   `json:"createdAt"`
	UpdatedAt     int64   `json:"updatedAt"`
}

// Task is a unit of work owned by the signed-in user. Timestamps are epoch
// milliseconds.
type Task struct {
	ID          int64        `json:"id"`
	UserID      string       `json:"userId"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *int64       `json:"dueDate"`
	Category    *string      `json:"category"`
	CreatedAt   int64        `json:"createdAt"`
	UpdatedAt   int64        `json:"updatedAt"`
	CompletedAt *int64       `json:"completedAt"`
}

// Due returns the due date as a time, or nil when the task has none.
func (t *Task) Due() *time.Time {
	if t.DueDate == nil {
		return nil
	}
	due := time.UnixMilli(*t.DueDate).UTC()
	return &due
}

// Pagination describes the page of a list response.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Filters echoes the filters the server applied after normalization.
type Filters struct {
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Category string `json:"category"`
	Search   string `json:"search"`
}

// TaskList is one page of tasks.
type TaskList struct {
	Tasks      []*Task    `json:"tasks"`
	Total      int        `json:"total"`
	Pagination Pagination `json:"pagination"`
	Filters    Filters    `json:"filters"`
}

type userResponse struct {
	User *User `json:"user"`
}

type taskResponse struct {
	Task *Task `json:"task"`
}
