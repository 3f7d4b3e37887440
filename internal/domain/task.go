package domain

// TaskStatus represents the current state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// ValidStatuses contains all valid task status values.
var ValidStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}

// IsValid checks if the status is a valid task status.
func (s TaskStatus) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// TaskPriority represents how urgent a task is.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// ValidPriorities contains all valid task priority values.
var ValidPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

// IsValid checks if the priority is a valid task priority.
func (p TaskPriority) IsValid() bool {
	for _, v := range ValidPriorities {
		if p == v {
			return true
		}
	}
	return false
}

// Field limits for tasks.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxCategoryLength    = 50
)

// Task represents a unit of work owned by a single user.
// All timestamps are milliseconds since the Unix epoch.
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

// SetStatus changes the status and keeps CompletedAt consistent with it:
// moving to completed stamps now unless a completion time already exists,
// any other status clears it.
func (t *Task) SetStatus(status TaskStatus, now int64) {
	t.Status = status
	if status == StatusCompleted {
		if t.CompletedAt == nil {
			t.CompletedAt = &now
		}
		return
	}
	t.CompletedAt = nil
}
