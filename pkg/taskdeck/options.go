package taskdeck

import (
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		baseURL: "http://localhost:3001",
		timeout: 30 * time.Second,
	}
}

// WithBaseURL sets the server root URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the underlying HTTP client. It is copied, so the
// caller's client is never given a cookie jar behind its back.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout. Ignored with WithHTTPClient.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// RegisterOption sets optional registration fields.
type RegisterOption func(map[string]any)

// WithName sets the first and last name of a new account.
func WithName(first, last string) RegisterOption {
	return func(body map[string]any) {
		body["firstName"] = first
		body["lastName"] = last
	}
}

// ProfileOption changes one profile field.
type ProfileOption func(map[string]any)

// SetFirstName replaces the first name.
func SetFirstName(name string) ProfileOption {
	return func(body map[string]any) { body["firstName"] = name }
}

// ClearFirstName removes the first name.
func ClearFirstName() ProfileOption {
	return func(body map[string]any) { body["firstName"] = nil }
}

// SetLastName replaces the last name.
func SetLastName(name string) ProfileOption {
	return func(body map[string]any) { body["lastName"] = name }
}

// ClearLastName removes the last name.
func ClearLastName() ProfileOption {
	return func(body map[string]any) { body["lastName"] = nil }
}

// SetEmail replaces the email address.
func SetEmail(email string) ProfileOption {
	return func(body map[string]any) { body["email"] = email }
}

// CreateTaskOption configures a CreateTask call.
type CreateTaskOption func(map[string]any)

// WithDescription sets the task description.
func WithDescription(desc string) CreateTaskOption {
	return func(body map[string]any) { body["description"] = desc }
}

// WithStatus sets the initial status.
func WithStatus(status TaskStatus) CreateTaskOption {
	return func(body map[string]any) { body["status"] = status }
}

// WithPriority sets the task priority.
func WithPriority(priority TaskPriority) CreateTaskOption {
	return func(body map[string]any) { body["priority"] = priority }
}

// WithDueDate sets the due date.
func WithDueDate(due time.Time) CreateTaskOption {
	return func(body map[string]any) { body["dueDate"] = due.UnixMilli() }
}

// WithCategory sets the task category.
func WithCategory(category string) CreateTaskOption {
	return func(body map[string]any) { body["category"] = category }
}

// UpdateTaskOption changes one task field. Fields without an option are
// left as they are.
type UpdateTaskOption func(map[string]any)

// SetTitle replaces the title.
func SetTitle(title string) UpdateTaskOption {
	return func(body map[string]any) { body["title"] = title }
}

// SetDescription replaces the description.
func SetDescription(desc string) UpdateTaskOption {
	return func(body map[string]any) { body["description"] = desc }
}

// ClearDescription removes the description.
func ClearDescription() UpdateTaskOption {
	return func(body map[string]any) { body["description"] = nil }
}

// SetStatus moves the task to status.
func SetStatus(status TaskStatus) UpdateTaskOption {
	return func(body map[string]any) { body["status"] = status }
}

// SetPriority replaces the priority.
func SetPriority(priority TaskPriority) UpdateTaskOption {
	return func(body map[string]any) { body["priority"] = priority }
}

// SetDueDate replaces the due date.
func SetDueDate(due time.Time) UpdateTaskOption {
	return func(body map[string]any) { body["dueDate"] = due.UnixMilli() }
}

// ClearDueDate removes the due date.
func ClearDueDate() UpdateTaskOption {
	return func(body map[string]any) { body["dueDate"] = nil }
}

// SetCategory replaces the category.
func SetCategory(category string) UpdateTaskOption {
	return func(body map[string]any) { body["category"] = category }
}

// ClearCategory removes the category.
func ClearCategory() UpdateTaskOption {
	return func(body map[string]any) { body["category"] = nil }
}

// ListTasksOption configures a ListTasks call.
type ListTasksOption func(url.Values)

// FilterStatus keeps only tasks with status.
func FilterStatus(status TaskStatus) ListTasksOption {
	return func(q url.Values) { q.Set("status", string(status)) }
}

// FilterPriority keeps only tasks with priority.
func FilterPriority(priority TaskPriority) ListTasksOption {
	return func(q url.Values) { q.Set("priority", string(priority)) }
}

// FilterCategory keeps only tasks in category.
func FilterCategory(category string) ListTasksOption {
	return func(q url.Values) { q.Set("category", category) }
}

// Search keeps tasks whose title or description contains term.
func Search(term string) ListTasksOption {
	return func(q url.Values) { q.Set("search", term) }
}

// SortBy orders the list.
func SortBy(field SortField, order SortOrder) ListTasksOption {
	return func(q url.Values) {
		q.Set("sortBy", string(field))
		q.Set("sortOrder", string(order))
	}
}

// Page sets the page number (1-indexed).
func Page(page int) ListTasksOption {
	return func(q url.Values) { q.Set("page", strconv.Itoa(page)) }
}

// Limit sets the number of tasks per page.
func Limit(limit int) ListTasksOption {
	return func(q url.Values) { q.Set("limit", strconv.Itoa(limit)) }
}
