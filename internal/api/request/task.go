package request

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// CreateTaskRequest represents a request to create a task.
type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Status      *string    `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *Timestamp `json:"dueDate"`
	Category    *string    `json:"category" validate:"omitempty,max=50"`
}

// UpdateTaskRequest represents a partial task update. Keys missing from the
// body leave the stored value unchanged; null clears nullable fields.
type UpdateTaskRequest struct {
	Title       *string                    `json:"title" validate:"omitempty,max=200"`
	Description domain.Optional[string]    `json:"description" validate:"omitempty,max=1000"`
	Status      *string                    `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    *string                    `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     domain.Optional[Timestamp] `json:"dueDate"`
	Category    domain.Optional[string]    `json:"category" validate:"omitempty,max=50"`
}

// FieldError is a decoding failure attributable to one field.
type FieldError struct {
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// dateOnly is the layout of a bare calendar date, read as UTC midnight.
const dateOnly = "2006-01-02"

// Timestamp is a point in time in epoch milliseconds. It decodes from a
// number of milliseconds, an RFC 3339 string or a YYYY-MM-DD date.
type Timestamp int64

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return &FieldError{Message: "Invalid due date"}
		}
		for _, layout := range []string{time.RFC3339Nano, dateOnly} {
			if t, err := time.Parse(layout, s); err == nil {
				*ts = Timestamp(t.UnixMilli())
				return nil
			}
		}
		return &FieldError{Message: "Invalid due date"}
	}

	var ms float64
	if err := json.Unmarshal(data, &ms); err != nil {
		return &FieldError{Message: "Invalid due date"}
	}
	*ts = Timestamp(int64(ms))
	return nil
}

// Millis returns the timestamp as a nullable millisecond value.
func (ts *Timestamp) Millis() *int64 {
	if ts == nil {
		return nil
	}
	ms := int64(*ts)
	return &ms
}

// OptionalMillis converts a decoded due date patch into milliseconds.
func OptionalMillis(o domain.Optional[Timestamp]) domain.Optional[int64] {
	if !o.Set {
		return domain.Optional[int64]{}
	}
	return domain.Optional[int64]{Set: true, Value: o.Value.Millis()}
}

// ParseTaskID reads the {id} path parameter.
func ParseTaskID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewInvalidIDError()
	}
	return id, nil
}

// ParseTaskFilter extracts list filters from query parameters. Missing or
// malformed paging values are left for TaskFilter.Normalize to default.
func ParseTaskFilter(r *http.Request) domain.TaskFilter {
	q := r.URL.Query()
	filter := domain.TaskFilter{
		Status:    q.Get("status"),
		Priority:  q.Get("priority"),
		Category:  q.Get("category"),
		Search:    q.Get("search"),
		SortBy:    domain.SortField(q.Get("sortBy")),
		SortOrder: domain.SortOrder(q.Get("sortOrder")),
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = v
	}
	return filter
}
