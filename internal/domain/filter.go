package domain

// FilterAll is the filter value meaning "no restriction".
const FilterAll = "all"

// SortField is a task attribute the list can be ordered by.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByTitle     SortField = "title"
	SortByDueDate   SortField = "dueDate"
	SortByPriority  SortField = "priority"
	SortByStatus    SortField = "status"
)

// IsValid checks if the field is one the list can be sorted by.
func (f SortField) IsValid() bool {
	switch f {
	case SortByCreatedAt, SortByTitle, SortByDueDate, SortByPriority, SortByStatus:
		return true
	}
	return false
}

// SortOrder is the direction of the sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Pagination defaults and bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 100
)

// TaskFilter selects, orders and paginates a user's tasks.
// Empty Status, Priority and Category mean the same as FilterAll.
type TaskFilter struct {
	Status    string
	Priority  string
	Category  string
	Search    string
	SortBy    SortField
	SortOrder SortOrder
	Page      int
	Limit     int
}

// Normalize replaces missing or out-of-range values with defaults so that the
// query never sees a non-positive page or limit.
func (f *TaskFilter) Normalize() {
	if f.Status == "" {
		f.Status = FilterAll
	}
	if f.Priority == "" {
		f.Priority = FilterAll
	}
	if f.Category == "" {
		f.Category = FilterAll
	}
	if !f.SortBy.IsValid() {
		f.SortBy = SortByCreatedAt
	}
	if f.SortOrder != SortAsc {
		f.SortOrder = SortDesc
	}
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
}

// Offset returns the number of rows to skip for the current page.
func (f TaskFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// TaskPage is one page of a filtered task list.
type TaskPage struct {
	Tasks []*Task
	// Total counts every task matching the filter, ignoring pagination.
	Total int
}

// TotalPages returns ceil(total/limit).
func TotalPages(total, limit int) int {
	if limit < 1 {
		return 0
	}
	pages := total / limit
	if total%limit > 0 {
		pages++
	}
	return pages
}
