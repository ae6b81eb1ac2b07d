package domain

import (
	"encoding/json"
	"time"
)

type TaskStatus string

const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
	StatusBlocked    TaskStatus = "Blocked"
)

// TaskStatuses in display order.
var TaskStatuses = []TaskStatus{StatusToDo, StatusInProgress, StatusDone, StatusBlocked}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone, StatusBlocked:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow      TaskPriority = "Low"
	PriorityMedium   TaskPriority = "Medium"
	PriorityHigh     TaskPriority = "High"
	PriorityCritical TaskPriority = "Critical"
)

// TaskPriorities in display order.
var TaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// DateLayout is the wire and storage format of start and due dates.
const DateLayout = "2006-01-02"

// CustomFields maps a custom field key (cf_*) to its value.
type CustomFields map[string]any

// Merge returns the key-wise union of c and update, update winning on
// collisions. Neither input is modified.
func (c CustomFields) Merge(update CustomFields) CustomFields {
	out := make(CustomFields, len(c)+len(update))
	for k, v := range c {
		out[k] = v
	}
	for k, v := range update {
		out[k] = v
	}
	return out
}

// String returns the JSON encoding, or "" for nil.
func (c CustomFields) String() string {
	if c == nil {
		return ""
	}
	b, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return string(b)
}

type Task struct {
	ID           int64
	UserID       int64
	TaskName     string
	Description  *string
	Owner        *string
	Email        *string
	StartDate    *string // YYYY-MM-DD
	DueDate      *string // YYYY-MM-DD
	Status       TaskStatus
	Priority     TaskPriority
	CustomFields CustomFields
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Sortable task fields. Anything else is rejected before it reaches SQL.
const (
	SortTaskName  = "task_name"
	SortCreatedAt = "created_at"
	SortUpdatedAt = "updated_at"
	SortDueDate   = "due_date"
	SortStartDate = "start_date"
	SortPriority  = "priority"
	SortStatus    = "status"
	SortOwner     = "owner"
)

var sortableTaskFields = map[string]struct{}{
	SortTaskName:  {},
	SortCreatedAt: {},
	SortUpdatedAt: {},
	SortDueDate:   {},
	SortStartDate: {},
	SortPriority:  {},
	SortStatus:    {},
	SortOwner:     {},
}

// IsSortableTaskField reports whether field is on the sort allow-list.
func IsSortableTaskField(field string) bool {
	_, ok := sortableTaskFields[field]
	return ok
}

// Pagination bounds for task listing.
const (
	DefaultTaskLimit = 100
	MaxTaskLimit     = 500
)

// TaskFilter narrows a task listing. Zero values mean "no constraint";
// Limit 0 means unlimited.
type TaskFilter struct {
	IDs      []int64
	Status   TaskStatus
	Priority TaskPriority
	Owner    string
	Search   string

	SortBy string
	Desc   bool

	Offset int
	Limit  int
}

// NormalizeSort applies the allow-list. An unknown field falls back to
// created_at descending no matter what order was asked for.
func (f *TaskFilter) NormalizeSort(sortBy, order string) {
	if !IsSortableTaskField(sortBy) {
		f.SortBy = SortCreatedAt
		f.Desc = true
		return
	}
	f.SortBy = sortBy
	f.Desc = order != "asc"
}
