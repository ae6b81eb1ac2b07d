package domain

type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
	FieldDate   FieldType = "date"
	FieldSelect FieldType = "select"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldNumber, FieldDate, FieldSelect:
		return true
	}
	return false
}

// ColumnConfig describes one task field in a user's grid.
type ColumnConfig struct {
	ID          int64
	UserID      int64
	FieldKey    string
	DisplayName string
	FieldType   FieldType
	Position    int
	IsVisible   bool
	IsCore      bool
	IsRequired  bool
	Options     []string // select only
}

// CustomFieldPrefix marks user-defined field keys.
const CustomFieldPrefix = "cf_"

// protectedColumns can never be hidden.
var protectedColumns = map[string]struct{}{
	"task_name": {},
	"status":    {},
	"priority":  {},
}

// IsProtectedColumn reports whether the field must stay visible.
func IsProtectedColumn(fieldKey string) bool {
	_, ok := protectedColumns[fieldKey]
	return ok
}

func statusOptions() []string {
	out := make([]string, len(TaskStatuses))
	for i, s := range TaskStatuses {
		out[i] = string(s)
	}
	return out
}

func priorityOptions() []string {
	out := make([]string, len(TaskPriorities))
	for i, p := range TaskPriorities {
		out[i] = string(p)
	}
	return out
}

// CoreColumns returns the columns every user starts with, in position order.
func CoreColumns(userID int64) []ColumnConfig {
	core := []ColumnConfig{
		{FieldKey: "task_name", DisplayName: "Task Name", FieldType: FieldText, IsRequired: true},
		{FieldKey: "description", DisplayName: "Description", FieldType: FieldText},
		{FieldKey: "owner", DisplayName: "Owner", FieldType: FieldText},
		{FieldKey: "email", DisplayName: "Email", FieldType: FieldText},
		{FieldKey: "start_date", DisplayName: "Start Date", FieldType: FieldDate},
		{FieldKey: "due_date", DisplayName: "Due Date", FieldType: FieldDate},
		{FieldKey: "status", DisplayName: "Status", FieldType: FieldSelect, IsRequired: true, Options: statusOptions()},
		{FieldKey: "priority", DisplayName: "Priority", FieldType: FieldSelect, IsRequired: true, Options: priorityOptions()},
	}
	for i := range core {
		core[i].UserID = userID
		core[i].Position = i
		core[i].IsVisible = true
		core[i].IsCore = true
	}
	return core
}
