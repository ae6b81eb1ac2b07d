package http

import (
	"encoding/json"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"github.com/aussiebroadwan/taskme/pkg/llm"
	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"
)

func toTask(t domain.Task) taskmesdk.Task {
	out := taskmesdk.Task{
		ID:          t.ID,
		TaskName:    t.TaskName,
		Description: t.Description,
		Owner:       t.Owner,
		Email:       t.Email,
		StartDate:   t.StartDate,
		DueDate:     t.DueDate,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.CustomFields != nil {
		s := t.CustomFields.String()
		out.CustomFields = &s
	}
	return out
}

func toTasks(ts []domain.Task) []taskmesdk.Task {
	out := make([]taskmesdk.Task, len(ts))
	for i, t := range ts {
		out[i] = toTask(t)
	}
	return out
}

func toColumn(c domain.ColumnConfig) taskmesdk.Column {
	out := taskmesdk.Column{
		ID:          c.ID,
		FieldKey:    c.FieldKey,
		DisplayName: c.DisplayName,
		FieldType:   string(c.FieldType),
		Position:    c.Position,
		IsVisible:   c.IsVisible,
		IsCore:      c.IsCore,
		IsRequired:  c.IsRequired,
	}
	if c.Options != nil {
		if b, err := json.Marshal(c.Options); err == nil {
			s := string(b)
			out.Options = &s
		}
	}
	return out
}

func toColumns(cs []domain.ColumnConfig) []taskmesdk.Column {
	out := make([]taskmesdk.Column, len(cs))
	for i, c := range cs {
		out[i] = toColumn(c)
	}
	return out
}

func toParsedTasks(ts []llm.Task) []taskmesdk.ParsedTask {
	out := make([]taskmesdk.ParsedTask, len(ts))
	for i, t := range ts {
		out[i] = taskmesdk.ParsedTask{
			TaskName:     t.TaskName,
			Description:  t.Description,
			Owner:        t.Owner,
			Email:        t.Email,
			StartDate:    t.StartDate,
			DueDate:      t.DueDate,
			Priority:     t.Priority,
			CustomFields: t.CustomFields,
		}
	}
	return out
}
