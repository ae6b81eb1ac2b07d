package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

type taskList struct {
	Tasks *[]Task `json:"tasks"`
}

// stripFences removes a surrounding markdown code fence such as ```json.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	// Drop the opening fence line, then everything from the closing fence.
	if i := strings.IndexByte(raw, '\n'); i >= 0 {
		raw = raw[i+1:]
	} else {
		raw = strings.TrimPrefix(raw, "```")
	}
	if i := strings.LastIndex(raw, "```"); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSpace(raw)
}

// decodeTasks validates a model reply against the task list schema.
func decodeTasks(raw string) ([]Task, error) {
	raw = stripFences(raw)
	if raw == "" {
		return nil, ErrEmptyResponse
	}

	var list taskList
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if list.Tasks == nil {
		return nil, fmt.Errorf("%w: missing tasks", ErrInvalidResponse)
	}

	tasks := *list.Tasks
	for i := range tasks {
		if strings.TrimSpace(tasks[i].TaskName) == "" {
			return nil, fmt.Errorf("%w: task %d has no task_name", ErrInvalidResponse, i)
		}
		if tasks[i].Priority == "" {
			tasks[i].Priority = "Medium"
		}
	}
	return tasks, nil
}
