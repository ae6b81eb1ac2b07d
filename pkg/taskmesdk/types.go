package taskmesdk

import (
	"encoding/json"
	"time"
)

// ============================================================================
// Auth
// ============================================================================

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResendVerificationRequest struct {
	Email string `json:"email"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        UserSummary `json:"user"`
}

type UserProfile struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// ============================================================================
// Tasks
// ============================================================================

// Task is a stored task. CustomFields is the JSON object encoded as a
// string, or null when the task has none.
type Task struct {
	ID           int64     `json:"id"`
	TaskName     string    `json:"task_name"`
	Description  *string   `json:"description"`
	Owner        *string   `json:"owner"`
	Email        *string   `json:"email"`
	StartDate    *string   `json:"start_date"`
	DueDate      *string   `json:"due_date"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	CustomFields *string   `json:"custom_fields"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TaskCreate creates one task. CustomFields accepts a JSON object or a
// string holding one.
type TaskCreate struct {
	TaskName     string          `json:"task_name"`
	Description  *string         `json:"description,omitempty"`
	Owner        *string         `json:"owner,omitempty"`
	Email        *string         `json:"email,omitempty"`
	StartDate    *string         `json:"start_date,omitempty"`
	DueDate      *string         `json:"due_date,omitempty"`
	Status       string          `json:"status,omitempty"`
	Priority     string          `json:"priority,omitempty"`
	CustomFields json.RawMessage `json:"custom_fields,omitempty"`
}

// TaskUpdate is a partial update. Absent fields are left alone; custom
// fields merge into the existing ones.
type TaskUpdate struct {
	TaskName     *string          `json:"task_name,omitempty"`
	Description  Nullable[string] `json:"description,omitzero"`
	Owner        Nullable[string] `json:"owner,omitzero"`
	Email        Nullable[string] `json:"email,omitzero"`
	StartDate    Nullable[string] `json:"start_date,omitzero"`
	DueDate      Nullable[string] `json:"due_date,omitzero"`
	Status       *string          `json:"status,omitempty"`
	Priority     *string          `json:"priority,omitempty"`
	CustomFields json.RawMessage  `json:"custom_fields,omitempty"`
}

type TaskListParams struct {
	Status   string
	Priority string
	Owner    string
	Search   string
	SortBy   string
	Order    string
	Offset   int
	Limit    int
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type DeleteResponse struct {
	OK      bool  `json:"ok"`
	Deleted int64 `json:"deleted"`
}

// ============================================================================
// Columns
// ============================================================================

// Column is one field of the task grid. Options is a JSON array encoded as
// a string, select columns only.
type Column struct {
	ID          int64   `json:"id"`
	FieldKey    string  `json:"field_key"`
	DisplayName string  `json:"display_name"`
	FieldType   string  `json:"field_type"`
	Position    int     `json:"position"`
	IsVisible   bool    `json:"is_visible"`
	IsCore      bool    `json:"is_core"`
	IsRequired  bool    `json:"is_required"`
	Options     *string `json:"options"`
}

// ColumnCreate adds a custom column. Options accepts a JSON array or a
// string holding one.
type ColumnCreate struct {
	DisplayName string          `json:"display_name"`
	FieldType   string          `json:"field_type"`
	Options     json.RawMessage `json:"options,omitempty"`
}

type ColumnUpdate struct {
	DisplayName *string         `json:"display_name,omitempty"`
	Position    *int            `json:"position,omitempty"`
	IsVisible   *bool           `json:"is_visible,omitempty"`
	Options     json.RawMessage `json:"options,omitempty"`
}

type ColumnPosition struct {
	ID       int64 `json:"id"`
	Position int   `json:"position"`
}

// ============================================================================
// Parse
// ============================================================================

type ParseRequest struct {
	Text     string `json:"text"`
	Provider string `json:"provider,omitempty"`
	Tone     string `json:"tone,omitempty"`
}

type ParsedTask struct {
	TaskName     string         `json:"task_name"`
	Description  *string        `json:"description"`
	Owner        *string        `json:"owner"`
	Email        *string        `json:"email"`
	StartDate    *string        `json:"start_date"`
	DueDate      *string        `json:"due_date"`
	Priority     string         `json:"priority"`
	CustomFields map[string]any `json:"custom_fields"`
}

type ParseResponse struct {
	Tasks []ParsedTask `json:"tasks"`
}

// ============================================================================
// Share
// ============================================================================

type ShareRequest struct {
	TaskIDs []int64 `json:"task_ids"`
}

type ShareResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SharedTasksResponse struct {
	Tasks     []Task    `json:"tasks"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ============================================================================
// Email
// ============================================================================

type NotifyRequest struct {
	TaskIDs []int64 `json:"task_ids"`
	Message string  `json:"message,omitempty"`
}

type NotifyError struct {
	TaskID int64  `json:"task_id"`
	Error  string `json:"error"`
}

type NotifyResponse struct {
	Sent   int           `json:"sent"`
	Errors []NotifyError `json:"errors"`
}

// ============================================================================
// Health
// ============================================================================

type HealthChecks struct {
	Database string `json:"database"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
