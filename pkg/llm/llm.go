// Package llm extracts structured tasks from free text through a hosted
// large language model. Each provider is an Extractor variant; callers pick
// one through a Registry and never talk to a provider SDK directly.
package llm

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnknownProvider is returned for a provider name outside the
	// supported set.
	ErrUnknownProvider = errors.New("llm: unknown provider")

	// ErrProviderUnavailable is returned for a supported provider that has
	// no credentials configured.
	ErrProviderUnavailable = errors.New("llm: provider not configured")

	// ErrInvalidResponse is returned when the model reply does not match the
	// task list schema.
	ErrInvalidResponse = errors.New("llm: invalid response")

	// ErrEmptyResponse is returned when the model produced no text at all.
	ErrEmptyResponse = errors.New("llm: empty response")
)

// Provider names a supported model vendor.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Providers is the closed set of supported variants.
var Providers = []Provider{ProviderOpenAI, ProviderAnthropic}

func (p Provider) Valid() bool {
	switch p {
	case ProviderOpenAI, ProviderAnthropic:
		return true
	}
	return false
}

// Field describes a user-defined field the model may fill in.
type Field struct {
	Key         string
	DisplayName string
	Type        string
	Options     []string // select only
}

// Request is one extraction call.
type Request struct {
	Text   string
	Fields []Field
	Tone   Tone
	Today  time.Time
}

// Task is a single extracted task as returned by the model. Values are not
// normalised beyond the schema check.
type Task struct {
	TaskName     string         `json:"task_name"`
	Description  *string        `json:"description"`
	Owner        *string        `json:"owner"`
	Email        *string        `json:"email"`
	StartDate    *string        `json:"start_date"`
	DueDate      *string        `json:"due_date"`
	Priority     string         `json:"priority"`
	CustomFields map[string]any `json:"custom_fields"`
}

// Extractor turns free text into tasks.
type Extractor interface {
	Provider() Provider
	Extract(ctx context.Context, req Request) ([]Task, error)
}
