package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const DefaultOpenAIModel = "gpt-4o"

// OpenAI extracts tasks with the chat completions API in JSON mode.
type OpenAI struct {
	client *openai.Client
	model  string
	now    func() time.Time
}

// NewOpenAI builds the OpenAI variant. baseURL may be empty.
func NewOpenAI(apiKey, model, baseURL string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model, now: time.Now}
}

func (o *OpenAI) Provider() Provider { return ProviderOpenAI }

func (o *OpenAI) Extract(ctx context.Context, req Request) ([]Task, error) {
	today := req.Today
	if today.IsZero() {
		today = o.now()
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: BuildSystemPrompt(today, req.Fields, req.Tone)},
			{Role: openai.ChatMessageRoleUser, Content: req.Text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	return decodeTasks(resp.Choices[0].Message.Content)
}
