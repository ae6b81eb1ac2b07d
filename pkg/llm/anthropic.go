package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	DefaultAnthropicModel = "claude-sonnet-4-20250514"

	anthropicMaxTokens = 4096
)

// Anthropic extracts tasks with the messages API. The model is asked for
// bare JSON but may still wrap it in a code fence.
type Anthropic struct {
	client anthropic.Client
	model  string
	now    func() time.Time
}

// NewAnthropic builds the Anthropic variant. baseURL may be empty.
func NewAnthropic(apiKey, model, baseURL string, opts ...option.RequestOption) *Anthropic {
	all := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		all = append(all, option.WithBaseURL(baseURL))
	}
	all = append(all, opts...)

	if model == "" {
		model = DefaultAnthropicModel
	}
	return &Anthropic{client: anthropic.NewClient(all...), model: model, now: time.Now}
}

func (a *Anthropic) Provider() Provider { return ProviderAnthropic }

func (a *Anthropic) Extract(ctx context.Context, req Request) ([]Task, error) {
	today := req.Today
	if today.IsZero() {
		today = a.now()
	}

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: anthropicMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: BuildSystemPrompt(today, req.Fields, req.Tone)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Text)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, ErrEmptyResponse
	}

	return decodeTasks(text.String())
}
