package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"github.com/aussiebroadwan/taskme/internal/taskme/store"
	"github.com/aussiebroadwan/taskme/pkg/llm"
	"github.com/aussiebroadwan/taskme/pkg/slogx"
	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"
)

// ErrParseFailed hides the provider failure from callers. The cause is logged.
var ErrParseFailed = errors.New("llm parsing failed")

type ParseService struct {
	Store store.Store
	LLM   *llm.Registry
	Now   Clock
}

// Parse extracts tasks from free text using the caller's visible custom
// columns as the extra field schema. Nothing is stored.
func (s *ParseService) Parse(ctx context.Context, userID int64, req taskmesdk.ParseRequest) ([]llm.Task, error) {
	log := slogx.FromContext(ctx)

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, invalid("text", "Text cannot be empty")
	}

	extractor, err := s.LLM.Get(req.Provider)
	if err != nil {
		if errors.Is(err, llm.ErrUnknownProvider) {
			return nil, err
		}
		log.Error("llm provider unavailable", slog.String("provider", req.Provider), slog.Any("error", err))
		return nil, ErrParseFailed
	}

	cols, err := s.Store.Columns().ListVisibleCustomColumns(ctx, userID)
	if err != nil {
		return nil, err
	}
	fields := make([]llm.Field, len(cols))
	for i, c := range cols {
		fields[i] = llm.Field{
			Key:         c.FieldKey,
			DisplayName: c.DisplayName,
			Type:        string(c.FieldType),
			Options:     c.Options,
		}
	}

	tasks, err := extractor.Extract(ctx, llm.Request{
		Text:   text,
		Fields: fields,
		Tone:   llm.ParseTone(req.Tone),
		Today:  s.Now.now(),
	})
	if err != nil {
		log.Error("llm extraction failed",
			slog.String("provider", string(extractor.Provider())),
			slog.Any("error", err),
		)
		return nil, ErrParseFailed
	}

	for i := range tasks {
		tasks[i].TaskName = strings.TrimSpace(tasks[i].TaskName)
		if !domain.TaskPriority(tasks[i].Priority).Valid() {
			tasks[i].Priority = string(domain.PriorityMedium)
		}
	}

	log.Info("tasks parsed",
		slog.Int64("user_id", userID),
		slog.String("provider", string(extractor.Provider())),
		slog.Int("count", len(tasks)),
	)
	return tasks, nil
}
