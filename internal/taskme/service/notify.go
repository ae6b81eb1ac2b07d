package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"github.com/aussiebroadwan/taskme/internal/taskme/store"
	"github.com/aussiebroadwan/taskme/pkg/mailx"
	"github.com/aussiebroadwan/taskme/pkg/slogx"
)

var ErrNoTasksFound = errors.New("no tasks found")

// NotifyFailure is a task whose notification could not be sent. Message is
// safe to return to the caller.
type NotifyFailure struct {
	TaskID  int64
	Message string
}

type NotifyResult struct {
	Sent   int
	Errors []NotifyFailure
}

type NotifyService struct {
	Store  store.Store
	Mailer mailx.Mailer
}

// Notify emails the owner of each listed task the caller owns. Tasks
// without an email address are skipped.
func (s *NotifyService) Notify(ctx context.Context, userID int64, taskIDs []int64, note string) (NotifyResult, error) {
	log := slogx.FromContext(ctx)

	ids := dedupeIDs(taskIDs)
	if len(ids) == 0 {
		return NotifyResult{}, ErrNoTasksFound
	}

	var f domain.TaskFilter
	f.IDs = ids
	f.NormalizeSort(domain.SortCreatedAt, "asc")

	tasks, err := s.Store.Tasks().ListTasks(ctx, userID, f)
	if err != nil {
		return NotifyResult{}, err
	}
	if len(tasks) == 0 {
		return NotifyResult{}, ErrNoTasksFound
	}

	mailer := s.Mailer
	if mailer == nil {
		mailer = mailx.Disabled{}
	}

	res := NotifyResult{Errors: []NotifyFailure{}}
	for _, t := range tasks {
		if t.Email == nil || *t.Email == "" {
			continue
		}

		msg, err := mailx.TaskNotificationMessage(*t.Email, mailx.TaskNotification{
			Owner:    deref(t.Owner),
			TaskName: t.TaskName,
			DueDate:  deref(t.DueDate),
			Note:     note,
		})
		if err == nil {
			err = mailer.Send(ctx, msg)
		}
		if err != nil {
			log.Error("failed to send task notification", slog.Int64("task_id", t.ID), slog.Any("error", err))
			res.Errors = append(res.Errors, NotifyFailure{TaskID: t.ID, Message: "Failed to send notification"})
			continue
		}
		res.Sent++
	}

	log.Info("task notifications sent", slog.Int64("user_id", userID), slog.Int("sent", res.Sent), slog.Int("failed", len(res.Errors)))
	return res, nil
}
