package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"github.com/aussiebroadwan/taskme/internal/taskme/events"
	"github.com/aussiebroadwan/taskme/internal/taskme/store"
	"github.com/aussiebroadwan/taskme/pkg/slogx"
	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"
)

var ErrTaskNotFound = errors.New("task not found")

const (
	maxTaskName = 255
	maxOwner    = 150
	maxEmail    = 255
)

type TaskService struct {
	Store  store.Store
	Events events.Publisher
	Now    Clock
}

func (s *TaskService) publish(typ events.Type, userID int64, ids ...int64) {
	if s.Events == nil {
		return
	}
	s.Events.Publish(events.Event{Type: typ, UserID: userID, TaskIDs: ids, At: s.Now.now()})
}

func statusList() string {
	names := make([]string, len(domain.TaskStatuses))
	for i, st := range domain.TaskStatuses {
		names[i] = string(st)
	}
	return strings.Join(names, ", ")
}

func priorityList() string {
	names := make([]string, len(domain.TaskPriorities))
	for i, p := range domain.TaskPriorities {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

func parseStatus(s string) (domain.TaskStatus, error) {
	st := domain.TaskStatus(strings.TrimSpace(s))
	if !st.Valid() {
		return "", invalid("status", "Invalid status. Must be one of: "+statusList())
	}
	return st, nil
}

func parsePriority(s string) (domain.TaskPriority, error) {
	p := domain.TaskPriority(strings.TrimSpace(s))
	if !p.Valid() {
		return "", invalid("priority", "Invalid priority. Must be one of: "+priorityList())
	}
	return p, nil
}

// normDate validates an optional YYYY-MM-DD value. Blank means unset.
func normDate(field string, v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	d := strings.TrimSpace(*v)
	if d == "" {
		return nil, nil
	}
	if _, err := time.Parse(domain.DateLayout, d); err != nil {
		return nil, invalid(field, fmt.Sprintf("Invalid date for %s. Use YYYY-MM-DD", field))
	}
	return &d, nil
}

// normText trims an optional string and enforces a rune limit. Blank means unset.
func normText(field string, v *string, max int) (*string, error) {
	if v == nil {
		return nil, nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil, nil
	}
	if max > 0 && utf8.RuneCountInString(t) > max {
		return nil, invalid(field, fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return &t, nil
}

func normTaskName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", invalid("task_name", "Task name is required")
	}
	if utf8.RuneCountInString(n) > maxTaskName {
		return "", invalid("task_name", fmt.Sprintf("Task name must be at most %d characters", maxTaskName))
	}
	return n, nil
}

// parseCustomFields decodes a JSON object, or a string holding one.
func parseCustomFields(raw json.RawMessage) (domain.CustomFields, error) {
	inner, err := unwrapJSONString(raw)
	if err != nil {
		return nil, invalid("custom_fields", "Invalid JSON in custom_fields")
	}
	if inner == nil {
		return nil, nil
	}

	var cf domain.CustomFields
	if err := json.Unmarshal(inner, &cf); err != nil || cf == nil {
		return nil, invalid("custom_fields", "Invalid JSON in custom_fields")
	}
	return cf, nil
}

// buildTask validates a create payload into a task owned by userID.
func buildTask(userID int64, req taskmesdk.TaskCreate) (domain.Task, error) {
	t := domain.Task{UserID: userID, Status: domain.StatusToDo, Priority: domain.PriorityMedium}

	var err error
	if t.TaskName, err = normTaskName(req.TaskName); err != nil {
		return domain.Task{}, err
	}
	if t.Description, err = normText("description", req.Description, 0); err != nil {
		return domain.Task{}, err
	}
	if t.Owner, err = normText("owner", req.Owner, maxOwner); err != nil {
		return domain.Task{}, err
	}
	if t.Email, err = normText("email", req.Email, maxEmail); err != nil {
		return domain.Task{}, err
	}
	if t.StartDate, err = normDate("start_date", req.StartDate); err != nil {
		return domain.Task{}, err
	}
	if t.DueDate, err = normDate("due_date", req.DueDate); err != nil {
		return domain.Task{}, err
	}
	if strings.TrimSpace(req.Status) != "" {
		if t.Status, err = parseStatus(req.Status); err != nil {
			return domain.Task{}, err
		}
	}
	if strings.TrimSpace(req.Priority) != "" {
		if t.Priority, err = parsePriority(req.Priority); err != nil {
			return domain.Task{}, err
		}
	}
	if t.CustomFields, err = parseCustomFields(req.CustomFields); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

// List returns the user's tasks. Limit must be 1..500 after defaulting;
// values above the cap are clamped.
func (s *TaskService) List(ctx context.Context, userID int64, p taskmesdk.TaskListParams) ([]domain.Task, error) {
	if p.Offset < 0 {
		return nil, invalid("offset", "offset must be >= 0")
	}
	if p.Limit < 1 {
		return nil, invalid("limit", fmt.Sprintf("limit must be between 1 and %d", domain.MaxTaskLimit))
	}

	f := domain.TaskFilter{
		Owner:  p.Owner,
		Search: strings.TrimSpace(p.Search),
		Offset: p.Offset,
		Limit:  min(p.Limit, domain.MaxTaskLimit),
	}

	var err error
	if strings.TrimSpace(p.Status) != "" {
		if f.Status, err = parseStatus(p.Status); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(p.Priority) != "" {
		if f.Priority, err = parsePriority(p.Priority); err != nil {
			return nil, err
		}
	}
	f.NormalizeSort(p.SortBy, p.Order)

	return s.Store.Tasks().ListTasks(ctx, userID, f)
}

func (s *TaskService) Get(ctx context.Context, userID, id int64) (domain.Task, error) {
	t, err := s.Store.Tasks().GetTask(ctx, userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return t, nil
}

func (s *TaskService) Create(ctx context.Context, userID int64, req taskmesdk.TaskCreate) (domain.Task, error) {
	tasks, err := s.CreateMany(ctx, userID, []taskmesdk.TaskCreate{req})
	if err != nil {
		return domain.Task{}, err
	}
	return tasks[0], nil
}

// CreateMany validates every payload before inserting anything, then
// inserts them all in one transaction.
func (s *TaskService) CreateMany(ctx context.Context, userID int64, reqs []taskmesdk.TaskCreate) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0, len(reqs))
	for _, req := range reqs {
		t, err := buildTask(userID, req)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if len(tasks) == 0 {
		return tasks, nil
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		for i := range tasks {
			if err := tx.Tasks().CreateTask(ctx, &tasks[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		slogx.FromContext(ctx).Error("failed to create tasks", slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, err
	}

	ids := make([]int64, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	s.publish(events.TaskCreated, userID, ids...)
	return tasks, nil
}

// Update applies a partial update. Custom fields merge key-wise over the
// stored ones; updated_at is always bumped.
func (s *TaskService) Update(ctx context.Context, userID, id int64, req taskmesdk.TaskUpdate) (domain.Task, error) {
	var updated domain.Task

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		t, err := tx.Tasks().GetTask(ctx, userID, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		if req.TaskName != nil {
			if t.TaskName, err = normTaskName(*req.TaskName); err != nil {
				return err
			}
		}
		if req.Description.Set {
			if t.Description, err = normText("description", req.Description.Value, 0); err != nil {
				return err
			}
		}
		if req.Owner.Set {
			if t.Owner, err = normText("owner", req.Owner.Value, maxOwner); err != nil {
				return err
			}
		}
		if req.Email.Set {
			if t.Email, err = normText("email", req.Email.Value, maxEmail); err != nil {
				return err
			}
		}
		if req.StartDate.Set {
			if t.StartDate, err = normDate("start_date", req.StartDate.Value); err != nil {
				return err
			}
		}
		if req.DueDate.Set {
			if t.DueDate, err = normDate("due_date", req.DueDate.Value); err != nil {
				return err
			}
		}
		if req.Status != nil {
			if t.Status, err = parseStatus(*req.Status); err != nil {
				return err
			}
		}
		if req.Priority != nil {
			if t.Priority, err = parsePriority(*req.Priority); err != nil {
				return err
			}
		}
		if len(req.CustomFields) > 0 {
			cf, err := parseCustomFields(req.CustomFields)
			if err != nil {
				return err
			}
			if cf != nil {
				t.CustomFields = t.CustomFields.Merge(cf)
			}
		}

		if err := tx.Tasks().UpdateTask(ctx, &t); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTaskNotFound
			}
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}

	s.publish(events.TaskUpdated, userID, updated.ID)
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.Store.Tasks().DeleteTask(ctx, userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	s.publish(events.TaskDeleted, userID, id)
	return nil
}

// DeleteMany removes the listed tasks the user owns and silently skips the
// rest.
func (s *TaskService) DeleteMany(ctx context.Context, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	deleted, err := s.Store.Tasks().DeleteTasks(ctx, userID, ids)
	if err != nil {
		return 0, err
	}
	if len(deleted) > 0 {
		s.publish(events.TaskDeleted, userID, deleted...)
	}
	return int64(len(deleted)), nil
}

func (s *TaskService) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	n, err := s.Store.Tasks().DeleteAllTasks(ctx, userID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slogx.FromContext(ctx).Info("all tasks deleted", slog.Int64("user_id", userID), slog.Int64("deleted", n))
		s.publish(events.TaskDeleted, userID)
	}
	return n, nil
}
