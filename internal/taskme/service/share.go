package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"github.com/aussiebroadwan/taskme/internal/taskme/store"
	"github.com/aussiebroadwan/taskme/pkg/cryptox"
	"github.com/aussiebroadwan/taskme/pkg/slogx"
)

var (
	ErrShareForbidden = errors.New("some tasks do not belong to you")
	ErrShareNotFound  = errors.New("share link not found")
	ErrShareExpired   = errors.New("share link has expired")
)

type ShareService struct {
	Store store.Store

	// FrontendURL is where shared lists are rendered.
	FrontendURL string
	TTL         time.Duration
	Now         Clock
}

// ShareLink is a freshly minted link. Token is only ever returned here.
type ShareLink struct {
	Token     string
	URL       string
	ExpiresAt time.Time
}

func (s *ShareService) ttl() time.Duration {
	if s.TTL <= 0 {
		return domain.DefaultShareTTL
	}
	return s.TTL
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Create mints a read-only link to taskIDs. Every id must belong to userID.
func (s *ShareService) Create(ctx context.Context, userID int64, taskIDs []int64) (ShareLink, error) {
	ids := dedupeIDs(taskIDs)
	if len(ids) == 0 {
		return ShareLink{}, invalid("task_ids", "task_ids cannot be empty")
	}

	owned, err := s.Store.Tasks().CountOwnedTasks(ctx, userID, ids)
	if err != nil {
		return ShareLink{}, err
	}
	if owned != int64(len(ids)) {
		return ShareLink{}, ErrShareForbidden
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return ShareLink{}, err
	}

	list := domain.SharedList{
		UserID:    userID,
		TokenHash: cryptox.FingerprintToken(token),
		TaskIDs:   ids,
		ExpiresAt: s.Now.now().Add(s.ttl()),
	}
	if err := s.Store.SharedLists().CreateSharedList(ctx, &list); err != nil {
		slogx.FromContext(ctx).Error("failed to create share link", slog.Int64("user_id", userID), slog.Any("error", err))
		return ShareLink{}, err
	}

	slogx.FromContext(ctx).Info("share link created", slog.Int64("user_id", userID), slog.Int("tasks", len(ids)))
	return ShareLink{
		Token:     token,
		URL:       strings.TrimSuffix(s.FrontendURL, "/") + "/shared/" + token,
		ExpiresAt: list.ExpiresAt,
	}, nil
}

// Resolve returns the tasks behind a share token in the order they were
// shared. Tasks deleted since are dropped; ownership is not re-checked.
func (s *ShareService) Resolve(ctx context.Context, token string) ([]domain.Task, time.Time, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, time.Time{}, ErrShareNotFound
	}

	list, err := s.Store.SharedLists().GetSharedListByHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, time.Time{}, ErrShareNotFound
		}
		return nil, time.Time{}, err
	}
	if list.Expired(s.Now.now()) {
		return nil, list.ExpiresAt, ErrShareExpired
	}

	found, err := s.Store.Tasks().GetTasksByIDs(ctx, list.TaskIDs)
	if err != nil {
		return nil, time.Time{}, err
	}

	byID := make(map[int64]domain.Task, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}
	tasks := make([]domain.Task, 0, len(found))
	for _, id := range list.TaskIDs {
		if t, ok := byID[id]; ok {
			tasks = append(tasks, t)
		}
	}
	return tasks, list.ExpiresAt, nil
}
