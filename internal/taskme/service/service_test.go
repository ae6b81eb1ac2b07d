package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"github.com/aussiebroadwan/taskme/internal/taskme/events"
	"github.com/aussiebroadwan/taskme/internal/taskme/store"
	"github.com/aussiebroadwan/taskme/internal/taskme/store/drivers/sqlite"
	"github.com/aussiebroadwan/taskme/pkg/llm"
	"github.com/aussiebroadwan/taskme/pkg/mailx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

// newUser inserts a verified user with core columns.
func newUser(t *testing.T, st store.Store, name string) domain.User {
	t.Helper()
	ctx := context.Background()

	u := domain.User{Username: name, Email: name + "@example.com", PasswordHash: "hash", EmailVerified: true}
	require.NoError(t, st.Users().CreateUser(ctx, &u))
	_, err := SeedCoreColumns(ctx, st, u.ID)
	require.NoError(t, err)
	return u
}

func strp(s string) *string { return &s }

func fixedClock(t time.Time) Clock { return func() time.Time { return t } }

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailx.Message
	err  error
	// failFor makes Send fail for one recipient only.
	failFor string
}

func (m *fakeMailer) Send(_ context.Context, msg mailx.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil || (m.failFor != "" && msg.To == m.failFor) {
		if m.err != nil {
			return m.err
		}
		return errors.New("smtp: 550 mailbox unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) messages() []mailx.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailx.Message(nil), m.sent...)
}

// tokenFromMessage pulls the token query parameter out of the link in a
// verification email.
func tokenFromMessage(t *testing.T, msg mailx.Message) string {
	t.Helper()

	for _, field := range strings.Fields(msg.Text) {
		if !strings.HasPrefix(field, "http") {
			continue
		}
		u, err := url.Parse(field)
		require.NoError(t, err)
		if tok := u.Query().Get("token"); tok != "" {
			return tok
		}
	}
	t.Fatalf("no verification link in %q", msg.Text)
	return ""
}

type fakeExtractor struct {
	provider llm.Provider
	tasks    []llm.Task
	err      error
	got      llm.Request
}

func (f *fakeExtractor) Provider() llm.Provider { return f.provider }

func (f *fakeExtractor) Extract(_ context.Context, req llm.Request) ([]llm.Task, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.tasks, nil
}

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) all() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

func taskNames(ts []domain.Task) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.TaskName
	}
	return out
}
