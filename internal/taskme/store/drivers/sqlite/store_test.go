package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"github.com/aussiebroadwan/taskme/internal/taskme/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func createUser(t *testing.T, s store.Store, name string) domain.User {
	t.Helper()

	u := domain.User{Username: name, Email: name + "@example.com", PasswordHash: "hash"}
	require.NoError(t, s.Users().CreateUser(context.Background(), &u))
	require.NotZero(t, u.ID)
	return u
}

func strp(s string) *string { return &s }

func TestMigrations(t *testing.T) {
	s := newTestStore(t)

	v, dirty, err := s.MigrationVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(4), v)

	// Re-running is a no-op.
	require.NoError(t, s.ApplyMigrations())
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	alice := createUser(t, s, "alice")
	require.False(t, alice.EmailVerified)
	require.False(t, alice.CreatedAt.IsZero())

	t.Run("lookups", func(t *testing.T) {
		got, err := s.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.ID)

		got, err = s.Users().GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.ID)

		_, err = s.Users().GetUserByID(ctx, 999)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicates", func(t *testing.T) {
		dup := domain.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"}
		require.ErrorIs(t, s.Users().CreateUser(ctx, &dup), store.ErrAlreadyExists)

		dup = domain.User{Username: "other", Email: "alice@example.com", PasswordHash: "x"}
		require.ErrorIs(t, s.Users().CreateUser(ctx, &dup), store.ErrAlreadyExists)
	})

	t.Run("verification", func(t *testing.T) {
		exp := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
		require.NoError(t, s.Users().SetVerificationToken(ctx, alice.ID, "fp", exp))

		got, err := s.Users().GetUserByVerificationHash(ctx, "fp")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.ID)
		require.NotNil(t, got.VerificationExpiresAt)
		require.True(t, exp.Equal(*got.VerificationExpiresAt))

		require.NoError(t, s.Users().MarkEmailVerified(ctx, alice.ID))
		got, err = s.Users().GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.True(t, got.EmailVerified)
		require.Nil(t, got.VerificationTokenHash)
		require.Nil(t, got.VerificationExpiresAt)

		_, err = s.Users().GetUserByVerificationHash(ctx, "fp")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestTasksScopedByUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	task := domain.Task{
		UserID:       alice.ID,
		TaskName:     "Write report",
		Status:       domain.StatusToDo,
		Priority:     domain.PriorityHigh,
		CustomFields: domain.CustomFields{"cf_team": "Red"},
	}
	require.NoError(t, s.Tasks().CreateTask(ctx, &task))
	require.NotZero(t, task.ID)

	_, err := s.Tasks().GetTask(ctx, bob.ID, task.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Tasks().DeleteTask(ctx, bob.ID, task.ID), store.ErrNotFound)

	got, err := s.Tasks().GetTask(ctx, alice.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, "Red", got.CustomFields["cf_team"])

	n, err := s.Tasks().CountOwnedTasks(ctx, bob.ID, []int64{task.ID})
	require.NoError(t, err)
	require.Zero(t, n)

	got.Description = strp("quarterly")
	got.Status = domain.StatusDone
	require.NoError(t, s.Tasks().UpdateTask(ctx, &got))

	got, err = s.Tasks().GetTask(ctx, alice.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, "quarterly", *got.Description)
	require.Equal(t, domain.StatusDone, got.Status)

	removed, err := s.Tasks().DeleteTasks(ctx, bob.ID, []int64{task.ID, 999})
	require.NoError(t, err)
	require.Empty(t, removed)

	extra := domain.Task{UserID: alice.ID, TaskName: "Scratch", Status: domain.StatusToDo, Priority: domain.PriorityLow}
	require.NoError(t, s.Tasks().CreateTask(ctx, &extra))
	removed, err = s.Tasks().DeleteTasks(ctx, alice.ID, []int64{extra.ID, 999})
	require.NoError(t, err)
	require.Equal(t, []int64{extra.ID}, removed)

	deleted, err := s.Tasks().DeleteAllTasks(ctx, bob.ID)
	require.NoError(t, err)
	require.Zero(t, deleted)

	deleted, err = s.Tasks().DeleteAllTasks(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)
}

func TestListTasks(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := createUser(t, s, "alice")

	seed := []domain.Task{
		{TaskName: "alpha", Status: domain.StatusToDo, Priority: domain.PriorityLow, Owner: strp("sam"), DueDate: strp("2025-03-01")},
		{TaskName: "bravo", Status: domain.StatusDone, Priority: domain.PriorityHigh, Owner: strp("kim"), DueDate: strp("2025-01-01")},
		{TaskName: "charlie 100%", Status: domain.StatusToDo, Priority: domain.PriorityHigh, Description: strp("needs review")},
	}
	for i := range seed {
		seed[i].UserID = u.ID
		require.NoError(t, s.Tasks().CreateTask(ctx, &seed[i]))
	}

	names := func(ts []domain.Task) []string {
		out := make([]string, len(ts))
		for i, t := range ts {
			out[i] = t.TaskName
		}
		return out
	}

	t.Run("filters", func(t *testing.T) {
		got, err := s.Tasks().ListTasks(ctx, u.ID, domain.TaskFilter{Status: domain.StatusToDo, SortBy: "task_name"})
		require.NoError(t, err)
		require.Equal(t, []string{"alpha", "charlie 100%"}, names(got))

		got, err = s.Tasks().ListTasks(ctx, u.ID, domain.TaskFilter{Priority: domain.PriorityHigh, Owner: "kim", SortBy: "task_name"})
		require.NoError(t, err)
		require.Equal(t, []string{"bravo"}, names(got))
	})

	t.Run("search escapes wildcards", func(t *testing.T) {
		got, err := s.Tasks().ListTasks(ctx, u.ID, domain.TaskFilter{Search: "100%", SortBy: "task_name"})
		require.NoError(t, err)
		require.Equal(t, []string{"charlie 100%"}, names(got))

		got, err = s.Tasks().ListTasks(ctx, u.ID, domain.TaskFilter{Search: "REVIEW", SortBy: "task_name"})
		require.NoError(t, err)
		require.Equal(t, []string{"charlie 100%"}, names(got))
	})

	t.Run("sort and page", func(t *testing.T) {
		got, err := s.Tasks().ListTasks(ctx, u.ID, domain.TaskFilter{SortBy: "due_date", Desc: true})
		require.NoError(t, err)
		require.Equal(t, []string{"alpha", "bravo", "charlie 100%"}, names(got), "nulls sort last descending")

		got, err = s.Tasks().ListTasks(ctx, u.ID, domain.TaskFilter{SortBy: "due_date"})
		require.NoError(t, err)
		require.Equal(t, []string{"charlie 100%", "bravo", "alpha"}, names(got), "nulls sort first ascending")

		got, err = s.Tasks().ListTasks(ctx, u.ID, domain.TaskFilter{SortBy: "task_name", Offset: 1, Limit: 1})
		require.NoError(t, err)
		require.Equal(t, []string{"bravo"}, names(got))

		got, err = s.Tasks().ListTasks(ctx, u.ID, domain.TaskFilter{SortBy: "task_name", Offset: 2})
		require.NoError(t, err)
		require.Equal(t, []string{"charlie 100%"}, names(got))
	})
}

func TestColumns(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := createUser(t, s, "alice")

	maxPos, err := s.Columns().MaxPosition(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, -1, maxPos)

	for _, c := range domain.CoreColumns(u.ID) {
		c := c
		require.NoError(t, s.Columns().CreateColumn(ctx, &c))
	}

	custom := domain.ColumnConfig{
		UserID: u.ID, FieldKey: "cf_team", DisplayName: "Team", FieldType: domain.FieldSelect,
		Position: 8, IsVisible: true, Options: []string{"Red", "Blue"},
	}
	require.NoError(t, s.Columns().CreateColumn(ctx, &custom))

	dup := custom
	dup.ID = 0
	require.ErrorIs(t, s.Columns().CreateColumn(ctx, &dup), store.ErrAlreadyExists)

	exists, err := s.Columns().FieldKeyExists(ctx, u.ID, "cf_team")
	require.NoError(t, err)
	require.True(t, exists)

	// Field keys are unique per user only.
	bob := createUser(t, s, "bob")
	other := custom
	other.ID, other.UserID = 0, bob.ID
	require.NoError(t, s.Columns().CreateColumn(ctx, &other))

	visible, err := s.Columns().ListVisibleCustomColumns(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	require.Equal(t, []string{"Red", "Blue"}, visible[0].Options)

	require.NoError(t, s.Columns().UpdatePosition(ctx, u.ID, custom.ID, 0))
	cols, err := s.Columns().ListColumns(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, cols, 9)

	maxPos, err = s.Columns().MaxPosition(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 7, maxPos)

	require.ErrorIs(t, s.Columns().DeleteColumn(ctx, bob.ID, custom.ID), store.ErrNotFound)
	require.NoError(t, s.Columns().DeleteColumn(ctx, u.ID, custom.ID))
}

func TestSharedLists(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := createUser(t, s, "alice")

	exp := time.Now().Add(domain.DefaultShareTTL).UTC().Truncate(time.Second)
	sl := domain.SharedList{UserID: u.ID, TokenHash: "fp", TaskIDs: []int64{3, 1, 2}, ExpiresAt: exp}
	require.NoError(t, s.SharedLists().CreateSharedList(ctx, &sl))
	require.NotZero(t, sl.ID)

	got, err := s.SharedLists().GetSharedListByHash(ctx, "fp")
	require.NoError(t, err)
	require.Equal(t, []int64{3, 1, 2}, got.TaskIDs)
	require.True(t, exp.Equal(got.ExpiresAt))

	_, err = s.SharedLists().GetSharedListByHash(ctx, "nope")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAssignOrphans(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Rows written before accounts existed have no owner.
	require.NoError(t, s.db.Exec(`INSERT INTO tasks (task_name) VALUES ('legacy')`).Error)
	require.NoError(t, s.db.Exec(`INSERT INTO column_configs (field_key, display_name) VALUES ('cf_old', 'Old')`).Error)

	n, err := s.Tasks().CountOrphans(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	admin := createUser(t, s, "admin")
	err = s.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Tasks().AssignOrphans(ctx, admin.ID); err != nil {
			return err
		}
		_, err := tx.Columns().AssignOrphans(ctx, admin.ID)
		return err
	})
	require.NoError(t, err)

	n, err = s.Tasks().CountOrphans(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	tasks, err := s.Tasks().ListTasks(ctx, admin.ID, domain.TaskFilter{SortBy: "created_at"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, domain.StatusToDo, tasks[0].Status)

	n, err = s.Columns().CountOrphans(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestWithTxRollback(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		u := domain.User{Username: "ghost", Email: "ghost@example.com", PasswordHash: "x"}
		if err := tx.Users().CreateUser(ctx, &u); err != nil {
			return err
		}
		return store.ErrAlreadyExists
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.Users().GetUserByUsername(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestForeignKeysOnEveryConnection(t *testing.T) {
	ctx := context.Background()

	s, err := NewStore("file:"+filepath.Join(t.TempDir(), "fk.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	conns := make([]*sql.Conn, 3)
	for i := range conns {
		conns[i], err = s.sqlDB.Conn(ctx)
		require.NoError(t, err)
	}
	for _, c := range conns {
		var on int
		require.NoError(t, c.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&on))
		require.Equal(t, 1, on)
		require.NoError(t, c.Close())
	}
}

func TestWithForeignKeys(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "file:a.db", want: "file:a.db?_pragma=foreign_keys(1)"},
		{in: "file:a.db?_pragma=busy_timeout(5000)", want: "file:a.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"},
		{in: "file:a.db?_pragma=foreign_keys(1)", want: "file:a.db?_pragma=foreign_keys(1)"},
		{in: ":memory:", want: ":memory:"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, withForeignKeys(tt.in))
		})
	}
}
