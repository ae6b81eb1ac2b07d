package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"github.com/aussiebroadwan/taskme/internal/taskme/store"
	"github.com/aussiebroadwan/taskme/internal/taskme/store/drivers/sqlite"
	"github.com/aussiebroadwan/taskme/pkg/cryptox"
	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"
	"github.com/stretchr/testify/require"
)

func TestBootstrapNoData(t *testing.T) {
	st := newTestStore(t)
	svc := &BootstrapService{Store: st, Hasher: cryptox.NewPasswordHasher("")}

	rep, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, BootstrapReport{}, rep)

	_, err = st.Users().GetUserByUsername(context.Background(), AdminUsername)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestBootstrapAssignsOrphans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")
	s, err := sqlite.NewStore(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	ctx := context.Background()

	// rows written before accounts existed
	raw, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = raw.ExecContext(ctx, `INSERT INTO tasks (task_name) VALUES ('legacy')`)
	require.NoError(t, err)
	_, err = raw.ExecContext(ctx, `INSERT INTO column_configs (field_key, display_name) VALUES ('cf_old', 'Old')`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	// an existing user without core columns
	existing := domain.User{Username: "carol", Email: "carol@example.com", PasswordHash: "hash", EmailVerified: true}
	require.NoError(t, s.Users().CreateUser(ctx, &existing))

	svc := &BootstrapService{Store: s, Hasher: cryptox.NewPasswordHasher("")}
	rep, err := svc.Run(ctx)
	require.NoError(t, err)
	require.True(t, rep.AdminCreated)
	require.Equal(t, int64(1), rep.Tasks)
	require.Equal(t, int64(1), rep.Columns)
	require.Equal(t, 2, rep.SeededUsers)

	admin, err := s.Users().GetUserByUsername(ctx, AdminUsername)
	require.NoError(t, err)
	require.Equal(t, AdminEmail, admin.Email)
	require.True(t, admin.EmailVerified)

	tasks, err := (&TaskService{Store: s}).List(ctx, admin.ID, taskmesdk.TaskListParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	cols, err := s.Columns().ListColumns(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, cols, 9)

	carolCols, err := s.Columns().ListColumns(ctx, existing.ID)
	require.NoError(t, err)
	require.Len(t, carolCols, 8)

	// second run changes nothing
	rep, err = svc.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, BootstrapReport{}, rep)
}
