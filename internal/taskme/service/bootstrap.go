package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"github.com/aussiebroadwan/taskme/internal/taskme/store"
	"github.com/aussiebroadwan/taskme/pkg/cryptox"
	"github.com/aussiebroadwan/taskme/pkg/slogx"
)

const (
	AdminUsername = "admin"
	AdminEmail    = "admin@taskme.local"

	adminPasswordLength = 16
)

// BootstrapService brings existing data up to the multi-user shape. It is
// safe to run at every start.
type BootstrapService struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher
}

// BootstrapReport counts what a run changed.
type BootstrapReport struct {
	AdminCreated bool
	Tasks        int64
	Columns      int64
	SharedLists  int64
	SeededUsers  int
}

func (s *BootstrapService) Run(ctx context.Context) (BootstrapReport, error) {
	l := slogx.FromContext(ctx)
	var rep BootstrapReport

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Find rows that predate user accounts
		orphans, err := countOrphans(ctx, tx)
		if err != nil {
			return err
		}

		// 2. Hand them to the admin account
		if orphans > 0 {
			admin, created, err := s.ensureAdmin(ctx, tx)
			if err != nil {
				return err
			}
			rep.AdminCreated = created

			if rep.Tasks, err = tx.Tasks().AssignOrphans(ctx, admin.ID); err != nil {
				return err
			}
			if rep.Columns, err = tx.Columns().AssignOrphans(ctx, admin.ID); err != nil {
				return err
			}
			if rep.SharedLists, err = tx.SharedLists().AssignOrphans(ctx, admin.ID); err != nil {
				return err
			}
		}

		// 3. Give every user the core columns they are missing
		ids, err := tx.Users().ListUserIDs(ctx)
		if err != nil {
			return err
		}
		for _, id := range ids {
			n, err := SeedCoreColumns(ctx, tx, id)
			if err != nil {
				return err
			}
			if n > 0 {
				rep.SeededUsers++
			}
		}
		return nil
	})
	if err != nil {
		l.Error("bootstrap failed", slog.Any("error", err))
		return BootstrapReport{}, err
	}

	if rep.Tasks+rep.Columns+rep.SharedLists > 0 || rep.SeededUsers > 0 {
		l.Info("bootstrap applied",
			slog.Int64("tasks", rep.Tasks),
			slog.Int64("columns", rep.Columns),
			slog.Int64("shared_lists", rep.SharedLists),
			slog.Int("seeded_users", rep.SeededUsers),
		)
	}
	return rep, nil
}

func countOrphans(ctx context.Context, st store.Store) (int64, error) {
	tasks, err := st.Tasks().CountOrphans(ctx)
	if err != nil {
		return 0, err
	}
	cols, err := st.Columns().CountOrphans(ctx)
	if err != nil {
		return 0, err
	}
	shares, err := st.SharedLists().CountOrphans(ctx)
	if err != nil {
		return 0, err
	}
	return tasks + cols + shares, nil
}

// ensureAdmin returns the admin account, creating it with a random password
// when missing.
func (s *BootstrapService) ensureAdmin(ctx context.Context, st store.Store) (domain.User, bool, error) {
	l := slogx.FromContext(ctx)

	admin, err := st.Users().GetUserByUsername(ctx, AdminUsername)
	if err == nil {
		return admin, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, false, err
	}

	password, err := cryptox.GeneratePassword(adminPasswordLength)
	if err != nil {
		return domain.User{}, false, err
	}
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		l.Error("failed to hash admin password", slog.Any("error", err))
		return domain.User{}, false, err
	}

	admin = domain.User{
		Username:      AdminUsername,
		Email:         AdminEmail,
		PasswordHash:  hash,
		EmailVerified: true,
	}
	if err := st.Users().CreateUser(ctx, &admin); err != nil {
		return domain.User{}, false, err
	}

	l.Warn("created admin account for existing data, change this password",
		slog.String("username", AdminUsername),
		slog.String("password", password),
	)
	return admin, true, nil
}
