package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/taskme/internal/taskme/store"
	"gorm.io/gorm"
)

type txStore struct {
	db *gorm.DB
}

func newTx(tx *gorm.DB) *txStore {
	return &txStore{db: tx}
}

func (t *txStore) Commit() error   { return t.db.Commit().Error }
func (t *txStore) Rollback() error { return t.db.Rollback().Error }

func (t *txStore) Close() error { return nil } // outer DB stays open

// Ping is a no-op for transactions, the connection is already held.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested tx not supported
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users             { return &usersRepo{db: t.db} }
func (t *txStore) Tasks() store.Tasks             { return &tasksRepo{db: t.db} }
func (t *txStore) Columns() store.Columns         { return &columnsRepo{db: t.db} }
func (t *txStore) SharedLists() store.SharedLists { return &sharedListsRepo{db: t.db} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx

func (t *txStore) MigrationVersion() (uint, bool, error) { return 0, false, sql.ErrTxDone }
