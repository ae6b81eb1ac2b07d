package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/taskme/internal/taskme/store"
	"github.com/aussiebroadwan/taskme/pkg/slogx"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// Store is the sqlite implementation of store.Store. The schema is owned by
// golang-migrate on the raw *sql.DB; gorm maps rows on the same pool.
type Store struct {
	sqlDB *sql.DB
	db    *gorm.DB
	dsn   string
}

// NewStore opens dsn with the pure-Go sqlite driver. logger may be nil.
func NewStore(dsn string, logger *slog.Logger) (*Store, error) {
	dsn = withForeignKeys(dsn)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Every in-memory connection is a separate database, so pin the pool
	// to one connection.
	if isMemoryDSN(dsn) {
		sqlDB.SetMaxOpenConns(1)
	}

	// A pinned in-memory connection has no DSN pragmas to inherit.
	if _, err := sqlDB.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	db, err := gorm.Open(gormsqlite.New(gormsqlite.Config{
		DriverName: "sqlite",
		Conn:       sqlDB,
	}), &gorm.Config{
		Logger:                 slogx.NewGormLogger(logger),
		SkipDefaultTransaction: true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	return &Store{sqlDB: sqlDB, db: db, dsn: dsn}, nil
}

// withForeignKeys adds the foreign_keys pragma to file DSNs so every pooled
// connection enforces ON DELETE CASCADE, not just the first one.
func withForeignKeys(dsn string) string {
	if !strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory") || strings.HasPrefix(dsn, "file::memory:")
}

func (s *Store) Close() error { return s.sqlDB.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func (s *Store) Users() store.Users             { return &usersRepo{db: s.db} }
func (s *Store) Tasks() store.Tasks             { return &tasksRepo{db: s.db} }
func (s *Store) Columns() store.Columns         { return &columnsRepo{db: s.db} }
func (s *Store) SharedLists() store.SharedLists { return &sharedListsRepo{db: s.db} }

// mapError translates driver errors into store sentinels.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, sql.ErrNoRows):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
	}
	return err
}
