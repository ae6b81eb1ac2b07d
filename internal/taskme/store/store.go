package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories to keep concerns tidy and testable, and so a
// transaction scoped Store cannot start another transaction.
type Store interface {
	Users() Users
	Tasks() Tasks
	Columns() Columns
	SharedLists() SharedLists

	// ApplyMigrations brings the schema up to the latest version.
	ApplyMigrations() error

	// MigrationVersion reports the applied schema version and whether the
	// last migration left the database dirty.
	MigrationVersion() (version uint, dirty bool, err error)

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id int64) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByVerificationHash finds the user holding a pending
	// verification token fingerprint.
	GetUserByVerificationHash(ctx context.Context, hash string) (domain.User, error)

	// CreateUser inserts u and fills in ID and CreatedAt. A duplicate
	// username or email returns ErrAlreadyExists.
	CreateUser(ctx context.Context, u *domain.User) error

	// SetVerificationToken stores a new pending token fingerprint.
	SetVerificationToken(ctx context.Context, userID int64, hash string, expiresAt time.Time) error

	// MarkEmailVerified flips email_verified and clears the pending token.
	MarkEmailVerified(ctx context.Context, userID int64) error

	// ListUserIDs returns every user id in ascending order.
	ListUserIDs(ctx context.Context) ([]int64, error)
}

type Tasks interface {
	// ListTasks returns the user's tasks matching f. The sort field must
	// already be on the allow-list.
	ListTasks(ctx context.Context, userID int64, f domain.TaskFilter) ([]domain.Task, error)

	GetTask(ctx context.Context, userID, id int64) (domain.Task, error)

	// GetTasksByIDs is unscoped and only used to resolve share links.
	GetTasksByIDs(ctx context.Context, ids []int64) ([]domain.Task, error)

	// CountOwnedTasks counts how many of ids belong to userID.
	CountOwnedTasks(ctx context.Context, userID int64, ids []int64) (int64, error)

	// CreateTask inserts t and fills in ID and timestamps.
	CreateTask(ctx context.Context, t *domain.Task) error

	// UpdateTask rewrites every mutable field of t and bumps updated_at.
	UpdateTask(ctx context.Context, t *domain.Task) error

	DeleteTask(ctx context.Context, userID, id int64) error
	// DeleteTasks removes the listed tasks owned by userID and returns the
	// ids actually removed.
	DeleteTasks(ctx context.Context, userID int64, ids []int64) ([]int64, error)
	DeleteAllTasks(ctx context.Context, userID int64) (int64, error)

	// CountOrphans counts legacy rows with no owner.
	CountOrphans(ctx context.Context) (int64, error)
	AssignOrphans(ctx context.Context, userID int64) (int64, error)
}

type Columns interface {
	// ListColumns returns the user's columns ordered by position.
	ListColumns(ctx context.Context, userID int64) ([]domain.ColumnConfig, error)

	// ListVisibleCustomColumns returns visible non-core columns by position.
	ListVisibleCustomColumns(ctx context.Context, userID int64) ([]domain.ColumnConfig, error)

	GetColumn(ctx context.Context, userID, id int64) (domain.ColumnConfig, error)
	FieldKeyExists(ctx context.Context, userID int64, fieldKey string) (bool, error)

	// MaxPosition returns the highest position, or -1 with no columns.
	MaxPosition(ctx context.Context, userID int64) (int, error)

	// CreateColumn inserts c and fills in ID. A duplicate field key for the
	// same user returns ErrAlreadyExists.
	CreateColumn(ctx context.Context, c *domain.ColumnConfig) error
	UpdateColumn(ctx context.Context, c *domain.ColumnConfig) error
	UpdatePosition(ctx context.Context, userID, id int64, position int) error
	DeleteColumn(ctx context.Context, userID, id int64) error

	CountOrphans(ctx context.Context) (int64, error)
	AssignOrphans(ctx context.Context, userID int64) (int64, error)
}

type SharedLists interface {
	// CreateSharedList inserts s and fills in ID and CreatedAt.
	CreateSharedList(ctx context.Context, s *domain.SharedList) error

	// GetSharedListByHash looks a link up by token fingerprint regardless of
	// expiry; callers decide what an expired link means.
	GetSharedListByHash(ctx context.Context, hash string) (domain.SharedList, error)

	CountOrphans(ctx context.Context) (int64, error)
	AssignOrphans(ctx context.Context, userID int64) (int64, error)
}
