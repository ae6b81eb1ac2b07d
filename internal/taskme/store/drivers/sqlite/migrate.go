package sqlite

import (
	"errors"

	"github.com/aussiebroadwan/taskme/internal/taskme/store/drivers/sqlite/migrations"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// migrator builds a migrate instance over the embedded migration files. The
// instance is never closed because closing it would close the shared pool.
func (s *Store) migrator() (*migrate.Migrate, error) {
	// 1. Create the SQLite migration driver
	driver, err := migratesqlite.WithInstance(s.sqlDB, &migratesqlite.Config{})
	if err != nil {
		return nil, err
	}

	// 2. Create the iofs (embedded filesystem) source driver
	source, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return nil, err
	}

	// 3. Create the migrate instance to run migrations
	return migrate.NewWithInstance("iofs", source, "sqlite", driver)
}

// ApplyMigrations applies any pending database migrations. Versions already
// recorded in schema_migrations are skipped, so calling it on every start
// is safe.
func (s *Store) ApplyMigrations() error {
	m, err := s.migrator()
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// MigrationVersion reports the current schema version. A fresh database
// reports version 0.
func (s *Store) MigrationVersion() (uint, bool, error) {
	m, err := s.migrator()
	if err != nil {
		return 0, false, err
	}

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}
