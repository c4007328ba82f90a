// Package migrations holds the Postgres schema of the entry store.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/KretovDmitry/shorturl/internal/errs"
	"github.com/KretovDmitry/shorturl/internal/logger"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var fs embed.FS

// migrateLogger routes golang-migrate output to the application logger.
type migrateLogger struct {
	log logger.Logger
}

var _ migrate.Logger = migrateLogger{}

// Printf implements migrate.Logger.
func (l migrateLogger) Printf(format string, v ...any) {
	l.log.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Verbose implements migrate.Logger.
func (migrateLogger) Verbose() bool {
	return true
}

// newMigrate prepares a migration run of the embedded files over db.
func newMigrate(db *sql.DB, log logger.Logger) (*migrate.Migrate, error) {
	src, err := iofs.New(fs, ".")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("init postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("init migrate instance: %w", err)
	}
	m.Log = migrateLogger{log: log}

	return m, nil
}

// Up applies every pending migration and logs the resulting schema version.
// An up to date schema is not an error.
func Up(db *sql.DB, log logger.Logger) error {
	if db == nil || log == nil {
		return fmt.Errorf("%w: db and logger are required", errs.ErrNilDependency)
	}

	m, err := newMigrate(db, log)
	if err != nil {
		return err
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Info("entries schema is up to date")
	case err != nil:
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("schema version %d is dirty", version)
	}
	log.Infof("entries schema at version %d", version)

	return nil
}
