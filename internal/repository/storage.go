// Package repository provides the interfaces of storage.
package repository

//go:generate mockgen -destination=../../mocks/mock_storage.go -package=mocks . EntryStorage

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/KretovDmitry/shorturl/internal/config"
	"github.com/KretovDmitry/shorturl/internal/errs"
	"github.com/KretovDmitry/shorturl/internal/logger"
	"github.com/KretovDmitry/shorturl/internal/models"
	"github.com/KretovDmitry/shorturl/internal/repository/filestore"
	"github.com/KretovDmitry/shorturl/internal/repository/memstore"
	"github.com/KretovDmitry/shorturl/internal/repository/postgres"
	"github.com/KretovDmitry/shorturl/migrations"
	"github.com/jackc/pgx/v5/stdlib"
	sqldblogger "github.com/simukti/sqldb-logger"
)

// EntryStorage is an append-only ordered collection of entries.
// An entry's position is its short code and never changes.
type EntryStorage interface {
	// Load reads the full persisted collection, creating an empty one
	// first if nothing has been persisted yet.
	Load(ctx context.Context) ([]models.Entry, error)

	// Persist overwrites the persisted collection in one shot.
	Persist(ctx context.Context, entries []models.Entry) error

	// GetByIndex reloads the collection and returns the entry at index.
	// Out of range indexes, negative included, yield errs.ErrNotFound.
	GetByIndex(ctx context.Context, index int) (*models.Entry, error)

	// Ping checks the health of the storage.
	Ping(ctx context.Context) error
}

// Interface implementation guards.
var (
	_ EntryStorage = (*filestore.FileStore)(nil)
	_ EntryStorage = (*memstore.EntryRepository)(nil)
	_ EntryStorage = (*postgres.EntryRepository)(nil)

	_ io.Closer = (*postgres.EntryRepository)(nil)
)

// Append returns a new collection equal to current with entry appended,
// and the index of entry in it. current is never modified.
func Append(current []models.Entry, entry models.Entry) ([]models.Entry, int) {
	updated := make([]models.Entry, len(current), len(current)+1)
	copy(updated, current)
	updated = append(updated, entry)
	return updated, len(updated) - 1
}

// NewEntryStore returns one of the EntryStorage implementations based on
// the configuration. Could be postgres, file storage or in memory.
// Stores holding a connection implement io.Closer.
func NewEntryStore(ctx context.Context, config *config.Config, logger logger.Logger) (EntryStorage, error) {
	// Check for dependencies that can lead to panic.
	if config == nil {
		return nil, fmt.Errorf("%w: config", errs.ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}

	// Init postgres entry repository if DSN is provided.
	if config.DSN != "" {
		db, err := openPostgres(ctx, config.DSN, logger)
		if err != nil {
			return nil, err
		}

		logger.Info("entries are stored in postgres")

		return postgres.NewEntryRepository(db, logger)
	}

	if config.Storage.FileStoragePath == "" {
		logger.Info("file storage path isn't set, using in memory storage")
		return memstore.NewEntryRepository(), nil
	}

	store, err := filestore.NewFileStore(config.Storage.FileStoragePath)
	if err != nil {
		return nil, fmt.Errorf("new file repository: %w", err)
	}

	logger.Infof("file storage initialized at: %q", config.Storage.FileStoragePath)

	return store, nil
}

// openPostgres opens the database through the pgx driver with every query
// logged, checks the connection and migrates the schema. The handle is
// closed on any failure.
func openPostgres(ctx context.Context, dsn string, logger logger.Logger) (*sql.DB, error) {
	db := sqldblogger.OpenDriver(dsn, stdlib.GetDefaultDriver(), logger)

	// Check connectivity and DSN correctness.
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err := migrations.Up(db, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}

	return db, nil
}
