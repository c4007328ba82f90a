// Package postgres keeps the entries in a Postgres table whose idx
// column is the short code.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/KretovDmitry/shorturl/internal/errs"
	"github.com/KretovDmitry/shorturl/internal/logger"
	"github.com/KretovDmitry/shorturl/internal/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// EntryRepository is a Postgres implementation of the EntryStorage interface.
type EntryRepository struct {
	db     *sql.DB
	logger logger.Logger
}

// NewEntryRepository creates a repository over an opened and migrated database.
func NewEntryRepository(db *sql.DB, logger logger.Logger) (*EntryRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: *sql.DB", errs.ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}
	return &EntryRepository{db: db, logger: logger}, nil
}

// Load reads every entry ordered by its index.
func (r *EntryRepository) Load(ctx context.Context) ([]models.Entry, error) {
	const q = `
		SELECT url
		FROM entries
		ORDER BY idx
	`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load entries with query (%s): %w", formatQuery(q), classify(err))
	}
	defer rows.Close()

	entries := make([]models.Entry, 0)
	for rows.Next() {
		var e models.Entry
		if err = rows.Scan(&e.URL); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", classify(err))
	}

	return entries, nil
}

// Persist replaces every row with entries in a single transaction.
// A concurrent writer racing on the same indexes yields ErrConflict.
func (r *EntryRepository) Persist(ctx context.Context, entries []models.Entry) error {
	const (
		deleteAll = `DELETE FROM entries`
		insert    = `
			INSERT INTO entries
				(idx, url)
			VALUES
				($1, $2)
		`
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			r.logger.With(ctx).Errorf("rollback persist: %v", rbErr)
		}
	}()

	if _, err = tx.ExecContext(ctx, deleteAll); err != nil {
		return fmt.Errorf("persist with query (%s): %w", formatQuery(deleteAll), classify(err))
	}

	for i, e := range entries {
		if _, err = tx.ExecContext(ctx, insert, i, e.URL); err != nil {
			return fmt.Errorf("persist with query (%s): %w", formatQuery(insert), classify(err))
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit persist: %w", classify(err))
	}

	return nil
}

// GetByIndex returns the entry at index.
// If no row holds the index, it returns ErrNotFound.
func (r *EntryRepository) GetByIndex(ctx context.Context, index int) (*models.Entry, error) {
	const q = `
		SELECT url
		FROM entries
		WHERE idx = $1
	`

	if index < 0 {
		return nil, fmt.Errorf("index %d: %w", index, errs.ErrNotFound)
	}

	e := new(models.Entry)
	err := r.db.QueryRowContext(ctx, q, index).Scan(&e.URL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("index %d: %w", index, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("get entry with query (%s): %w", formatQuery(q), classify(err))
	}

	return e, nil
}

// Ping checks the database connectivity.
func (r *EntryRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database handle.
func (r *EntryRepository) Close() error {
	return r.db.Close()
}

// classify maps write races reported by Postgres to ErrConflict
// and adds the Postgres details to every other error.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation, pgerrcode.SerializationFailure:
		return fmt.Errorf("%w: %s", errs.ErrConflict, pgErr.Message)
	}
	return fmt.Errorf("SQL error: %s, Detail: %s, Where: %s, Code: %s, SQLState: %s: %w",
		pgErr.Message, pgErr.Detail, pgErr.Where, pgErr.Code, pgErr.SQLState(), err)
}

// formatQuery removes tabs and replaces newlines with spaces in the given query string.
func formatQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}
