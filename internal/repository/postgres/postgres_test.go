package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/KretovDmitry/shorturl/internal/errs"
	"github.com/KretovDmitry/shorturl/internal/logger"
	"github.com/KretovDmitry/shorturl/internal/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	loadQuery   = `SELECT url\s+FROM entries\s+ORDER BY idx`
	getQuery    = `SELECT url\s+FROM entries\s+WHERE idx = \$1`
	deleteQuery = `DELETE FROM entries`
	insertQuery = `INSERT INTO entries\s+\(idx, url\)\s+VALUES\s+\(\$1, \$2\)`
)

func newTestRepository(t *testing.T) (*EntryRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l, _ := logger.NewForTest()
	r, err := NewEntryRepository(db, l)
	require.NoError(t, err)

	return r, mock
}

func TestNewEntryRepository(t *testing.T) {
	l, _ := logger.NewForTest()

	_, err := NewEntryRepository(nil, l)
	assert.ErrorIs(t, err, errs.ErrNilDependency)

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = NewEntryRepository(db, nil)
	assert.ErrorIs(t, err, errs.ErrNilDependency)
}

func TestLoad(t *testing.T) {
	r, mock := newTestRepository(t)

	mock.ExpectQuery(loadQuery).
		WillReturnRows(sqlmock.NewRows([]string{"url"}).
			AddRow("https://www.google.com/").
			AddRow("https://go.dev/"))

	entries, err := r.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Entry{
		{URL: "https://www.google.com/"},
		{URL: "https://go.dev/"},
	}, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_Empty(t *testing.T) {
	r, mock := newTestRepository(t)

	mock.ExpectQuery(loadQuery).WillReturnRows(sqlmock.NewRows([]string{"url"}))

	entries, err := r.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestLoad_Error(t *testing.T) {
	r, mock := newTestRepository(t)

	mock.ExpectQuery(loadQuery).WillReturnError(errors.New("connection reset"))

	_, err := r.Load(context.Background())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersist(t *testing.T) {
	r, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(deleteQuery).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertQuery).WithArgs(0, "a.com").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertQuery).WithArgs(1, "b.com").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := r.Persist(context.Background(), []models.Entry{{URL: "a.com"}, {URL: "b.com"}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersist_Conflict(t *testing.T) {
	r, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(deleteQuery).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(insertQuery).WithArgs(0, "a.com").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, Message: "duplicate key"})
	mock.ExpectRollback()

	err := r.Persist(context.Background(), []models.Entry{{URL: "a.com"}})
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersist_OtherPgError(t *testing.T) {
	r, mock := newTestRepository(t)

	pgErr := &pgconn.PgError{Code: pgerrcode.UndefinedTable, Message: "no entries"}
	mock.ExpectBegin()
	mock.ExpectExec(deleteQuery).WillReturnError(pgErr)
	mock.ExpectRollback()

	err := r.Persist(context.Background(), nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errs.ErrConflict)
	assert.ErrorIs(t, err, pgErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIndex(t *testing.T) {
	r, mock := newTestRepository(t)

	mock.ExpectQuery(getQuery).WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"url"}).AddRow("https://go.dev/"))

	got, err := r.GetByIndex(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, &models.Entry{URL: "https://go.dev/"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIndex_NotFound(t *testing.T) {
	r, mock := newTestRepository(t)

	mock.ExpectQuery(getQuery).WithArgs(7).WillReturnError(sql.ErrNoRows)

	_, err := r.GetByIndex(context.Background(), 7)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	// negative indexes never reach the database
	_, err = r.GetByIndex(context.Background(), -1)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	l, _ := logger.NewForTest()
	r, err := NewEntryRepository(db, l)
	require.NoError(t, err)

	mock.ExpectPing()
	assert.NoError(t, r.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("down"))
	assert.Error(t, r.Ping(context.Background()))
}

func TestClose(t *testing.T) {
	r, mock := newTestRepository(t)

	mock.ExpectClose()
	require.NoError(t, r.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFormatQuery(t *testing.T) {
	assert.Equal(t, "SELECT url FROM entries WHERE idx = $1", formatQuery(`
		SELECT url
		FROM entries
		WHERE idx = $1
	`))
}
