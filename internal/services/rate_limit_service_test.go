package services

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLoginRateLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	service := NewRateLimitService(&mockDatabase{db: db}, 5, 15*time.Minute)

	countRows := func(count int, last time.Time) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"count", "max"}).AddRow(count, last)
	}

	t.Run("Under The Limit", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT`).
			WithArgs("admin", "username", sqlmock.AnyArg()).
			WillReturnRows(countRows(2, time.Now()))
		mock.ExpectQuery(`SELECT COUNT`).
			WithArgs("10.0.0.1", "ip", sqlmock.AnyArg()).
			WillReturnRows(countRows(1, time.Now()))

		assert.NoError(t, service.CheckLoginRateLimit("admin", "10.0.0.1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Username Over The Limit", func(t *testing.T) {
		lastAttempt := time.Now()
		mock.ExpectQuery(`SELECT COUNT`).
			WithArgs("admin", "username", sqlmock.AnyArg()).
			WillReturnRows(countRows(5, lastAttempt))

		err := service.CheckLoginRateLimit("admin", "10.0.0.1")
		require.Error(t, err)

		rateErr, ok := err.(*RateLimitError)
		require.True(t, ok)
		assert.Equal(t, "username", rateErr.Type)
		assert.WithinDuration(t, lastAttempt.Add(15*time.Minute), rateErr.RetryAfter, time.Second)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("IP Over The Limit", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT`).
			WithArgs("admin", "username", sqlmock.AnyArg()).
			WillReturnRows(countRows(0, time.Now()))
		mock.ExpectQuery(`SELECT COUNT`).
			WithArgs("10.0.0.1", "ip", sqlmock.AnyArg()).
			WillReturnRows(countRows(7, time.Now()))

		err := service.CheckLoginRateLimit("admin", "10.0.0.1")
		require.Error(t, err)

		rateErr, ok := err.(*RateLimitError)
		require.True(t, ok)
		assert.Equal(t, "ip", rateErr.Type)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT`).
			WithArgs("admin", "username", sqlmock.AnyArg()).
			WillReturnError(fmt.Errorf("database error"))

		err := service.CheckLoginRateLimit("admin", "10.0.0.1")
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "Too many")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRecordFailedLogin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	service := NewRateLimitService(&mockDatabase{db: db}, 5, 15*time.Minute)

	t.Run("Records Both Identifiers", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO login_attempts`).
			WithArgs("admin", "username").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT INTO login_attempts`).
			WithArgs("10.0.0.1", "ip").
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, service.RecordFailedLogin("admin", "10.0.0.1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty IP Skipped", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO login_attempts`).
			WithArgs("admin", "username").
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, service.RecordFailedLogin("admin", ""))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPruneOldAttempts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	service := NewRateLimitService(&mockDatabase{db: db}, 5, 15*time.Minute)

	mock.ExpectExec(`DELETE FROM login_attempts WHERE created_at`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 12))

	pruned, err := service.PruneOldAttempts(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(12), pruned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Mock database implementation for testing
type mockDatabase struct {
	db *sql.DB
}

func (m *mockDatabase) Get(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Get not implemented in mock")
}

func (m *mockDatabase) Select(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Select not implemented in mock")
}

func (m *mockDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.Query(query, args...)
}

func (m *mockDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *mockDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *mockDatabase) Close() error {
	return m.db.Close()
}

func (m *mockDatabase) Ping() error {
	return m.db.Ping()
}
