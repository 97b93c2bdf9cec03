package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sbilibin2017/accounting-marathon/internal/logger"
	"github.com/sbilibin2017/accounting-marathon/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	prev := logger.Log
	logger.Log = zap.New(core).Sugar()
	t.Cleanup(func() { logger.Log = prev })
	return logs
}

func TestResultWriteRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO results (user_id, score, time_taken_seconds, created_at)")).
		WithArgs(int64(3), 14, 93.41).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	id, err := NewResultWriteRepository(db).Save(context.Background(), 3, 14, 93.41)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultWriteRepository_Save_Error(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO results")).WillReturnError(errors.New("disk full"))

	id, err := NewResultWriteRepository(db).Save(context.Background(), 3, 14, 93.41)
	assert.Error(t, err)
	assert.Zero(t, id)
}

func TestResultRepositories_LogFailedQueries(t *testing.T) {
	t.Run("save", func(t *testing.T) {
		logs := observeLogs(t)
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO results")).WillReturnError(errors.New("disk full"))

		_, err := NewResultWriteRepository(db).Save(context.Background(), 3, 14, 93.41)
		require.Error(t, err)

		assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
		entries := logs.FilterMessage("query executed").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "disk full", fields["error"])
		assert.Contains(t, fields["query"], "INSERT INTO results (user_id, score, time_taken_seconds, created_at)")
		assert.Equal(t, []any{int64(3), 14, 93.41}, fields["args"])
	})

	t.Run("top", func(t *testing.T) {
		logs := observeLogs(t)
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1")).WillReturnError(errors.New("timeout"))

		_, err := NewResultReadRepository(db).Top(context.Background(), 10)
		require.Error(t, err)

		assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
		entries := logs.FilterMessage("query executed").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "timeout", fields["error"])
		assert.Equal(t, []any{10}, fields["args"])
	})
}

func TestResultReadRepository_Top(t *testing.T) {
	query := regexp.QuoteMeta("ORDER BY r.score DESC, r.time_taken_seconds ASC, r.id ASC LIMIT $1")

	t.Run("rows", func(t *testing.T) {
		db, mock := newMockDB(t)
		rows := sqlmock.NewRows([]string{"email", "score", "time_taken_seconds"}).
			AddRow("bob@example.com", 5, 90.0).
			AddRow("alice@example.com", 5, 120.0)
		mock.ExpectQuery(query).WithArgs(10).WillReturnRows(rows)

		entries, err := NewResultReadRepository(db).Top(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, []models.LeaderboardEntry{
			{Email: "bob@example.com", Score: 5, TimeTakenSeconds: 90},
			{Email: "alice@example.com", Score: 5, TimeTakenSeconds: 120},
		}, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty ledger", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"email", "score", "time_taken_seconds"}))

		entries, err := NewResultReadRepository(db).Top(context.Background(), 10)
		require.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})

	t.Run("store error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WillReturnError(errors.New("timeout"))

		entries, err := NewResultReadRepository(db).Top(context.Background(), 10)
		assert.Error(t, err)
		assert.Nil(t, entries)
	})
}

func TestMigrate(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS results")).WillReturnError(errors.New("permission denied"))

	err := Migrate(context.Background(), db)
	assert.ErrorContains(t, err, "migrate: permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}
