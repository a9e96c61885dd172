package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/studyslots/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertTask = `INSERT INTO tasks (id, title, duration_min, due_date, created_at, updated_at)
	VALUES (?, ?, 30, '2025-03-10', '2025-03-01T00:00:00Z', '2025-03-01T00:00:00Z')`

func newUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func taskTitle(t *testing.T, uow db.UnitOfWork, id string) (string, bool) {
	t.Helper()
	var title string
	var found bool
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		err := tx.QueryRowContext(ctx, `SELECT title FROM tasks WHERE id = ?`, id).Scan(&title)
		found = err == nil
		return nil
	})
	require.NoError(t, err)
	return title, found
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, insertTask, "t1", "Read chapter 3")
		return err
	})
	require.NoError(t, err)

	title, found := taskTitle(t, uow, "t1")
	assert.True(t, found)
	assert.Equal(t, "Read chapter 3", title)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := newUoW(t)
	sentinel := errors.New("save failed")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, insertTask, "t2", "Lab report"); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, found := taskTitle(t, uow, "t2")
	assert.False(t, found, "insert must be rolled back")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := newUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_, _ = tx.ExecContext(ctx, insertTask, "t3", "Essay")
			panic("boom")
		})
	})

	_, found := taskTitle(t, uow, "t3")
	assert.False(t, found, "insert must be rolled back after panic")
}

// countingDBTX counts writes passed through RunTx's wrap hook.
type countingDBTX struct {
	db.DBTX
	execs int
}

func (c *countingDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.execs++
	return c.DBTX.ExecContext(ctx, query, args...)
}

func TestRunTx_WrapSeesEveryWrite(t *testing.T) {
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	var counter *countingDBTX
	wrap := func(tx *sql.Tx) db.DBTX {
		counter = &countingDBTX{DBTX: tx}
		return counter
	}
	err = db.RunTx(context.Background(), database, wrap, func(ctx context.Context, tx db.DBTX) error {
		for _, id := range []string{"a", "b"} {
			if _, err := tx.ExecContext(ctx, insertTask, id, "Task "+id); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, counter.execs)

	_, found := taskTitle(t, db.NewSQLiteUnitOfWork(database), "b")
	assert.True(t, found)
}
