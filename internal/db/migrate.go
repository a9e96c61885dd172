package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillPosition(db); err != nil {
		return fmt.Errorf("backfilling task positions: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id             TEXT PRIMARY KEY,
		title          TEXT NOT NULL,
		subject        TEXT NOT NULL DEFAULT '',
		duration_min   INTEGER NOT NULL CHECK(duration_min >= 0),
		due_date       TEXT NOT NULL,
		priority       TEXT NOT NULL DEFAULT 'medium'
		               CHECK(priority IN ('low','medium','high')),
		completed      INTEGER NOT NULL DEFAULT 0,
		scheduled_date TEXT,
		scheduled_slot TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	// v2: explicit collection order. Earlier databases relied on rowid.
	`ALTER TABLE tasks ADD COLUMN position INTEGER NOT NULL DEFAULT -1`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_position ON tasks(position)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_scheduled_date ON tasks(scheduled_date)`,
}

// migrateBackfillPosition numbers rows that predate the position column in
// rowid order, after any rows that already carry a position.
func migrateBackfillPosition(db *sql.DB) error {
	ctx := context.Background()

	var pending int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE position < 0`).Scan(&pending); err != nil {
		return fmt.Errorf("counting unpositioned tasks: %w", err)
	}
	if pending == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting backfill transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM tasks`).Scan(&next); err != nil {
		return fmt.Errorf("loading next position: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `SELECT id FROM tasks WHERE position < 0 ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("listing unpositioned tasks: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scanning task id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, `UPDATE tasks SET position = ? WHERE id = ?`, next, id); err != nil {
			return fmt.Errorf("updating position for %s: %w", id, err)
		}
		next++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing backfill: %w", err)
	}
	committed = true
	return nil
}
