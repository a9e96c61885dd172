package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyslots/internal/db"
	"github.com/alexanderramin/studyslots/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, title, subject, duration_min, due_date, priority, completed,
		scheduled_date, scheduled_slot, created_at, updated_at`

// errMalformedRow marks a row that cannot become a task. List skips such rows.
var errMalformedRow = errors.New("malformed task row")

// SQLiteTaskRepo implements TaskStore on the tasks table.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a repo bound to a connection or transaction.
func NewSQLiteTaskRepo(tx db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: tx}
}

var _ TaskStore = (*SQLiteTaskRepo)(nil)

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, errMalformedRow) {
			return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return t, nil
}

// List returns tasks in collection order. Rows that cannot be parsed, or that
// NewTask would reject for a blank title or non-positive duration, are skipped.
func (r *SQLiteTaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY position, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if errors.Is(err, errMalformedRow) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// Load returns the full collection.
func (r *SQLiteTaskRepo) Load(ctx context.Context) ([]*domain.Task, error) {
	return r.List(ctx)
}

// Save makes the table hold exactly tasks, in slice order. Existing rows are
// updated in place; rows whose id is absent from tasks are deleted.
func (r *SQLiteTaskRepo) Save(ctx context.Context, tasks []*domain.Task) error {
	ids := make([]any, 0, len(tasks))
	for i, t := range tasks {
		_, err := r.db.ExecContext(ctx, `INSERT INTO tasks (id, title, subject, duration_min, due_date,
			priority, completed, scheduled_date, scheduled_slot, created_at, updated_at, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				subject = excluded.subject,
				duration_min = excluded.duration_min,
				due_date = excluded.due_date,
				priority = excluded.priority,
				completed = excluded.completed,
				scheduled_date = excluded.scheduled_date,
				scheduled_slot = excluded.scheduled_slot,
				updated_at = excluded.updated_at,
				position = excluded.position`,
			t.ID,
			t.Title,
			t.Subject,
			t.DurationMin,
			t.DueDate.Format(dateLayout),
			string(t.Priority),
			boolToInt(t.Completed),
			nullableTimeToString(t.ScheduledDate, dateLayout),
			string(t.ScheduledSlot),
			stamp(t.CreatedAt),
			stamp(t.UpdatedAt),
			i,
		)
		if err != nil {
			return fmt.Errorf("saving task %s: %w", t.ID, err)
		}
		ids = append(ids, t.ID)
	}

	query := `DELETE FROM tasks`
	if len(ids) > 0 {
		query += ` WHERE id NOT IN (?` + strings.Repeat(`, ?`, len(ids)-1) + `)`
	}
	if _, err := r.db.ExecContext(ctx, query, ids...); err != nil {
		return fmt.Errorf("pruning removed tasks: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var dueDateStr, priorityStr, slotStr, createdAtStr, updatedAtStr string
	var scheduledStr sql.NullString
	var completedInt int

	err := row.Scan(
		&t.ID, &t.Title, &t.Subject, &t.DurationMin, &dueDateStr, &priorityStr, &completedInt,
		&scheduledStr, &slotStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}
	return populateTask(&t, dueDateStr, priorityStr, slotStr, scheduledStr, completedInt, createdAtStr, updatedAtStr)
}

// populateTask fills in parsed fields on a Task after scanning raw strings.
func populateTask(
	t *domain.Task,
	dueDateStr, priorityStr, slotStr string,
	scheduledStr sql.NullString,
	completedInt int,
	createdAtStr, updatedAtStr string,
) (*domain.Task, error) {
	if strings.TrimSpace(t.Title) == "" || t.DurationMin <= 0 {
		return nil, fmt.Errorf("task %s title %q duration %d: %w", t.ID, t.Title, t.DurationMin, errMalformedRow)
	}
	due, err := time.Parse(dateLayout, dueDateStr)
	if err != nil {
		return nil, fmt.Errorf("task %s due date %q: %w", t.ID, dueDateStr, errMalformedRow)
	}
	t.DueDate = due
	t.Priority = domain.ParsePriority(priorityStr)
	t.Completed = intToBool(completedInt)
	t.ScheduledDate = parseNullableTime(scheduledStr, dateLayout)
	if t.ScheduledDate != nil {
		t.ScheduledSlot = domain.SlotKey(slotStr)
	}
	t.CreatedAt = parseTimestamp(createdAtStr)
	t.UpdatedAt = parseTimestamp(updatedAtStr)
	return t, nil
}

func stamp(t time.Time) string {
	if t.IsZero() {
		t = nowUTC()
	}
	return t.UTC().Format(time.RFC3339)
}
