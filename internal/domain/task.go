package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidTask is wrapped by every validation failure from NewTask.
var ErrInvalidTask = errors.New("invalid task")

// DefaultSubject is shown for tasks created without a subject.
const DefaultSubject = "General"

type Task struct {
	ID          string
	Title       string
	Subject     string
	DurationMin int
	DueDate     time.Time
	Priority    Priority
	Completed   bool

	// Placement; both set or both empty.
	ScheduledDate *time.Time
	ScheduledSlot SlotKey

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskInput carries the user-supplied fields for a new task.
type TaskInput struct {
	Title       string
	Subject     string
	DurationMin int
	DueDate     *time.Time
	Priority    Priority
}

// DurationFromParts sums an hours + minutes entry into minutes.
func DurationFromParts(hours, minutes int) int {
	return hours*60 + minutes
}

// NewTask validates in and returns an unscheduled, incomplete task.
func NewTask(in TaskInput, now time.Time) (*Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidTask)
	}
	if in.DueDate == nil || in.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", ErrInvalidTask)
	}
	if in.DurationMin <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidTask, in.DurationMin)
	}
	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !ValidPriorities[string(priority)] {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidTask, priority)
	}
	now = now.UTC()
	return &Task{
		ID:          uuid.New().String(),
		Title:       title,
		Subject:     strings.TrimSpace(in.Subject),
		DurationMin: in.DurationMin,
		DueDate:     CivilDate(*in.DueDate),
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsScheduled reports whether the task carries a placement.
func (t *Task) IsScheduled() bool {
	return t.ScheduledDate != nil
}

// NeedsPlacement reports whether a build should try to place the task.
func (t *Task) NeedsPlacement() bool {
	return !t.Completed && !t.IsScheduled()
}

// Place records the task's placement on date in slot.
func (t *Task) Place(date time.Time, slot SlotKey) {
	d := CivilDate(date)
	t.ScheduledDate = &d
	t.ScheduledSlot = slot
}

// ClearPlacement removes any placement so the next build reconsiders the task.
func (t *Task) ClearPlacement() {
	t.ScheduledDate = nil
	t.ScheduledSlot = ""
}

// ToggleComplete flips completion and clears placement in both directions.
func (t *Task) ToggleComplete(now time.Time) {
	t.Completed = !t.Completed
	t.ClearPlacement()
	t.UpdatedAt = now.UTC()
}

// DisplaySubject returns the subject, or DefaultSubject when empty.
func (t *Task) DisplaySubject() string {
	if t.Subject == "" {
		return DefaultSubject
	}
	return t.Subject
}
