package testutil

import (
	"time"

	"github.com/alexanderramin/studyslots/internal/domain"
	"github.com/google/uuid"
)

// FixedNow is the reference instant for fixtures: Monday 2025-03-10 08:00 UTC,
// before any default slot has ended.
var FixedNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

// Day returns the civil date offset days from FixedNow.
func Day(offset int) time.Time {
	return domain.CivilDate(FixedNow).AddDate(0, 0, offset)
}

type TaskOption func(*domain.Task)

func WithDuration(min int) TaskOption {
	return func(t *domain.Task) {
		t.DurationMin = min
	}
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = domain.CivilDate(d)
	}
}

func WithDueIn(days int) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = Day(days)
	}
}

func WithSubject(s string) TaskOption {
	return func(t *domain.Task) {
		t.Subject = s
	}
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithCompleted() TaskOption {
	return func(t *domain.Task) {
		t.Completed = true
	}
}

func WithPlacement(date time.Time, slot domain.SlotKey) TaskOption {
	return func(t *domain.Task) {
		t.Place(date, slot)
	}
}

func WithID(id string) TaskOption {
	return func(t *domain.Task) {
		t.ID = id
	}
}

// NewTestTask returns a 30-minute medium-priority task due on FixedNow's date.
func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	now := FixedNow.UTC()
	t := &domain.Task{
		ID:          uuid.New().String(),
		Title:       title,
		DurationMin: 30,
		DueDate:     Day(0),
		Priority:    domain.PriorityMedium,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
