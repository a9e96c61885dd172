package service

import (
	"context"
	"time"

	"github.com/alexanderramin/studyslots/internal/domain"
	"github.com/alexanderramin/studyslots/internal/scheduler"
)

// BuildResult is the outcome of a persisted schedule build.
type BuildResult struct {
	GeneratedAt time.Time
	Schedule    *scheduler.Schedule
	Tasks       []*domain.Task
	Placed      []*domain.Task
	Unscheduled []*domain.Task
	Reopened    []*domain.Task
}

// PlannerService drives the task collection and the schedule built from it.
// Every mutating call loads, mutates, builds and saves as one store transaction.
type PlannerService interface {
	Build(ctx context.Context) (*BuildResult, error)
	// Add validates and appends a task. It does not build.
	Add(ctx context.Context, in domain.TaskInput) (*domain.Task, error)
	// ToggleComplete flips completion, clears the placement and rebuilds.
	// An unknown id is a no-op returning nil values.
	ToggleComplete(ctx context.Context, id string) (*domain.Task, *BuildResult, error)
	// Delete removes a task and rebuilds. An unknown id is a no-op returning nil values.
	Delete(ctx context.Context, id string) (*domain.Task, *BuildResult, error)
	// Get returns the task with id, or an error wrapping repository.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	Unscheduled(ctx context.Context) ([]*domain.Task, error)
	Catalog() domain.SlotCatalog
}
