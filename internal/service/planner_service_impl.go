package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studyslots/internal/clock"
	"github.com/alexanderramin/studyslots/internal/domain"
	"github.com/alexanderramin/studyslots/internal/repository"
	"github.com/alexanderramin/studyslots/internal/scheduler"
	"github.com/alexanderramin/studyslots/internal/tracing"
)

type plannerService struct {
	store    repository.StoreTx
	builder  *scheduler.Builder
	clock    clock.Clock
	observer UseCaseObserver
}

func NewPlannerService(
	store repository.StoreTx,
	builder *scheduler.Builder,
	clk clock.Clock,
	observers ...UseCaseObserver,
) PlannerService {
	if clk == nil {
		clk = clock.System{}
	}
	return &plannerService{
		store:    store,
		builder:  builder,
		clock:    clk,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *plannerService) Catalog() domain.SlotCatalog {
	return s.builder.Catalog
}

// track opens a span for a use case and returns the function that closes it
// and reports the event.
func (s *plannerService) track(ctx context.Context, name string, fields map[string]any) (context.Context, func(error)) {
	startedAt := time.Now()
	ctx, span := tracing.StartSpan(ctx, "planner."+name)
	return ctx, func(err error) {
		span.SetAttributes(fields)
		span.End(err)
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}
}

func (s *plannerService) Build(ctx context.Context) (result *BuildResult, err error) {
	fields := map[string]any{}
	ctx, done := s.track(ctx, "build", fields)
	defer func() { done(err) }()

	err = s.store.WithinStore(ctx, func(ctx context.Context, store repository.TaskStore) error {
		tasks, err := store.Load(ctx)
		if err != nil {
			return fmt.Errorf("loading tasks: %w", err)
		}
		result, err = s.buildAndSave(ctx, store, tasks)
		return err
	})
	if err != nil {
		return nil, err
	}
	recordBuild(fields, result)
	return result, nil
}

func (s *plannerService) Add(ctx context.Context, in domain.TaskInput) (task *domain.Task, err error) {
	fields := map[string]any{"title": in.Title}
	ctx, done := s.track(ctx, "add", fields)
	defer func() { done(err) }()

	task, err = domain.NewTask(in, s.clock.Now())
	if err != nil {
		return nil, err
	}
	fields["task_id"] = task.ID

	err = s.store.WithinStore(ctx, func(ctx context.Context, store repository.TaskStore) error {
		tasks, err := store.Load(ctx)
		if err != nil {
			return fmt.Errorf("loading tasks: %w", err)
		}
		fields["tasks"] = len(tasks) + 1
		if err := store.Save(ctx, append(tasks, task)); err != nil {
			return fmt.Errorf("saving tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *plannerService) ToggleComplete(ctx context.Context, id string) (task *domain.Task, result *BuildResult, err error) {
	fields := map[string]any{"task_id": id}
	ctx, done := s.track(ctx, "toggle-complete", fields)
	defer func() { done(err) }()

	err = s.store.WithinStore(ctx, func(ctx context.Context, store repository.TaskStore) error {
		tasks, idx, err := loadWith(ctx, store, id)
		if err != nil || idx < 0 {
			return err
		}
		task = tasks[idx]
		task.ToggleComplete(s.clock.Now())
		result, err = s.buildAndSave(ctx, store, tasks)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	fields["found"] = task != nil
	if task != nil {
		fields["completed"] = task.Completed
		recordBuild(fields, result)
	}
	return task, result, nil
}

func (s *plannerService) Delete(ctx context.Context, id string) (task *domain.Task, result *BuildResult, err error) {
	fields := map[string]any{"task_id": id}
	ctx, done := s.track(ctx, "delete", fields)
	defer func() { done(err) }()

	err = s.store.WithinStore(ctx, func(ctx context.Context, store repository.TaskStore) error {
		tasks, idx, err := loadWith(ctx, store, id)
		if err != nil || idx < 0 {
			return err
		}
		task = tasks[idx]
		remaining := make([]*domain.Task, 0, len(tasks)-1)
		remaining = append(remaining, tasks[:idx]...)
		remaining = append(remaining, tasks[idx+1:]...)
		result, err = s.buildAndSave(ctx, store, remaining)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	fields["found"] = task != nil
	if task != nil {
		recordBuild(fields, result)
	}
	return task, result, nil
}

func (s *plannerService) Get(ctx context.Context, id string) (*domain.Task, error) {
	var task *domain.Task
	err := s.store.WithinStore(ctx, func(ctx context.Context, store repository.TaskStore) error {
		var err error
		task, err = store.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *plannerService) List(ctx context.Context) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := s.store.WithinStore(ctx, func(ctx context.Context, store repository.TaskStore) error {
		var err error
		tasks, err = store.Load(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	return tasks, nil
}

// Unscheduled returns incomplete tasks without a placement, in collection order.
func (s *plannerService) Unscheduled(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*domain.Task
	for _, t := range tasks {
		if t.NeedsPlacement() {
			out = append(out, t)
		}
	}
	return out, nil
}

// buildAndSave runs the builder over tasks, stamps every task whose placement
// changed, and persists the whole collection.
func (s *plannerService) buildAndSave(ctx context.Context, store repository.TaskStore, tasks []*domain.Task) (*BuildResult, error) {
	now := s.clock.Now()
	res := s.builder.Build(tasks, now)

	stamp := now.UTC()
	for _, t := range res.Reopened {
		t.UpdatedAt = stamp
	}
	for _, t := range res.Placed {
		t.UpdatedAt = stamp
	}

	if err := store.Save(ctx, tasks); err != nil {
		return nil, fmt.Errorf("saving tasks: %w", err)
	}
	return &BuildResult{
		GeneratedAt: now,
		Schedule:    res.Schedule,
		Tasks:       tasks,
		Placed:      res.Placed,
		Unscheduled: res.Unscheduled,
		Reopened:    res.Reopened,
	}, nil
}

func recordBuild(fields map[string]any, result *BuildResult) {
	if result == nil {
		return
	}
	fields["tasks"] = len(result.Tasks)
	fields["placed"] = len(result.Placed)
	fields["unscheduled"] = len(result.Unscheduled)
	if len(result.Reopened) > 0 {
		fields["reopened"] = len(result.Reopened)
	}
}

// loadWith loads the collection and locates id in it. An unknown id yields
// index -1 and no error.
func loadWith(ctx context.Context, store repository.TaskStore, id string) ([]*domain.Task, int, error) {
	if _, err := store.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, -1, nil
		}
		return nil, -1, fmt.Errorf("looking up task: %w", err)
	}
	tasks, err := store.Load(ctx)
	if err != nil {
		return nil, -1, fmt.Errorf("loading tasks: %w", err)
	}
	return tasks, indexOf(tasks, id), nil
}

func indexOf(tasks []*domain.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
