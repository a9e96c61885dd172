package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/studyslots/internal/domain"
)

// ErrNotFound is returned when a task lookup matches no stored task.
var ErrNotFound = errors.New("not found")

// TaskStore reads and writes the whole task collection. Load never fails on
// absent or malformed data; it returns what it could read, possibly nothing.
// Save replaces the stored collection and keeps its order. GetByID wraps
// ErrNotFound when no task has the id.
type TaskStore interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Load(ctx context.Context) ([]*domain.Task, error)
	Save(ctx context.Context, tasks []*domain.Task) error
}

// StoreTx runs fn against a TaskStore so that every Load and Save inside it
// behaves as one atomic step. A returned error discards the Saves.
type StoreTx interface {
	WithinStore(ctx context.Context, fn func(ctx context.Context, store TaskStore) error) error
}
