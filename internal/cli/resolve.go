package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/studyslots/internal/repository"
)

// resolveTaskID resolves a task identifier which can be a full ID or a unique
// ID prefix, as printed by "list".
func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("task ID is required")
	}

	task, err := app.Planner.Get(ctx, input)
	switch {
	case err == nil:
		return task.ID, nil
	case !errors.Is(err, repository.ErrNotFound):
		return "", err
	}

	tasks, err := app.Planner.List(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no task matching %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous task ID %q matches %d tasks", input, len(matches))
	}
}
