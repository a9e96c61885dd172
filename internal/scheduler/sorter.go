package scheduler

import (
	"sort"

	"github.com/alexanderramin/studyslots/internal/domain"
)

// SortByDueDate orders tasks earliest deadline first. Equal due dates keep
// their collection order, so the sort must stay stable.
func SortByDueDate(tasks []*domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].DueDate.Before(tasks[j].DueDate)
	})
}

// pendingTasks returns the tasks a build should try to place, in collection order.
func pendingTasks(tasks []*domain.Task) []*domain.Task {
	var out []*domain.Task
	for _, t := range tasks {
		if t.NeedsPlacement() {
			out = append(out, t)
		}
	}
	return out
}
