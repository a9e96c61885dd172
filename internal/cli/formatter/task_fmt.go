package formatter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/studyslots/internal/domain"
)

// FormatTaskList renders the whole collection as a table in collection order.
func FormatTaskList(tasks []*domain.Task, catalog domain.SlotCatalog, now time.Time) string {
	if len(tasks) == 0 {
		return Dim("No tasks yet. Add one with 'studyslots add'.") + "\n"
	}
	headers := []string{"ID", "TITLE", "SUBJECT", "DURATION", "DUE", "PRIORITY", "STATUS"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			TruncID(t.ID),
			t.Title,
			t.DisplaySubject(),
			FormatMinutes(t.DurationMin),
			RelativeDueStyled(t.DueDate, now),
			PriorityBadge(t.Priority),
			TaskStatus(t, catalog),
		})
	}
	return RenderTable(headers, rows)
}

// TaskStatus summarizes completion and placement.
func TaskStatus(t *domain.Task, catalog domain.SlotCatalog) string {
	switch {
	case t.Completed:
		return StyleDim.Render("✔ Done")
	case t.IsScheduled():
		name := string(t.ScheduledSlot)
		if s, ok := catalog.Lookup(t.ScheduledSlot); ok {
			name = s.Name
		}
		return StyleGreen.Render(fmt.Sprintf("● %s %s", t.ScheduledDate.Format("Jan 2"), name))
	default:
		return StyleYellow.Render("○ Unscheduled")
	}
}

// FormatCatalog renders the slot catalog in catalog order.
func FormatCatalog(catalog domain.SlotCatalog) string {
	headers := []string{"KEY", "NAME", "HOURS", "CAPACITY"}
	rows := make([][]string, 0, len(catalog))
	total := 0
	for _, s := range catalog {
		total += s.CapacityMin
		rows = append(rows, []string{
			string(s.Key),
			s.Name,
			HourRange(s.StartHour, s.EndHour),
			strconv.Itoa(s.CapacityMin) + "m",
		})
	}
	return RenderTable(headers, rows) + Dim(fmt.Sprintf("Daily capacity: %s", FormatDuration(total))) + "\n"
}

// FormatTaskAdded confirms a new task.
func FormatTaskAdded(t *domain.Task) string {
	return fmt.Sprintf("%s %s %s\n", StyleGreen.Render("Added"), Bold(t.Title), Dim("("+TruncID(t.ID)+")"))
}

// FormatTaskToggled confirms a completion change.
func FormatTaskToggled(t *domain.Task) string {
	if t.Completed {
		return fmt.Sprintf("%s %s\n", StyleGreen.Render("Completed"), Bold(t.Title))
	}
	return fmt.Sprintf("%s %s\n", StyleYellow.Render("Reopened"), Bold(t.Title))
}

// FormatTaskDeleted confirms a removal.
func FormatTaskDeleted(t *domain.Task) string {
	return fmt.Sprintf("%s %s\n", StyleRed.Render("Deleted"), Bold(t.Title))
}
