package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyslots/internal/domain"
	"github.com/alexanderramin/studyslots/internal/scheduler"
)

const usageBarWidth = 12

// FormatSchedule renders every day that has at least one task, in date
// order, with each non-empty slot and its tasks in placement order.
func FormatSchedule(s *scheduler.Schedule) string {
	var b strings.Builder
	b.WriteString(Header("Schedule"))
	b.WriteString("\n")

	shown := 0
	for _, key := range s.Dates() {
		day := s.Day(key)
		if day.TaskCount() == 0 {
			continue
		}
		shown++
		b.WriteString("\n")
		b.WriteString(FormatDay(day))
	}
	if shown == 0 {
		b.WriteString("\n")
		b.WriteString(Dim("Nothing scheduled yet. Add a task and run 'studyslots schedule'."))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatDay renders one day: a dated heading, then each slot holding tasks.
func FormatDay(day *scheduler.DaySchedule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(LongDate(day.Date)), Dim(FormatMinutes(day.LoadMin)+" planned"))
	for _, load := range day.Slots {
		if len(load.Tasks) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s %s  %s\n",
			StyleBlue.Render(load.Slot.Name),
			Dim(HourRange(load.Slot.StartHour, load.Slot.EndHour)),
			RenderUsage(load.UsedMin, load.Slot.CapacityMin, usageBarWidth),
		)
		for _, t := range load.Tasks {
			fmt.Fprintf(&b, "    %s\n", TaskLine(t))
		}
	}
	return b.String()
}

// TaskLine renders a task as "title  duration - subject  ● priority", with a
// check mark and strikethrough once completed.
func TaskLine(t *domain.Task) string {
	title := Bold(t.Title)
	mark := "  "
	if t.Completed {
		title = StyleDone.Render(t.Title)
		mark = StyleGreen.Render("✔ ")
	}
	detail := Dim(FormatDuration(t.DurationMin) + " - " + t.DisplaySubject())
	return fmt.Sprintf("%s%s  %s  %s", mark, title, detail, PriorityBadge(t.Priority))
}

// FormatUnscheduled lists incomplete tasks without a placement and why each
// one could not be placed.
func FormatUnscheduled(tasks []*domain.Task, catalog domain.SlotCatalog, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Unscheduled"))
	b.WriteString("\n")
	if len(tasks) == 0 {
		b.WriteString(StyleGreen.Render("All tasks have been scheduled!"))
		b.WriteString("\n")
		return b.String()
	}
	for _, t := range tasks {
		fmt.Fprintf(&b, "%s %s\n", TruncID(t.ID), TaskLine(t))
		fmt.Fprintf(&b, "           %s %s  %s\n",
			Dim("due"), RelativeDueStyled(t.DueDate, now), Dim(UnscheduledReason(t, catalog, now)))
	}
	return b.String()
}

// UnscheduledReason gives a short explanation for a task that has no placement.
func UnscheduledReason(t *domain.Task, catalog domain.SlotCatalog, now time.Time) string {
	switch {
	case t.DurationMin > catalog.MaxCapacity():
		return fmt.Sprintf("longer than the largest slot (%s)", FormatDuration(catalog.MaxCapacity()))
	case t.DueDate.Before(domain.CivilDate(now)):
		return "past its due date"
	case t.IsScheduled():
		return ""
	default:
		return "no slot has room before the due date"
	}
}

// FormatBuildSummary reports the outcome of a build in one line.
func FormatBuildSummary(placed, unscheduled int) string {
	parts := []string{StyleGreen.Render(fmt.Sprintf("Placed %s.", plural(placed, "task")))}
	if unscheduled > 0 {
		parts = append(parts, StyleYellow.Render(fmt.Sprintf("%d still unscheduled.", unscheduled)))
	} else {
		parts = append(parts, Dim("Nothing left to place."))
	}
	return strings.Join(parts, " ")
}
