package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/studyslots/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildNow is a Monday morning before any slot has ended.
var buildNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return domain.CivilDate(buildNow).AddDate(0, 0, offset)
}

func newTask(title string, durationMin, dueOffset int) *domain.Task {
	return &domain.Task{
		ID:          title,
		Title:       title,
		DurationMin: durationMin,
		DueDate:     day(dueOffset),
		Priority:    domain.PriorityMedium,
	}
}

func placedTask(title string, durationMin, dayOffset int, slot domain.SlotKey) *domain.Task {
	t := newTask(title, durationMin, dayOffset)
	t.Place(day(dayOffset), slot)
	return t
}

// saturate returns placed tasks that fill every default slot on the given day.
func saturate(dayOffset int) []*domain.Task {
	var out []*domain.Task
	for _, s := range domain.DefaultCatalog() {
		out = append(out, placedTask(fmt.Sprintf("fill-%d-%s", dayOffset, s.Key), s.CapacityMin, dayOffset, s.Key))
	}
	return out
}

func requirePlacement(t *testing.T, task *domain.Task, dayOffset int, slot domain.SlotKey) {
	t.Helper()
	require.True(t, task.IsScheduled(), "task %s should be placed", task.Title)
	assert.Equal(t, domain.DateKey(day(dayOffset)), domain.DateKey(*task.ScheduledDate), "task %s date", task.Title)
	assert.Equal(t, slot, task.ScheduledSlot, "task %s slot", task.Title)
}

func TestBuild_HorizonHasSixtyEmptyDays(t *testing.T) {
	res := NewBuilder(domain.DefaultCatalog()).Build(nil, buildNow)

	require.Equal(t, DefaultHorizonDays, res.Schedule.Len())
	dates := res.Schedule.Dates()
	assert.Equal(t, "2025-03-10", dates[0])
	assert.Equal(t, domain.DateKey(day(59)), dates[len(dates)-1])

	for _, key := range dates {
		d := res.Schedule.Day(key)
		assert.Zero(t, d.LoadMin)
		require.Len(t, d.Slots, 3)
		for _, l := range d.Slots {
			assert.Empty(t, l.Tasks)
			assert.Zero(t, l.UsedMin)
		}
	}
}

func TestBuild_ScenarioA_SingleTaskDueToday(t *testing.T) {
	task := newTask("Read notes", 30, 0)

	res := NewBuilder(domain.DefaultCatalog()).Build([]*domain.Task{task}, buildNow)

	requirePlacement(t, task, 0, domain.SlotMorning)
	assert.Equal(t, []*domain.Task{task}, res.Placed)
	assert.Empty(t, res.Unscheduled)

	today := res.Schedule.DayOn(buildNow)
	assert.Equal(t, 30, today.LoadMin)
	assert.Equal(t, 30, today.Slot(domain.SlotMorning).UsedMin)
	assert.Equal(t, []*domain.Task{task}, today.Slot(domain.SlotMorning).Tasks)
}

func TestBuild_ScenarioA_SkipsSlotsThatEndedToday(t *testing.T) {
	task := newTask("Read notes", 30, 0)
	afternoon := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	NewBuilder(domain.DefaultCatalog()).Build([]*domain.Task{task}, afternoon)

	requirePlacement(t, task, 0, domain.SlotEvening)
}

func TestBuild_SlotEndingAtCurrentHourIsInactive(t *testing.T) {
	task := newTask("Read notes", 30, 0)
	atOne := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)

	NewBuilder(domain.DefaultCatalog()).Build([]*domain.Task{task}, atOne)

	requirePlacement(t, task, 0, domain.SlotEvening)
}

func TestBuild_AllSlotsEndedTodayMeansDueTodayIsUnplaceable(t *testing.T) {
	task := newTask("Late start", 30, 0)
	lateNight := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)

	res := NewBuilder(domain.DefaultCatalog()).Build([]*domain.Task{task}, lateNight)

	assert.False(t, task.IsScheduled())
	assert.Equal(t, []*domain.Task{task}, res.Unscheduled)
}

func TestBuild_ScenarioB_FallsThroughToNextSlot(t *testing.T) {
	existing := placedTask("Long lab", 230, 0, domain.SlotMorning)
	task := newTask("Quick quiz", 30, 0)

	res := NewBuilder(domain.DefaultCatalog()).Build([]*domain.Task{existing, task}, buildNow)

	requirePlacement(t, task, 0, domain.SlotEvening)
	today := res.Schedule.DayOn(buildNow)
	assert.Equal(t, 230, today.Slot(domain.SlotMorning).UsedMin)
	assert.Equal(t, 30, today.Slot(domain.SlotEvening).UsedMin)
	assert.Equal(t, 260, today.LoadMin)
}

func TestBuild_ScenarioC_PicksLeastLoadedDayNotFirstFeasible(t *testing.T) {
	var tasks []*domain.Task
	for d := 0; d <= 6; d++ {
		tasks = append(tasks, saturate(d)...)
	}
	tasks = append(tasks, placedTask("partial", 60, 7, domain.SlotMorning))
	task := newTask("Project draft", 90, 10)
	tasks = append(tasks, task)

	NewBuilder(domain.DefaultCatalog()).Build(tasks, buildNow)

	requirePlacement(t, task, 8, domain.SlotMorning)
}

func TestBuild_ScenarioC_WindowStartsSevenDaysBeforeDue(t *testing.T) {
	// Days 0-2 are empty but outside the window of a task due on day 10.
	task := newTask("Project draft", 90, 10)

	NewBuilder(domain.DefaultCatalog()).Build([]*domain.Task{task}, buildNow)

	requirePlacement(t, task, 3, domain.SlotMorning)
}

func TestBuild_ScenarioD_OversizedTaskNeverScheduled(t *testing.T) {
	task := newTask("All-day review", 300, 5)
	b := NewBuilder(domain.DefaultCatalog())
	tasks := []*domain.Task{task}

	for i := 0; i < 3; i++ {
		res := b.Build(tasks, buildNow)
		assert.False(t, task.IsScheduled())
		assert.Equal(t, []*domain.Task{task}, res.Unscheduled)
		assert.Empty(t, res.Placed)
	}
}

func TestBuild_ScenarioE_CompletedTaskFreesCapacity(t *testing.T) {
	b := NewBuilder(domain.DefaultCatalog())
	task := newTask("Essay", 240, 0)
	tasks := []*domain.Task{task}

	b.Build(tasks, buildNow)
	requirePlacement(t, task, 0, domain.SlotMorning)

	task.ToggleComplete(buildNow)
	res := b.Build(tasks, buildNow)
	assert.False(t, task.IsScheduled())
	assert.Empty(t, res.Unscheduled, "completed tasks are not reported as unscheduled")
	assert.Zero(t, res.Schedule.DayOn(buildNow).LoadMin)

	task.ToggleComplete(buildNow)
	assert.False(t, task.IsScheduled(), "reopened task waits for the next build")

	b.Build(tasks, buildNow)
	requirePlacement(t, task, 0, domain.SlotMorning)
}

func TestBuild_SpreadsLoadAcrossDays(t *testing.T) {
	a := newTask("A", 60, 2)
	b := newTask("B", 60, 2)
	c := newTask("C", 60, 2)

	NewBuilder(domain.DefaultCatalog()).Build([]*domain.Task{a, b, c}, buildNow)

	requirePlacement(t, a, 0, domain.SlotMorning)
	requirePlacement(t, b, 1, domain.SlotMorning)
	requirePlacement(t, c, 2, domain.SlotMorning)
}

func TestBuild_EarliestDeadlineChoosesFirst(t *testing.T) {
	later := newTask("later", 60, 3)
	sooner := newTask("sooner", 60, 1)

	res := NewBuilder(domain.DefaultCatalog()).Build([]*domain.Task{later, sooner}, buildNow)

	require.Len(t, res.Placed, 2)
	assert.Equal(t, sooner, res.Placed[0])
	requirePlacement(t, sooner, 0, domain.SlotMorning)
	// Day 0 now carries load; the later task moves to the next empty day.
	requirePlacement(t, later, 1, domain.SlotMorning)
}

func TestBuild_EqualDueDatesKeepCollectionOrder(t *testing.T) {
	catalog := domain.SlotCatalog{{Key: "solo", Name: "Solo", CapacityMin: 60, StartHour: 9, EndHour: 12}}
	b := &Builder{Catalog: catalog, HorizonDays: 1, LeadDays: 0}
	first := newTask("first", 60, 0)
	second := newTask("second", 60, 0)

	res := b.Build([]*domain.Task{first, second}, buildNow)

	assert.True(t, first.IsScheduled())
	assert.False(t, second.IsScheduled())
	assert.Equal(t, []*domain.Task{second}, res.Unscheduled)
}

func TestBuild_GreedyOrderingNeverStarvesEarlierDeadline(t *testing.T) {
	catalog := domain.SlotCatalog{{Key: "solo", Name: "Solo", CapacityMin: 60, StartHour: 9, EndHour: 12}}
	b := &Builder{Catalog: catalog, HorizonDays: 2, LeadDays: 7}
	// Day 1 is full, so only day 0 has room for one 60-minute task.
	blocker := placedTask("blocker", 60, 1, "solo")
	late := newTask("late", 60, 1)
	early := newTask("early", 60, 0)

	b.Build([]*domain.Task{blocker, late, early}, buildNow)

	requirePlacement(t, early, 0, "solo")
	assert.False(t, late.IsScheduled())
}

func TestBuild_OverdueTaskStaysUnscheduled(t *testing.T) {
	task := newTask("Missed", 30, -1)

	res := NewBuilder(domain.DefaultCatalog()).Build([]*domain.Task{task}, buildNow)

	assert.False(t, task.IsScheduled())
	assert.Equal(t, []*domain.Task{task}, res.Unscheduled)
}

func TestBuild_WindowBeyondHorizonIsSkipped(t *testing.T) {
	task := newTask("Far away", 30, 70)

	res := NewBuilder(domain.DefaultCatalog()).Build([]*domain.Task{task}, buildNow)

	assert.False(t, task.IsScheduled())
	assert.Equal(t, []*domain.Task{task}, res.Unscheduled)
	assert.Nil(t, res.Schedule.DayOn(day(70)))
}

func TestBuild_SeededDayBeyondHorizonIsUsable(t *testing.T) {
	anchor := placedTask("anchor", 30, 65, domain.SlotNight)
	task := newTask("Far away", 30, 70)

	res := NewBuilder(domain.DefaultCatalog()).Build([]*domain.Task{anchor, task}, buildNow)

	requirePlacement(t, task, 65, domain.SlotMorning)
	assert.Equal(t, 60, res.Schedule.DayOn(day(65)).LoadMin)
}

func TestBuild_SeedsPastPlacementsWithoutMovingThem(t *testing.T) {
	past := placedTask("yesterday", 45, -1, domain.SlotEvening)

	res := NewBuilder(domain.DefaultCatalog()).Build([]*domain.Task{past}, buildNow)

	requirePlacement(t, past, -1, domain.SlotEvening)
	yesterday := res.Schedule.DayOn(day(-1))
	require.NotNil(t, yesterday)
	assert.Equal(t, 45, yesterday.LoadMin)
	assert.Equal(t, DefaultHorizonDays+1, res.Schedule.Len())
}

func TestBuild_SeedsCompletedTaskWithLingeringPlacement(t *testing.T) {
	done := placedTask("done", 200, 0, domain.SlotMorning)
	done.Completed = true
	task := newTask("new", 60, 0)

	res := NewBuilder(domain.DefaultCatalog()).Build([]*domain.Task{done, task}, buildNow)

	assert.Equal(t, 200, res.Schedule.DayOn(buildNow).Slot(domain.SlotMorning).UsedMin)
	requirePlacement(t, task, 0, domain.SlotEvening)
}

func TestBuild_UnknownSlotKeyIsReopened(t *testing.T) {
	stray := placedTask("stray", 30, 2, "afternoon")

	res := NewBuilder(domain.DefaultCatalog()).Build([]*domain.Task{stray}, buildNow)

	assert.Equal(t, []*domain.Task{stray}, res.Reopened)
	requirePlacement(t, stray, 0, domain.SlotMorning)
}

func TestBuild_IdempotentOnPlacedTasks(t *testing.T) {
	b := NewBuilder(domain.DefaultCatalog())
	tasks := []*domain.Task{
		newTask("a", 120, 3),
		newTask("b", 200, 3),
		newTask("c", 90, 5),
		newTask("d", 60, 1),
	}
	b.Build(tasks, buildNow)

	before := placements(tasks)
	res := b.Build(tasks, buildNow)

	assert.Empty(t, res.Placed)
	assert.Equal(t, before, placements(tasks))
}

func TestBuild_ZeroValueBuilderUsesDefaults(t *testing.T) {
	b := &Builder{Catalog: domain.DefaultCatalog(), LeadDays: -1}
	task := newTask("x", 30, 10)

	res := b.Build([]*domain.Task{task}, buildNow)

	assert.Equal(t, DefaultHorizonDays, res.Schedule.Len())
	requirePlacement(t, task, 3, domain.SlotMorning)
}

func TestBuild_LocalClockDeterminesToday(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	// 22:30 local on March 9 is already March 10 in UTC.
	now := time.Date(2025, 3, 9, 22, 30, 0, 0, loc)
	task := &domain.Task{ID: "x", Title: "x", DurationMin: 30, DueDate: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)}

	res := NewBuilder(domain.DefaultCatalog()).Build([]*domain.Task{task}, now)

	assert.Equal(t, "2025-03-09", res.Schedule.Dates()[0])
	require.True(t, task.IsScheduled())
	assert.Equal(t, "2025-03-09", domain.DateKey(*task.ScheduledDate))
	assert.Equal(t, domain.SlotNight, task.ScheduledSlot)
}

func placements(tasks []*domain.Task) map[string]string {
	out := make(map[string]string, len(tasks))
	for _, t := range tasks {
		if t.IsScheduled() {
			out[t.ID] = domain.DateKey(*t.ScheduledDate) + "/" + string(t.ScheduledSlot)
		}
	}
	return out
}
