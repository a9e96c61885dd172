package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/studyslots/internal/domain"
)

const (
	// DefaultHorizonDays is the number of days, starting today, that get a schedule entry up front.
	DefaultHorizonDays = 60
	// DefaultLeadDays is how many days before its due date a task may be placed.
	DefaultLeadDays = 7
)

// Builder places unscheduled tasks into daily slots with a greedy,
// earliest-deadline-first, least-loaded-day heuristic.
type Builder struct {
	Catalog     domain.SlotCatalog
	HorizonDays int
	LeadDays    int
}

// NewBuilder returns a Builder with the default horizon and lead.
func NewBuilder(catalog domain.SlotCatalog) *Builder {
	return &Builder{
		Catalog:     catalog,
		HorizonDays: DefaultHorizonDays,
		LeadDays:    DefaultLeadDays,
	}
}

// Result is the outcome of a single build.
type Result struct {
	Schedule *Schedule
	// Placed lists tasks that received a placement in this build, in placement order.
	Placed []*domain.Task
	// Unscheduled lists incomplete tasks still without a placement, in collection order.
	Unscheduled []*domain.Task
	// Reopened lists tasks whose stored slot key is not in the catalog; their
	// placement was cleared before candidate selection.
	Reopened []*domain.Task
}

// Build seeds a fresh schedule with already-placed tasks and places every
// incomplete, unplaced task it can. Tasks that get a placement are mutated in
// place; nothing else on the tasks changes.
func (b *Builder) Build(tasks []*domain.Task, now time.Time) *Result {
	today := domain.CivilDate(now)
	sched := newSchedule(b.Catalog, today)

	for i := 0; i < b.horizonDays(); i++ {
		sched.ensureDay(today.AddDate(0, 0, i))
	}

	res := &Result{Schedule: sched}

	for _, t := range tasks {
		if !t.IsScheduled() {
			continue
		}
		idx := b.Catalog.Index(t.ScheduledSlot)
		if idx < 0 {
			t.ClearPlacement()
			res.Reopened = append(res.Reopened, t)
			continue
		}
		sched.ensureDay(*t.ScheduledDate).add(idx, t)
	}

	candidates := pendingTasks(tasks)
	SortByDueDate(candidates)

	l := &ledger{schedule: sched, today: today, hour: now.Hour()}
	for _, t := range candidates {
		start := domain.MaxDate(today, t.DueDate.AddDate(0, 0, -b.leadDays()))
		if l.place(t, start, domain.CivilDate(t.DueDate)) {
			res.Placed = append(res.Placed, t)
		}
	}

	for _, t := range tasks {
		if t.NeedsPlacement() {
			res.Unscheduled = append(res.Unscheduled, t)
		}
	}
	return res
}

func (b *Builder) horizonDays() int {
	if b.HorizonDays <= 0 {
		return DefaultHorizonDays
	}
	return b.HorizonDays
}

func (b *Builder) leadDays() int {
	if b.LeadDays < 0 {
		return DefaultLeadDays
	}
	return b.LeadDays
}

// ledger threads slot usage and daily load through the placement loop.
// Every placement updates it before the next task is evaluated.
type ledger struct {
	schedule *Schedule
	today    time.Time
	hour     int
}

// place puts t on the least-loaded feasible day in [start, end] and reports success.
func (l *ledger) place(t *domain.Task, start, end time.Time) bool {
	day := l.bestDay(t.DurationMin, start, end)
	if day == nil {
		return false
	}
	idx := l.firstFit(day, t.DurationMin)
	if idx < 0 {
		return false
	}
	day.add(idx, t)
	t.Place(day.Date, day.Slots[idx].Slot.Key)
	return true
}

// bestDay scans the window chronologically and keeps the first day seen at the
// lowest load among days that can fit durationMin. Days without an entry are skipped.
func (l *ledger) bestDay(durationMin int, start, end time.Time) *DaySchedule {
	var best *DaySchedule
	minLoad := math.MaxInt
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := l.schedule.DayOn(d)
		if day == nil {
			continue
		}
		if l.firstFit(day, durationMin) < 0 {
			continue
		}
		if day.LoadMin < minLoad {
			best = day
			minLoad = day.LoadMin
		}
	}
	return best
}

// firstFit returns the index of the first active slot in catalog order with
// room for durationMin, or -1. On today, slots whose end hour has passed are inactive.
func (l *ledger) firstFit(day *DaySchedule, durationMin int) int {
	isToday := day.Date.Equal(l.today)
	for i, load := range day.Slots {
		if isToday && !load.Slot.ActiveAt(l.hour) {
			continue
		}
		if load.Slot.Fits(load.UsedMin, durationMin) {
			return i
		}
	}
	return -1
}
