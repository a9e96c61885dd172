package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/studyslots/internal/domain"
)

// SlotLoad is one slot on one day: the tasks placed there, in placement order,
// and the minutes they consume.
type SlotLoad struct {
	Slot    domain.Slot
	Tasks   []*domain.Task
	UsedMin int
}

// DaySchedule holds every catalog slot for a single date plus the running daily load.
type DaySchedule struct {
	Date    time.Time
	Slots   []*SlotLoad
	LoadMin int
}

func newDaySchedule(date time.Time, catalog domain.SlotCatalog) *DaySchedule {
	slots := make([]*SlotLoad, len(catalog))
	for i, s := range catalog {
		slots[i] = &SlotLoad{Slot: s}
	}
	return &DaySchedule{Date: date, Slots: slots}
}

// Slot returns the load for key, or nil when the key is not in the catalog.
func (d *DaySchedule) Slot(key domain.SlotKey) *SlotLoad {
	for _, l := range d.Slots {
		if l.Slot.Key == key {
			return l
		}
	}
	return nil
}

// TaskCount returns the number of tasks placed on the day across all slots.
func (d *DaySchedule) TaskCount() int {
	n := 0
	for _, l := range d.Slots {
		n += len(l.Tasks)
	}
	return n
}

func (d *DaySchedule) add(slotIdx int, t *domain.Task) {
	l := d.Slots[slotIdx]
	l.Tasks = append(l.Tasks, t)
	l.UsedMin += t.DurationMin
	d.LoadMin += t.DurationMin
}

// Schedule maps date keys (YYYY-MM-DD) to day schedules. It is derived state,
// rebuilt from the task collection on every build.
type Schedule struct {
	Today   time.Time
	Catalog domain.SlotCatalog
	days    map[string]*DaySchedule
}

func newSchedule(catalog domain.SlotCatalog, today time.Time) *Schedule {
	return &Schedule{
		Today:   today,
		Catalog: catalog,
		days:    make(map[string]*DaySchedule),
	}
}

// Day returns the schedule for a date key, or nil when the date has no entry.
func (s *Schedule) Day(key string) *DaySchedule {
	return s.days[key]
}

// DayOn returns the schedule for the calendar date of t, or nil.
func (s *Schedule) DayOn(t time.Time) *DaySchedule {
	return s.days[domain.DateKey(t)]
}

// Dates returns all date keys in ascending order.
func (s *Schedule) Dates() []string {
	keys := make([]string, 0, len(s.days))
	for k := range s.days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of dates with an entry.
func (s *Schedule) Len() int {
	return len(s.days)
}

// ensureDay returns the entry for date, creating an empty one on demand.
func (s *Schedule) ensureDay(date time.Time) *DaySchedule {
	d := domain.CivilDate(date)
	key := domain.DateKey(d)
	if day, ok := s.days[key]; ok {
		return day
	}
	day := newDaySchedule(d, s.Catalog)
	s.days[key] = day
	return day
}
