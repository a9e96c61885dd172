package domain

// SlotKey identifies a daily slot in the catalog.
type SlotKey string

const (
	SlotMorning SlotKey = "morning"
	SlotEvening SlotKey = "evening"
	SlotNight   SlotKey = "night"
)

// Slot is a named portion of a day with a fixed minute capacity.
// StartHour and EndHour only decide whether the slot is still usable today.
type Slot struct {
	Key         SlotKey
	Name        string
	CapacityMin int
	StartHour   int
	EndHour     int
}

// ActiveAt reports whether a task can still start in this slot at the given hour of today.
func (s Slot) ActiveAt(hour int) bool {
	return hour < s.EndHour
}

// Fits reports whether durationMin more minutes fit on top of usedMin.
func (s Slot) Fits(usedMin, durationMin int) bool {
	return usedMin+durationMin <= s.CapacityMin
}

// SlotCatalog is the fixed, ordered set of daily slots.
// Order is the tie-break and fallback order for placement.
type SlotCatalog []Slot

// DefaultCatalog returns the three-slot catalog: morning, evening, night.
func DefaultCatalog() SlotCatalog {
	return SlotCatalog{
		{Key: SlotMorning, Name: "Morning", CapacityMin: 240, StartHour: 9, EndHour: 13},
		{Key: SlotEvening, Name: "Evening", CapacityMin: 180, StartHour: 17, EndHour: 20},
		{Key: SlotNight, Name: "Night", CapacityMin: 120, StartHour: 21, EndHour: 23},
	}
}

// Index returns the catalog position of key, or -1.
func (c SlotCatalog) Index(key SlotKey) int {
	for i, s := range c {
		if s.Key == key {
			return i
		}
	}
	return -1
}

// Lookup returns the slot with the given key.
func (c SlotCatalog) Lookup(key SlotKey) (Slot, bool) {
	if i := c.Index(key); i >= 0 {
		return c[i], true
	}
	return Slot{}, false
}

// MaxCapacity returns the largest slot capacity in the catalog.
func (c SlotCatalog) MaxCapacity() int {
	max := 0
	for _, s := range c {
		if s.CapacityMin > max {
			max = s.CapacityMin
		}
	}
	return max
}
