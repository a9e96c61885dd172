package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCatalog_Order(t *testing.T) {
	c := DefaultCatalog()
	keys := make([]SlotKey, len(c))
	for i, s := range c {
		keys[i] = s.Key
	}
	assert.Equal(t, []SlotKey{SlotMorning, SlotEvening, SlotNight}, keys)
	assert.Equal(t, 240, c.MaxCapacity())
}

func TestSlotCatalog_Lookup(t *testing.T) {
	c := DefaultCatalog()

	s, ok := c.Lookup(SlotEvening)
	assert.True(t, ok)
	assert.Equal(t, 180, s.CapacityMin)
	assert.Equal(t, 1, c.Index(SlotEvening))

	_, ok = c.Lookup("afternoon")
	assert.False(t, ok)
	assert.Equal(t, -1, c.Index("afternoon"))
}

func TestSlot_ActiveAt(t *testing.T) {
	morning := DefaultCatalog()[0]
	assert.True(t, morning.ActiveAt(0))
	assert.True(t, morning.ActiveAt(12))
	assert.False(t, morning.ActiveAt(13), "end hour is exclusive")
	assert.False(t, morning.ActiveAt(22))
}

func TestSlot_Fits(t *testing.T) {
	morning := DefaultCatalog()[0]
	assert.True(t, morning.Fits(210, 30))
	assert.False(t, morning.Fits(230, 30))
	assert.True(t, morning.Fits(0, 240))
}
