package board

import (
	"testing"

	"github.com/scoala-altfel/orar/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultGrid(t *testing.T) {
	g := DefaultGrid()

	assert.Len(t, g.Groups, 2)
	assert.Equal(t, []string{"Clasa a V-a", "Clasa a VI-a", "Clasa a VII-a", "Clasa a VIII-a"}, g.Groups[0].Classes)
	assert.Len(t, g.Groups[1].Classes, 6+5+5+5)
	assert.True(t, g.HasClass("Clasa a IX-a F"))
	assert.False(t, g.HasClass("Clasa a X-a F"))
}

func TestShiftRange(t *testing.T) {
	tests := []struct {
		in     string
		offset int
		want   string
	}{
		{"08:00 - 09:00", 5, "13:00 - 14:00"},
		{"14:00 - 15:00", 5, "19:00 - 20:00"},
		{"9:5", 1, "10:05"},
		{"dimineata", 5, "dimineata"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ShiftRange(tt.in, tt.offset), tt.in)
	}
}

func TestTimeLabelDoesNotChangeKey(t *testing.T) {
	g := DefaultGrid()

	assert.Equal(t, "08:00 - 09:00 / 13:00 - 14:00", g.TimeLabel("Clasa a XII-a A", "08:00 - 09:00"))
	assert.Equal(t, "08:00 - 09:00", g.TimeLabel("Clasa a XI-a A", "08:00 - 09:00"))
	assert.Equal(t, "08:00 - 09:00", g.TimeLabel("", "08:00 - 09:00"))

	key := domain.SlotKey{ClassName: "Clasa a XII-a A", Day: "Luni", Time: "08:00 - 09:00"}
	assert.True(t, g.Contains(key))
	key.Time = "08:00 - 09:00 / 13:00 - 14:00"
	assert.False(t, g.Contains(key))
}

func TestEntryCache(t *testing.T) {
	c := NewEntryCache()
	a := domain.ScheduleEntry{ClassName: "Clasa a V-a", Day: "Luni", Time: "08:00 - 09:00", Activity: "A"}
	b := domain.ScheduleEntry{ClassName: "Clasa a V-a", Day: "Marti", Time: "08:00 - 09:00", Activity: "B"}

	c.Reload([]domain.ScheduleEntry{a, b})
	assert.Equal(t, 2, c.Len())

	replaced := a
	replaced.Activity = "C"
	c.Put(a.Key(), replaced)
	got, ok := c.Get(a.Key())
	assert.True(t, ok)
	assert.Equal(t, "C", got.Activity)

	c.Remove(b.Key())
	_, ok = c.Get(b.Key())
	assert.False(t, ok)

	c.Reload(nil)
	assert.Equal(t, 0, c.Len())
}
