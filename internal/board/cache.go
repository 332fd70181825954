package board

import "github.com/scoala-altfel/orar/backend/internal/domain"

// EntryCache mirrors the stored entries keyed by "<class>|<day>|<time>". It is rebuilt
// on load, replaced per slot on save and dropped per slot on delete.
type EntryCache struct {
	entries map[string]domain.ScheduleEntry
}

func NewEntryCache() *EntryCache {
	return &EntryCache{entries: make(map[string]domain.ScheduleEntry)}
}

func (c *EntryCache) Reload(entries []domain.ScheduleEntry) {
	c.entries = make(map[string]domain.ScheduleEntry, len(entries))
	for _, e := range entries {
		c.entries[e.Key().String()] = e
	}
}

func (c *EntryCache) Put(key domain.SlotKey, entry domain.ScheduleEntry) {
	c.entries[key.String()] = entry
}

func (c *EntryCache) Remove(key domain.SlotKey) {
	delete(c.entries, key.String())
}

func (c *EntryCache) Get(key domain.SlotKey) (domain.ScheduleEntry, bool) {
	e, ok := c.entries[key.String()]
	return e, ok
}

func (c *EntryCache) Len() int {
	return len(c.entries)
}
