// Package repotest provides an in-memory repository.Store for tests.
package repotest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/scoala-altfel/orar/backend/internal/domain"
)

// Memory enforces the same uniqueness rules as the real tables: partner names and
// schedule slots.
type Memory struct {
	mu       sync.Mutex
	nextID   int
	partners []*domain.PartnerRecord
	entries  map[domain.SlotKey]domain.ScheduleEntry

	// Err, when set, is returned by every call.
	Err error
	// Calls counts store round trips by method name.
	Calls map[string]int
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[domain.SlotKey]domain.ScheduleEntry),
		Calls:   make(map[string]int),
	}
}

func (m *Memory) call(name string) error {
	m.Calls[name]++
	return m.Err
}

func (m *Memory) GetAllPartners(_ context.Context) ([]*domain.PartnerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("GetAllPartners"); err != nil {
		return nil, err
	}

	out := make([]*domain.PartnerRecord, 0, len(m.partners))
	for _, p := range m.partners {
		cp := *p
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return fmt.Sprint(out[i].Name) < fmt.Sprint(out[j].Name)
	})
	return out, nil
}

func (m *Memory) CreatePartner(_ context.Context, name string) (*domain.PartnerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("CreatePartner"); err != nil {
		return nil, err
	}

	for _, p := range m.partners {
		if p.Name == name {
			return nil, fmt.Errorf("%w: partners_name_key", domain.ErrDuplicate)
		}
	}

	m.nextID++
	rec := &domain.PartnerRecord{ID: fmt.Sprintf("p%d", m.nextID), Name: name}
	m.partners = append(m.partners, rec)

	cp := *rec
	return &cp, nil
}

func (m *Memory) DeletePartner(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("DeletePartner"); err != nil {
		return err
	}

	kept := m.partners[:0]
	for _, p := range m.partners {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.partners = kept
	return nil
}

func (m *Memory) GetAllScheduleEntries(_ context.Context) ([]*domain.ScheduleEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("GetAllScheduleEntries"); err != nil {
		return nil, err
	}

	out := make([]*domain.ScheduleEntry, 0, len(m.entries))
	for _, e := range m.entries {
		cp := e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].Key().String(), out[j].Key().String()) < 0
	})
	return out, nil
}

func (m *Memory) UpsertScheduleEntry(_ context.Context, entry *domain.ScheduleEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("UpsertScheduleEntry"); err != nil {
		return err
	}

	if entry == nil {
		return errors.New("nil entry")
	}
	m.entries[entry.Key()] = *entry
	return nil
}

func (m *Memory) DeleteScheduleEntry(_ context.Context, key domain.SlotKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("DeleteScheduleEntry"); err != nil {
		return err
	}

	delete(m.entries, key)
	return nil
}

// Len returns the number of stored schedule entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// PartnerCount returns the number of stored partners.
func (m *Memory) PartnerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.partners)
}

// CallCount returns how many times method was called.
func (m *Memory) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[method]
}
