// Package board is the schedule editor: a slot cache over the schedule API, the edit
// modal state machine and the desktop/mobile layouts.
package board

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/scoala-altfel/orar/backend/internal/client"
	"github.com/scoala-altfel/orar/backend/internal/domain"
)

const (
	MsgLoadFailed   = "Nu am putut încărca orarul."
	MsgSaveFailed   = "Nu am putut salva slotul."
	MsgDeleteFailed = "Nu am putut șterge slotul."
	MsgCleared      = "Câmpurile au fost golite. Introdu o activitate nouă și apasă Salvează."
)

var (
	ErrUnknownSlot  = errors.New("board: slot is not part of the grid")
	ErrUnknownClass = errors.New("board: unknown class")
	ErrNotEditing   = errors.New("board: no slot is being edited")
	ErrModalOpen    = errors.New("board: another slot is being edited")
	ErrSaving       = errors.New("board: save in progress")
)

type ScheduleAPI interface {
	ListSchedule(ctx context.Context) (*client.ScheduleList, error)
	SaveEntry(ctx context.Context, entry domain.ScheduleEntry) (*domain.ScheduleEntry, error)
	DeleteEntry(ctx context.Context, key domain.SlotKey) error
}

// Board is safe for concurrent use; its lock is never held across an API call.
type Board struct {
	mu          sync.Mutex
	api         ScheduleAPI
	grid        *Grid
	cache       *EntryCache
	state       State
	status      string
	activeClass string
}

func New(api ScheduleAPI, grid *Grid) *Board {
	b := &Board{
		api:   api,
		grid:  grid,
		cache: NewEntryCache(),
		state: Idle{},
	}
	if classes := grid.Classes(); len(classes) > 0 {
		b.activeClass = classes[0]
	}
	return b
}

func (b *Board) Grid() *Grid {
	return b.grid
}

// Load replaces the cache with the server's entries.
func (b *Board) Load(ctx context.Context) error {
	list, err := b.api.ListSchedule(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.status = MsgLoadFailed
		return fmt.Errorf("load schedule: %w", err)
	}

	b.cache.Reload(list.Entries)
	b.status = list.Notice
	return nil
}

// Status is the board-level message, e.g. a failed load.
func (b *Board) Status() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Board) Entry(key domain.SlotKey) (domain.ScheduleEntry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cache.Get(key)
}

// Open selects a cell and pre-fills the form from the cache.
func (b *Board) Open(key domain.SlotKey) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state.(type) {
	case Saving:
		return ErrSaving
	case Editing:
		return ErrModalOpen
	}
	if !b.grid.Contains(key) {
		return ErrUnknownSlot
	}

	form := Form{}
	if existing, ok := b.cache.Get(key); ok {
		form = Form{Activity: existing.Activity, Professor: existing.Professor}
	}
	b.state = Editing{Cell: key, Form: form}
	return nil
}

func (b *Board) edit(fn func(*Editing)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch s := b.state.(type) {
	case Editing:
		fn(&s)
		b.state = s
		return nil
	case Saving:
		return ErrSaving
	default:
		return ErrNotEditing
	}
}

func (b *Board) SetActivity(v string) error {
	return b.edit(func(s *Editing) { s.Form.Activity = v })
}

func (b *Board) SetProfessor(v string) error {
	return b.edit(func(s *Editing) { s.Form.Professor = v })
}

// Clear blanks the form only. The stored entry goes away on the next blank Submit.
func (b *Board) Clear() error {
	return b.edit(func(s *Editing) {
		s.Form = Form{}
		s.Status = MsgCleared
	})
}

// Close discards the form without persisting.
func (b *Board) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state.(type) {
	case Saving:
		return ErrSaving
	case Editing:
		b.state = Idle{}
		return nil
	default:
		return ErrNotEditing
	}
}

// Submit deletes the slot when both fields are blank and upserts it otherwise. On
// failure the modal stays open with a status message.
func (b *Board) Submit(ctx context.Context) error {
	b.mu.Lock()
	var editing Editing
	switch s := b.state.(type) {
	case Editing:
		editing = s
	case Saving:
		b.mu.Unlock()
		return ErrSaving
	default:
		b.mu.Unlock()
		return ErrNotEditing
	}
	b.state = Saving{Cell: editing.Cell, Form: editing.Form}
	b.mu.Unlock()

	form := editing.Form.trimmed()

	if form.blank() {
		err := b.api.DeleteEntry(ctx, editing.Cell)

		b.mu.Lock()
		defer b.mu.Unlock()
		if err != nil {
			b.state = Editing{Cell: editing.Cell, Form: editing.Form, Status: MsgDeleteFailed}
			return fmt.Errorf("delete slot %s: %w", editing.Cell, err)
		}
		b.cache.Remove(editing.Cell)
		b.state = Idle{}
		return nil
	}

	saved, err := b.api.SaveEntry(ctx, domain.ScheduleEntry{
		ClassName: editing.Cell.ClassName,
		Day:       editing.Cell.Day,
		Time:      editing.Cell.Time,
		Activity:  form.Activity,
		Professor: form.Professor,
	})

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.state = Editing{Cell: editing.Cell, Form: editing.Form, Status: MsgSaveFailed}
		return fmt.Errorf("save slot %s: %w", editing.Cell, err)
	}
	b.cache.Put(editing.Cell, *saved)
	b.state = Idle{}
	return nil
}

// SelectClass changes the class shown by the mobile layout and the scroll target of the
// desktop layout.
func (b *Board) SelectClass(class string) error {
	if !b.grid.HasClass(class) {
		return ErrUnknownClass
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.activeClass = class
	return nil
}

func (b *Board) ActiveClass() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.activeClass
}
