package board

import (
	"strings"

	"github.com/scoala-altfel/orar/backend/internal/domain"
)

// State is the edit modal: Idle, Editing or Saving.
type State interface {
	modal()
}

type Form struct {
	Activity  string
	Professor string
}

func (f Form) trimmed() Form {
	return Form{
		Activity:  strings.TrimSpace(f.Activity),
		Professor: strings.TrimSpace(f.Professor),
	}
}

func (f Form) blank() bool {
	t := f.trimmed()
	return t.Activity == "" && t.Professor == ""
}

// Idle: no cell selected, modal closed.
type Idle struct{}

// Editing: modal open on Cell.
type Editing struct {
	Cell   domain.SlotKey
	Form   Form
	Status string
}

// Saving: a save or delete for Cell is in flight.
type Saving struct {
	Cell domain.SlotKey
	Form Form
}

func (Idle) modal()    {}
func (Editing) modal() {}
func (Saving) modal()  {}
