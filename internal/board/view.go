package board

import "github.com/scoala-altfel/orar/backend/internal/domain"

const EmptyCellText = "Adaugă"

type ViewMode int

const (
	Desktop ViewMode = iota
	Mobile
)

func (m ViewMode) String() string {
	if m == Mobile {
		return "mobile"
	}
	return "desktop"
}

// ModeForWidth picks Mobile for widths up to breakpoint. An unknown width (0) is Desktop.
func ModeForWidth(width, breakpoint int) ViewMode {
	if width > 0 && width <= breakpoint {
		return Mobile
	}
	return Desktop
}

func CellText(entry domain.ScheduleEntry, ok bool) string {
	if !ok || entry.IsBlank() {
		return EmptyCellText
	}
	switch {
	case entry.Activity == "":
		return entry.Professor
	case entry.Professor == "":
		return entry.Activity
	}
	return entry.Activity + " — " + entry.Professor
}

type Cell struct {
	Key    domain.SlotKey
	Text   string
	Filled bool
}

// Row is one hour of a class table, or one hour inside a day of the accordion.
type Row struct {
	Time  string
	Label string
	Cells []Cell
}

type ClassView struct {
	Class  string
	Days   []string
	Rows   []Row
	Scroll bool
}

// DayView is one accordion section of the mobile layout.
type DayView struct {
	Day  string
	Rows []Row
}

type GroupView struct {
	Title   string
	Classes []ClassView
}

// View is a snapshot of what the board shows.
type View struct {
	Mode        ViewMode
	Status      string
	ActiveClass string
	Classes     []string
	Groups      []GroupView
	Days        []DayView
	State       State
	// ModalLabel is the time label of the cell under edit.
	ModalLabel string
}

// View builds the layout for mode. Desktop shows every class table with the active class
// marked as scroll target; Mobile shows the active class one day at a time.
func (b *Board) View(mode ViewMode) View {
	b.mu.Lock()
	defer b.mu.Unlock()

	v := View{
		Mode:        mode,
		Status:      b.status,
		ActiveClass: b.activeClass,
		Classes:     b.grid.Classes(),
		State:       b.state,
	}
	switch s := b.state.(type) {
	case Editing:
		v.ModalLabel = b.grid.TimeLabel(s.Cell.ClassName, s.Cell.Time)
	case Saving:
		v.ModalLabel = b.grid.TimeLabel(s.Cell.ClassName, s.Cell.Time)
	}

	if mode == Mobile {
		for _, day := range b.grid.Days {
			dv := DayView{Day: day}
			for _, time := range b.grid.Hours {
				dv.Rows = append(dv.Rows, Row{
					Time:  time,
					Label: b.grid.TimeLabel(b.activeClass, time),
					Cells: []Cell{b.cell(domain.SlotKey{ClassName: b.activeClass, Day: day, Time: time})},
				})
			}
			v.Days = append(v.Days, dv)
		}
		return v
	}

	for _, group := range b.grid.Groups {
		gv := GroupView{Title: group.Title}
		for _, class := range group.Classes {
			cv := ClassView{Class: class, Days: b.grid.Days, Scroll: class == b.activeClass}
			for _, time := range b.grid.Hours {
				row := Row{Time: time, Label: b.grid.TimeLabel(class, time)}
				for _, day := range b.grid.Days {
					row.Cells = append(row.Cells, b.cell(domain.SlotKey{ClassName: class, Day: day, Time: time}))
				}
				cv.Rows = append(cv.Rows, row)
			}
			gv.Classes = append(gv.Classes, cv)
		}
		v.Groups = append(v.Groups, gv)
	}
	return v
}

func (b *Board) cell(key domain.SlotKey) Cell {
	entry, ok := b.cache.Get(key)
	return Cell{Key: key, Text: CellText(entry, ok), Filled: ok && !entry.IsBlank()}
}
