package board

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/scoala-altfel/orar/backend/internal/domain"
)

var (
	Days  = []string{"Luni", "Marti", "Miercuri", "Joi", "Vineri"}
	Hours = []string{
		"08:00 - 09:00",
		"09:00 - 10:00",
		"10:00 - 11:00",
		"11:00 - 12:00",
		"12:00 - 13:00",
		"13:00 - 14:00",
		"14:00 - 15:00",
	}
)

// AfternoonShiftOffset is how many hours the twelfth grade runs behind the canonical grid.
const AfternoonShiftOffset = 5

// Grid is the addressable slot space: classes × days × hours.
type Grid struct {
	Groups []domain.ClassGroup
	Days   []string
	Hours  []string
	// LabelOverrides maps class -> canonical time -> displayed label.
	LabelOverrides map[string]map[string]string
}

func DefaultGrid() *Grid {
	lower := []string{"Clasa a V-a", "Clasa a VI-a", "Clasa a VII-a", "Clasa a VIII-a"}

	var upper []string
	for _, grade := range []string{"IX", "X", "XI", "XII"} {
		sections := []string{"A", "B", "C", "D", "E"}
		if grade == "IX" {
			sections = append(sections, "F")
		}
		for _, section := range sections {
			upper = append(upper, fmt.Sprintf("Clasa a %s-a %s", grade, section))
		}
	}

	dual := DualLabels(Hours, AfternoonShiftOffset)
	overrides := make(map[string]map[string]string)
	for _, class := range upper {
		if strings.Contains(class, "XII") {
			overrides[class] = dual
		}
	}

	return &Grid{
		Groups: []domain.ClassGroup{
			{Title: "Clasele V – VIII", Classes: lower},
			{Title: "Clasele IX – XII", Classes: upper},
		},
		Days:           Days,
		Hours:          Hours,
		LabelOverrides: overrides,
	}
}

// ShiftTime moves an "HH:MM" clock time by offset hours.
func ShiftTime(t string, offset int) string {
	hour, minute, _ := strings.Cut(t, ":")
	h, err := strconv.Atoi(strings.TrimSpace(hour))
	if err != nil {
		return t
	}
	for len(minute) < 2 {
		minute = "0" + minute
	}
	return fmt.Sprintf("%02d:%s", h+offset, minute)
}

// ShiftRange moves both ends of an "HH:MM - HH:MM" range.
func ShiftRange(r string, offset int) string {
	start, end, ok := strings.Cut(r, " - ")
	if !ok {
		return ShiftTime(r, offset)
	}
	return ShiftTime(start, offset) + " - " + ShiftTime(end, offset)
}

// DualLabels maps each range to "range / shifted range".
func DualLabels(ranges []string, offset int) map[string]string {
	labels := make(map[string]string, len(ranges))
	for _, r := range ranges {
		labels[r] = r + " / " + ShiftRange(r, offset)
	}
	return labels
}

// Classes lists every class in group order.
func (g *Grid) Classes() []string {
	var all []string
	for _, group := range g.Groups {
		all = append(all, group.Classes...)
	}
	return all
}

func (g *Grid) HasClass(name string) bool {
	return slices.Contains(g.Classes(), name)
}

// Contains reports whether key addresses a cell of the grid.
func (g *Grid) Contains(key domain.SlotKey) bool {
	return g.HasClass(key.ClassName) && slices.Contains(g.Days, key.Day) && slices.Contains(g.Hours, key.Time)
}

// TimeLabel is the displayed text for time in class. It never affects storage keys.
func (g *Grid) TimeLabel(class, time string) string {
	if class == "" || time == "" {
		return time
	}
	if label, ok := g.LabelOverrides[class][time]; ok {
		return label
	}
	return time
}
