package domain

import "strings"

type ScheduleEntry struct {
	ClassName string `json:"class_name"`
	Day       string `json:"day"`
	Time      string `json:"time"`
	Activity  string `json:"activity"`
	Professor string `json:"professor"`
}

// SlotKey addresses one cell of the weekly grid.
type SlotKey struct {
	ClassName string
	Day       string
	Time      string
}

func (k SlotKey) String() string {
	return k.ClassName + "|" + k.Day + "|" + k.Time
}

func (e *ScheduleEntry) Key() SlotKey {
	return SlotKey{ClassName: e.ClassName, Day: e.Day, Time: e.Time}
}

// IsBlank reports whether the entry carries neither an activity nor a professor.
func (e *ScheduleEntry) IsBlank() bool {
	return strings.TrimSpace(e.Activity) == "" && strings.TrimSpace(e.Professor) == ""
}

type ClassGroup struct {
	Title   string   `json:"title"`
	Classes []string `json:"classes"`
}
