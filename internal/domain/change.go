package domain

import "time"

type ChangeKind string

const (
	ChangeSaved   ChangeKind = "saved"
	ChangeDeleted ChangeKind = "deleted"
)

// ScheduleChange is published after a schedule write reaches the store.
type ScheduleChange struct {
	Kind       ChangeKind    `json:"kind"`
	Entry      ScheduleEntry `json:"entry"`
	OccurredAt time.Time     `json:"occurredAt"`
}
