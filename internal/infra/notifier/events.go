package notifier

import "time"

// ScheduleCommand asks the device to hold one reminder, replacing any
// reminder already outstanding under the same identity.
type ScheduleCommand struct {
	Identity string    `json:"identity"`
	AlarmID  string    `json:"alarm_id"`
	Kind     string    `json:"kind"`
	Label    string    `json:"label"`
	FiresAt  time.Time `json:"fires_at"`
	IssuedAt time.Time `json:"issued_at"`
}

type CancelCommand struct {
	Identities []string  `json:"identities"`
	IssuedAt   time.Time `json:"issued_at"`
}

// ReminderEvent is reported by the device when a reminder is delivered or
// the user acts on it (in-app stop or notification action button).
type ReminderEvent struct {
	AlarmID  string    `json:"alarm_id"`
	Kind     string    `json:"kind"`
	Identity string    `json:"identity"`
	At       time.Time `json:"at"`
}
