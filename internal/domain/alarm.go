package domain

import (
	"strings"
	"time"
)

const DefaultLabel = "Alarm"

type Alarm struct {
	id            AlarmID
	timeOfDay     TimeOfDay
	repeatDays    RepeatDays
	enabled       bool
	label         string
	backupEnabled bool
	backupMinutes int
	createdAt     time.Time
	updatedAt     time.Time
}

type AlarmParams struct {
	TimeOfDay     TimeOfDay
	RepeatDays    RepeatDays
	Enabled       bool
	Label         string
	BackupEnabled bool
	BackupMinutes int
}

func NewAlarm(p AlarmParams) *Alarm {
	now := time.Now()

	return &Alarm{
		id:            NewAlarmID(),
		timeOfDay:     p.TimeOfDay,
		repeatDays:    p.RepeatDays,
		enabled:       p.Enabled,
		label:         p.Label,
		backupEnabled: p.BackupEnabled,
		backupMinutes: ClampBackupMinutes(p.BackupMinutes),
		createdAt:     now,
		updatedAt:     now,
	}
}

func Reconstitute(
	id AlarmID,
	p AlarmParams,
	createdAt time.Time,
	updatedAt time.Time,
) *Alarm {
	return &Alarm{
		id:            id,
		timeOfDay:     p.TimeOfDay,
		repeatDays:    p.RepeatDays,
		enabled:       p.Enabled,
		label:         p.Label,
		backupEnabled: p.BackupEnabled,
		backupMinutes: ClampBackupMinutes(p.BackupMinutes),
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Revise returns a whole-record replacement carrying the same identity.
func (a *Alarm) Revise(p AlarmParams) *Alarm {
	return Reconstitute(a.id, p, a.createdAt, time.Now())
}

// SetEnabled reports whether the flag changed.
func (a *Alarm) SetEnabled(enabled bool) bool {
	if a.enabled == enabled {
		return false
	}

	a.enabled = enabled
	a.updatedAt = time.Now()

	return true
}

// Fire applies the post-acknowledgement rule: a one-time alarm disarms,
// a repeating alarm stays armed for its next occurrence.
func (a *Alarm) Fire() State {
	if a.IsOneTime() {
		a.SetEnabled(false)
	}

	return a.State()
}

func (a *Alarm) State() State {
	if a.enabled {
		return StateArmed
	}

	return StateDisarmed
}

func (a *Alarm) Clone() *Alarm {
	c := *a
	c.repeatDays = RepeatDays{days: a.repeatDays.ToSlice()}

	return &c
}

func (a *Alarm) Params() AlarmParams {
	return AlarmParams{
		TimeOfDay:     a.timeOfDay,
		RepeatDays:    a.repeatDays,
		Enabled:       a.enabled,
		Label:         a.label,
		BackupEnabled: a.backupEnabled,
		BackupMinutes: a.backupMinutes,
	}
}

func (a *Alarm) ID() AlarmID {
	return a.id
}

func (a *Alarm) TimeOfDay() TimeOfDay {
	return a.timeOfDay
}

func (a *Alarm) RepeatDays() RepeatDays {
	return a.repeatDays
}

func (a *Alarm) IsOneTime() bool {
	return a.repeatDays.IsEmpty()
}

func (a *Alarm) IsEnabled() bool {
	return a.enabled
}

func (a *Alarm) Label() string {
	return a.label
}

// DisplayLabel substitutes the default phrase for an empty label.
func (a *Alarm) DisplayLabel() string {
	if strings.TrimSpace(a.label) == "" {
		return DefaultLabel
	}

	return a.label
}

func (a *Alarm) BackupEnabled() bool {
	return a.backupEnabled
}

func (a *Alarm) BackupMinutes() int {
	return a.backupMinutes
}

func (a *Alarm) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Alarm) UpdatedAt() time.Time {
	return a.updatedAt
}
