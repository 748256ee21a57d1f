package app

import (
	"time"

	"github.com/Jpcostan/rise-and-move-ios/internal/domain"
)

type AlarmOutput struct {
	ID            string
	Time          string
	RepeatDays    []string
	Enabled       bool
	State         string
	Label         string
	DisplayLabel  string
	BackupEnabled bool
	BackupMinutes int
	NextFireAt    *time.Time
	BackupFireAt  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type AlarmsOutput struct {
	Alarms []AlarmOutput
	Count  int32
}

type ReconcileOutput struct {
	Alarms    int32
	Reminders int32
}

type NotifierStatusOutput struct {
	AuthorizationCapable bool
}

// FromEntity includes the reminders the alarm should have outstanding at now.
func FromEntity(alarm *domain.Alarm, now time.Time) AlarmOutput {
	out := AlarmOutput{
		ID:            alarm.ID().String(),
		Time:          alarm.TimeOfDay().String(),
		RepeatDays:    alarm.RepeatDays().Strings(),
		Enabled:       alarm.IsEnabled(),
		State:         string(alarm.State()),
		Label:         alarm.Label(),
		DisplayLabel:  alarm.DisplayLabel(),
		BackupEnabled: alarm.BackupEnabled(),
		BackupMinutes: alarm.BackupMinutes(),
		CreatedAt:     alarm.CreatedAt(),
		UpdatedAt:     alarm.UpdatedAt(),
	}

	for _, req := range domain.PlanReminders(alarm, now) {
		at := req.FiresAt

		switch req.Payload.Kind {
		case domain.ReminderPrimary:
			out.NextFireAt = &at
		case domain.ReminderBackup:
			out.BackupFireAt = &at
		}
	}

	return out
}

func FromEntities(alarms []*domain.Alarm, now time.Time) AlarmsOutput {
	outputs := make([]AlarmOutput, 0, len(alarms))
	for _, a := range alarms {
		outputs = append(outputs, FromEntity(a, now))
	}

	return AlarmsOutput{
		Alarms: outputs,
		Count:  int32(len(outputs)),
	}
}
