package handler

import (
	"time"

	"github.com/Jpcostan/rise-and-move-ios/internal/app"
)

type AlarmResponse struct {
	ID            string     `json:"id"`
	Time          string     `json:"time"`
	RepeatDays    []string   `json:"repeat_days"`
	Enabled       bool       `json:"enabled"`
	State         string     `json:"state"`
	Label         string     `json:"label"`
	DisplayLabel  string     `json:"display_label"`
	BackupEnabled bool       `json:"backup_enabled"`
	BackupMinutes int        `json:"backup_minutes"` // minutes after the primary (range: 1-60)
	NextFireAt    *time.Time `json:"next_fire_at,omitempty"`
	BackupFireAt  *time.Time `json:"backup_fire_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type AlarmsResponse struct {
	Alarms []AlarmResponse `json:"alarms"`
	Count  int32           `json:"count"`
}

type ReconcileResponse struct {
	Alarms    int32 `json:"alarms"`
	Reminders int32 `json:"reminders"`
}

type NotifierStatusResponse struct {
	AuthorizationCapable bool `json:"authorization_capable"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func FromDTO(output app.AlarmOutput) AlarmResponse {
	return AlarmResponse{
		ID:            output.ID,
		Time:          output.Time,
		RepeatDays:    output.RepeatDays,
		Enabled:       output.Enabled,
		State:         output.State,
		Label:         output.Label,
		DisplayLabel:  output.DisplayLabel,
		BackupEnabled: output.BackupEnabled,
		BackupMinutes: output.BackupMinutes,
		NextFireAt:    output.NextFireAt,
		BackupFireAt:  output.BackupFireAt,
		CreatedAt:     output.CreatedAt,
		UpdatedAt:     output.UpdatedAt,
	}
}

func FromDTOs(output app.AlarmsOutput) AlarmsResponse {
	alarms := make([]AlarmResponse, 0, len(output.Alarms))
	for _, a := range output.Alarms {
		alarms = append(alarms, FromDTO(a))
	}

	return AlarmsResponse{
		Alarms: alarms,
		Count:  output.Count,
	}
}
