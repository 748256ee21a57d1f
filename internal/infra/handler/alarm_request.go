package handler

type CreateAlarmRequest struct {
	Time          string   `json:"time" binding:"required"`
	RepeatDays    []string `json:"repeat_days"`
	Label         string   `json:"label" binding:"max=100"`
	Enabled       *bool    `json:"enabled"`
	BackupEnabled bool     `json:"backup_enabled"`
	BackupMinutes *int     `json:"backup_minutes"`
}

type UpdateAlarmRequest struct {
	Time          string   `json:"time" binding:"required"`
	RepeatDays    []string `json:"repeat_days"`
	Label         string   `json:"label" binding:"max=100"`
	Enabled       bool     `json:"enabled"`
	BackupEnabled bool     `json:"backup_enabled"`
	BackupMinutes *int     `json:"backup_minutes"`
}

type SetEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// AcknowledgeRequest may be empty; the kind defaults to primary.
type AcknowledgeRequest struct {
	Kind string `json:"kind" binding:"omitempty,oneof=primary backup"`
}
