package app

type CreateAlarmInput struct {
	Time          string
	RepeatDays    []string
	Label         string
	Enabled       *bool
	BackupEnabled bool
	BackupMinutes *int
}

type GetAlarmInput struct {
	ID string
}

type UpdateAlarmInput struct {
	ID            string
	Time          string
	RepeatDays    []string
	Label         string
	Enabled       bool
	BackupEnabled bool
	BackupMinutes *int
}

type DeleteAlarmInput struct {
	ID string
}

type SetAlarmEnabledInput struct {
	ID      string
	Enabled bool
}

type AcknowledgeAlarmInput struct {
	ID   string
	Kind string
}
