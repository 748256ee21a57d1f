package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jpcostan/rise-and-move-ios/internal/domain"
)

// CurrentSchemaVersion is written on every save.
//
//	v1: bare JSON array, weekdays as calendar numbers, no backup fields
//	v2: {"version":2,"alarms":[...]}, weekdays as marker names
const CurrentSchemaVersion = 2

var ErrCorruptCollection = errors.New("corrupt alarm collection")

// WeekdayJSON accepts a marker name or a calendar number (Sunday=1).
type WeekdayJSON string

func (w *WeekdayJSON) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		wd, err := domain.WeekdayFromCalendarNumber(n)
		if err != nil {
			*w = ""

			return nil
		}

		*w = WeekdayJSON(wd)

		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	wd, err := domain.NewWeekday(s)
	if err != nil {
		*w = ""

		return nil
	}

	*w = WeekdayJSON(wd)

	return nil
}

type AlarmRecord struct {
	ID            string        `json:"id"`
	Hour          int           `json:"hour"`
	Minute        int           `json:"minute"`
	RepeatDays    []WeekdayJSON `json:"repeat_days"`
	IsEnabled     *bool         `json:"is_enabled,omitempty"`
	Label         string        `json:"label"`
	BackupEnabled *bool         `json:"backup_enabled,omitempty"`
	BackupMinutes *int          `json:"backup_minutes,omitempty"`
	CreatedAt     *time.Time    `json:"created_at,omitempty"`
	UpdatedAt     *time.Time    `json:"updated_at,omitempty"`
}

type collectionEnvelope struct {
	Version int           `json:"version"`
	Alarms  []AlarmRecord `json:"alarms"`
}

// ToEntity fills defaults for fields missing from older schemas and clamps
// every numeric field. ok is false only when the record has no usable id.
func (r *AlarmRecord) ToEntity() (*domain.Alarm, bool) {
	id, err := domain.AlarmIDFromString(r.ID)
	if err != nil {
		return nil, false
	}

	days := make([]domain.Weekday, 0, len(r.RepeatDays))
	for _, d := range r.RepeatDays {
		wd := domain.Weekday(d)
		if !wd.IsValid() {
			slog.Warn("dropping unknown repeat day",
				"alarm_id", r.ID,
			)

			continue
		}

		days = append(days, wd)
	}

	repeatDays, err := domain.NewRepeatDays(days...)
	if err != nil {
		repeatDays = domain.RepeatDays{}
	}

	enabled := true
	if r.IsEnabled != nil {
		enabled = *r.IsEnabled
	}

	backupEnabled := false
	if r.BackupEnabled != nil {
		backupEnabled = *r.BackupEnabled
	}

	backupMinutes := domain.DefaultBackupMinutes
	if r.BackupMinutes != nil {
		backupMinutes = *r.BackupMinutes
	}

	var createdAt, updatedAt time.Time
	if r.CreatedAt != nil {
		createdAt = *r.CreatedAt
	}

	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return domain.Reconstitute(
		id,
		domain.AlarmParams{
			TimeOfDay:     domain.ClampedTimeOfDay(r.Hour, r.Minute),
			RepeatDays:    repeatDays,
			Enabled:       enabled,
			Label:         r.Label,
			BackupEnabled: backupEnabled,
			BackupMinutes: backupMinutes,
		},
		createdAt,
		updatedAt,
	), true
}

func FromEntity(a *domain.Alarm) AlarmRecord {
	days := make([]WeekdayJSON, 0, a.RepeatDays().Len())
	for _, d := range a.RepeatDays().ToSlice() {
		days = append(days, WeekdayJSON(d))
	}

	enabled := a.IsEnabled()
	backupEnabled := a.BackupEnabled()
	backupMinutes := a.BackupMinutes()
	createdAt := a.CreatedAt()
	updatedAt := a.UpdatedAt()

	return AlarmRecord{
		ID:            a.ID().String(),
		Hour:          a.TimeOfDay().Hour(),
		Minute:        a.TimeOfDay().Minute(),
		RepeatDays:    days,
		IsEnabled:     &enabled,
		Label:         a.Label(),
		BackupEnabled: &backupEnabled,
		BackupMinutes: &backupMinutes,
		CreatedAt:     &createdAt,
		UpdatedAt:     &updatedAt,
	}
}

// EncodeCollection always writes the current schema version.
func EncodeCollection(alarms []*domain.Alarm) ([]byte, error) {
	env := collectionEnvelope{
		Version: CurrentSchemaVersion,
		Alarms:  make([]AlarmRecord, 0, len(alarms)),
	}

	for _, a := range alarms {
		env.Alarms = append(env.Alarms, FromEntity(a))
	}

	return json.Marshal(env)
}

// DecodeCollection reads any known schema version. Individual records that
// cannot be identified are skipped; a collection that cannot be parsed at
// all yields ErrCorruptCollection.
func DecodeCollection(data []byte) ([]*domain.Alarm, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var records []AlarmRecord

	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptCollection, err)
		}
	case '{':
		var env collectionEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptCollection, err)
		}

		if env.Version > CurrentSchemaVersion {
			slog.Warn("alarm collection written by a newer schema",
				"version", env.Version,
				"current", CurrentSchemaVersion,
			)
		}

		records = env.Alarms
	default:
		return nil, fmt.Errorf("%w: unrecognized encoding", ErrCorruptCollection)
	}

	alarms := make([]*domain.Alarm, 0, len(records))
	seen := make(map[domain.AlarmID]struct{}, len(records))

	for i := range records {
		alarm, ok := records[i].ToEntity()
		if !ok {
			slog.Warn("skipping alarm record without a valid id",
				"index", i,
				"id", records[i].ID,
			)

			continue
		}

		if _, dup := seen[alarm.ID()]; dup {
			slog.Warn("skipping duplicate alarm record",
				"alarm_id", alarm.ID().String(),
			)

			continue
		}

		seen[alarm.ID()] = struct{}{}
		alarms = append(alarms, alarm)
	}

	return alarms, nil
}
