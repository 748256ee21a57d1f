package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jpcostan/rise-and-move-ios/internal/domain"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/notifier"
)

type AlarmUseCaseConfig struct {
	// DefaultEnabled applies when a create request leaves enablement unset.
	DefaultEnabled bool
}

type alarmUseCaseImpl struct {
	store       *AlarmStore
	coordinator *LifecycleCoordinator
	notifier    notifier.Notifier
	clock       Clock
	cfg         AlarmUseCaseConfig
}

func NewAlarmUseCase(
	store *AlarmStore,
	coordinator *LifecycleCoordinator,
	n notifier.Notifier,
	clock Clock,
	cfg AlarmUseCaseConfig,
) AlarmUseCase {
	return &alarmUseCaseImpl{
		store:       store,
		coordinator: coordinator,
		notifier:    n,
		clock:       clock,
		cfg:         cfg,
	}
}

func (uc *alarmUseCaseImpl) CreateAlarm(ctx context.Context, input CreateAlarmInput) (AlarmOutput, error) {
	slog.Debug("creating alarm",
		"time", input.Time,
		"repeat_days", input.RepeatDays,
	)

	enabled := uc.cfg.DefaultEnabled
	if input.Enabled != nil {
		enabled = *input.Enabled
	}

	params, err := buildParams(input.Time, input.RepeatDays, input.Label, enabled, input.BackupEnabled, input.BackupMinutes)
	if err != nil {
		return AlarmOutput{}, err
	}

	alarm := domain.NewAlarm(params)

	if err := uc.store.Add(ctx, alarm); err != nil {
		if errors.Is(err, domain.ErrAlarmAlreadyExists) {
			return AlarmOutput{}, fmt.Errorf("%w: %v", ErrAlreadyExists, err)
		}

		return AlarmOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	slog.Debug("alarm created",
		"alarm_id", alarm.ID().String(),
	)

	return FromEntity(alarm, uc.clock()), nil
}

func (uc *alarmUseCaseImpl) ListAlarms(_ context.Context) (AlarmsOutput, error) {
	alarms := uc.store.Snapshot()

	slog.Debug("alarms listed",
		"count", len(alarms),
	)

	return FromEntities(alarms, uc.clock()), nil
}

func (uc *alarmUseCaseImpl) GetAlarm(_ context.Context, input GetAlarmInput) (AlarmOutput, error) {
	id, err := domain.AlarmIDFromString(input.ID)
	if err != nil {
		return AlarmOutput{}, NewValidationError("id", err.Error())
	}

	alarm, err := uc.store.Get(id)
	if err != nil {
		return AlarmOutput{}, uc.mapStoreError(err, input.ID)
	}

	return FromEntity(alarm, uc.clock()), nil
}

func (uc *alarmUseCaseImpl) UpdateAlarm(ctx context.Context, input UpdateAlarmInput) (AlarmOutput, error) {
	slog.Debug("updating alarm",
		"alarm_id", input.ID,
	)

	id, err := domain.AlarmIDFromString(input.ID)
	if err != nil {
		return AlarmOutput{}, NewValidationError("id", err.Error())
	}

	params, err := buildParams(input.Time, input.RepeatDays, input.Label, input.Enabled, input.BackupEnabled, input.BackupMinutes)
	if err != nil {
		return AlarmOutput{}, err
	}

	existing, err := uc.store.Get(id)
	if err != nil {
		return AlarmOutput{}, uc.mapStoreError(err, input.ID)
	}

	revised := existing.Revise(params)

	if err := uc.store.Update(ctx, revised); err != nil {
		return AlarmOutput{}, uc.mapStoreError(err, input.ID)
	}

	return FromEntity(revised, uc.clock()), nil
}

func (uc *alarmUseCaseImpl) DeleteAlarm(ctx context.Context, input DeleteAlarmInput) error {
	slog.Debug("deleting alarm",
		"alarm_id", input.ID,
	)

	id, err := domain.AlarmIDFromString(input.ID)
	if err != nil {
		return NewValidationError("id", err.Error())
	}

	if err := uc.store.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrAlarmNotFound) {
			return fmt.Errorf("%w: %v", ErrInternalError, err)
		}

		slog.Info("alarm not found for deletion (idempotency)",
			"alarm_id", input.ID,
		)
	}

	return nil
}

func (uc *alarmUseCaseImpl) SetAlarmEnabled(ctx context.Context, input SetAlarmEnabledInput) (AlarmOutput, error) {
	id, err := domain.AlarmIDFromString(input.ID)
	if err != nil {
		return AlarmOutput{}, NewValidationError("id", err.Error())
	}

	alarm, err := uc.store.SetEnabled(ctx, id, input.Enabled)
	if err != nil {
		return AlarmOutput{}, uc.mapStoreError(err, input.ID)
	}

	return FromEntity(alarm, uc.clock()), nil
}

func (uc *alarmUseCaseImpl) AcknowledgeAlarm(ctx context.Context, input AcknowledgeAlarmInput) (AlarmOutput, error) {
	id, err := domain.AlarmIDFromString(input.ID)
	if err != nil {
		return AlarmOutput{}, NewValidationError("id", err.Error())
	}

	kind := domain.ReminderPrimary
	if input.Kind != "" {
		kind = domain.ReminderKind(input.Kind)
		if !kind.IsValid() {
			return AlarmOutput{}, NewValidationError("kind", "must be primary or backup")
		}
	}

	if err := uc.coordinator.Acknowledge(ctx, id, kind, time.Time{}); err != nil {
		return AlarmOutput{}, uc.mapStoreError(err, input.ID)
	}

	alarm, err := uc.store.Get(id)
	if err != nil {
		return AlarmOutput{}, uc.mapStoreError(err, input.ID)
	}

	return FromEntity(alarm, uc.clock()), nil
}

func (uc *alarmUseCaseImpl) ReconcileAll(ctx context.Context) (ReconcileOutput, error) {
	reminders := uc.store.ReconcileAll(ctx)

	return ReconcileOutput{
		Alarms:    int32(len(uc.store.Snapshot())),
		Reminders: int32(reminders),
	}, nil
}

func (uc *alarmUseCaseImpl) NotifierStatus(ctx context.Context) NotifierStatusOutput {
	return NotifierStatusOutput{
		AuthorizationCapable: uc.notifier.AuthorizationCapable(ctx),
	}
}

func (uc *alarmUseCaseImpl) mapStoreError(err error, id string) error {
	if errors.Is(err, domain.ErrAlarmNotFound) {
		slog.Warn("alarm not found",
			"alarm_id", id,
		)

		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	return fmt.Errorf("%w: %v", ErrInternalError, err)
}

// buildParams clamps backup minutes rather than rejecting them.
func buildParams(
	timeOfDay string,
	repeatDays []string,
	label string,
	enabled bool,
	backupEnabled bool,
	backupMinutes *int,
) (domain.AlarmParams, error) {
	tod, err := domain.ParseTimeOfDay(timeOfDay)
	if err != nil {
		return domain.AlarmParams{}, NewValidationError("time", err.Error())
	}

	days := make([]domain.Weekday, 0, len(repeatDays))
	for i, s := range repeatDays {
		d, err := domain.NewWeekday(s)
		if err != nil {
			return domain.AlarmParams{}, NewValidationError(fmt.Sprintf("repeat_days[%d]", i), err.Error())
		}

		days = append(days, d)
	}

	rd, err := domain.NewRepeatDays(days...)
	if err != nil {
		return domain.AlarmParams{}, NewValidationError("repeat_days", err.Error())
	}

	minutes := domain.DefaultBackupMinutes
	if backupMinutes != nil {
		minutes = *backupMinutes
	}

	return domain.AlarmParams{
		TimeOfDay:     tod,
		RepeatDays:    rd,
		Enabled:       enabled,
		Label:         label,
		BackupEnabled: backupEnabled,
		BackupMinutes: minutes,
	}, nil
}
