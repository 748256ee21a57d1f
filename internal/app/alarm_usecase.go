package app

import (
	"context"
)

type AlarmUseCase interface {
	CreateAlarm(ctx context.Context, input CreateAlarmInput) (AlarmOutput, error)
	ListAlarms(ctx context.Context) (AlarmsOutput, error)
	GetAlarm(ctx context.Context, input GetAlarmInput) (AlarmOutput, error)
	UpdateAlarm(ctx context.Context, input UpdateAlarmInput) (AlarmOutput, error)
	DeleteAlarm(ctx context.Context, input DeleteAlarmInput) error
	SetAlarmEnabled(ctx context.Context, input SetAlarmEnabledInput) (AlarmOutput, error)
	AcknowledgeAlarm(ctx context.Context, input AcknowledgeAlarmInput) (AlarmOutput, error)
	ReconcileAll(ctx context.Context) (ReconcileOutput, error)
	NotifierStatus(ctx context.Context) NotifierStatusOutput
}
