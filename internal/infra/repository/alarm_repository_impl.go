package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jpcostan/rise-and-move-ios/internal/domain"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/kvstore"
)

type alarmRepositoryImpl struct {
	slot kvstore.Slot
	key  string
}

func NewAlarmRepository(slot kvstore.Slot, key string) domain.AlarmRepository {
	return &alarmRepositoryImpl{
		slot: slot,
		key:  key,
	}
}

func (r *alarmRepositoryImpl) LoadAll(ctx context.Context) ([]*domain.Alarm, error) {
	slog.Debug("loading alarm collection",
		"key", r.key,
	)

	data, err := r.slot.LoadBytes(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load alarm collection: %w", err)
	}

	if data == nil {
		slog.Info("no stored alarm collection",
			"key", r.key,
		)

		return nil, nil
	}

	alarms, err := DecodeCollection(data)
	if err != nil {
		return nil, err
	}

	slog.Debug("alarm collection loaded",
		"key", r.key,
		"count", len(alarms),
	)

	return alarms, nil
}

func (r *alarmRepositoryImpl) SaveAll(ctx context.Context, alarms []*domain.Alarm) error {
	data, err := EncodeCollection(alarms)
	if err != nil {
		return fmt.Errorf("failed to encode alarm collection: %w", err)
	}

	if err := r.slot.SaveBytes(ctx, r.key, data); err != nil {
		return fmt.Errorf("failed to save alarm collection: %w", err)
	}

	slog.Debug("alarm collection saved",
		"key", r.key,
		"count", len(alarms),
	)

	return nil
}
