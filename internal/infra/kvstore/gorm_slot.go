package kvstore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormSlot struct {
	db *gorm.DB
}

func NewGormSlot(db *gorm.DB) *GormSlot {
	return &GormSlot{
		db: db,
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&SlotModel{})
}

func (s *GormSlot) LoadBytes(ctx context.Context, key string) ([]byte, error) {
	slog.Debug("loading slot",
		"key", key,
	)

	var m SlotModel

	result := s.db.WithContext(ctx).Where("slot_key = ?", key).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			slog.Debug("slot is empty",
				"key", key,
			)

			return nil, nil
		}

		slog.Error("failed to load slot",
			"key", key,
			"error", result.Error,
		)

		return nil, result.Error
	}

	slog.Debug("slot loaded",
		"key", key,
		"bytes", len(m.Value),
	)

	return m.Value, nil
}

func (s *GormSlot) SaveBytes(ctx context.Context, key string, value []byte) error {
	slog.Debug("saving slot",
		"key", key,
		"bytes", len(value),
	)

	m := SlotModel{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m)
	if result.Error != nil {
		slog.Error("failed to save slot",
			"key", key,
			"error", result.Error,
		)

		return result.Error
	}

	slog.Debug("slot saved",
		"key", key,
	)

	return nil
}
