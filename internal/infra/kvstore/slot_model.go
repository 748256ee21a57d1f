package kvstore

import "time"

type SlotModel struct {
	Key       string    `gorm:"column:slot_key;type:varchar(255);primaryKey"`
	Value     []byte    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (SlotModel) TableName() string {
	return "kv_slots"
}
