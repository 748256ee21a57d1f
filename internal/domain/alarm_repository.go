package domain

import "context"

// AlarmRepository persists the whole alarm collection at once.
type AlarmRepository interface {
	LoadAll(ctx context.Context) ([]*Alarm, error)
	SaveAll(ctx context.Context, alarms []*Alarm) error
}
