package domain

import "errors"

var (
	ErrAlarmNotFound      = errors.New("alarm not found")
	ErrAlarmAlreadyExists = errors.New("alarm already exists")

	ErrStaleAcknowledgement = errors.New("acknowledgement predates the alarm's last change")

	ErrInvalidAlarmID   = errors.New("invalid alarm ID")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidWeekday   = errors.New("invalid weekday")
)
