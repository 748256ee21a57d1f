package domain

import (
	"github.com/google/uuid"
)

type AlarmID struct {
	value uuid.UUID
}

func NewAlarmID() AlarmID {
	return AlarmID{value: uuid.Must(uuid.NewV7())}
}

func AlarmIDFromString(s string) (AlarmID, error) {
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return AlarmID{}, ErrInvalidAlarmID
	}

	return AlarmID{value: id}, nil
}

func AlarmIDFromUUID(id uuid.UUID) AlarmID {
	return AlarmID{value: id}
}

func (a AlarmID) String() string {
	return a.value.String()
}

func (a AlarmID) UUID() uuid.UUID {
	return a.value
}

func (a AlarmID) IsZero() bool {
	return a.value == uuid.Nil
}

func (a AlarmID) Equals(other AlarmID) bool {
	return a.value == other.value
}
