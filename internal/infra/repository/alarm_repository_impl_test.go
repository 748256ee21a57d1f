package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jpcostan/rise-and-move-ios/internal/domain"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/kvstore"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/repository"
	"github.com/Jpcostan/rise-and-move-ios/internal/testutil"
)

func newTestAlarm(t *testing.T, hour, minute int) *domain.Alarm {
	t.Helper()

	tod, err := domain.NewTimeOfDay(hour, minute)
	require.NoError(t, err)

	return domain.NewAlarm(domain.AlarmParams{
		TimeOfDay:     tod,
		RepeatDays:    domain.Weekdays(),
		Enabled:       true,
		Label:         "Commute",
		BackupEnabled: true,
		BackupMinutes: 5,
	})
}

func TestAlarmRepositorySaveAndLoadSuccess(t *testing.T) {
	testDB := testutil.SetupTestDB(t)
	repo := repository.NewAlarmRepository(kvstore.NewGormSlot(testDB.DB), "alarms.v2")
	ctx := context.Background()

	first := newTestAlarm(t, 6, 0)
	second := newTestAlarm(t, 7, 45)
	second.SetEnabled(false)

	require.NoError(t, repo.SaveAll(ctx, []*domain.Alarm{first, second}))

	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.True(t, first.ID().Equals(loaded[0].ID()))
	assert.True(t, second.ID().Equals(loaded[1].ID()))
	assert.Equal(t, "07:45", loaded[1].TimeOfDay().String())
	assert.False(t, loaded[1].IsEnabled())
	assert.Equal(t, 5, loaded[0].BackupMinutes())
	assert.Equal(t, "Commute", loaded[0].Label())
	assert.True(t, first.CreatedAt().Equal(loaded[0].CreatedAt()))
}

func TestAlarmRepositoryLoadEmptySuccess(t *testing.T) {
	repo := repository.NewAlarmRepository(kvstore.NewMemorySlot(), "alarms.v2")

	loaded, err := repo.LoadAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestAlarmRepositoryMigratesLegacyOnSave(t *testing.T) {
	slot := kvstore.NewMemorySlot()
	repo := repository.NewAlarmRepository(slot, "alarms.v2")
	ctx := context.Background()

	require.NoError(t, slot.SaveBytes(ctx, "alarms.v2", []byte(`[{"id":"`+idA+`","hour":5,"minute":5,"repeat_days":[1,7]}]`)))

	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	require.NoError(t, repo.SaveAll(ctx, loaded))

	data, err := slot.LoadBytes(ctx, "alarms.v2")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":2`)
	assert.Contains(t, string(data), `"repeat_days":["sun","sat"]`)
}

func TestAlarmRepositoryCorruptError(t *testing.T) {
	slot := kvstore.NewMemorySlot()
	repo := repository.NewAlarmRepository(slot, "alarms.v2")

	require.NoError(t, slot.SaveBytes(context.Background(), "alarms.v2", []byte(`{"alarms":`)))

	_, err := repo.LoadAll(context.Background())

	assert.ErrorIs(t, err, repository.ErrCorruptCollection)
}

type brokenSlot struct{}

func (brokenSlot) LoadBytes(context.Context, string) ([]byte, error) {
	return nil, errors.New("io error")
}

func (brokenSlot) SaveBytes(context.Context, string, []byte) error {
	return errors.New("io error")
}

func TestAlarmRepositorySlotError(t *testing.T) {
	repo := repository.NewAlarmRepository(brokenSlot{}, "alarms.v2")

	_, err := repo.LoadAll(context.Background())
	assert.Error(t, err)

	err = repo.SaveAll(context.Background(), []*domain.Alarm{newTestAlarm(t, 6, 0)})
	assert.Error(t, err)
}
