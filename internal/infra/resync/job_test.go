package resync_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jpcostan/rise-and-move-ios/internal/app"
	"github.com/Jpcostan/rise-and-move-ios/internal/domain"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/kvstore"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/repository"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/resync"
	"github.com/Jpcostan/rise-and-move-ios/internal/testutil"
)

type countingReconciler struct {
	calls atomic.Int32
}

func (c *countingReconciler) ReconcileAll(context.Context) int {
	c.calls.Add(1)

	return 0
}

func TestJobScheduleError(t *testing.T) {
	job := resync.NewJob(&countingReconciler{}, time.Now)

	_, err := job.Schedule("every now and then")

	assert.Error(t, err)
}

func TestJobRunsOnSchedule(t *testing.T) {
	target := &countingReconciler{}
	job := resync.NewJob(target, time.Now)

	_, err := job.Schedule("@every 1s")
	require.NoError(t, err)

	job.Start()
	defer job.Stop()

	require.Eventually(t, func() bool {
		return target.calls.Load() >= 1
	}, 3*time.Second, 50*time.Millisecond)
}

func TestJobRunFollowsZoneChange(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	clock := testutil.NewFixedClock(time.Date(2025, 1, 6, 6, 0, 0, 0, ny))
	n := testutil.NewFakeNotifier()
	store := app.NewAlarmStore(
		repository.NewAlarmRepository(kvstore.NewMemorySlot(), "alarms.v2"),
		app.NewReconciler(n, clock.Now),
	)

	tod, err := domain.NewTimeOfDay(7, 0)
	require.NoError(t, err)

	alarm := domain.NewAlarm(domain.AlarmParams{TimeOfDay: tod, Enabled: true, BackupMinutes: 10})
	require.NoError(t, store.Add(context.Background(), alarm))

	job := resync.NewJob(store, clock.Now)

	assert.Equal(t, 1, job.Run(context.Background()))
	assert.Equal(t, 1, job.Run(context.Background()))
	assert.Equal(t, 1, n.TotalOutstanding())

	clock.Set(clock.Now().In(tokyo))

	assert.Equal(t, 1, job.Run(context.Background()))

	outstanding := n.Outstanding(alarm.ID())
	require.Len(t, outstanding, 1)
	assert.Equal(t, tokyo, outstanding[0].FiresAt.Location())
	assert.Equal(t, 7, outstanding[0].FiresAt.Hour())
}

func TestJobRunFollowsHostZoneChange(t *testing.T) {
	t.Setenv("TZ", "America/New_York")

	clock, err := app.SystemClock("Local")
	require.NoError(t, err)

	n := testutil.NewFakeNotifier()
	store := app.NewAlarmStore(
		repository.NewAlarmRepository(kvstore.NewMemorySlot(), "alarms.v2"),
		app.NewReconciler(n, clock),
	)

	tod, err := domain.NewTimeOfDay(7, 0)
	require.NoError(t, err)

	alarm := domain.NewAlarm(domain.AlarmParams{TimeOfDay: tod, Enabled: true, BackupMinutes: 10})
	require.NoError(t, store.Add(context.Background(), alarm))

	outstanding := n.Outstanding(alarm.ID())
	require.Len(t, outstanding, 1)
	assert.Equal(t, "America/New_York", outstanding[0].FiresAt.Location().String())

	t.Setenv("TZ", "Asia/Tokyo")

	assert.Equal(t, 1, resync.NewJob(store, clock).Run(context.Background()))

	outstanding = n.Outstanding(alarm.ID())
	require.Len(t, outstanding, 1)
	assert.Equal(t, "Asia/Tokyo", outstanding[0].FiresAt.Location().String())
	assert.Equal(t, 7, outstanding[0].FiresAt.Hour())
}
