package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jpcostan/rise-and-move-ios/internal/domain"
)

func TestReminderIdentities(t *testing.T) {
	id := domain.AlarmIDFromUUID(uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"))

	assert.Equal(t,
		domain.ReminderIdentity("alarm.550e8400-e29b-41d4-a716-446655440000.primary"),
		domain.CurrentReminderIdentity(id, domain.ReminderPrimary),
	)

	assert.Equal(t, []domain.ReminderIdentity{
		"alarm.550e8400-e29b-41d4-a716-446655440000.primary",
		"550e8400-e29b-41d4-a716-446655440000",
	}, domain.ReminderIdentities(id, domain.ReminderPrimary))

	assert.Equal(t, []domain.ReminderIdentity{
		"alarm.550e8400-e29b-41d4-a716-446655440000.backup",
		"550e8400-e29b-41d4-a716-446655440000-backup",
	}, domain.ReminderIdentities(id, domain.ReminderBackup))

	assert.Len(t, domain.AllReminderIdentities(id), 4)
}

func TestReminderIdentitiesAreDeterministic(t *testing.T) {
	id := domain.NewAlarmID()

	assert.Equal(t,
		domain.ReminderIdentities(id, domain.ReminderBackup),
		domain.ReminderIdentities(id, domain.ReminderBackup),
	)
	assert.NotEqual(t,
		domain.CurrentReminderIdentity(id, domain.ReminderPrimary),
		domain.CurrentReminderIdentity(id, domain.ReminderBackup),
	)
}

func TestPlanReminders(t *testing.T) {
	loc := mustLocation(t, "America/Chicago")
	monday := time.Date(2025, 1, 6, 6, 0, 0, 0, loc)

	t.Run("one-time alarm with backup", func(t *testing.T) {
		alarm := newTestAlarm(t, domain.RepeatDays{}, true, 10)

		plan := domain.PlanReminders(alarm, monday)
		require.Len(t, plan, 2)

		assert.Equal(t, domain.CurrentReminderIdentity(alarm.ID(), domain.ReminderPrimary), plan[0].Identity)
		assert.True(t, time.Date(2025, 1, 6, 7, 0, 0, 0, loc).Equal(plan[0].FiresAt))
		assert.Equal(t, domain.ReminderPrimary, plan[0].Payload.Kind)
		assert.Equal(t, "Wake up", plan[0].Payload.Label)

		assert.Equal(t, domain.CurrentReminderIdentity(alarm.ID(), domain.ReminderBackup), plan[1].Identity)
		assert.True(t, time.Date(2025, 1, 6, 7, 10, 0, 0, loc).Equal(plan[1].FiresAt))
		assert.Equal(t, domain.ReminderBackup, plan[1].Payload.Kind)
		assert.True(t, alarm.ID().Equals(plan[1].Payload.AlarmID))
	})

	t.Run("without backup", func(t *testing.T) {
		alarm := newTestAlarm(t, domain.RepeatDays{}, false, 10)

		plan := domain.PlanReminders(alarm, monday)

		require.Len(t, plan, 1)
		assert.Equal(t, domain.ReminderPrimary, plan[0].Payload.Kind)
	})

	t.Run("disabled alarm plans nothing", func(t *testing.T) {
		alarm := newTestAlarm(t, domain.RepeatDays{}, true, 10)
		alarm.SetEnabled(false)

		assert.Empty(t, domain.PlanReminders(alarm, monday))
	})

	t.Run("backup offset uses the upper clamp", func(t *testing.T) {
		alarm := newTestAlarm(t, domain.RepeatDays{}, true, 90)

		plan := domain.PlanReminders(alarm, monday)

		require.Len(t, plan, 2)
		assert.Equal(t, time.Hour, plan[1].FiresAt.Sub(plan[0].FiresAt))
	})
}

func TestStaleReminderIdentities(t *testing.T) {
	loc := mustLocation(t, "America/Chicago")
	monday := time.Date(2025, 1, 6, 6, 0, 0, 0, loc)

	tests := []struct {
		name     string
		backup   bool
		enabled  bool
		expected func(id domain.AlarmID) []domain.ReminderIdentity
	}{
		{
			name:    "primary and backup reissued keep only legacy spellings",
			backup:  true,
			enabled: true,
			expected: func(id domain.AlarmID) []domain.ReminderIdentity {
				return []domain.ReminderIdentity{
					domain.ReminderIdentity(id.String()),
					domain.ReminderIdentity(id.String() + "-backup"),
				}
			},
		},
		{
			name:    "backup off cancels every backup spelling",
			backup:  false,
			enabled: true,
			expected: func(id domain.AlarmID) []domain.ReminderIdentity {
				return []domain.ReminderIdentity{
					domain.ReminderIdentity(id.String()),
					domain.ReminderIdentity("alarm." + id.String() + ".backup"),
					domain.ReminderIdentity(id.String() + "-backup"),
				}
			},
		},
		{
			name:     "disabled alarm cancels everything",
			backup:   true,
			enabled:  false,
			expected: domain.AllReminderIdentities,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alarm := newTestAlarm(t, domain.RepeatDays{}, tt.backup, 10)
			alarm.SetEnabled(tt.enabled)

			plan := domain.PlanReminders(alarm, monday)
			stale := domain.StaleReminderIdentities(domain.AllReminderIdentities(alarm.ID()), plan)

			assert.Equal(t, tt.expected(alarm.ID()), stale)

			for _, req := range plan {
				assert.NotContains(t, stale, req.Identity)
			}
		})
	}
}

func TestReminderKindOf(t *testing.T) {
	id := domain.AlarmIDFromUUID(uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"))

	tests := []struct {
		identity domain.ReminderIdentity
		expected domain.ReminderKind
		ok       bool
	}{
		{identity: "alarm.550e8400-e29b-41d4-a716-446655440000.primary", expected: domain.ReminderPrimary, ok: true},
		{identity: "550e8400-e29b-41d4-a716-446655440000", expected: domain.ReminderPrimary, ok: true},
		{identity: "alarm.550e8400-e29b-41d4-a716-446655440000.backup", expected: domain.ReminderBackup, ok: true},
		{identity: "550e8400-e29b-41d4-a716-446655440000-backup", expected: domain.ReminderBackup, ok: true},
		{identity: "alarm.00000000-0000-0000-0000-000000000000.backup"},
		{identity: ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.identity), func(t *testing.T) {
			kind, ok := domain.ReminderKindOf(id, tt.identity)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, kind)
		})
	}
}
