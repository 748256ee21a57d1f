package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/Jpcostan/rise-and-move-ios/internal/domain"
)

// LifecycleCoordinator handles the user's acknowledgement of a ringing
// alarm, whether it came from the in-app stop control or a notification
// action, and from the primary or the backup reminder.
type LifecycleCoordinator struct {
	store      *AlarmStore
	reconciler *Reconciler
}

func NewLifecycleCoordinator(store *AlarmStore, reconciler *Reconciler) *LifecycleCoordinator {
	return &LifecycleCoordinator{
		store:      store,
		reconciler: reconciler,
	}
}

// Acknowledge clears the pending backup explicitly, then marks the alarm
// fired. at is when the user acted; an acknowledgement that predates the
// alarm's last change was issued for a previous version of it and returns
// domain.ErrStaleAcknowledgement. A zero at is a live acknowledgement.
// Returns domain.ErrAlarmNotFound for an unknown id.
func (c *LifecycleCoordinator) Acknowledge(ctx context.Context, id domain.AlarmID, kind domain.ReminderKind, at time.Time) error {
	slog.Debug("acknowledging alarm",
		"alarm_id", id.String(),
		"kind", string(kind),
	)

	current, err := c.store.Get(id)
	if err != nil {
		return err
	}

	if !at.IsZero() && at.Before(current.UpdatedAt()) {
		slog.Info("ignoring stale acknowledgement",
			"alarm_id", id.String(),
			"acknowledged_at", at,
			"updated_at", current.UpdatedAt(),
		)

		return domain.ErrStaleAcknowledgement
	}

	next := current.Clone()
	next.Fire()

	c.reconciler.ClearBackup(ctx, next)

	alarm, err := c.store.MarkFired(ctx, id)
	if err != nil {
		return err
	}

	slog.Info("alarm acknowledged",
		"alarm_id", id.String(),
		"kind", string(kind),
		"state", string(alarm.State()),
	)

	return nil
}
