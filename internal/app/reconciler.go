package app

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Jpcostan/rise-and-move-ios/internal/domain"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/notifier"
)

// Reconciler replaces an alarm's outstanding reminders with the set its
// current state calls for. Identities are deterministic, so repeated or
// overlapping calls never accumulate reminders. A schedule command replaces
// whatever is outstanding under its identity; only identities the pass does
// not reissue are cancelled, so a cancel can never overtake the schedule for
// the same identity on a transport without cross-topic ordering.
// Notifier failures are logged and never returned: a missing reminder is
// preferred to a duplicate one.
type Reconciler struct {
	notifier notifier.Notifier
	clock    Clock
	tracer   trace.Tracer
}

func NewReconciler(n notifier.Notifier, clock Clock) *Reconciler {
	return &Reconciler{
		notifier: n,
		clock:    clock,
		tracer:   otel.Tracer("alarm.reconciler"),
	}
}

// Reconcile returns the reminders the notifier accepted.
func (r *Reconciler) Reconcile(ctx context.Context, alarm *domain.Alarm) []domain.ReminderRequest {
	ctx, span := r.tracer.Start(ctx, "Reconcile", trace.WithAttributes(
		attribute.String("alarm.id", alarm.ID().String()),
		attribute.Bool("alarm.enabled", alarm.IsEnabled()),
	))
	defer span.End()

	plan := domain.PlanReminders(alarm, r.clock())

	r.cancel(ctx, alarm.ID(), domain.StaleReminderIdentities(domain.AllReminderIdentities(alarm.ID()), plan))

	if len(plan) == 0 {
		slog.Debug("alarm disarmed, no reminders scheduled",
			"alarm_id", alarm.ID().String(),
		)

		return nil
	}

	scheduled := make([]domain.ReminderRequest, 0, len(plan))
	var rejected []domain.ReminderIdentity

	for _, req := range plan {
		if err := r.notifier.ScheduleReminder(ctx, req); err != nil {
			slog.Error("failed to schedule reminder",
				"alarm_id", alarm.ID().String(),
				"identity", string(req.Identity),
				"fires_at", req.FiresAt,
				"error", err,
			)

			rejected = append(rejected, req.Identity)

			continue
		}

		scheduled = append(scheduled, req)
	}

	// The previous reminder under a rejected identity is now stale.
	r.cancel(ctx, alarm.ID(), rejected)

	span.SetAttributes(attribute.Int("reminders.scheduled", len(scheduled)))

	slog.Debug("alarm reconciled",
		"alarm_id", alarm.ID().String(),
		"planned", len(plan),
		"scheduled", len(scheduled),
	)

	return scheduled
}

// Clear cancels both reminder kinds, in every identity spelling.
func (r *Reconciler) Clear(ctx context.Context, id domain.AlarmID) {
	r.cancel(ctx, id, domain.AllReminderIdentities(id))
}

// ClearBackup cancels the backup reminder ahead of the post-acknowledgement
// reconcile of next, the alarm as it will be once fired. When that reconcile
// reissues the backup for the following occurrence, the current identity is
// left for the schedule command to replace.
func (r *Reconciler) ClearBackup(ctx context.Context, next *domain.Alarm) {
	plan := domain.PlanReminders(next, r.clock())

	r.cancel(ctx, next.ID(), domain.StaleReminderIdentities(domain.ReminderIdentities(next.ID(), domain.ReminderBackup), plan))
}

func (r *Reconciler) cancel(ctx context.Context, id domain.AlarmID, identities []domain.ReminderIdentity) {
	if len(identities) == 0 {
		return
	}

	if err := r.notifier.CancelReminders(ctx, identities); err != nil {
		slog.Error("failed to cancel reminders",
			"alarm_id", id.String(),
			"identities", len(identities),
			"error", err,
		)
	}
}
