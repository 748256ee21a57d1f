package notifier

import (
	"context"
	"io"

	"github.com/Jpcostan/rise-and-move-ios/internal/domain"
)

//go:generate mockgen -source=notifier.go -destination=notifier_mock.go -package=notifier

// Notifier holds outstanding reminders until their instant. Scheduling an
// identity that is already outstanding replaces it. Cancelling an identity
// that is not outstanding is a no-op. No ordering is guaranteed between a
// schedule and a cancel.
type Notifier interface {
	ScheduleReminder(ctx context.Context, req domain.ReminderRequest) error
	CancelReminders(ctx context.Context, identities []domain.ReminderIdentity) error
	AuthorizationCapable(ctx context.Context) bool
	io.Closer
}
