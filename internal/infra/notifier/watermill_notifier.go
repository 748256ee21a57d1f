package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/Jpcostan/rise-and-move-ios/internal/domain"
	"github.com/Jpcostan/rise-and-move-ios/internal/observability/tracing"
)

var ErrNotifierClosed = errors.New("notifier is closed")

// WatermillNotifier forwards schedule and cancel commands to the device over
// a watermill publisher. The device owns delivery timing.
type WatermillNotifier struct {
	publisher message.Publisher
	closed    atomic.Bool
}

func NewWatermillNotifier(publisher message.Publisher) *WatermillNotifier {
	return &WatermillNotifier{
		publisher: publisher,
	}
}

func (n *WatermillNotifier) ScheduleReminder(ctx context.Context, req domain.ReminderRequest) error {
	if n.closed.Load() {
		return ErrNotifierClosed
	}

	cmd := ScheduleCommand{
		Identity: string(req.Identity),
		AlarmID:  req.Payload.AlarmID.String(),
		Kind:     string(req.Payload.Kind),
		Label:    req.Payload.Label,
		FiresAt:  req.FiresAt,
		IssuedAt: time.Now(),
	}

	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule command: %w", err)
	}

	msg := n.newMessage(ctx, payload, "reminder.schedule")
	msg.Metadata.Set("alarm_id", cmd.AlarmID)
	msg.Metadata.Set("identity", cmd.Identity)

	if err := n.publisher.Publish(TopicReminderSchedule, msg); err != nil {
		slog.Error("failed to publish schedule command",
			slog.String("identity", cmd.Identity),
			slog.String("error", err.Error()),
		)

		return fmt.Errorf("failed to publish schedule command: %w", err)
	}

	slog.Debug("published schedule command",
		slog.String("identity", cmd.Identity),
		slog.Time("fires_at", cmd.FiresAt),
		slog.String("message_id", msg.UUID),
	)

	return nil
}

func (n *WatermillNotifier) CancelReminders(ctx context.Context, identities []domain.ReminderIdentity) error {
	if len(identities) == 0 {
		return nil
	}

	if n.closed.Load() {
		return ErrNotifierClosed
	}

	cmd := CancelCommand{
		Identities: make([]string, len(identities)),
		IssuedAt:   time.Now(),
	}
	for i, id := range identities {
		cmd.Identities[i] = string(id)
	}

	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal cancel command: %w", err)
	}

	msg := n.newMessage(ctx, payload, "reminder.cancel")

	if err := n.publisher.Publish(TopicReminderCancel, msg); err != nil {
		slog.Error("failed to publish cancel command",
			slog.Int("identities", len(identities)),
			slog.String("error", err.Error()),
		)

		return fmt.Errorf("failed to publish cancel command: %w", err)
	}

	slog.Debug("published cancel command",
		slog.Int("identities", len(identities)),
		slog.String("message_id", msg.UUID),
	)

	return nil
}

// AuthorizationCapable reports whether commands can currently be issued.
// The reconciler never consults it.
func (n *WatermillNotifier) AuthorizationCapable(_ context.Context) bool {
	return !n.closed.Load()
}

func (n *WatermillNotifier) Close() error {
	if n.closed.Swap(true) {
		return nil
	}

	return n.publisher.Close()
}

func (n *WatermillNotifier) newMessage(ctx context.Context, payload []byte, eventType string) *message.Message {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", eventType)

	carrier := make(map[string]string)
	tracing.InjectToMap(ctx, carrier)

	for k, v := range carrier {
		msg.Metadata.Set(k, v)
	}

	return msg
}
