package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/Jpcostan/rise-and-move-ios/internal/domain"
	"github.com/Jpcostan/rise-and-move-ios/internal/observability/tracing"
)

// Acknowledger applies the user's stop action for an alarm.
type Acknowledger interface {
	Acknowledge(ctx context.Context, id domain.AlarmID, kind domain.ReminderKind, at time.Time) error
}

// NewEventRouter consumes reminder events published by the device.
// Acknowledgements drive the alarm lifecycle; deliveries are only logged.
func NewEventRouter(subscriber message.Subscriber, ack Acknowledger) (*message.Router, error) {
	logger := watermill.NewSlogLogger(slog.Default())

	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	router.AddMiddleware(middleware.Recoverer)

	router.AddNoPublisherHandler(
		"reminder_acknowledged",
		TopicReminderAcknowledged,
		subscriber,
		acknowledgedHandler(ack),
	)

	router.AddNoPublisherHandler(
		"reminder_delivered",
		TopicReminderDelivered,
		subscriber,
		deliveredHandler,
	)

	return router, nil
}

func acknowledgedHandler(ack Acknowledger) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		ev, id, ok := decodeReminderEvent(msg)
		if !ok {
			return nil
		}

		ctx := tracing.ExtractFromMap(msg.Context(), msg.Metadata)

		// Events are delivered at least once; an event that no longer
		// applies is acked so it is not redelivered.
		err := ack.Acknowledge(ctx, id, domain.ReminderKind(ev.Kind), ev.At)
		switch {
		case errors.Is(err, domain.ErrAlarmNotFound):
			slog.Info("acknowledged alarm no longer exists (idempotency)",
				slog.String("alarm_id", ev.AlarmID),
			)

			return nil
		case errors.Is(err, domain.ErrStaleAcknowledgement):
			slog.Info("dropping acknowledgement issued before the alarm changed",
				slog.String("alarm_id", ev.AlarmID),
				slog.Time("at", ev.At),
			)

			return nil
		}

		return err
	}
}

func deliveredHandler(msg *message.Message) error {
	ev, _, ok := decodeReminderEvent(msg)
	if !ok {
		return nil
	}

	slog.Info("reminder delivered, awaiting acknowledgement",
		slog.String("alarm_id", ev.AlarmID),
		slog.String("kind", ev.Kind),
		slog.String("state", string(domain.StateFiredPendingAck)),
	)

	return nil
}

// decodeReminderEvent drops malformed messages; redelivering them cannot help.
func decodeReminderEvent(msg *message.Message) (ReminderEvent, domain.AlarmID, bool) {
	var ev ReminderEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		slog.Warn("dropping malformed reminder event",
			slog.String("message_id", msg.UUID),
			slog.String("error", err.Error()),
		)

		return ReminderEvent{}, domain.AlarmID{}, false
	}

	id, err := domain.AlarmIDFromString(ev.AlarmID)
	if err != nil {
		slog.Warn("dropping reminder event with invalid alarm id",
			slog.String("message_id", msg.UUID),
			slog.String("alarm_id", ev.AlarmID),
		)

		return ReminderEvent{}, domain.AlarmID{}, false
	}

	if !domain.ReminderKind(ev.Kind).IsValid() {
		ev.Kind = string(domain.ReminderPrimary)

		if kind, ok := domain.ReminderKindOf(id, domain.ReminderIdentity(ev.Identity)); ok {
			ev.Kind = string(kind)
		}
	}

	return ev, id, true
}
