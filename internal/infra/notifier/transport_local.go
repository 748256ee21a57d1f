//go:build !gcloud

package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const streamName = "ALARM_REMINDERS"

type TransportConfig struct {
	NatsURL string
}

type Transport struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
}

// NewTransport connects to NATS JetStream when a URL is configured and
// otherwise falls back to an in-process Go channel.
func NewTransport(ctx context.Context, cfg TransportConfig) (*Transport, error) {
	logger := watermill.NewSlogLogger(slog.Default())

	if cfg.NatsURL == "" {
		slog.Warn("NATS_URL not set, using in-process reminder transport")

		ch := gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
			Persistent:          true,
		}, logger)

		return &Transport{Publisher: ch, Subscriber: ch}, nil
	}

	if err := provisionStream(ctx, cfg.NatsURL); err != nil {
		return nil, err
	}

	jsConfig := nats.JetStreamConfig{
		Disabled:      false,
		AutoProvision: false,
		DurablePrefix: "alarm-core",
	}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         cfg.NatsURL,
			NatsOptions: []nc.Option{nc.Timeout(10 * time.Second)},
			JetStream:   jsConfig,
			Marshaler:   &nats.NATSMarshaler{},
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:            cfg.NatsURL,
			NatsOptions:    []nc.Option{nc.Timeout(10 * time.Second)},
			JetStream:      jsConfig,
			Unmarshaler:    &nats.NATSMarshaler{},
			AckWaitTimeout: 30 * time.Second,
		},
		logger,
	)
	if err != nil {
		_ = publisher.Close()

		return nil, fmt.Errorf("failed to create NATS subscriber: %w", err)
	}

	slog.Info("NATS reminder transport initialized", "url", cfg.NatsURL)

	return &Transport{Publisher: publisher, Subscriber: subscriber}, nil
}

func provisionStream(ctx context.Context, url string) error {
	conn, err := nc.Connect(url, nc.Timeout(10*time.Second))
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer conn.Close()

	js, err := jetstream.New(conn)
	if err != nil {
		return fmt.Errorf("failed to create JetStream context: %w", err)
	}

	subjects := []string{
		TopicReminderSchedule,
		TopicReminderCancel,
		TopicReminderDelivered,
		TopicReminderAcknowledged,
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        streamName,
		Description: "Alarm reminder commands and device events",
		Subjects:    subjects,
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      7 * 24 * time.Hour,
		MaxBytes:    100 * 1024 * 1024, // 100MB
		Storage:     jetstream.FileStorage,
		Replicas:    1,
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	slog.Info("NATS JetStream stream configured",
		slog.String("stream", streamName),
		slog.Int("subjects", len(subjects)),
	)

	return nil
}
