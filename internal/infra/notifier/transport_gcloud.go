//go:build gcloud

package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-googlecloud/pkg/googlecloud"
	"github.com/ThreeDotsLabs/watermill/message"
)

type TransportConfig struct {
	GCloudProjectID string
}

type Transport struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
}

func NewTransport(_ context.Context, cfg TransportConfig) (*Transport, error) {
	if cfg.GCloudProjectID == "" {
		return nil, errors.New("GCLOUD_PROJECT_ID is required for reminder transport")
	}

	logger := watermill.NewSlogLogger(slog.Default())

	publisher, err := googlecloud.NewPublisher(
		googlecloud.PublisherConfig{
			ProjectID: cfg.GCloudProjectID,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Cloud publisher: %w", err)
	}

	subscriber, err := googlecloud.NewSubscriber(
		googlecloud.SubscriberConfig{
			ProjectID: cfg.GCloudProjectID,
			GenerateSubscriptionName: func(topic string) string {
				return "alarm-core_" + topic
			},
		},
		logger,
	)
	if err != nil {
		_ = publisher.Close()

		return nil, fmt.Errorf("failed to create Google Cloud subscriber: %w", err)
	}

	slog.Info("Google Cloud Pub/Sub reminder transport initialized",
		"project_id", cfg.GCloudProjectID,
	)

	return &Transport{Publisher: publisher, Subscriber: subscriber}, nil
}
