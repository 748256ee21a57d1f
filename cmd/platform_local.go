//go:build !gcloud

package main

import (
	"github.com/Jpcostan/rise-and-move-ios/internal/config"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/notifier"
)

func transportConfig(cfg *config.Config) (notifier.TransportConfig, error) {
	return notifier.TransportConfig{
		NatsURL: cfg.PubSub.NatsURL,
	}, nil
}
