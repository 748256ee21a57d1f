//go:build gcloud

package main

import (
	"github.com/Jpcostan/rise-and-move-ios/internal/config"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/notifier"
)

func transportConfig(cfg *config.Config) (notifier.TransportConfig, error) {
	if err := cfg.PubSub.Validate(); err != nil {
		return notifier.TransportConfig{}, err
	}

	return notifier.TransportConfig{
		GCloudProjectID: cfg.PubSub.GCloudProjectID,
	}, nil
}
