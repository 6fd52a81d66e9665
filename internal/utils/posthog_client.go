// posthog_client.go wraps the posthog.Client so callers never have to care
// whether analytics is configured.
package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

const posthogEndpoint = "https://eu.i.posthog.com"

type PosthogClientWrapper struct {
	client posthog.Client
	logger *slog.Logger
}

// InitializePosthogClient returns a usable wrapper even when apiKey is empty;
// every method on an uninitialized wrapper is a no-op.
func InitializePosthogClient(apiKey string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("PostHog API key not set, analytics disabled")
		return &PosthogClientWrapper{}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: posthogEndpoint})
	if err != nil {
		logger.Error("PostHog client init failed, analytics disabled", slog.String("error", err.Error()))
		return &PosthogClientWrapper{}
	}
	return &PosthogClientWrapper{client: client, logger: logger}
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w.client != nil
}

func (w *PosthogClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if w.client == nil {
		return
	}
	if err := w.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil {
		w.logger.Debug("PostHog enqueue failed", slog.String("event", event))
	}
}

func (w *PosthogClientWrapper) Close() {
	if w.client != nil {
		w.client.Close()
	}
}
