// Package pubsub publishes record change events to a message queue.
package pubsub

import (
	"context"
	"log/slog"

	"hbnb/config"
	"hbnb/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Publisher providers selectable through events.provider.
const (
	ProviderLocal    = "local"
	ProviderGoogle   = "google"
	ProviderRabbitMQ = "rabbitmq"
)

// noopPublisher is used when event publishing is disabled
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishRecordEvent(ctx context.Context, event *service.RecordEvent) error {
	p.logger.DebugContext(ctx, "[NoopPubSub] Event publishing disabled, skipping",
		slog.String("action", event.Action),
		slog.String("class", event.Class),
		slog.String("id", event.ID),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher creates an EventPublisher based on configuration
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.Events
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("Event publishing not configured, using no-op publisher")

		return &noopPublisher{logger: logger}, nil
	}

	var publisher service.EventPublisher
	var err error

	switch cfg.Provider {
	case ProviderLocal:
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("local endpoint is required for local provider")
		}
		logger.Info("Using local HTTP publisher for record events",
			slog.String("endpoint", cfg.LocalEndpoint),
		)

		publisher = NewLocalHTTPPublisher(cfg.LocalEndpoint, logger)

	case ProviderGoogle:
		if cfg.ProjectID == "" {
			return nil, errors.New("project ID is required for google provider")
		}
		if cfg.TopicID == "" {
			return nil, errors.New("topic ID is required for google provider")
		}

		publisher, err = NewGooglePubSubPublisher(params.Ctx, cfg.ProjectID, cfg.TopicID, logger)
		if err != nil {
			return nil, err
		}

	case ProviderRabbitMQ:
		if cfg.AMQPURL == "" {
			return nil, errors.New("AMQP URL is required for rabbitmq provider")
		}

		publisher, err = NewRabbitMQPublisher(cfg.AMQPURL, cfg.Queue, logger)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Errorf("unknown events provider: %s", cfg.Provider)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing EventPublisher")

			return publisher.Close()
		},
	})

	return publisher, nil
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
