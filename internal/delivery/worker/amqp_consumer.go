package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"hbnb/config"
	"hbnb/internal/delivery"
	deliverycontext "hbnb/internal/delivery/context"
	"hbnb/internal/delivery/worker/handler"
	"hbnb/internal/domain/service"
	"hbnb/internal/infra/pubsub"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

// deliveryHandler is the part of EventHandler the consumer needs.
type deliveryHandler interface {
	Handle(ctx context.Context, event *service.RecordEvent) error
}

// amqpConsumer reads record events from the queue the rabbitmq publisher
// writes to. It does nothing unless events.provider is rabbitmq.
type amqpConsumer struct {
	cfg    *config.EventsConfig
	logger *slog.Logger
	events deliveryHandler

	mu   sync.Mutex
	conn *amqp.Connection
}

// ConsumerParams holds dependencies for the AMQP consumer
type ConsumerParams struct {
	fx.In

	Lc     fx.Lifecycle
	Cfg    *config.Config
	Logger *slog.Logger
	Events *handler.EventHandler
}

// NewAMQPConsumer creates the queue consumer delivery
func NewAMQPConsumer(params ConsumerParams) (delivery.Delivery, error) {
	c := &amqpConsumer{
		cfg:    params.Cfg.Events,
		logger: params.Logger,
		events: params.Events,
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return c.stop()
		},
	})

	return c, nil
}

// Serve consumes until the connection is closed.
func (c *amqpConsumer) Serve(ctx context.Context) error {
	if c.cfg == nil || c.cfg.Provider != pubsub.ProviderRabbitMQ {
		c.logger.Debug("RabbitMQ consumer disabled")

		return nil
	}

	queue := c.cfg.Queue
	if queue == "" {
		queue = pubsub.DefaultQueue
	}

	conn, err := amqp.Dial(c.cfg.AMQPURL)
	if err != nil {
		return errors.Wrap(err, "rabbitmq dial")
	}
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	ch, err := conn.Channel()
	if err != nil {
		return errors.Wrap(err, "rabbitmq channel")
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return errors.Wrapf(err, "rabbitmq declare %s", queue)
	}

	deliveries, err := ch.ConsumeWithContext(ctx, queue, "hbnb-eventworker", false, false, false, false, nil)
	if err != nil {
		return errors.Wrapf(err, "rabbitmq consume %s", queue)
	}

	c.logger.Info("Consuming record events", slog.String("queue", queue))
	for msg := range deliveries {
		c.process(ctx, msg)
	}
	c.logger.Info("RabbitMQ consumer stopped")

	return nil
}

// process handles one message. Events that can never succeed are dropped;
// anything else goes back to the queue.
func (c *amqpConsumer) process(ctx context.Context, msg amqp.Delivery) {
	requestID := msg.CorrelationId
	if requestID == "" {
		requestID = uuid.NewString()
	}
	logger := c.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, logger)

	var event service.RecordEvent
	err := json.Unmarshal(msg.Body, &event)
	if err == nil {
		err = c.events.Handle(ctx, &event)
	}

	switch {
	case err == nil:
		err = msg.Ack(false)
	case errors.Is(err, handler.ErrInvalidEvent), isSyntaxError(err):
		logger.Warn("[Worker] Dropping record event", slog.Any("error", err))
		err = msg.Nack(false, false)
	default:
		logger.Error("[Worker] Failed to handle record event", slog.Any("error", err))
		err = msg.Nack(false, true)
	}
	if err != nil {
		logger.Error("[Worker] Failed to settle message", slog.Any("error", err))
	}
}

func isSyntaxError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func (c *amqpConsumer) stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || c.conn.IsClosed() {
		return nil
	}

	return errors.WithStack(c.conn.Close())
}
