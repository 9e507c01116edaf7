package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"hbnb/internal/domain/service"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultQueue is the queue record events go to when none is configured.
const DefaultQueue = "hbnb.records"

// rabbitMQPublisher implements EventPublisher on one AMQP connection. The
// channel is not safe for concurrent publishes, so they are serialized.
type rabbitMQPublisher struct {
	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	queue  string
	logger *slog.Logger
}

// NewRabbitMQPublisher dials url and declares a durable queue.
func NewRabbitMQPublisher(url, queue string, logger *slog.Logger) (service.EventPublisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "rabbitmq dial")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()

		return nil, errors.Wrap(err, "rabbitmq channel")
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()

		return nil, errors.Wrapf(err, "rabbitmq declare %s", queue)
	}

	logger.Info("RabbitMQ publisher initialized", slog.String("queue", queue))

	return &rabbitMQPublisher{
		conn:   conn,
		ch:     ch,
		queue:  queue,
		logger: logger,
	}, nil
}

func (p *rabbitMQPublisher) PublishRecordEvent(ctx context.Context, event *service.RecordEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	headers := amqp.Table{}
	for k, v := range eventAttributes(event) {
		headers[k] = v
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			Timestamp:     time.Now().UTC(),
			CorrelationId: event.RequestID,
			Headers:       headers,
			Body:          body,
		},
	)
	if err != nil {
		return errors.Wrap(err, "rabbitmq publish")
	}

	return nil
}

func (p *rabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	chErr := p.ch.Close()
	if err := p.conn.Close(); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(chErr)
}
