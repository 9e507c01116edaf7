package worker

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"hbnb/config"
	"hbnb/internal/delivery/worker/handler"
	"hbnb/internal/domain/service"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settlement struct {
	acked   bool
	nacked  bool
	requeue bool
}

type fakeAcknowledger struct {
	settlement
}

func (a *fakeAcknowledger) Ack(uint64, bool) error {
	a.acked = true

	return nil
}

func (a *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked, a.requeue = true, requeue

	return nil
}

func (a *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	a.nacked, a.requeue = true, requeue

	return nil
}

type failingHandler struct{}

func (failingHandler) Handle(context.Context, *service.RecordEvent) error {
	return errors.New("downstream unavailable")
}

func newTestConsumer(events deliveryHandler) *amqpConsumer {
	return &amqpConsumer{
		cfg:    &config.EventsConfig{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		events: events,
	}
}

func TestAMQPConsumer_Process(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	events := handler.NewEventHandler(handler.EventHandlerParams{Logger: logger})

	tests := []struct {
		name   string
		events deliveryHandler
		body   string
		want   settlement
	}{
		{
			name:   "valid event is acked",
			events: events,
			body:   `{"action":"created","class":"City","id":"c-1"}`,
			want:   settlement{acked: true},
		},
		{
			name:   "unknown class is dropped",
			events: events,
			body:   `{"action":"created","class":"Ghost","id":"1"}`,
			want:   settlement{nacked: true},
		},
		{
			name:   "garbage is dropped",
			events: events,
			body:   `not json`,
			want:   settlement{nacked: true},
		},
		{
			name:   "handler failure is requeued",
			events: failingHandler{},
			body:   `{"action":"created","class":"City","id":"c-1"}`,
			want:   settlement{nacked: true, requeue: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acker := &fakeAcknowledger{}
			msg := amqp.Delivery{Acknowledger: acker, Body: []byte(tt.body), CorrelationId: "req-1"}

			newTestConsumer(tt.events).process(t.Context(), msg)

			assert.Equal(t, tt.want, acker.settlement)
		})
	}

	assert.Equal(t, map[string]int{"City.created": 1}, events.Tally())
}

func TestAMQPConsumer_DisabledForOtherProviders(t *testing.T) {
	c := newTestConsumer(failingHandler{})
	c.cfg.Provider = "local"

	require.NoError(t, c.Serve(t.Context()))
	require.NoError(t, c.stop())
}
