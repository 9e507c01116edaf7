package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"hbnb/config"
	"hbnb/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newParams(t *testing.T, events *config.EventsConfig) (PublisherParams, *fxtest.Lifecycle) {
	t.Helper()

	lc := fxtest.NewLifecycle(t)

	return PublisherParams{
		Lc:     lc,
		Ctx:    context.Background(),
		Config: &config.Config{Events: events},
		Logger: testLogger(),
	}, lc
}

func sampleEvent() *service.RecordEvent {
	return &service.RecordEvent{
		RequestID: "req-1",
		Action:    service.ActionCreated,
		Class:     "State",
		ID:        "s-1",
		Record:    map[string]any{"name": "California"},
	}
}

func TestNewEventPublisher_DisabledIsNoop(t *testing.T) {
	params, _ := newParams(t, nil)

	publisher, err := NewEventPublisher(params)
	require.NoError(t, err)
	require.IsType(t, &noopPublisher{}, publisher)

	assert.NoError(t, publisher.PublishRecordEvent(context.Background(), sampleEvent()))
	assert.NoError(t, publisher.Close())
}

func TestNewEventPublisher_RequiredSettings(t *testing.T) {
	tests := []struct {
		name   string
		events *config.EventsConfig
	}{
		{name: "local without endpoint", events: &config.EventsConfig{Provider: ProviderLocal}},
		{name: "google without project", events: &config.EventsConfig{Provider: ProviderGoogle, TopicID: "t"}},
		{name: "google without topic", events: &config.EventsConfig{Provider: ProviderGoogle, ProjectID: "p"}},
		{name: "rabbitmq without url", events: &config.EventsConfig{Provider: ProviderRabbitMQ}},
		{name: "unknown provider", events: &config.EventsConfig{Provider: "carrier-pigeon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, _ := newParams(t, tt.events)

			_, err := NewEventPublisher(params)
			assert.Error(t, err)
		})
	}
}

func TestLocalHTTPPublisher_PushesEnvelope(t *testing.T) {
	var (
		got       PubSubPushMessage
		requestID string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	params, lc := newParams(t, &config.EventsConfig{Provider: ProviderLocal, LocalEndpoint: server.URL})
	publisher, err := NewEventPublisher(params)
	require.NoError(t, err)
	lc.RequireStart()
	defer lc.RequireStop()

	require.NoError(t, publisher.PublishRecordEvent(context.Background(), sampleEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "State", got.Message.Attributes["class"])
	assert.Equal(t, service.ActionCreated, got.Message.Attributes["action"])
	assert.Equal(t, "s-1", got.Message.Attributes["id"])
	assert.NotEmpty(t, got.Message.MessageID)

	data, err := base64.StdEncoding.DecodeString(got.Message.Data)
	require.NoError(t, err)

	var event service.RecordEvent
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "California", event.Record["name"])
}

func TestLocalHTTPPublisher_ReportsFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, testLogger())

	err := publisher.PublishRecordEvent(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestEventAttributes_OmitsEmptyRequestID(t *testing.T) {
	event := sampleEvent()
	event.RequestID = ""

	attributes := eventAttributes(event)

	assert.NotContains(t, attributes, "request_id")
	assert.Len(t, attributes, 3)
}
