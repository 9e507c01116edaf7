package handler

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hbnb/config"
	deliverycontext "hbnb/internal/delivery/context"
	"hbnb/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPushHandler(verify bool) *PushHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewPushHandler(PushHandlerParams{
		Config: &config.Config{Events: &config.EventsConfig{VerifyPushAuth: verify}},
		Logger: logger,
		Events: NewEventHandler(EventHandlerParams{Logger: logger}),
	})
}

func pushBody(t *testing.T, data string, attributes map[string]string) string {
	t.Helper()

	var msg PubSubMessage
	msg.Message.Data = data
	msg.Message.MessageID = "m-1"
	msg.Message.Attributes = attributes
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func encodeEvent(t *testing.T, event service.RecordEvent) string {
	t.Helper()

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	return base64.StdEncoding.EncodeToString(raw)
}

func push(h *PushHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h.HandlePush(e.NewContext(req, rec))

	return rec
}

func TestHandlePush(t *testing.T) {
	valid := service.RecordEvent{Action: service.ActionCreated, Class: "State", ID: "s-1"}

	tests := []struct {
		name string
		body func(t *testing.T) string
		want int
	}{
		{
			name: "valid event",
			body: func(t *testing.T) string { return pushBody(t, encodeEvent(t, valid), nil) },
			want: http.StatusOK,
		},
		{
			name: "not base64",
			body: func(t *testing.T) string { return pushBody(t, "%%%", nil) },
			want: http.StatusBadRequest,
		},
		{
			name: "not an event",
			body: func(t *testing.T) string {
				return pushBody(t, base64.StdEncoding.EncodeToString([]byte("[1]")), nil)
			},
			want: http.StatusBadRequest,
		},
		{
			name: "unknown class",
			body: func(t *testing.T) string {
				return pushBody(t, encodeEvent(t, service.RecordEvent{Action: service.ActionCreated, Class: "Ghost", ID: "1"}), nil)
			},
			want: http.StatusBadRequest,
		},
		{
			name: "malformed envelope",
			body: func(*testing.T) string { return `{"message":` },
			want: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := push(newTestPushHandler(false), tt.body(t))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandlePush_TalliesEvents(t *testing.T) {
	h := newTestPushHandler(false)

	for _, action := range []string{service.ActionCreated, service.ActionUpdated, service.ActionUpdated} {
		event := service.RecordEvent{Action: action, Class: "Place", ID: "p-1"}
		require.Equal(t, http.StatusOK, push(h, pushBody(t, encodeEvent(t, event), nil)).Code)
	}

	assert.Equal(t, map[string]int{"Place.created": 1, "Place.updated": 2}, h.events.Tally())
}

func TestHandlePush_RequiresTokenWhenVerifying(t *testing.T) {
	h := newTestPushHandler(true)
	event := service.RecordEvent{Action: service.ActionDeleted, Class: "User", ID: "u-1"}

	rec := push(h, pushBody(t, encodeEvent(t, event), nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, h.events.Tally())
}

func TestExtractRequestID(t *testing.T) {
	ctx := deliverycontext.WithRequestID(t.Context(), "from-ctx")
	event := &service.RecordEvent{RequestID: "from-event"}

	assert.Equal(t, "from-attr", extractRequestID(ctx, map[string]string{"request_id": "from-attr"}, event))
	assert.Equal(t, "from-event", extractRequestID(ctx, nil, event))
	assert.Equal(t, "from-ctx", extractRequestID(ctx, nil, &service.RecordEvent{}))
	assert.NotEmpty(t, extractRequestID(t.Context(), nil, &service.RecordEvent{}))
}

func TestEventHandler_Validates(t *testing.T) {
	h := NewEventHandler(EventHandlerParams{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	err := h.Handle(t.Context(), &service.RecordEvent{Action: "renamed", Class: "State", ID: "1"})
	require.ErrorIs(t, err, ErrInvalidEvent)

	err = h.Handle(t.Context(), &service.RecordEvent{Action: service.ActionCreated, Class: "State"})
	require.ErrorIs(t, err, ErrInvalidEvent)

	require.NoError(t, h.Handle(t.Context(), &service.RecordEvent{Action: service.ActionCreated, Class: "State", ID: "1"}))
}
