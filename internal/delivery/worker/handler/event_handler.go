package handler

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	deliverycontext "hbnb/internal/delivery/context"
	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ErrInvalidEvent marks an event that can never be processed. Transports
// acknowledge such events instead of redelivering them.
var ErrInvalidEvent = errors.New("invalid record event")

// EventHandler audits record change events, whatever transport delivered them.
type EventHandler struct {
	logger *slog.Logger

	mu    sync.Mutex
	tally map[string]int
}

// EventHandlerParams holds dependencies for the EventHandler
type EventHandlerParams struct {
	fx.In

	Logger *slog.Logger
}

// NewEventHandler creates a new record event handler
func NewEventHandler(params EventHandlerParams) *EventHandler {
	return &EventHandler{
		logger: params.Logger,
		tally:  make(map[string]int),
	}
}

// Handle validates event and writes one audit line for it.
func (h *EventHandler) Handle(ctx context.Context, event *service.RecordEvent) error {
	if err := validateEvent(event); err != nil {
		return err
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)
	logger.LogAttrs(ctx, slog.LevelInfo, "[Worker] Record "+event.Action,
		slog.String("class", event.Class),
		slog.String("id", event.ID),
		slog.Int("fields", len(event.Record)),
	)

	h.mu.Lock()
	h.tally[event.Class+"."+event.Action]++
	h.mu.Unlock()

	return nil
}

// Tally returns how many events were handled per "<Class>.<action>".
func (h *EventHandler) Tally() map[string]int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return maps.Clone(h.tally)
}

func validateEvent(event *service.RecordEvent) error {
	switch event.Action {
	case service.ActionCreated, service.ActionUpdated, service.ActionDeleted:
	default:
		return errors.Wrapf(ErrInvalidEvent, "unknown action %q", event.Action)
	}
	if !entity.Class(event.Class).IsValid() {
		return errors.Wrapf(ErrInvalidEvent, "unknown class %q", event.Class)
	}
	if event.ID == "" {
		return errors.Wrap(ErrInvalidEvent, "missing id")
	}

	return nil
}
