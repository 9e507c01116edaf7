package service

import (
	"context"
)

// Record change actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// RecordEvent describes one persisted change to a record
type RecordEvent struct {
	RequestID string         `json:"request_id,omitempty"` // For distributed tracing
	Action    string         `json:"action"`
	Class     string         `json:"class"`
	ID        string         `json:"id"`
	Record    map[string]any `json:"record,omitempty"` // Serialized record, password removed
}

// EventPublisher defines the interface for publishing record changes to a message queue
type EventPublisher interface {
	// PublishRecordEvent publishes one change event
	PublishRecordEvent(ctx context.Context, event *RecordEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
