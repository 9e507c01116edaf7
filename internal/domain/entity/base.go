package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the identity and timestamps shared by every record variant.
type Base struct {
	ID        string    `mapstructure:"id"`         // Globally unique, assigned once at construction.
	CreatedAt time.Time `mapstructure:"created_at"` // Fixed at construction.
	UpdatedAt time.Time `mapstructure:"updated_at"` // Refreshed on every persisted mutation.
}

// Record is implemented by every storable variant.
// Class must not dereference its receiver so it can be called on a nil pointer.
type Record interface {
	Class() Class
	Meta() *Base
	Fields() map[string]any
}

// NewBase returns a Base with a fresh id and both timestamps set to now.
func NewBase() Base {
	now := Now()

	return Base{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Now returns the current UTC time at the precision the serialized form keeps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Meta exposes the shared fields to code that only knows the Record interface.
func (b *Base) Meta() *Base {
	return b
}

// Touch refreshes UpdatedAt.
func (b *Base) Touch() {
	b.UpdatedAt = Now()
}

// fillDefaults completes a Base rebuilt from partial data.
func (b *Base) fillDefaults() {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = Now()
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = b.CreatedAt
	}
}
