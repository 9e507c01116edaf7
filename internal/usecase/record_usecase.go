// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"hbnb/internal/domain/entity"
)

// Attributes is a decoded request body: field name to JSON value.
type Attributes map[string]any

// RecordService persists record changes. Every method saves the whole live
// collection and then announces the change through the event publisher.
type RecordService interface {
	// Create registers r with the store and saves it.
	Create(ctx context.Context, r entity.Record) error

	// Update refreshes r's updated_at, registers it in place of the live
	// record with the same key and saves. r must be an unshared copy
	// (entity.Clone); on a failed save the previous record is kept.
	Update(ctx context.Context, r entity.Record) error

	// Delete removes r from the store and saves the result.
	Delete(ctx context.Context, r entity.Record) error
}
