// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"slices"
	"strings"

	"hbnb/internal/domain/entity"
)

// Storage is the contract every storage engine satisfies. Callers cannot tell
// the flat-file engine from the relational one.
//
// Records are keyed by "<Class>.<id>". The engine keeps no locks beyond what
// memory safety requires: concurrent Save calls race and the last snapshot wins.
type Storage interface {
	// New registers a record as live. An existing record under the same key is
	// replaced without error.
	New(ctx context.Context, r entity.Record) error

	// All returns the live records keyed by "<Class>.<id>", limited to class
	// unless class is empty. Values are the live records themselves, so
	// mutating one mutates the store.
	All(ctx context.Context, class entity.Class) (map[string]entity.Record, error)

	// Get returns the record of class with the given id. A missing record is
	// reported through the boolean, never as an error.
	Get(ctx context.Context, class entity.Class, id string) (entity.Record, bool, error)

	// Count returns the number of entries All would return for class.
	Count(ctx context.Context, class entity.Class) (int, error)

	// Delete removes a record from the live collection. Removing an absent
	// record is a no-op.
	Delete(ctx context.Context, r entity.Record) error

	// Save durably persists the entire live collection.
	Save(ctx context.Context) error

	// Reload replaces the live collection with the durable medium's contents.
	// A medium that does not exist yet leaves the collection empty.
	Reload(ctx context.Context) error

	// Close ends the current unit of work and releases what the engine holds for it.
	Close(ctx context.Context) error
}

// GetAs is Get for a statically known variant.
func GetAs[T entity.Record](ctx context.Context, s Storage, id string) (T, bool, error) {
	var zero T

	rec, ok, err := s.Get(ctx, zero.Class(), id)
	if err != nil || !ok {
		return zero, false, err
	}

	typed, ok := rec.(T)
	if !ok {
		return zero, false, nil
	}

	return typed, true, nil
}

// AllAs is All for a statically known variant, ordered by creation time then id.
func AllAs[T entity.Record](ctx context.Context, s Storage) ([]T, error) {
	var zero T

	records, err := s.All(ctx, zero.Class())
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		if typed, ok := rec.(T); ok {
			out = append(out, typed)
		}
	}
	SortRecords(out)

	return out, nil
}

// SortRecords orders records by creation time, breaking ties by id.
func SortRecords[T entity.Record](records []T) {
	slices.SortFunc(records, func(a, b T) int {
		if c := a.Meta().CreatedAt.Compare(b.Meta().CreatedAt); c != 0 {
			return c
		}

		return strings.Compare(a.Meta().ID, b.Meta().ID)
	})
}
