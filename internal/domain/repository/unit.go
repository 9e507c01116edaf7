package repository

import "context"

type unitKey struct{}

// WithUnitOfWork tags ctx with the id of the unit of work (normally the
// request id). Engines that keep per-unit state scope it by this id, and
// Close releases only the calling unit's state.
func WithUnitOfWork(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, unitKey{}, id)
}

// UnitOfWork returns the unit id carried by ctx, or "" for the shared unit.
func UnitOfWork(ctx context.Context) string {
	id, _ := ctx.Value(unitKey{}).(string)

	return id
}
