// Package delivery holds the inbound adapters of the service.
package delivery

import "context"

// Delivery is a long-running inbound adapter, such as the HTTP API.
type Delivery interface {
	// Serve blocks until the adapter stops. A clean shutdown returns nil.
	Serve(ctx context.Context) error
}
