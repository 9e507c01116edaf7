// Package lifecycle holds shared timing constants for component start and stop hooks.
package lifecycle

import "time"

const (
	// DefaultTimeout bounds a single start or stop step (ping, reload, shutdown).
	DefaultTimeout = 10 * time.Second

	// ReloadTimeout bounds the initial load of the live collection at startup.
	ReloadTimeout = 30 * time.Second
)
