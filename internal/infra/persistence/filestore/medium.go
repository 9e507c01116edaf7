// Package filestore implements the flat-file storage engine: the whole live
// collection is serialized into a single JSON document on every save.
package filestore

import (
	"context"

	"github.com/pkg/errors"
)

// DefaultDocumentKey is the object name of the document when none is configured.
const DefaultDocumentKey = "file.json"

// ErrMediumNotFound is returned by Medium.Read when no document has been written yet.
var ErrMediumNotFound = errors.New("storage document not found")

// Medium is the durable place the serialized document lives in.
// Write must replace the whole document in one step.
type Medium interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, document []byte) error
	Close() error
}
