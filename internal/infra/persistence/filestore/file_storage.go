package filestore

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"

	"github.com/pkg/errors"
)

// FileStorage keeps every live record in memory and writes the whole
// collection to its Medium on Save. Each instance owns its own collection.
type FileStorage struct {
	mu      sync.RWMutex
	objects map[string]entity.Record
	medium  Medium
	logger  *slog.Logger
}

var _ repository.Storage = (*FileStorage)(nil)

// New returns an empty engine backed by medium. Call Reload to load what the
// medium already holds.
func New(medium Medium, logger *slog.Logger) *FileStorage {
	if logger == nil {
		logger = slog.Default()
	}

	return &FileStorage{
		objects: make(map[string]entity.Record),
		medium:  medium,
		logger:  logger,
	}
}

func (s *FileStorage) New(_ context.Context, r entity.Record) error {
	if r == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[entity.Key(r)] = r

	return nil
}

func (s *FileStorage) All(_ context.Context, class entity.Class) (map[string]entity.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]entity.Record, len(s.objects))
	for key, r := range s.objects {
		if class == "" || r.Class() == class {
			out[key] = r
		}
	}

	return out, nil
}

func (s *FileStorage) Get(_ context.Context, class entity.Class, id string) (entity.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.objects[entity.KeyOf(class, id)]

	return r, ok, nil
}

func (s *FileStorage) Count(ctx context.Context, class entity.Class) (int, error) {
	all, err := s.All(ctx, class)
	if err != nil {
		return 0, err
	}

	return len(all), nil
}

func (s *FileStorage) Delete(_ context.Context, r entity.Record) error {
	if r == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, entity.Key(r))

	return nil
}

// Save serializes a snapshot of the collection and hands it to the medium in
// one write. The lock is released before the write.
func (s *FileStorage) Save(ctx context.Context) error {
	s.mu.RLock()
	document := make(map[string]map[string]any, len(s.objects))
	for key, r := range s.objects {
		document[key] = entity.Serialize(r)
	}
	s.mu.RUnlock()

	data, err := json.Marshal(document)
	if err != nil {
		return errors.Wrap(err, "encode storage document")
	}
	if err := s.medium.Write(ctx, data); err != nil {
		return errors.Wrap(err, "save storage document")
	}

	s.logger.DebugContext(ctx, "Storage document saved", slog.Int("records", len(document)))

	return nil
}

// Reload replaces the collection with the medium's contents. A record whose
// class is not registered fails the whole reload and the live collection is
// left as it was.
func (s *FileStorage) Reload(ctx context.Context) error {
	data, err := s.medium.Read(ctx)
	if errors.Is(err, ErrMediumNotFound) {
		s.mu.Lock()
		s.objects = make(map[string]entity.Record)
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "No storage document yet, starting empty")

		return nil
	}
	if err != nil {
		return errors.Wrap(err, "reload storage document")
	}

	var document map[string]map[string]any
	if err := json.Unmarshal(data, &document); err != nil {
		return errors.Wrap(err, "decode storage document")
	}

	objects := make(map[string]entity.Record, len(document))
	for key, fields := range document {
		r, err := entity.Deserialize(fields)
		if err != nil {
			return errors.Wrapf(err, "reload %s", key)
		}
		// Get and Delete address records by class and id, not by document key.
		if actual := entity.Key(r); actual != key {
			s.logger.WarnContext(ctx, "Storage document key does not match its record",
				slog.String("document_key", key),
				slog.String("record_key", actual),
			)
			key = actual
		}
		objects[key] = r
	}

	s.mu.Lock()
	s.objects = objects
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "Storage document reloaded", slog.Int("records", len(objects)))

	return nil
}

// Close ends a unit of work. The collection lives for the whole process, so
// there is nothing to release.
func (s *FileStorage) Close(context.Context) error {
	return nil
}
