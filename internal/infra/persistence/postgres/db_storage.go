package postgres

import (
	"context"
	"log/slog"
	"reflect"
	"sync"

	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"
	"hbnb/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// tracked is a record handed out by a session together with its serialized
// form as last read from or written to the database. A nil snapshot marks a
// record registered with New and not yet saved.
type tracked struct {
	record   entity.Record
	snapshot map[string]any
}

// session is the state of one unit of work.
type session struct {
	tracked map[string]*tracked
	deleted map[string]entity.Record
}

func newSession() *session {
	return &session{
		tracked: make(map[string]*tracked),
		deleted: make(map[string]entity.Record),
	}
}

func (s *session) track(r entity.Record) entity.Record {
	key := entity.Key(r)
	if t, ok := s.tracked[key]; ok {
		return t.record
	}
	s.tracked[key] = &tracked{record: r, snapshot: entity.Serialize(r)}

	return r
}

// DBStorage is the relational engine. Reads go to the database; writes are
// staged in the caller's session and flushed by Save in one transaction.
// Records returned by All and Get stay tracked, so in-place mutations are
// written by the next Save of the same unit of work.
type DBStorage struct {
	db     *gorm.DB
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

var _ repository.Storage = (*DBStorage)(nil)

// NewDBStorage returns an engine over db. Call Reload to migrate the tables.
func NewDBStorage(db *gorm.DB, logger *slog.Logger) *DBStorage {
	if logger == nil {
		logger = slog.Default()
	}

	return &DBStorage{
		db:       db,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

// session returns the session of the unit carried by ctx. Callers hold mu.
func (s *DBStorage) session(ctx context.Context) *session {
	unit := repository.UnitOfWork(ctx)
	sess, ok := s.sessions[unit]
	if !ok {
		sess = newSession()
		s.sessions[unit] = sess
	}

	return sess
}

func (s *DBStorage) New(ctx context.Context, r entity.Record) error {
	if r == nil {
		return nil
	}
	if _, err := tablesFor(r.Class()); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(ctx)
	key := entity.Key(r)
	delete(sess.deleted, key)
	sess.tracked[key] = &tracked{record: r}

	return nil
}

func (s *DBStorage) All(ctx context.Context, class entity.Class) (map[string]entity.Record, error) {
	selected, err := tablesFor(class)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(ctx)
	db := s.db.WithContext(ctx)
	out := make(map[string]entity.Record)
	for _, t := range selected {
		rows, err := t.list(db)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			key := entity.Key(r)
			if _, gone := sess.deleted[key]; gone {
				continue
			}
			out[key] = sess.track(r)
		}
	}

	// Staged inserts are not in the tables yet.
	for key, t := range sess.tracked {
		if class == "" || t.record.Class() == class {
			out[key] = t.record
		}
	}

	return out, nil
}

func (s *DBStorage) Get(ctx context.Context, class entity.Class, id string) (entity.Record, bool, error) {
	t, ok := tables[class]
	if !ok {
		return nil, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(ctx)
	key := entity.KeyOf(class, id)
	if _, gone := sess.deleted[key]; gone {
		return nil, false, nil
	}
	if tr, ok := sess.tracked[key]; ok {
		return tr.record, true, nil
	}

	r, ok, err := t.find(s.db.WithContext(ctx), id)
	if err != nil || !ok {
		return nil, false, err
	}

	return sess.track(r), true, nil
}

func (s *DBStorage) Count(ctx context.Context, class entity.Class) (int, error) {
	all, err := s.All(ctx, class)
	if err != nil {
		return 0, err
	}

	return len(all), nil
}

func (s *DBStorage) Delete(ctx context.Context, r entity.Record) error {
	if r == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(ctx)
	key := entity.Key(r)
	delete(sess.tracked, key)
	sess.deleted[key] = r

	return nil
}

// Save flushes the session in one transaction: staged deletes, then every
// new or modified record as an upsert. On failure the session is kept so the
// caller can retry or Close it.
func (s *DBStorage) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(ctx)
	dirty := make(map[string]map[string]any)
	for key, t := range sess.tracked {
		current := entity.Serialize(t.record)
		if t.snapshot == nil || !reflect.DeepEqual(t.snapshot, current) {
			dirty[key] = current
		}
	}
	if len(dirty) == 0 && len(sess.deleted) == 0 {
		return nil
	}

	err := inTransaction(ctx, s.db, func(tx *gorm.DB) error {
		for _, r := range sess.deleted {
			if err := tables[r.Class()].remove(tx, r.Meta().ID); err != nil {
				return err
			}
		}
		for key := range dirty {
			r := sess.tracked[key].record
			if err := tables[r.Class()].upsert(tx, r); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "save session")
	}

	for key, snapshot := range dirty {
		sess.tracked[key].snapshot = snapshot
	}
	s.logger.DebugContext(ctx, "Session saved",
		slog.Int("written", len(dirty)),
		slog.Int("deleted", len(sess.deleted)),
	)
	sess.deleted = make(map[string]entity.Record)

	return nil
}

// Reload migrates every table and drops all sessions, so the next read sees
// exactly what the database holds.
func (s *DBStorage) Reload(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate tables")
	}

	s.mu.Lock()
	s.sessions = make(map[string]*session)
	s.mu.Unlock()

	return nil
}

// Close discards the session of the unit carried by ctx, including anything
// staged and not saved.
func (s *DBStorage) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, repository.UnitOfWork(ctx))

	return nil
}
