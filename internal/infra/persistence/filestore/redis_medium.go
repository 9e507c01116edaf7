package filestore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisMedium keeps the document as one string value. SET replaces the
// value atomically, which gives the same whole-document semantics as a file.
type RedisMedium struct {
	client redis.UniversalClient
	key    string
}

// NewRedisMedium stores the document under key. The medium owns the client.
func NewRedisMedium(client redis.UniversalClient, key string) *RedisMedium {
	if key == "" {
		key = DefaultDocumentKey
	}

	return &RedisMedium{client: client, key: key}
}

func (m *RedisMedium) Read(ctx context.Context) ([]byte, error) {
	data, err := m.client.Get(ctx, m.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMediumNotFound
		}

		return nil, errors.Wrapf(err, "redis get %s", m.key)
	}

	return data, nil
}

func (m *RedisMedium) Write(ctx context.Context, document []byte) error {
	if err := m.client.Set(ctx, m.key, document, 0).Err(); err != nil {
		return errors.Wrapf(err, "redis set %s", m.key)
	}

	return nil
}

func (m *RedisMedium) Close() error {
	return errors.WithStack(m.client.Close())
}
