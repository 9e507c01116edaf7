package filestore

import (
	"context"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	"gocloud.dev/gcerrors"
)

// BlobMedium keeps the document as a single object in a gocloud bucket.
// With fileblob the object is written to a temp file and renamed into place,
// so a reader never sees a partial document.
type BlobMedium struct {
	bucket *blob.Bucket
	key    string
}

// NewBlobMedium wraps an open bucket. The medium owns the bucket from now on.
func NewBlobMedium(bucket *blob.Bucket, key string) *BlobMedium {
	if key == "" {
		key = DefaultDocumentKey
	}

	return &BlobMedium{bucket: bucket, key: key}
}

// OpenBlobMedium opens the bucket at url (file:///dir, mem://, gs://bucket).
func OpenBlobMedium(ctx context.Context, url, key string) (*BlobMedium, error) {
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", url)
	}

	return NewBlobMedium(bucket, key), nil
}

func (m *BlobMedium) Read(ctx context.Context) ([]byte, error) {
	data, err := m.bucket.ReadAll(ctx, m.key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, ErrMediumNotFound
		}

		return nil, errors.Wrapf(err, "read %s", m.key)
	}

	return data, nil
}

func (m *BlobMedium) Write(ctx context.Context, document []byte) error {
	opts := &blob.WriterOptions{ContentType: "application/json"}
	if err := m.bucket.WriteAll(ctx, m.key, document, opts); err != nil {
		return errors.Wrapf(err, "write %s", m.key)
	}

	return nil
}

func (m *BlobMedium) Close() error {
	return errors.WithStack(m.bucket.Close())
}
