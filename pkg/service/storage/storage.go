// Package storage archives uploaded files to Cloud Storage.
package storage

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
)

type Archive struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ interfaces.ArchiveStorage = &Archive{}

type Option func(*Archive)

// WithPrefix prepends prefix to every object name.
func WithPrefix(prefix string) Option {
	return func(a *Archive) {
		a.prefix = prefix
	}
}

func New(ctx context.Context, bucket string, opts ...Option) (*Archive, error) {
	if bucket == "" {
		return nil, goerr.New("storage bucket is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	a := &Archive{client: client, bucket: bucket}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *Archive) Put(ctx context.Context, key string, data []byte) error {
	name := a.prefix + key
	w := a.client.Bucket(a.bucket).Object(name).NewWriter(ctx)

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write object", goerr.V("bucket", a.bucket), goerr.V("object", name))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize object", goerr.V("bucket", a.bucket), goerr.V("object", name))
	}
	return nil
}

func (a *Archive) Close() error {
	return a.client.Close()
}
