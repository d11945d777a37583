package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const publicURLBase = "https://storage.googleapis.com"

// GCSStore uploads images to a Google Cloud Storage bucket and stores the
// public object URL on the sticker.
type GCSStore struct {
	client *gcs.Client
	bucket string
	prefix string
}

// NewGCSClient creates a client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*gcs.Client, error) {
	if credsPath == "" {
		return gcs.NewClient(ctx)
	}
	return gcs.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

func NewGCSStore(client *gcs.Client, bucket, prefix string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

var _ ImageStore = (*GCSStore)(nil)

func (s *GCSStore) objectPath(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// PublicURL assumes the bucket grants public read.
func (s *GCSStore) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/%s/%s", publicURLBase, s.bucket, objectPath)
}

func (s *GCSStore) Save(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	obj := s.objectPath(path.Base(name))
	wc := s.client.Bucket(s.bucket).Object(obj).If(gcs.Conditions{DoesNotExist: true}).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // small files, single request
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("upload %q: %w", obj, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("finalize %q: %w", obj, err)
	}
	return s.PublicURL(obj), nil
}

// Remove accepts either the public URL returned by Save or a bare object path.
func (s *GCSStore) Remove(ctx context.Context, ref string) error {
	obj := strings.TrimPrefix(ref, fmt.Sprintf("%s/%s/", publicURLBase, s.bucket))
	err := s.client.Bucket(s.bucket).Object(obj).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("delete %q: %w", obj, err)
	}
	return nil
}
