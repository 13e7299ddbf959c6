package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseStore keeps images in a Supabase Storage bucket.
type SupabaseStore struct {
	bucket       string
	publicPrefix string
	cacheControl string
	upsert       bool

	// storage-go applies upload options by setting headers on the client
	// itself, so uploads are serialized and removals use their own client.
	mu       sync.Mutex
	uploads  *storage_go.Client
	removals *storage_go.Client
}

// NewSupabaseStore builds a store for bucket at projectURL, authenticating with key.
func NewSupabaseStore(projectURL, key, bucket string, opts ...SupabaseOption) (*SupabaseStore, error) {
	projectURL = strings.TrimRight(strings.TrimSpace(projectURL), "/")
	if projectURL == "" || key == "" || bucket == "" {
		return nil, ErrMissingBackend
	}
	if _, err := url.ParseRequestURI(projectURL); err != nil {
		return nil, fmt.Errorf("%w: project url: %v", ErrMissingBackend, err)
	}
	endpoint := projectURL + "/storage/v1"
	headers := map[string]string{"apikey": key}
	s := &SupabaseStore{
		bucket:       bucket,
		cacheControl: defaultCacheControl,
		uploads:      storage_go.NewClient(endpoint, key, headers),
		removals:     storage_go.NewClient(endpoint, key, headers),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.publicPrefix = strings.TrimSuffix(s.uploads.GetPublicUrl(bucket, "").SignedURL, "/") + "/"
	return s, nil
}

func (s *SupabaseStore) Put(ctx context.Context, name, contentType string, r io.Reader, _ int64) (string, error) {
	name, err := CleanName(name)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cacheControl := "max-age=" + s.cacheControl
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.uploads.UploadFile(s.bucket, name, r, storage_go.FileOptions{
		ContentType:  &contentType,
		CacheControl: &cacheControl,
		Upsert:       &s.upsert,
	})
	if err != nil {
		return "", fmt.Errorf("%w: upload %s: %v", ErrObjectStore, name, err)
	}
	return s.uploads.GetPublicUrl(s.bucket, name).SignedURL, nil
}

func (s *SupabaseStore) Delete(ctx context.Context, name string) error {
	name, err := CleanName(name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.removals.RemoveFile(s.bucket, []string{name}); err != nil {
		return fmt.Errorf("%w: remove %s: %v", ErrObjectStore, name, err)
	}
	return nil
}

func (s *SupabaseStore) NameFromURL(u string) (string, bool) {
	return nameUnder(s.publicPrefix, u)
}
