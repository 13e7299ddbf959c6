// Package storage keeps uploaded images in an object store and hands back
// public URLs.
package storage

import (
	"context"
	"io"
	"path"
	"strings"
)

// Store writes and removes image objects.
type Store interface {
	// Put stores r under name and returns the public URL.
	Put(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error)
	// Delete removes name. Deleting a missing object is not an error.
	Delete(ctx context.Context, name string) error
	// NameFromURL returns the object name if url points into this store.
	NameFromURL(url string) (string, bool)
}

// CleanName validates an object name: relative, slash-separated, no dot
// segments.
func CleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return "", ErrInvalidName
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", ErrInvalidName
		}
	}
	return path.Clean(name), nil
}

// nameUnder strips prefix from url and validates the remainder.
func nameUnder(prefix, url string) (string, bool) {
	if prefix == "" || !strings.HasPrefix(url, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(url, prefix)
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	name, err := CleanName(rest)
	if err != nil {
		return "", false
	}
	return name, true
}
