package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MediaPrefix is the path LocalStore objects are served under.
const MediaPrefix = "/media/"

// LocalStore keeps objects on the local filesystem.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates dir if needed. baseURL is the public origin of the site.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: mkdir %s: %v", ErrObjectStore, dir, err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Put(ctx context.Context, name, _ string, r io.Reader, _ int64) (string, error) {
	name, err := CleanName(name)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dst := filepath.Join(s.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrObjectStore, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrObjectStore, err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: write: %v", ErrObjectStore, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %v", ErrObjectStore, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %v", ErrObjectStore, err)
	}
	return s.baseURL + MediaPrefix + name, nil
}

func (s *LocalStore) Delete(_ context.Context, name string) error {
	name, err := CleanName(name)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.dir, filepath.FromSlash(name)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrObjectStore, err)
	}
	return nil
}

func (s *LocalStore) NameFromURL(url string) (string, bool) {
	if name, ok := nameUnder(s.baseURL+MediaPrefix, url); ok {
		return name, true
	}
	return nameUnder(MediaPrefix, url)
}

// Handler serves stored objects; mount it at MediaPrefix.
func (s *LocalStore) Handler() http.Handler {
	return http.StripPrefix(MediaPrefix, http.FileServer(noDirFS{http.Dir(s.dir)}))
}

// noDirFS hides directory listings.
type noDirFS struct{ fs http.FileSystem }

func (n noDirFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
