package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// LocalStore keeps uploads in a directory on disk.
type LocalStore struct {
	dir string
	fs  http.FileSystem
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalStore{dir: dir, fs: http.Dir(dir)}, nil
}

func (s *LocalStore) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	key := CleanName(name)
	if key == "" {
		return fmt.Errorf("put: empty object name")
	}

	target := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("put: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return fmt.Errorf("put: create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("put: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("put: close: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("put: chmod: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("put: rename: %w", err)
	}
	return nil
}

func (s *LocalStore) Get(ctx context.Context, name string) (Object, error) {
	key := CleanName(name)
	if key == "" {
		return Object{}, ErrObjectNotFound
	}

	f, err := s.fs.Open("/" + key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Object{}, ErrObjectNotFound
		}
		return Object{}, fmt.Errorf("get: open: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return Object{}, fmt.Errorf("get: stat: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return Object{}, ErrObjectNotFound
	}

	return Object{
		Body:        f,
		Size:        info.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(key)),
		ModTime:     info.ModTime(),
	}, nil
}
