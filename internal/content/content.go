// Package content reads and replaces the JSON documents behind the public
// data endpoints. Every document lives at a fixed filename inside a single
// data directory; callers select it by models.Collection, never by path.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cobra/site/internal/models"
)

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrMalformed         = errors.New("malformed json document")
)

var filenames = map[models.Collection]string{
	models.CollectionProducts:   "productos.json",
	models.CollectionPrograms:   "programas.json",
	models.CollectionCommunity:  "comunidad.json",
	models.CollectionPromotions: "promociones.json",
}

// Filename returns the fixed file backing c.
func Filename(c models.Collection) (string, error) {
	name, ok := filenames[c]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
	return name, nil
}

// Lookup maps an untrusted name onto a known collection.
func Lookup(name string) (models.Collection, bool) {
	c := models.Collection(name)
	_, ok := filenames[c]
	return c, ok
}

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(c models.Collection) (string, error) {
	name, err := Filename(c)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

// Read returns the compacted document for c.
func (s *Store) Read(ctx context.Context, c models.Collection) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.path(c)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c, err)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, c, err)
	}
	return buf.Bytes(), nil
}

// Write replaces the document for c. The new content must be valid JSON and
// is renamed into place so concurrent readers never observe a partial file.
func (s *Store) Write(ctx context.Context, c models.Collection, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(c)
	if err != nil {
		return err
	}

	if !json.Valid(doc) {
		return fmt.Errorf("%w: %s", ErrMalformed, c)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	return writeFileAtomic(path, doc, 0o644)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
