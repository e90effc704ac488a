package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cobra/site/internal/models"
)

const fileExt = ".json"

// FileStore persists one JSON document per session in a directory, so
// sessions survive process restarts.
type FileStore struct {
	dir  string
	opts options
}

func NewFileStore(dir string, opts ...Option) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("session: create dir: %w", err)
	}
	return &FileStore{
		dir:  dir,
		opts: buildOptions(opts),
	}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+fileExt)
}

func (s *FileStore) Create(ctx context.Context, payload models.SessionPayload) (models.Session, error) {
	if err := ctx.Err(); err != nil {
		return models.Session{}, err
	}

	sess, err := newSession(s.opts, payload)
	if err != nil {
		return models.Session{}, err
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return models.Session{}, fmt.Errorf("session: marshal: %w", err)
	}

	if err := writeFileAtomic(s.path(sess.ID), data); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (models.Session, error) {
	if err := ctx.Err(); err != nil {
		return models.Session{}, err
	}
	if !ValidID(id) {
		return models.Session{}, ErrSessionNotFound
	}

	sess, err := s.load(s.path(id))
	if err != nil {
		return models.Session{}, err
	}

	if sess.ID != id || sess.Expired(s.opts.now()) {
		_ = s.remove(s.path(id))
		return models.Session{}, ErrSessionNotFound
	}
	return sess, nil
}

func (s *FileStore) Destroy(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !ValidID(id) {
		return nil
	}
	return s.remove(s.path(id))
}

// Sweep deletes expired and unreadable session files and returns how many
// were removed.
func (s *FileStore) Sweep(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("session: list dir: %w", err)
	}

	now := s.opts.now()
	removed := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}

		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) || !ValidID(strings.TrimSuffix(name, fileExt)) {
			continue
		}

		path := filepath.Join(s.dir, name)
		sess, err := s.load(path)
		if errors.Is(err, ErrSessionNotFound) {
			continue
		}
		if err == nil && !sess.Expired(now) {
			continue
		}

		if err := s.remove(path); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (s *FileStore) Ping(ctx context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("session: stat dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("session: %s is not a directory", s.dir)
	}
	return nil
}

func (s *FileStore) load(path string) (models.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, fmt.Errorf("session: read: %w", err)
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return models.Session{}, fmt.Errorf("session: decode %s: %w", filepath.Base(path), err)
	}
	return sess, nil
}

func (s *FileStore) remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: remove: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("session: create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("session: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("session: close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("session: rename: %w", err)
	}
	return nil
}
