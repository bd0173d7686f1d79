package kvstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fjacquet/pfma/internal/fileutils"
	"fjacquet/pfma/internal/models"
)

const fileExt = ".json"

// FileStore keeps each key in its own <key>.json file inside a directory.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("file store directory must be set")
	}
	if err := fileutils.EnsureDirectoryExists(dir, models.PermissionDirectory); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store's directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

func (s *FileStore) Get(key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (s *FileStore) Set(key string, value []byte) error {
	return s.SetBatch([]Entry{{Key: key, Value: value}})
}

// SetBatch writes each key atomically. The batch as a whole is not atomic:
// a failure part way leaves earlier keys written.
func (s *FileStore) SetBatch(entries []Entry) error {
	for _, e := range entries {
		if err := validKey(e.Key); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		if err := fileutils.WriteFileAtomic(s.path(e.Key), e.Value, models.PermissionDataFile); err != nil {
			return fmt.Errorf("write %s: %w", e.Key, err)
		}
	}
	return nil
}

func (s *FileStore) Delete(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := fileutils.ListFilesWithExtension(s.dir, fileExt)
	if err != nil {
		return err
	}
	for _, f := range files {
		if strings.HasPrefix(filepath.Base(f), ".") {
			continue
		}
		if err := os.Remove(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("clear %s: %w", filepath.Base(f), err)
		}
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
