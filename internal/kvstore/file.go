package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// FileStore keeps every document in one JSON object on disk. Writes go to a
// temporary file that is renamed over the original. The mutex serialises
// access within one process only.
type FileStore struct {
	fs     afero.Fs
	path   string
	mu     sync.Mutex
	closed bool
}

// NewFileStore opens (or lazily creates) the document at path on fs.
func NewFileStore(fs afero.Fs, path string) (*FileStore, error) {
	s := &FileStore{fs: fs, path: path}
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() (map[string]json.RawMessage, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if len(data) == 0 {
		return map[string]json.RawMessage{}, nil
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse store file %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *FileStore) save(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o600); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, ErrClosed
	}
	doc, err := s.load()
	if err != nil {
		return nil, false, err
	}
	v, ok := doc[key]
	return cloneBytes(v), ok, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	return s.Update(ctx, []string{key}, func(tx Tx) error {
		tx.Put(key, value)
		return nil
	})
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	return s.Update(ctx, []string{key}, func(tx Tx) error {
		tx.Delete(key)
		return nil
	})
}

func (s *FileStore) Update(_ context.Context, keys []string, fn func(Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	doc, err := s.load()
	if err != nil {
		return err
	}
	tx := newStagedTx(keys)
	for _, k := range keys {
		if v, ok := doc[k]; ok {
			tx.load(k, v)
		}
	}
	if err := tx.run(fn); err != nil {
		return err
	}
	if len(tx.changed) == 0 {
		return nil
	}
	err = tx.each(func(key string, value []byte, deleted bool) error {
		if deleted {
			delete(doc, key)
			return nil
		}
		if !json.Valid(value) {
			return fmt.Errorf("value for %s is not valid JSON", key)
		}
		doc[key] = value
		return nil
	})
	if err != nil {
		return err
	}
	return s.save(doc)
}

func (s *FileStore) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	_, err := s.load()
	return err
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
