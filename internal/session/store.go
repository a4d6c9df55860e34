package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/concealdc/webgate/internal/model"
)

// Store persists the token pair between runs. Load returns (nil, nil)
// when no tokens are stored.
type Store interface {
	Load() (*model.TokenPair, error)
	Save(*model.TokenPair) error
	Clear() error
}

// FileStore keeps the pair in a JSON file, the server-side stand-in for
// browser local storage. Any process may read or write it; last writer
// wins, matching the source semantics.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*model.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var pair model.TokenPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (s *FileStore) Save(pair *model.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(pair)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore holds the pair in memory, used in tests and single-run
// tooling.
type MemoryStore struct {
	mu   sync.Mutex
	pair *model.TokenPair
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*model.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pair == nil {
		return nil, nil
	}
	copied := *s.pair
	return &copied, nil
}

func (s *MemoryStore) Save(pair *model.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *pair
	s.pair = &copied
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = nil
	return nil
}
