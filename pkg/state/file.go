package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zerobrew/zb-migrate/pkg/errors"
)

// FileStore persists State as a JSON file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed state store.
// If path is empty, defaults to ~/.zerobrew/migration_state.json
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		path = filepath.Join(home, ".zerobrew", "migration_state.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStateIO, err, "create state dir")
	}
	return &FileStore{path: path}, nil
}

// Load reads the persisted state. A missing file yields an empty state.
func (s *FileStore) Load() (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeStateIO, err, "read state file")
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStateIO, err, "parse state file %s", s.path)
	}
	return &st, nil
}

// Save writes the state atomically: a temp file in the same directory is
// renamed over the target so readers never observe a partial write.
func (s *FileStore) Save(st *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStateIO, err, "marshal state")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".migration_state-*.json")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStateIO, err, "create temp state file")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeStateIO, err, "write state file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeStateIO, err, "close state file")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeStateIO, err, "replace state file")
	}
	return nil
}

// Clear removes the state file entirely.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStateIO, err, "remove state file")
	}
	return nil
}

// Path returns the state file location.
func (s *FileStore) Path() string {
	return s.path
}
