package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
)

// FileStore persists the session as a JSON object at a fixed path. An
// in-memory mirror guarded by a mutex makes every completed write observable
// by the next read; the file is replaced atomically via a temp file and
// rename so a crash mid-write never leaves a torn session behind.
type FileStore struct {
	path string

	mu   sync.Mutex
	data map[string]string
}

// NewFileStore opens or creates the session file at path. A missing file is
// an empty session, not an error.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		// A corrupt session file is discarded rather than wedging login.
		s.data = make(map[string]string)
	}
	return s, nil
}

func (s *FileStore) Save(_ context.Context, update domain.SessionUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	applyUpdate(s.data, update)
	return s.flush()
}

func (s *FileStore) Load(_ context.Context) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sessionFromMap(s.data), nil
}

func (s *FileStore) SetLoggedIn(_ context.Context, loggedIn bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if loggedIn {
		s.data[keyIsLoggedIn] = "true"
	} else {
		s.data[keyIsLoggedIn] = "false"
	}
	return s.flush()
}

func (s *FileStore) SetCartTotal(_ context.Context, total decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[keyCartTotal] = total.String()
	return s.flush()
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]string)
	return s.flush()
}

// flush writes the current map to disk. Callers must hold s.mu.
func (s *FileStore) flush() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("session: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("session: temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("session: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("session: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("session: rename: %w", err)
	}
	return nil
}
