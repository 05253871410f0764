// Package filestore provides a file-based implementation of domain.Slot.
// Each key is stored in its own file under the data directory.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"syscall"

	"github.com/runoshun/tally/internal/domain"
)

// Ensure Store implements the slot interfaces.
var (
	_ domain.Slot        = (*Store)(nil)
	_ domain.SlotUpdater = (*Store)(nil)
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ErrInvalidKey is returned for keys that cannot be used as file names.
var ErrInvalidKey = errors.New("invalid slot key")

// Store implements domain.Slot using one JSON file per key.
type Store struct {
	dir string
}

// New creates a new Store rooted at dir.
// The directory does not need to exist; it is created on first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the file path backing key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get returns the contents of the key's file.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	if !keyPattern.MatchString(key) {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	var (
		value []byte
		ok    bool
	)
	err := s.withLock(key, syscall.LOCK_SH, func() error {
		var err error
		value, ok, err = s.read(key)
		return err
	})
	return value, ok, err
}

// Set replaces the contents of the key's file.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return s.withLock(key, syscall.LOCK_EX, func() error {
		return s.write(key, value)
	})
}

// Update reads the key, applies fn and writes the result under one exclusive lock.
func (s *Store) Update(_ context.Context, key string, fn func([]byte, bool) ([]byte, error)) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return s.withLock(key, syscall.LOCK_EX, func() error {
		cur, ok, err := s.read(key)
		if err != nil {
			return err
		}
		next, err := fn(cur, ok)
		if err != nil {
			return err
		}
		return s.write(key, next)
	})
}

func (s *Store) withLock(key string, lockType int, fn func() error) error {
	lock, err := s.acquireLock(key, lockType)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)
	return fn()
}

func (s *Store) acquireLock(key string, lockType int) (*os.File, error) {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	lock, err := os.OpenFile(s.Path(key)+".lock", os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read(key string) ([]byte, bool, error) {
	content, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read slot file: %w", err)
	}
	return content, true, nil
}

func (s *Store) write(key string, value []byte) error {
	path := s.Path(key)

	// Write to temp file first, then rename for atomicity
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, value, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
