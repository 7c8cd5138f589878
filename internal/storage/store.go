// Package storage keeps uploaded sources and produced results as files
// under one configured directory, with path confinement on every access.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const dirPerm = 0o750

// Store is a local-directory file store.
type Store struct {
	root string
}

// NewStore creates the storage directory if needed and returns a store
// rooted there.
func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("storage directory cannot be empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage directory: %w", err)
	}
	if err := os.MkdirAll(abs, dirPerm); err != nil {
		return nil, fmt.Errorf("create storage directory %s: %w", abs, err)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute storage directory.
func (s *Store) Root() string {
	return s.root
}

// Save writes data under name and returns the absolute path used.
func (s *Store) Save(name string, data []byte) (string, error) {
	path, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

// Read returns the content stored under name.
func (s *Store) Read(name string) ([]byte, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Remove deletes the file stored under name, ignoring files that are
// already gone.
func (s *Store) Remove(name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

// resolve maps a stored name to a path and rejects anything that would
// escape the storage root.
func (s *Store) resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("file name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	path := filepath.Clean(filepath.Join(s.root, name))
	rootWithSep := s.root + string(filepath.Separator)
	if !strings.HasPrefix(path, rootWithSep) {
		return "", fmt.Errorf("path escapes storage directory: %q", name)
	}
	return path, nil
}
