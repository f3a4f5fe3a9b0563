package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/chatvault/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FileStore is the os-backed implementation of driven.FileStore.
type FileStore struct{}

// NewFileStore creates a FileStore on the local filesystem.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Exists reports whether a regular file exists at path.
func (s *FileStore) Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// ReadFile returns the content of path.
func (s *FileStore) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes content to path, creating parent directories.
func (s *FileStore) WriteFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return err
	}
	return os.WriteFile(path, content, filePerm)
}

// Rename moves oldPath to newPath, creating parent directories.
func (s *FileStore) Rename(oldPath, newPath string) error {
	if err := os.MkdirAll(filepath.Dir(newPath), dirPerm); err != nil {
		return err
	}
	return os.Rename(oldPath, newPath)
}

// MkdirAll creates dir and any missing parents.
func (s *FileStore) MkdirAll(dir string) error {
	return os.MkdirAll(dir, dirPerm)
}
