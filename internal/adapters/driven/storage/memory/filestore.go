package memory

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/custodia-labs/chatvault/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

// FileStore is an in-memory implementation of driven.FileStore.
// Paths are cleaned before use.
type FileStore struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]struct{}
}

// NewFileStore creates a new in-memory file store.
func NewFileStore() *FileStore {
	return &FileStore{
		files: make(map[string][]byte),
		dirs:  make(map[string]struct{}),
	}
}

// Exists reports whether a file exists at path.
func (s *FileStore) Exists(path string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.files[filepath.Clean(path)]
	return ok, nil
}

// ReadFile returns a copy of the content at path.
func (s *FileStore) ReadFile(path string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.files[filepath.Clean(path)]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", path, fs.ErrNotExist)
	}
	return append([]byte(nil), content...), nil
}

// WriteFile stores a copy of content at path.
func (s *FileStore) WriteFile(path string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	path = filepath.Clean(path)
	s.mkdirAll(filepath.Dir(path))
	s.files[path] = append([]byte(nil), content...)
	return nil
}

// Rename moves a file. The destination is replaced if it exists.
func (s *FileStore) Rename(oldPath, newPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	oldPath, newPath = filepath.Clean(oldPath), filepath.Clean(newPath)
	content, ok := s.files[oldPath]
	if !ok {
		return fmt.Errorf("rename %s: %w", oldPath, fs.ErrNotExist)
	}
	s.mkdirAll(filepath.Dir(newPath))
	delete(s.files, oldPath)
	s.files[newPath] = content
	return nil
}

// MkdirAll records dir and its parents.
func (s *FileStore) MkdirAll(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mkdirAll(filepath.Clean(dir))
	return nil
}

// DirExists reports whether dir was created.
func (s *FileStore) DirExists(dir string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.dirs[filepath.Clean(dir)]
	return ok
}

// Paths returns all file paths in sorted order.
func (s *FileStore) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// mkdirAll records dir and every parent (caller must hold lock).
func (s *FileStore) mkdirAll(dir string) {
	for {
		s.dirs[dir] = struct{}{}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
