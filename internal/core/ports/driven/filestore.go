package driven

// FileStore is the target filesystem as seen by the sync engine.
type FileStore interface {
	// Exists reports whether a regular file exists at path.
	Exists(path string) (bool, error)

	// ReadFile returns the content of path.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes content to path, creating parent directories.
	WriteFile(path string, content []byte) error

	// Rename moves oldPath to newPath, creating parent directories.
	Rename(oldPath, newPath string) error

	// MkdirAll creates dir and any missing parents.
	MkdirAll(dir string) error
}
