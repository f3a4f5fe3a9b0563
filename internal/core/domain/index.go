package domain

// Index is a read-only snapshot mapping document identifiers to file paths.
// It is built once per run and never mutated afterwards.
type Index struct {
	paths map[string]string
}

// NewIndex creates a snapshot from entries. The map is copied.
func NewIndex(entries map[string]string) *Index {
	paths := make(map[string]string, len(entries))
	for id, path := range entries {
		paths[id] = path
	}
	return &Index{paths: paths}
}

// EmptyIndex returns a snapshot with no entries.
func EmptyIndex() *Index {
	return &Index{paths: map[string]string{}}
}

// Lookup returns the indexed path for identifier.
func (i *Index) Lookup(identifier string) (string, bool) {
	if i == nil || identifier == "" {
		return "", false
	}
	path, ok := i.paths[identifier]
	return path, ok
}

// Len returns the number of indexed documents.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.paths)
}
