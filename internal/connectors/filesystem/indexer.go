package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/custodia-labs/chatvault/internal/core/domain"
	"github.com/custodia-labs/chatvault/internal/core/ports/driven"
	"github.com/custodia-labs/chatvault/internal/logger"
)

// Ensure Indexer implements the interface.
var _ driven.DocumentIndexer = (*Indexer)(nil)

// identifierField is the header key holding the document identifier.
const identifierField = "URL"

// documentExt is the only extension considered by the index.
const documentExt = ".md"

// Indexer builds the identifier -> path snapshot by scanning directory trees.
type Indexer struct {
	headers driven.FrontMatter
}

// NewIndexer creates an indexer that parses headers with fm.
func NewIndexer(fm driven.FrontMatter) *Indexer {
	return &Indexer{headers: fm}
}

// Build scans each root in order. A missing root contributes nothing.
// Files whose header cannot be parsed, or that carry no identifier, are
// skipped. On collision the last visited file wins.
func (i *Indexer) Build(ctx context.Context, roots ...string) (*domain.Index, error) {
	entries := make(map[string]string)
	for _, root := range roots {
		if err := i.scan(ctx, root, entries); err != nil {
			return nil, err
		}
	}
	logger.Debug("built document index", zap.Strings("roots", roots), zap.Int("documents", len(entries)))
	return domain.NewIndex(entries), nil
}

// scan walks root depth first with an explicit stack. Siblings are visited
// in name order.
func (i *Indexer) scan(ctx context.Context, root string, entries map[string]string) error {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	stack := []string{root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children, err := os.ReadDir(dir)
		if err != nil {
			logger.Warn("cannot read directory", zap.String("dir", dir), zap.Error(err))
			continue
		}

		var subdirs []string
		for _, child := range children {
			path := filepath.Join(dir, child.Name())
			if child.IsDir() {
				subdirs = append(subdirs, path)
				continue
			}
			if !child.Type().IsRegular() || !strings.HasSuffix(child.Name(), documentExt) {
				continue
			}
			if id, ok := i.identifier(path); ok {
				entries[id] = path
			}
		}
		// Push in reverse so the first subdirectory is popped first.
		for j := len(subdirs) - 1; j >= 0; j-- {
			stack = append(stack, subdirs[j])
		}
	}
	return nil
}

func (i *Indexer) identifier(path string) (string, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("skipping unreadable file", zap.String("path", path), zap.Error(err))
		return "", false
	}
	header, err := i.headers.ParseHeader(content)
	if err != nil {
		logger.Debug("skipping file without header", zap.String("path", path))
		return "", false
	}
	id, _ := header[identifierField].(string)
	return id, id != ""
}
