package driven

import (
	"context"

	"github.com/custodia-labs/chatvault/internal/core/domain"
)

// DocumentIndexer builds the identifier -> path snapshot.
type DocumentIndexer interface {
	// Build scans roots in order. Later roots, and later-visited files
	// within a root, win on identifier collision.
	Build(ctx context.Context, roots ...string) (*domain.Index, error)
}
