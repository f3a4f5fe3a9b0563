package driven

import (
	"context"

	"github.com/custodia-labs/chatvault/internal/core/domain"
)

// ArchiveReader decodes an exported conversation archive.
type ArchiveReader interface {
	// Read returns the conversations in archive order.
	// Returns domain.ErrInputNotFound when path does not exist and
	// domain.ErrInvalidInput when the content cannot be decoded.
	Read(ctx context.Context, path string) ([]domain.Conversation, error)
}
