package driven

import (
	"context"

	"github.com/custodia-labs/chatvault/internal/core/domain"
)

// JournalStore persists sync decisions.
// The journal is an audit trail; it is never consulted for sync decisions.
type JournalStore interface {
	// Record appends an entry.
	Record(ctx context.Context, entry domain.JournalEntry) error

	// ListRun returns the entries of a run in recording order.
	ListRun(ctx context.Context, runID string) ([]domain.JournalEntry, error)

	// Close releases resources.
	Close() error
}
