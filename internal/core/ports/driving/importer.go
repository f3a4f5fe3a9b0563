package driving

import (
	"context"

	"github.com/custodia-labs/chatvault/internal/core/domain"
)

// Importer converts an archive into documents and synchronises them to disk.
type Importer interface {
	// Run performs one complete import. The index is rebuilt on every call.
	// Conflicts are reported in the RunReport; only fatal failures
	// (missing archive, relocation failure) are returned as errors.
	Run(ctx context.Context, req ImportRequest) (*domain.RunReport, error)
}

// ImportRequest describes one import run.
type ImportRequest struct {
	// ArchivePath is the conversations archive (.json or .zip).
	ArchivePath string

	// Layout is the output tree.
	Layout domain.Layout

	// DryRun computes decisions without touching the filesystem.
	DryRun bool
}
