package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/custodia-labs/chatvault/internal/core/domain"
	"github.com/custodia-labs/chatvault/internal/core/ports/driving"
	"github.com/custodia-labs/chatvault/internal/logger"
)

// runWatch re-runs the import on every archive change until ctx is done.
// Only a relocation failure ends the loop early; other failures are logged
// and the next change is awaited.
func runWatch(ctx context.Context, cmd *cobra.Command, cfg *ImportConfig, req driving.ImportRequest) error {
	if cfg.NewWatcher == nil {
		return errors.New("watch mode not configured")
	}

	watcher := cfg.NewWatcher(req.ArchivePath)
	defer watcher.Close()

	changes, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s for changes (Ctrl+C to stop)\n", req.ArchivePath)
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Info("archive changed, re-importing", zap.String("archive", req.ArchivePath))
			err := importOnce(ctx, cmd, cfg.Importer, req)
			if errors.Is(err, domain.ErrRelocation) {
				return err
			}
			if err != nil {
				logger.Error("import failed, waiting for next change", zap.Error(err))
			}
		}
	}
}
