// Command chatvault converts a ChatGPT conversations export into markdown
// notes and keeps them in sync across re-imports.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/custodia-labs/chatvault/internal/adapters/driven/archive"
	"github.com/custodia-labs/chatvault/internal/adapters/driven/config/file"
	"github.com/custodia-labs/chatvault/internal/adapters/driven/frontmatter"
	"github.com/custodia-labs/chatvault/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chatvault/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/chatvault/internal/adapters/driving/cli"
	"github.com/custodia-labs/chatvault/internal/connectors/filesystem"
	"github.com/custodia-labs/chatvault/internal/core/domain"
	"github.com/custodia-labs/chatvault/internal/core/ports/driven"
	"github.com/custodia-labs/chatvault/internal/core/services"
	"github.com/custodia-labs/chatvault/internal/logger"
)

// Set by the linker: -ldflags "-X main.version=v1.2.3".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetVersion(version)
	cli.SetConfigurator(configure)

	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// configure wires the import services from configuration and flags.
func configure(opts cli.Options) (*cli.ImportConfig, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	settings, err := services.NewSettingsService(configStore).Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if err := logger.SetFormat(string(settings.LogFormat)); err != nil {
		return nil, err
	}
	var closers []io.Closer
	if settings.LogFile != "" {
		closers = append(closers, logger.SetFile(settings.LogFile))
	}

	journal, err := openJournal(settings, opts.Journal)
	if err != nil {
		return nil, errors.Join(err, closeAll(closers))
	}
	closers = append(closers, journal)

	fm := frontmatter.New()
	importer := services.NewImporter(
		archive.NewReader(),
		filesystem.NewIndexer(fm),
		fm,
		filesystem.NewFileStore(),
		journal,
		settings.Location,
	)

	return &cli.ImportConfig{
		Importer: importer,
		Settings: *settings,
		NewWatcher: func(path string) cli.ArchiveWatcher {
			return filesystem.NewArchiveWatcher(path)
		},
		Close: func() error {
			return closeAll(closers)
		},
	}, nil
}

// openJournal returns the SQLite journal when enabled, otherwise an
// in-memory one that lives for the process.
func openJournal(settings *domain.Settings, force bool) (driven.JournalStore, error) {
	if !settings.JournalEnabled && !force {
		return memory.NewJournalStore(), nil
	}
	store, err := sqlite.NewJournalStore(settings.JournalDir)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	logger.Debug("journal opened", zap.String("path", store.Path()))
	return store, nil
}

// closeAll closes in reverse order and joins the errors.
func closeAll(closers []io.Closer) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
