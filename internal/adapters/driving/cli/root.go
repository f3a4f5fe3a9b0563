package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/custodia-labs/chatvault/internal/core/domain"
	"github.com/custodia-labs/chatvault/internal/core/ports/driving"
	"github.com/custodia-labs/chatvault/internal/logger"
)

// ArchiveWatcher signals changes to the archive file in watch mode.
type ArchiveWatcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
	Close() error
}

// ImportConfig holds the services the root command runs against.
type ImportConfig struct {
	Importer driving.Importer
	Settings domain.Settings

	// NewWatcher is required for --watch only.
	NewWatcher func(archivePath string) ArchiveWatcher

	// Close releases resources (journal database). May be nil.
	Close func() error
}

// Options are the flag values needed to build an ImportConfig.
type Options struct {
	ConfigDir string
	Journal   bool
}

// Configurator builds the import services once flags are parsed.
type Configurator func(Options) (*ImportConfig, error)

var (
	// importConfig is used when no configurator is set.
	importConfig *ImportConfig
	configurator Configurator
)

// Flag values.
var (
	flagVerbose   bool
	flagDryRun    bool
	flagWatch     bool
	flagJournal   bool
	flagConfigDir string
)

var rootCmd = &cobra.Command{
	Use:   "chatvault <archive> [output-root]",
	Short: "Convert a ChatGPT export into markdown notes",
	Long: `Converts a ChatGPT conversations export (conversations.json or the export
zip) into markdown notes with a YAML header.

Conversations titled "<category> - <title>" are written to
<output-root>/output/conv/<category>/. Conversations whose first message
carries a video transcript are written as a summary plus a separate
transcript note.

Re-running the import updates notes in place. Notes you edited (those with a
modified_at header field) are never overwritten; conflicts are listed at the
end of the run. Notes moved to another category are relocated.

If output-root is omitted, the current directory is used.`,
	Args:    validateArgs,
	Version: version,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
	RunE: runImport,
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVarP(&flagDryRun, "dry-run", "n", false, "report what would change without writing files")
	flags.BoolVarP(&flagWatch, "watch", "w", false, "re-run the import whenever the archive changes")
	flags.BoolVar(&flagJournal, "journal", false, "record sync decisions in the SQLite journal")
	flags.StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default ~/.chatvault)")
}

// SetImportConfig sets the services used when no configurator is set.
func SetImportConfig(config *ImportConfig) {
	importConfig = config
}

// SetConfigurator sets the function that builds services from flags.
func SetConfigurator(c Configurator) {
	configurator = c
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func validateArgs(_ *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return fmt.Errorf("%w: missing archive path", domain.ErrUsage)
	case len(args) > 2:
		return fmt.Errorf("%w: expected at most 2 arguments, got %d", domain.ErrUsage, len(args))
	case args[0] == "":
		return fmt.Errorf("%w: empty archive path", domain.ErrUsage)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	// Arguments are valid from here on; runtime failures should not print usage.
	cmd.SilenceUsage = true

	cfg, err := loadImportConfig()
	if err != nil {
		return err
	}
	if cfg.Close != nil {
		defer func() {
			if err := cfg.Close(); err != nil {
				logger.Warn("closing resources failed", zap.Error(err))
			}
		}()
	}

	req := driving.ImportRequest{
		ArchivePath: args[0],
		Layout:      cfg.Settings.Layout,
		DryRun:      flagDryRun,
	}
	if len(args) > 1 {
		req.Layout.Root = args[1]
	}

	ctx := cmd.Context()
	if err := importOnce(ctx, cmd, cfg.Importer, req); err != nil {
		return err
	}
	if !flagWatch {
		return nil
	}
	return runWatch(ctx, cmd, cfg, req)
}

func loadImportConfig() (*ImportConfig, error) {
	cfg := importConfig
	if configurator != nil {
		built, err := configurator(Options{ConfigDir: flagConfigDir, Journal: flagJournal})
		if err != nil {
			return nil, fmt.Errorf("configure: %w", err)
		}
		cfg = built
	}
	if cfg == nil || cfg.Importer == nil {
		return nil, errors.New("import service not configured")
	}
	return cfg, nil
}

// importOnce runs one import and prints its report. A partial report is
// printed even when the run fails.
func importOnce(ctx context.Context, cmd *cobra.Command, importer driving.Importer, req driving.ImportRequest) error {
	report, err := importer.Run(ctx, req)
	if report != nil {
		printReport(cmd.OutOrStdout(), report, req.DryRun)
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	return nil
}
