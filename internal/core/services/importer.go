package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/custodia-labs/chatvault/internal/core/domain"
	"github.com/custodia-labs/chatvault/internal/core/ports/driven"
	"github.com/custodia-labs/chatvault/internal/core/ports/driving"
	"github.com/custodia-labs/chatvault/internal/logger"
)

// Ensure Importer implements the interface.
var _ driving.Importer = (*Importer)(nil)

// Importer runs the archive -> documents pipeline: read, index, then per
// conversation linearize, classify, render and sync.
type Importer struct {
	reader      driven.ArchiveReader
	indexer     driven.DocumentIndexer
	frontMatter driven.FrontMatter
	files       driven.FileStore
	journal     driven.JournalStore
	location    *time.Location

	// Runs are serialised; watch mode may trigger a run while one is active.
	mu sync.Mutex
}

// NewImporter creates an importer. Header timestamps are rendered in loc
// (local time when nil). The journal is optional.
func NewImporter(
	reader driven.ArchiveReader,
	indexer driven.DocumentIndexer,
	frontMatter driven.FrontMatter,
	files driven.FileStore,
	journal driven.JournalStore,
	loc *time.Location,
) *Importer {
	return &Importer{
		reader:      reader,
		indexer:     indexer,
		frontMatter: frontMatter,
		files:       files,
		journal:     journal,
		location:    location(loc),
	}
}

// Run performs one complete import.
//
// Conflicts are logged and recorded in the report; the run continues.
// A relocation failure halts the run and is returned with the partial
// report. Other per-document failures are joined into the returned error
// after all conversations have been processed.
func (i *Importer) Run(ctx context.Context, req driving.ImportRequest) (*domain.RunReport, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	report := domain.NewRunReport(uuid.NewString())
	report.StartedAt = time.Now()
	defer func() { report.FinishedAt = time.Now() }()

	logger.Section("Import")
	logger.Debug("starting import",
		zap.String("run", report.RunID),
		zap.String("archive", req.ArchivePath),
		zap.Bool("dry_run", req.DryRun))

	convs, err := i.reader.Read(ctx, req.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	report.Conversations = len(convs)

	if !req.DryRun {
		for _, dir := range []string{req.Layout.Conversations(), req.Layout.Summaries(), req.Layout.Transcripts()} {
			if err := i.files.MkdirAll(dir); err != nil {
				return nil, fmt.Errorf("create output folder %s: %w", dir, err)
			}
		}
	}

	index, err := i.indexer.Build(ctx, req.Layout.IndexRoots()...)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	logger.Info("indexed existing documents", zap.Int("documents", index.Len()))

	engine := NewSyncEngine(i.files, i.frontMatter, index, req.DryRun)
	renderer := NewRenderer(req.Layout, i.location)

	var failures []error
	for _, conv := range convs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		err := i.importConversation(ctx, conv, renderer, engine, report)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrRelocation):
			logger.Error("halting import", zap.String("conversation", conv.ID), zap.Error(err))
			return report, err
		case domain.IsConflict(err):
			// Already logged and reported by the sync engine.
		default:
			logger.Error("import failed", zap.String("conversation", conv.ID), zap.Error(err))
			failures = append(failures, fmt.Errorf("conversation %s: %w", conv.ID, err))
		}
	}

	logger.Info("import finished",
		zap.String("run", report.RunID),
		zap.Int("conversations", report.Conversations),
		zap.Int("skipped", report.Skipped),
		zap.Int("conflicts", len(report.Conflicts)))
	return report, errors.Join(failures...)
}

func (i *Importer) importConversation(
	ctx context.Context,
	conv domain.Conversation,
	renderer *Renderer,
	engine *SyncEngine,
	report *domain.RunReport,
) error {
	transcript := Linearize(conv)
	class, ok := Classify(conv, transcript, i.location)
	if !ok {
		report.Skipped++
		logger.Debug("skipping conversation", zap.String("conversation", conv.ID), zap.String("title", conv.Title))
		return nil
	}

	out := renderer.Render(conv, transcript, class)

	if out.Transcript != nil {
		content, err := i.frontMatter.Encode(*out.Transcript)
		if err != nil {
			return fmt.Errorf("encode transcript: %w", err)
		}
		res, err := engine.WriteOnce(ctx, out.Transcript.Path, content)
		if err != nil {
			return err
		}
		i.record(ctx, report, conv.ID, res)
	}

	content, err := i.frontMatter.Encode(out.Primary)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	res, err := engine.Sync(ctx, out.Primary.Identifier, out.Primary.Path, content)
	if res != nil {
		i.record(ctx, report, conv.ID, res)
	}
	return err
}

// record adds a result to the report and, outside dry runs, the journal.
// Journal failures are logged only.
func (i *Importer) record(ctx context.Context, report *domain.RunReport, convID string, res *domain.SyncResult) {
	report.Record(*res)

	if i.journal == nil || res.DryRun {
		return
	}
	entry := domain.JournalEntry{
		RunID:          report.RunID,
		ConversationID: convID,
		Path:           res.Path,
		RelocatedFrom:  res.RelocatedFrom,
		Action:         res.Action,
		Detail:         res.Detail,
		RecordedAt:     time.Now(),
	}
	if err := i.journal.Record(ctx, entry); err != nil {
		logger.Warn("journal write failed", zap.String("path", res.Path), zap.Error(err))
	}
}
