package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/custodia-labs/chatvault/internal/core/domain"
	"github.com/custodia-labs/chatvault/internal/core/ports/driven"
	"github.com/custodia-labs/chatvault/internal/logger"
)

// Header keys consulted by the sync policy.
const (
	headerType       = "type"
	headerUpdatedAt  = "updated_at"
	headerModifiedAt = "modified_at"
)

// SyncEngine writes rendered documents without clobbering local edits.
type SyncEngine struct {
	files       driven.FileStore
	frontMatter driven.FrontMatter
	index       *domain.Index
	dryRun      bool
}

// NewSyncEngine creates a sync engine over a read-only index snapshot.
// In dry-run mode decisions are computed but nothing is renamed or written.
func NewSyncEngine(files driven.FileStore, frontMatter driven.FrontMatter, index *domain.Index, dryRun bool) *SyncEngine {
	if index == nil {
		index = domain.EmptyIndex()
	}
	return &SyncEngine{
		files:       files,
		frontMatter: frontMatter,
		index:       index,
		dryRun:      dryRun,
	}
}

// Sync applies the conflict policy for one document:
//
//  1. If the index maps identifier to another path, that file is moved to
//     path first. A failed move returns domain.ErrRelocation.
//  2. No file at path: write.
//  3. Otherwise compare the headers of the disk copy and content:
//     unparseable -> domain.ErrHeaderParse; different type ->
//     domain.ErrTypeConflict; equal updated_at -> no write; different
//     updated_at -> overwrite, unless the disk copy has modified_at, which is
//     domain.ErrVersionConflict.
//
// Conflicts return a non-nil result alongside the error.
func (e *SyncEngine) Sync(ctx context.Context, identifier, path string, content []byte) (*domain.SyncResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &domain.SyncResult{Identifier: identifier, Path: path, DryRun: e.dryRun}

	// readPath is where the current disk copy lives. It differs from path
	// only in dry-run mode, where the pending move is not performed.
	readPath := path
	if prev, ok := e.index.Lookup(identifier); ok && prev != path {
		exists, err := e.files.Exists(prev)
		if err != nil {
			return nil, fmt.Errorf("%w: stat %s: %w", domain.ErrRelocation, prev, err)
		}
		if exists {
			taken, err := e.files.Exists(path)
			if err != nil {
				return nil, fmt.Errorf("%w: stat %s: %w", domain.ErrRelocation, path, err)
			}
			if taken {
				// Never replace a second copy, it may carry local edits.
				return nil, fmt.Errorf("%w: cannot move %s, %s already exists", domain.ErrRelocation, prev, path)
			}
			if e.dryRun {
				readPath = prev
			} else if err := e.files.Rename(prev, path); err != nil {
				return nil, fmt.Errorf("%w: move %s to %s: %w", domain.ErrRelocation, prev, path, err)
			}
			result.RelocatedFrom = prev
			logger.Info("moved file", zap.String("from", prev), zap.String("to", path))
		}
	}

	exists, err := e.files.Exists(readPath)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", readPath, err)
	}
	if !exists {
		result.Action = domain.SyncActionCreated
		if err := e.write(path, content); err != nil {
			return nil, err
		}
		logger.Info("saved new file", zap.String("path", path))
		return result, nil
	}

	disk, err := e.files.ReadFile(readPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", readPath, err)
	}

	action, detail, decideErr := e.Decide(disk, content)
	result.Action = action
	result.Detail = detail
	if decideErr != nil {
		logger.Error("manual verification needed",
			zap.String("path", path), zap.String("reason", detail), zap.Error(decideErr))
		return result, fmt.Errorf("sync %s: %w", path, decideErr)
	}

	switch action {
	case domain.SyncActionUpdated:
		if err := e.write(path, content); err != nil {
			return nil, err
		}
		logger.Info("updated file, archive version is newer", zap.String("path", path), zap.String("detail", detail))
	case domain.SyncActionUnchangedLocalEdits:
		logger.Info("no changes, keeping local edits", zap.String("path", path))
	default:
		logger.Debug("no changes", zap.String("path", path))
	}
	return result, nil
}

// WriteOnce writes content to path only when no file exists there.
// Existing files are never compared or replaced.
func (e *SyncEngine) WriteOnce(ctx context.Context, path string, content []byte) (*domain.SyncResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &domain.SyncResult{Path: path, DryRun: e.dryRun}
	exists, err := e.files.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if exists {
		result.Action = domain.SyncActionSkipped
		logger.Debug("file exists, not overwriting", zap.String("path", path))
		return result, nil
	}

	result.Action = domain.SyncActionCreated
	if err := e.write(path, content); err != nil {
		return nil, err
	}
	logger.Info("saved new file", zap.String("path", path))
	return result, nil
}

// Decide compares the disk copy with incoming content and returns the action.
// It has no side effects.
func (e *SyncEngine) Decide(disk, incoming []byte) (domain.SyncAction, string, error) {
	diskHeader, err := e.frontMatter.ParseHeader(disk)
	if err != nil {
		return domain.SyncActionManualVerification, "could not parse header of disk file",
			fmt.Errorf("disk file: %w", err)
	}
	newHeader, err := e.frontMatter.ParseHeader(incoming)
	if err != nil {
		return domain.SyncActionManualVerification, "could not parse header of new content",
			fmt.Errorf("new content: %w", err)
	}

	diskType, newType := headerValue(diskHeader, headerType), headerValue(newHeader, headerType)
	if diskType != newType {
		detail := fmt.Sprintf("type mismatch (disk: %q vs archive: %q)", diskType, newType)
		return domain.SyncActionTypeConflict, detail, domain.ErrTypeConflict
	}

	diskUpdated, newUpdated := headerValue(diskHeader, headerUpdatedAt), headerValue(newHeader, headerUpdatedAt)
	locallyModified := diskHeader.Has(headerModifiedAt)

	switch {
	case diskUpdated == newUpdated && locallyModified:
		return domain.SyncActionUnchangedLocalEdits, "updated_at unchanged, disk has modified_at", nil
	case diskUpdated == newUpdated:
		return domain.SyncActionUnchanged, "updated_at unchanged", nil
	case locallyModified:
		detail := fmt.Sprintf("updated_at mismatch (disk: %q vs archive: %q) and disk has modified_at", diskUpdated, newUpdated)
		return domain.SyncActionVersionConflict, detail, domain.ErrVersionConflict
	default:
		return domain.SyncActionUpdated, fmt.Sprintf("%s -> %s", diskUpdated, newUpdated), nil
	}
}

func (e *SyncEngine) write(path string, content []byte) error {
	if e.dryRun {
		return nil
	}
	if err := e.files.WriteFile(path, content); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// headerValue returns a header value in its textual form so that values
// decoded as different types still compare by what the user sees.
func headerValue(h driven.HeaderFields, key string) string {
	v, ok := h[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
