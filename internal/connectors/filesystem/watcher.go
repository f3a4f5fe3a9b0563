package filesystem

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/custodia-labs/chatvault/internal/logger"
)

// DefaultDebounce coalesces the burst of events produced by one save.
const DefaultDebounce = 250 * time.Millisecond

// ErrWatcherClosed is returned by Watch after Close.
var ErrWatcherClosed = errors.New("watcher is closed")

// ArchiveWatcher signals when an archive file is written or re-created.
// The parent directory is watched so that replace-by-rename saves are seen.
type ArchiveWatcher struct {
	path     string
	debounce time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// NewArchiveWatcher creates a watcher for the archive at path.
func NewArchiveWatcher(path string) *ArchiveWatcher {
	return &ArchiveWatcher{
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
	}
}

// WithDebounce overrides the quiet period before a change is signalled.
func (w *ArchiveWatcher) WithDebounce(d time.Duration) *ArchiveWatcher {
	w.debounce = d
	return w
}

// Watch starts watching and returns a channel receiving one value per
// settled change. The channel is closed when ctx is cancelled or the
// watcher is closed.
func (w *ArchiveWatcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrWatcherClosed
	}
	if w.watcher != nil {
		return nil, errors.New("watcher already running")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	w.watcher = fw

	changes := make(chan struct{}, 1)
	go w.loop(ctx, fw, changes)
	return changes, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *ArchiveWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

func (w *ArchiveWatcher) loop(ctx context.Context, fw *fsnotify.Watcher, changes chan<- struct{}) {
	defer close(changes)
	defer fw.Close()

	// A stopped timer whose channel is nil until a relevant event arrives.
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("archive event", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			// Drop the signal if one is already pending.
			select {
			case changes <- struct{}{}:
			default:
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("archive watcher error", zap.Error(err))
		}
	}
}

// relevant reports whether event is a write or (re)creation of the archive.
func (w *ArchiveWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write)
}
