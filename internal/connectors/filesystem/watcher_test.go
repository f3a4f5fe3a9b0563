package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveWatcher_SignalsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	w := NewArchiveWatcher(path).WithDebounce(20 * time.Millisecond)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := w.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[{}]"), 0o644))

	select {
	case _, ok := <-changes:
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("no change signalled")
	}
}

func TestArchiveWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conversations.json")

	w := NewArchiveWatcher(path).WithDebounce(20 * time.Millisecond)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := w.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("x"), 0o644))

	select {
	case <-changes:
		t.Fatal("unexpected change")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestArchiveWatcher_ClosesOnCancel(t *testing.T) {
	w := NewArchiveWatcher(filepath.Join(t.TempDir(), "a.json"))
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := w.Watch(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-changes:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed")
	}
}

func TestArchiveWatcher_WatchAfterClose(t *testing.T) {
	w := NewArchiveWatcher(filepath.Join(t.TempDir(), "a.json"))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err := w.Watch(context.Background())

	assert.ErrorIs(t, err, ErrWatcherClosed)
}

func TestArchiveWatcher_WatchTwice(t *testing.T) {
	w := NewArchiveWatcher(filepath.Join(t.TempDir(), "a.json"))
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := w.Watch(ctx)
	require.NoError(t, err)
	_, err = w.Watch(ctx)
	assert.Error(t, err)
}

func TestArchiveWatcher_MissingDirectory(t *testing.T) {
	w := NewArchiveWatcher(filepath.Join(t.TempDir(), "absent", "a.json"))
	defer w.Close()

	_, err := w.Watch(context.Background())

	assert.Error(t, err)
}

func TestArchiveWatcher_Relevant(t *testing.T) {
	w := NewArchiveWatcher("/data/export/conversations.json")

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: "/data/export/conversations.json", Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: "/data/export/conversations.json", Op: fsnotify.Create}, true},
		{"chmod", fsnotify.Event{Name: "/data/export/conversations.json", Op: fsnotify.Chmod}, false},
		{"remove", fsnotify.Event{Name: "/data/export/conversations.json", Op: fsnotify.Remove}, false},
		{"other file", fsnotify.Event{Name: "/data/export/other.json", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}
