package domain

import (
	"path/filepath"
	"time"
)

// Default subfolders, relative to the output root.
const (
	DefaultConversationsDir = "output/conv"
	DefaultSummariesDir     = "output/yt-summaries"
	DefaultTranscriptsDir   = "output/yt-transcript"
)

// Layout describes where documents are written.
// It replaces process-wide folder constants and is passed to every component
// that touches the output tree.
type Layout struct {
	// Root is the output-root prefix. Empty means the working directory.
	Root string

	// ConversationsDir, SummariesDir and TranscriptsDir are relative to Root
	// unless absolute.
	ConversationsDir string
	SummariesDir     string
	TranscriptsDir   string
}

// DefaultLayout returns the standard layout under root.
func DefaultLayout(root string) Layout {
	return Layout{
		Root:             root,
		ConversationsDir: DefaultConversationsDir,
		SummariesDir:     DefaultSummariesDir,
		TranscriptsDir:   DefaultTranscriptsDir,
	}
}

// Conversations returns the resolved conversations folder.
func (l Layout) Conversations() string {
	return l.resolve(l.ConversationsDir)
}

// Summaries returns the resolved video summaries folder.
func (l Layout) Summaries() string {
	return l.resolve(l.SummariesDir)
}

// Transcripts returns the resolved video transcripts folder.
func (l Layout) Transcripts() string {
	return l.resolve(l.TranscriptsDir)
}

// IndexRoots returns the folders scanned for relocation, in merge order.
// Later roots win on identifier collision.
func (l Layout) IndexRoots() []string {
	return []string{l.Conversations(), l.Summaries()}
}

func (l Layout) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(l.Root, dir)
}

// LogFormat selects the log encoder.
type LogFormat string

// Available log formats.
const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// IsValid returns true if the log format is recognised.
func (f LogFormat) IsValid() bool {
	return f == LogFormatConsole || f == LogFormatJSON
}

// Settings holds user configuration.
type Settings struct {
	// Layout holds the output subfolders. Root is filled in per run.
	Layout Layout

	// Location is the zone header timestamps are rendered in.
	Location *time.Location

	// JournalEnabled persists sync decisions to the SQLite journal.
	JournalEnabled bool

	// JournalDir is where the journal database lives.
	JournalDir string

	// LogFormat selects console or JSON logs.
	LogFormat LogFormat

	// LogFile, when set, receives logs instead of stderr. The file is
	// rotated by size.
	LogFile string
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Layout:    DefaultLayout(""),
		Location:  time.Local,
		LogFormat: LogFormatConsole,
	}
}
