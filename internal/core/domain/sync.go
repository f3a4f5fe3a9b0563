package domain

import "time"

// SyncAction is the terminal decision for one document.
type SyncAction string

// Sync actions.
const (
	// SyncActionCreated means no file existed and the document was written.
	SyncActionCreated SyncAction = "created"

	// SyncActionUpdated means the archive version replaced an unedited disk copy.
	SyncActionUpdated SyncAction = "updated"

	// SyncActionUnchanged means updated_at matched and nothing was written.
	SyncActionUnchanged SyncAction = "unchanged"

	// SyncActionUnchangedLocalEdits means updated_at matched and the disk copy
	// carries local edits. Nothing was written.
	SyncActionUnchangedLocalEdits SyncAction = "unchanged_local_edits"

	// SyncActionSkipped means the document already existed and is write-once
	// (video transcripts).
	SyncActionSkipped SyncAction = "skipped"

	// SyncActionTypeConflict means the header types differ.
	SyncActionTypeConflict SyncAction = "type_conflict"

	// SyncActionVersionConflict means both sides changed independently.
	SyncActionVersionConflict SyncAction = "version_conflict"

	// SyncActionManualVerification means a header could not be parsed.
	SyncActionManualVerification SyncAction = "manual_verification"
)

// Wrote reports whether the action wrote the destination file.
func (a SyncAction) Wrote() bool {
	return a == SyncActionCreated || a == SyncActionUpdated
}

// IsConflict reports whether the action needs manual resolution.
func (a SyncAction) IsConflict() bool {
	switch a {
	case SyncActionTypeConflict, SyncActionVersionConflict, SyncActionManualVerification:
		return true
	default:
		return false
	}
}

// SyncResult describes what the sync engine did with one document.
type SyncResult struct {
	// Identifier is the document identifier (may be empty).
	Identifier string

	// Path is the destination path.
	Path string

	// RelocatedFrom is the previous path when the file was moved first.
	RelocatedFrom string

	// Action is the terminal decision.
	Action SyncAction

	// Detail is a human-readable explanation for conflicts.
	Detail string

	// DryRun is set when no filesystem change was made.
	DryRun bool
}

// Relocated reports whether the file was moved before the decision.
func (r SyncResult) Relocated() bool {
	return r.RelocatedFrom != ""
}

// JournalEntry is a persisted record of one sync decision.
type JournalEntry struct {
	RunID          string
	ConversationID string
	Path           string
	RelocatedFrom  string
	Action         SyncAction
	Detail         string
	RecordedAt     time.Time
}

// RunReport summarises one import run.
type RunReport struct {
	// RunID identifies the run in the journal.
	RunID string

	// Conversations is the number of conversations read from the archive.
	Conversations int

	// Skipped is the number of conversations with no category and no transcript.
	Skipped int

	// Actions counts sync results per action.
	Actions map[SyncAction]int

	// Relocations is the number of files moved.
	Relocations int

	// Conflicts lists results that need manual resolution.
	Conflicts []SyncResult

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewRunReport creates an empty report for runID.
func NewRunReport(runID string) *RunReport {
	return &RunReport{
		RunID:   runID,
		Actions: make(map[SyncAction]int),
	}
}

// Record adds a sync result to the report.
func (r *RunReport) Record(res SyncResult) {
	r.Actions[res.Action]++
	if res.Relocated() {
		r.Relocations++
	}
	if res.Action.IsConflict() {
		r.Conflicts = append(r.Conflicts, res)
	}
}

// Count returns the number of results with the given action.
func (r *RunReport) Count(a SyncAction) int {
	return r.Actions[a]
}
