package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncAction_Wrote(t *testing.T) {
	assert.True(t, SyncActionCreated.Wrote())
	assert.True(t, SyncActionUpdated.Wrote())
	assert.False(t, SyncActionUnchanged.Wrote())
	assert.False(t, SyncActionVersionConflict.Wrote())
}

func TestSyncAction_IsConflict(t *testing.T) {
	tests := []struct {
		action SyncAction
		want   bool
	}{
		{SyncActionCreated, false},
		{SyncActionUpdated, false},
		{SyncActionUnchanged, false},
		{SyncActionUnchangedLocalEdits, false},
		{SyncActionSkipped, false},
		{SyncActionTypeConflict, true},
		{SyncActionVersionConflict, true},
		{SyncActionManualVerification, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.action.IsConflict())
		})
	}
}

func TestRunReport_Record(t *testing.T) {
	report := NewRunReport("run-1")

	report.Record(SyncResult{Path: "a.md", Action: SyncActionCreated})
	report.Record(SyncResult{Path: "b.md", Action: SyncActionUpdated, RelocatedFrom: "old/b.md"})
	report.Record(SyncResult{Path: "c.md", Action: SyncActionVersionConflict})
	report.Record(SyncResult{Path: "d.md", Action: SyncActionCreated})

	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, 2, report.Count(SyncActionCreated))
	assert.Equal(t, 1, report.Count(SyncActionUpdated))
	assert.Equal(t, 0, report.Count(SyncActionUnchanged))
	assert.Equal(t, 1, report.Relocations)
	assert.Len(t, report.Conflicts, 1)
	assert.Equal(t, "c.md", report.Conflicts[0].Path)
}

func TestTranscriptMessage_FirstTextSync(t *testing.T) {
	msg := TranscriptMessage{Parts: []TranscriptPart{{Type: TranscriptPartText, Text: "hi"}}}
	text, ok := msg.FirstText()
	assert.True(t, ok)
	assert.Equal(t, "hi", text)

	asset := TranscriptMessage{Parts: []TranscriptPart{{Type: TranscriptPartAsset, Asset: &AssetPointer{Pointer: "x"}}}}
	_, ok = asset.FirstText()
	assert.False(t, ok)
}
