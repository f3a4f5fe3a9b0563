package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/chatvault/internal/core/domain"
)

func TestPrintReport(t *testing.T) {
	report := domain.NewRunReport("run-42")
	report.Conversations = 5
	report.Skipped = 1
	report.StartedAt = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	report.FinishedAt = report.StartedAt.Add(1500 * time.Millisecond)
	report.Record(domain.SyncResult{Path: "/v/a.md", Action: domain.SyncActionCreated})
	report.Record(domain.SyncResult{Path: "/v/b.md", Action: domain.SyncActionUnchanged, RelocatedFrom: "/v/old/b.md"})
	report.Record(domain.SyncResult{
		Path:   "/v/c.md",
		Action: domain.SyncActionVersionConflict,
		Detail: "updated_at mismatch",
	})

	buf := new(bytes.Buffer)
	printReport(buf, report, false)

	want := `Import finished (run run-42)
  conversations: 5 (1 skipped)
  created: 1
  unchanged: 1
  version_conflict: 1
  relocated: 1
  took 1.5s

Needs manual resolution:
  [version_conflict] /v/c.md
      updated_at mismatch
`
	assert.Equal(t, want, buf.String())
}

func TestPrintReport_DryRun(t *testing.T) {
	report := domain.NewRunReport("run-1")
	report.Record(domain.SyncResult{Path: "/v/a.md", Action: domain.SyncActionCreated, RelocatedFrom: "/v/x.md"})
	report.Record(domain.SyncResult{Path: "/v/b.md", Action: domain.SyncActionUpdated})

	buf := new(bytes.Buffer)
	printReport(buf, report, true)

	out := buf.String()
	assert.Contains(t, out, "Dry run finished, no files were written")
	assert.Contains(t, out, "would create: 1")
	assert.Contains(t, out, "would update: 1")
	assert.Contains(t, out, "would relocate: 1")
	assert.NotContains(t, out, "took")
	assert.NotContains(t, out, "Needs manual resolution")
}

func TestActionLabel(t *testing.T) {
	assert.Equal(t, "created", actionLabel(domain.SyncActionCreated, false))
	assert.Equal(t, "would create", actionLabel(domain.SyncActionCreated, true))
	assert.Equal(t, "type_conflict", actionLabel(domain.SyncActionTypeConflict, true))
}

func TestIsTerminal_Buffer(t *testing.T) {
	assert.False(t, isTerminal(new(bytes.Buffer)))
}

func TestStyles(t *testing.T) {
	assert.Equal(t, "plain", PlainStyles().Error.Render("plain"))
	assert.NotNil(t, NewStyles(DefaultTheme()))
}
