package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/custodia-labs/chatvault/internal/core/domain"
)

// reportOrder is the order in which action counts are printed.
var reportOrder = []domain.SyncAction{
	domain.SyncActionCreated,
	domain.SyncActionUpdated,
	domain.SyncActionUnchanged,
	domain.SyncActionUnchangedLocalEdits,
	domain.SyncActionSkipped,
	domain.SyncActionTypeConflict,
	domain.SyncActionVersionConflict,
	domain.SyncActionManualVerification,
}

// printReport writes the run summary. Colours are used only when w is a
// terminal.
func printReport(w io.Writer, report *domain.RunReport, dryRun bool) {
	styles := PlainStyles()
	if isTerminal(w) {
		styles = NewStyles(DefaultTheme())
	}

	title := "Import finished"
	if dryRun {
		title = "Dry run finished, no files were written"
	}
	fmt.Fprintf(w, "%s %s\n", styles.Title.Render(title), styles.Muted.Render("(run "+report.RunID+")"))
	fmt.Fprintf(w, "  conversations: %d (%d skipped)\n", report.Conversations, report.Skipped)

	for _, action := range reportOrder {
		n := report.Count(action)
		if n == 0 {
			continue
		}
		line := fmt.Sprintf("  %s: %d", actionLabel(action, dryRun), n)
		switch {
		case action.IsConflict():
			line = styles.Error.Render(line)
		case action.Wrote():
			line = styles.Success.Render(line)
		}
		fmt.Fprintln(w, line)
	}
	if report.Relocations > 0 {
		label := "relocated"
		if dryRun {
			label = "would relocate"
		}
		fmt.Fprintln(w, styles.Warning.Render(fmt.Sprintf("  %s: %d", label, report.Relocations)))
	}
	if !report.FinishedAt.IsZero() {
		elapsed := report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond)
		fmt.Fprintln(w, styles.Muted.Render("  took "+elapsed.String()))
	}

	if len(report.Conflicts) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Error.Render("Needs manual resolution:"))
	for _, c := range report.Conflicts {
		fmt.Fprintf(w, "  [%s] %s\n", c.Action, c.Path)
		if c.Detail != "" {
			fmt.Fprintf(w, "      %s\n", styles.Muted.Render(c.Detail))
		}
	}
}

func actionLabel(action domain.SyncAction, dryRun bool) string {
	if !dryRun {
		return string(action)
	}
	switch action {
	case domain.SyncActionCreated:
		return "would create"
	case domain.SyncActionUpdated:
		return "would update"
	default:
		return string(action)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
