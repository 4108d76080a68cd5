package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"spool/internal/batch"
)

// renderSummary formats the end-of-run report: one counts line plus a
// table of every job that did not succeed, with enough context to fix
// the manifest and re-run.
func renderSummary(summary *batch.Summary) string {
	succeeded, skipped, failed := summary.Counts()

	var b strings.Builder
	fmt.Fprintf(&b, "Run %s finished in %s: %d succeeded, %d skipped, %d failed",
		summary.RunID, summary.Elapsed.Round(time.Millisecond), succeeded, skipped, failed)

	nonSuccesses := summary.NonSuccesses()
	if len(nonSuccesses) == 0 {
		return b.String()
	}

	rows := make([][]string, 0, len(nonSuccesses))
	for _, outcome := range nonSuccesses {
		detail := outcome.Reason
		if outcome.Err != nil {
			detail = outcome.Err.Error()
		}
		rows = append(rows, []string{
			strings.ToUpper(outcome.Status.String()),
			outcome.Job.Manifest,
			strconv.Itoa(outcome.Job.Line),
			outcome.Job.URL,
			detail,
		})
	}

	b.WriteString("\n")
	b.WriteString(renderTable(
		[]string{"Status", "Manifest", "Line", "URL", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	))
	return b.String()
}
