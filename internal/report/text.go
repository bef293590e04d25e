// Package report renders a computed Report as plain text or as tables.
// Both renderers are deterministic so redirected output is diff-friendly.
package report

import (
	"fmt"
	"io"
	"strings"

	"review-report/internal/models"
)

const (
	headerLine  = 50
	monthLine   = 20
	timeLayout  = "2006-01-02 15:04:05"
	dateLayout  = "2006-01-02"
	noCycleTime = "N/A"
)

// Text writes the report in the free-form layout: header, one block per
// month, then the grand total.
func Text(w io.Writer, r models.Report) {
	writeHeader(w, r)
	fmt.Fprintln(w, strings.Repeat("=", headerLine))

	for _, m := range r.Months {
		fmt.Fprintf(w, "\nMonth: %s\n", m.Window.Label())
		fmt.Fprintln(w, strings.Repeat("-", monthLine))
		writeMetricsBlock(w, m.TotalPRs, m.ReviewedPRs, m.AutoApprovedPRs, m.CoveragePct, m.AvgCycleTimeHours, m.ParticipationRows())
	}

	fmt.Fprintln(w, "\nGrand Total")
	fmt.Fprintln(w, strings.Repeat("=", headerLine))
	t := r.Total
	writeMetricsBlock(w, t.TotalPRs, t.ReviewedPRs, t.AutoApprovedPRs, t.CoveragePct, t.AvgCycleTimeHours, t.ParticipationRows())
}

func writeHeader(w io.Writer, r models.Report) {
	fmt.Fprintf(w, "Code Review Report - Generated on %s UTC\n", r.GeneratedAt.UTC().Format(timeLayout))
	fmt.Fprintf(w, "Organization: %s\n", r.Organization)
	fmt.Fprintf(w, "Team: %s\n", r.Team)
	fmt.Fprintf(w, "Period: %s to %s\n", r.PeriodStart.Format(dateLayout), r.PeriodEnd.AddDate(0, 0, -1).Format(dateLayout))
	fmt.Fprintln(w, strings.Repeat("-", headerLine))
	fmt.Fprintln(w)
}

func writeMetricsBlock(w io.Writer, total, reviewed, autoApproved int, coverage, avgCycle float64, rows []models.ParticipationRow) {
	fmt.Fprintf(w, "Total Pull Requests (excluding auto-approved): %d\n", total)
	fmt.Fprintf(w, "Auto-approved Pull Requests: %d\n", autoApproved)
	fmt.Fprintf(w, "Reviewed Pull Requests: %d\n", reviewed)
	fmt.Fprintf(w, "Code Review Coverage: %.1f%%\n", coverage)
	fmt.Fprintf(w, "Average Cycle Time: %s\n", formatCycle(avgCycle, reviewed))
	fmt.Fprintln(w, "Participation:")
	for _, row := range rows {
		fmt.Fprintf(w, "  %s: %d PRs (%.1f%%)\n", row.Reviewer, row.Count, row.Pct)
	}
}

func formatCycle(hours float64, reviewed int) string {
	if reviewed == 0 {
		return noCycleTime
	}
	return fmt.Sprintf("%.2f hours", hours)
}
