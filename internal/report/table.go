package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"review-report/internal/models"
)

// Table writes the report as two tables: per-month metrics with a TOTAL
// row, then the whole-period participation breakdown.
func Table(w io.Writer, r models.Report) {
	writeHeader(w, r)

	months := tablewriter.NewWriter(w)
	months.SetHeader([]string{"Month", "Total PRs", "Auto-approved", "Reviewed PRs", "Coverage (%)", "Avg Cycle Time (hours)"})
	months.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})
	for _, m := range r.Months {
		months.Append(metricsRow(m.Window.Label(), m.TotalPRs, m.AutoApprovedPRs, m.ReviewedPRs, m.CoveragePct, m.AvgCycleTimeHours))
	}
	t := r.Total
	months.Append(metricsRow("TOTAL", t.TotalPRs, t.AutoApprovedPRs, t.ReviewedPRs, t.CoveragePct, t.AvgCycleTimeHours))
	months.Render()

	fmt.Fprintln(w, "\nParticipation:")
	participation := tablewriter.NewWriter(w)
	participation.SetHeader([]string{"Reviewer", "PRs Reviewed", "Percentage"})
	participation.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})
	for _, row := range t.ParticipationRows() {
		participation.Append([]string{row.Reviewer, strconv.Itoa(row.Count), fmt.Sprintf("%.1f%%", row.Pct)})
	}
	participation.Render()
}

func metricsRow(label string, total, autoApproved, reviewed int, coverage, avgCycle float64) []string {
	cycle := "0.00"
	if reviewed > 0 {
		cycle = fmt.Sprintf("%.2f", avgCycle)
	}
	return []string{
		label,
		strconv.Itoa(total),
		strconv.Itoa(autoApproved),
		strconv.Itoa(reviewed),
		fmt.Sprintf("%.1f", coverage),
		cycle,
	}
}
