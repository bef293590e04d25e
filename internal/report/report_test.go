package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"review-report/internal/models"
)

func sampleReport() models.Report {
	start := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	w := models.MonthWindow{Year: 2024, Month: time.February, Start: start, End: start.AddDate(0, 1, 0)}

	month := models.MonthMetrics{
		Window:            w,
		TotalPRs:          10,
		ReviewedPRs:       4,
		AutoApprovedPRs:   1,
		CoveragePct:       40.0,
		AvgCycleTimeHours: 9.25,
		CycleHoursTotal:   37,
		Participation:     map[string]int{"bob": 3, "carol": 1},
	}
	return models.Report{
		GeneratedAt:  time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC),
		Organization: "acme",
		Team:         "platform",
		PeriodStart:  w.Start,
		PeriodEnd:    w.End,
		Months:       []models.MonthMetrics{month},
		Total: models.GrandTotal{
			TotalPRs:          10,
			ReviewedPRs:       4,
			AutoApprovedPRs:   1,
			CoveragePct:       40.0,
			AvgCycleTimeHours: 9.25,
			CycleHoursTotal:   37,
			Participation:     map[string]int{"bob": 3, "carol": 1},
		},
	}
}

func TestTextReport(t *testing.T) {
	var buf bytes.Buffer
	Text(&buf, sampleReport())
	out := buf.String()

	assert.Contains(t, out, "Code Review Report - Generated on 2024-03-15 12:00:00 UTC")
	assert.Contains(t, out, "Organization: acme")
	assert.Contains(t, out, "Team: platform")
	assert.Contains(t, out, "Period: 2024-02-01 to 2024-02-29")
	assert.Contains(t, out, "Month: 2024-02")
	assert.Contains(t, out, "Total Pull Requests (excluding auto-approved): 10")
	assert.Contains(t, out, "Auto-approved Pull Requests: 1")
	assert.Contains(t, out, "Reviewed Pull Requests: 4")
	assert.Contains(t, out, "Code Review Coverage: 40.0%")
	assert.Contains(t, out, "Average Cycle Time: 9.25 hours")
	assert.Contains(t, out, "  bob: 3 PRs (75.0%)")
	assert.Contains(t, out, "  carol: 1 PRs (25.0%)")
	assert.Contains(t, out, "Grand Total")
}

func TestTextReportNoReviewedPRs(t *testing.T) {
	r := sampleReport()
	r.Months[0].ReviewedPRs = 0
	r.Months[0].AvgCycleTimeHours = 0
	r.Months[0].Participation = map[string]int{}

	var buf bytes.Buffer
	Text(&buf, r)

	assert.Contains(t, buf.String(), "Average Cycle Time: N/A")
}

func TestTextReportDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	Text(&first, sampleReport())
	Text(&second, sampleReport())

	assert.Equal(t, first.String(), second.String())
}

func TestTableReport(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, sampleReport())
	out := buf.String()

	assert.Contains(t, out, "MONTH")
	assert.Contains(t, out, "2024-02")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "40.0")
	assert.Contains(t, out, "9.25")
	assert.Contains(t, out, "Participation:")
	assert.Contains(t, out, "bob")
	assert.Contains(t, out, "75.0%")
}
