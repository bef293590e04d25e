// Package models contains the data structures shared by the resolver,
// the metrics calculator and the report renderers.
package models

import (
	"math"
	"sort"
	"time"
)

// ReviewState is the outcome of a single pull request review.
type ReviewState string

const (
	ReviewApproved         ReviewState = "APPROVED"
	ReviewChangesRequested ReviewState = "CHANGES_REQUESTED"
	ReviewCommented        ReviewState = "COMMENTED"
	ReviewDismissed        ReviewState = "DISMISSED"
	ReviewPending          ReviewState = "PENDING"
)

// Qualifies reports whether a review state counts toward coverage.
func (s ReviewState) Qualifies() bool {
	switch s {
	case ReviewApproved, ReviewChangesRequested, ReviewCommented:
		return true
	}
	return false
}

// MonthWindow is a half-open [Start, End) calendar-month interval used as
// an aggregation bucket. Windows in a resolved range are contiguous,
// non-overlapping and ordered oldest first.
type MonthWindow struct {
	Year  int
	Month time.Month
	Start time.Time
	End   time.Time
}

// Label renders the window as "YYYY-MM".
func (w MonthWindow) Label() string {
	return w.Start.Format("2006-01")
}

// Contains reports whether t falls inside [Start, End).
func (w MonthWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Review is a single review event on a pull request.
type Review struct {
	Reviewer    string
	SubmittedAt time.Time
	State       ReviewState
}

// PullRequest carries the fields the calculator needs. MergedAt and
// ClosedAt are nil for PRs that are still open.
type PullRequest struct {
	Number     int
	Repository string
	Author     string
	CreatedAt  time.Time
	MergedAt   *time.Time
	ClosedAt   *time.Time
	Reviews    []Review
}

// MonthMetrics holds the aggregated review-health numbers for one window.
// Instances are created fresh per run and never mutated afterwards.
type MonthMetrics struct {
	Window            MonthWindow
	TotalPRs          int
	ReviewedPRs       int
	AutoApprovedPRs   int
	CoveragePct       float64
	AvgCycleTimeHours float64
	// CycleHoursTotal is the cycle-time numerator, kept so the grand total
	// can divide summed hours by summed reviewed counts instead of
	// averaging the per-month averages.
	CycleHoursTotal float64
	// Participation maps reviewer login to the number of distinct reviewed
	// PRs they submitted a qualifying review on.
	Participation map[string]int
}

// GrandTotal aggregates MonthMetrics across all windows. Coverage and
// average cycle time are recomputed from the summed counts.
type GrandTotal struct {
	TotalPRs          int
	ReviewedPRs       int
	AutoApprovedPRs   int
	CoveragePct       float64
	AvgCycleTimeHours float64
	CycleHoursTotal   float64
	Participation     map[string]int
}

// ParticipationRow is one reviewer's share of the reviewed PRs in a window.
type ParticipationRow struct {
	Reviewer string
	Count    int
	Pct      float64
}

// ParticipationRows returns the participation breakdown sorted by count
// descending, then reviewer name, with percentages of reviewed PRs.
func (m MonthMetrics) ParticipationRows() []ParticipationRow {
	return participationRows(m.Participation, m.ReviewedPRs)
}

// ParticipationRows returns the merged participation breakdown for the
// whole period, sorted like the per-month rows.
func (g GrandTotal) ParticipationRows() []ParticipationRow {
	return participationRows(g.Participation, g.ReviewedPRs)
}

func participationRows(counts map[string]int, reviewed int) []ParticipationRow {
	rows := make([]ParticipationRow, 0, len(counts))
	for reviewer, count := range counts {
		pct := 0.0
		if reviewed > 0 {
			pct = round1(float64(count) / float64(reviewed) * 100)
		}
		rows = append(rows, ParticipationRow{Reviewer: reviewer, Count: count, Pct: pct})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Reviewer < rows[j].Reviewer
	})
	return rows
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Report is the renderer-agnostic result of one run: a small header, the
// per-month metrics oldest first, and the grand total.
type Report struct {
	GeneratedAt  time.Time
	Organization string
	Team         string
	PeriodStart  time.Time
	PeriodEnd    time.Time
	Months       []MonthMetrics
	Total        GrandTotal
}
