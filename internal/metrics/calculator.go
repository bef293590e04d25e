// Package metrics buckets pull requests into month windows and computes
// review coverage, cycle time and participation statistics. It performs no
// I/O and is deterministic for a given set of windows and pull requests.
package metrics

import (
	"errors"
	"fmt"
	"math"
	"time"

	"review-report/internal/models"
)

// ErrMalformedRecord marks a fetched pull request that violates the input
// contract. It is fatal: skipping such a record would silently corrupt the
// aggregates.
var ErrMalformedRecord = errors.New("malformed pull request record")

// autoApproveWindow is the maximum delay after creation within which a
// lone review is treated as an automatic approval rather than a real one.
const autoApproveWindow = 5 * time.Minute

// Compute assigns each pull request to the window containing its creation
// time and aggregates per-window metrics plus a grand total. Pull requests
// created outside every window are discarded, which keeps the aggregates
// correct if the data source over-fetched.
func Compute(windows []models.MonthWindow, prs []models.PullRequest) ([]models.MonthMetrics, models.GrandTotal, error) {
	accs := make([]*accumulator, len(windows))
	for i, w := range windows {
		accs[i] = &accumulator{window: w, participation: make(map[string]int)}
	}

	for _, pr := range prs {
		if pr.CreatedAt.IsZero() {
			return nil, models.GrandTotal{}, fmt.Errorf("%w: %s#%d has no created_at", ErrMalformedRecord, pr.Repository, pr.Number)
		}
		for _, acc := range accs {
			if acc.window.Contains(pr.CreatedAt) {
				acc.add(pr)
				break
			}
		}
	}

	months := make([]models.MonthMetrics, len(accs))
	total := models.GrandTotal{Participation: make(map[string]int)}
	for i, acc := range accs {
		months[i] = acc.finish()

		total.TotalPRs += months[i].TotalPRs
		total.ReviewedPRs += months[i].ReviewedPRs
		total.AutoApprovedPRs += months[i].AutoApprovedPRs
		total.CycleHoursTotal += months[i].CycleHoursTotal
		for reviewer, count := range months[i].Participation {
			total.Participation[reviewer] += count
		}
	}
	total.CoveragePct = coverage(total.ReviewedPRs, total.TotalPRs)
	total.AvgCycleTimeHours = avgCycle(total.CycleHoursTotal, total.ReviewedPRs)

	return months, total, nil
}

// accumulator collects raw counts for one window before the derived
// percentages are computed.
type accumulator struct {
	window        models.MonthWindow
	totalPRs      int
	reviewedPRs   int
	autoApproved  int
	cycleHours    float64
	participation map[string]int
}

func (a *accumulator) add(pr models.PullRequest) {
	if isAutoApproved(pr) {
		a.autoApproved++
		return
	}

	a.totalPRs++

	reviewed := false
	var firstReview time.Time
	for _, review := range pr.Reviews {
		if !review.State.Qualifies() || review.Reviewer == pr.Author {
			continue
		}
		reviewed = true
		if firstReview.IsZero() || review.SubmittedAt.Before(firstReview) {
			firstReview = review.SubmittedAt
		}
	}
	if !reviewed {
		return
	}

	a.reviewedPRs++
	a.cycleHours += firstReview.Sub(pr.CreatedAt).Hours()

	seen := make(map[string]bool, len(pr.Reviews))
	for _, review := range pr.Reviews {
		if !review.State.Qualifies() || review.Reviewer == pr.Author || seen[review.Reviewer] {
			continue
		}
		seen[review.Reviewer] = true
		a.participation[review.Reviewer]++
	}
}

func (a *accumulator) finish() models.MonthMetrics {
	return models.MonthMetrics{
		Window:            a.window,
		TotalPRs:          a.totalPRs,
		ReviewedPRs:       a.reviewedPRs,
		AutoApprovedPRs:   a.autoApproved,
		CoveragePct:       coverage(a.reviewedPRs, a.totalPRs),
		AvgCycleTimeHours: avgCycle(a.cycleHours, a.reviewedPRs),
		CycleHoursTotal:   a.cycleHours,
		Participation:     a.participation,
	}
}

// isAutoApproved reports whether the PR's only review landed within five
// minutes of creation, the signature of a bot or rubber-stamp approval.
// A lone PENDING review carries no submission time at all, so a zero or
// pre-creation SubmittedAt never counts.
func isAutoApproved(pr models.PullRequest) bool {
	if len(pr.Reviews) != 1 {
		return false
	}
	review := pr.Reviews[0]
	if !review.State.Qualifies() || review.SubmittedAt.IsZero() {
		return false
	}
	delta := review.SubmittedAt.Sub(pr.CreatedAt)
	return delta >= 0 && delta <= autoApproveWindow
}

// coverage is reviewed/total as a percentage rounded to one decimal.
// An empty month is a valid, reportable state, so 0 total yields 0.0.
func coverage(reviewed, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(reviewed)/float64(total)*1000) / 10
}

func avgCycle(hours float64, reviewed int) float64 {
	if reviewed == 0 {
		return 0
	}
	return hours / float64(reviewed)
}
