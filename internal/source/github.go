// Package source fetches a team's pull requests and their reviews from the
// GitHub API. Pagination and per-PR review fetching are internal; callers
// get a fully materialized slice and do their own bucketing.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"

	"review-report/internal/models"
)

const (
	perPage       = 100
	reviewWorkers = 10
)

// Client wraps an authenticated GitHub API client scoped to one
// organization.
type Client struct {
	gh     *github.Client
	org    string
	logger *slog.Logger
}

// NewClient builds a Client over an oauth2 static-token HTTP client with
// the given per-request timeout.
func NewClient(ctx context.Context, token, org string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = timeout
	return &Client{
		gh:     github.NewClient(tc),
		org:    org,
		logger: logger,
	}
}

// FetchTeamPullRequests returns every pull request created in [start, end)
// across all repositories owned by the team, with reviews attached. Errors
// from the API are wrapped and returned as-is; the caller aborts the run
// rather than reporting partial metrics.
func (c *Client) FetchTeamPullRequests(ctx context.Context, teamSlug string, start, end time.Time) ([]models.PullRequest, error) {
	repos, err := c.listTeamRepos(ctx, teamSlug)
	if err != nil {
		return nil, err
	}
	c.logger.Info("team repositories resolved", "team", teamSlug, "repos", len(repos))

	var all []models.PullRequest
	for _, repo := range repos {
		prs, err := c.fetchRepoPullRequests(ctx, repo, start, end)
		if err != nil {
			return nil, err
		}
		all = append(all, prs...)
	}
	c.logger.Info("pull requests fetched", "team", teamSlug, "count", len(all))
	return all, nil
}

func (c *Client) listTeamRepos(ctx context.Context, teamSlug string) ([]string, error) {
	var names []string
	opts := &github.ListOptions{PerPage: perPage}
	for {
		repos, resp, err := c.gh.Teams.ListTeamReposBySlug(ctx, c.org, teamSlug, opts)
		if err != nil {
			return nil, fmt.Errorf("list repos for team %s/%s: %w", c.org, teamSlug, err)
		}
		for _, repo := range repos {
			names = append(names, repo.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}

func (c *Client) fetchRepoPullRequests(ctx context.Context, repo string, start, end time.Time) ([]models.PullRequest, error) {
	var kept []*github.PullRequest
	opts := &github.PullRequestListOptions{
		State:       "all",
		Sort:        "created",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	for {
		prs, resp, err := c.gh.PullRequests.List(ctx, c.org, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("list pull requests for %s/%s: %w", c.org, repo, err)
		}
		page, done := keepInWindow(prs, start, end)
		kept = append(kept, page...)
		if done || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	if len(kept) == 0 {
		return nil, nil
	}
	return c.attachReviews(ctx, repo, kept)
}

// keepInWindow filters one descending-by-creation page down to PRs created
// in [start, end). done is true once the page reached PRs older than start,
// meaning later pages cannot contain anything in range.
func keepInWindow(prs []*github.PullRequest, start, end time.Time) ([]*github.PullRequest, bool) {
	var kept []*github.PullRequest
	for _, pr := range prs {
		created := pr.GetCreatedAt().Time
		if created.Before(start) {
			return kept, true
		}
		if created.Before(end) {
			kept = append(kept, pr)
		}
	}
	return kept, false
}

// attachReviews fetches reviews for each kept PR with a bounded worker
// pool and converts everything to the calculator's model types.
func (c *Client) attachReviews(ctx context.Context, repo string, prs []*github.PullRequest) ([]models.PullRequest, error) {
	workers := reviewWorkers
	if len(prs) < workers {
		workers = len(prs)
	}
	reviewsByPR, err := collectReviews(prs, workers, func(pr *github.PullRequest) ([]*github.PullRequestReview, error) {
		return c.listReviews(ctx, repo, pr.GetNumber())
	})
	if err != nil {
		return nil, err
	}

	results := make([]models.PullRequest, len(prs))
	for i, pr := range prs {
		results[i] = convertPullRequest(repo, pr, reviewsByPR[i])
	}
	return results, nil
}

// collectReviews runs fetch over prs with a bounded worker pool. The run
// aborts on the first error; jobs still queued after that are skipped so a
// doomed run does not keep burning API rate limit.
func collectReviews(prs []*github.PullRequest, workers int, fetch func(*github.PullRequest) ([]*github.PullRequestReview, error)) ([][]*github.PullRequestReview, error) {
	out := make([][]*github.PullRequestReview, len(prs))
	jobs := make(chan int, len(prs))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				mu.Lock()
				failed := firstErr != nil
				mu.Unlock()
				if failed {
					continue
				}
				reviews, err := fetch(prs[idx])
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				out[idx] = reviews
			}
		}()
	}
	for i := range prs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (c *Client) listReviews(ctx context.Context, repo string, number int) ([]*github.PullRequestReview, error) {
	var all []*github.PullRequestReview
	opts := &github.ListOptions{PerPage: perPage}
	for {
		reviews, resp, err := c.gh.PullRequests.ListReviews(ctx, c.org, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("list reviews for %s/%s#%d: %w", c.org, repo, number, err)
		}
		all = append(all, reviews...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

func convertPullRequest(repo string, pr *github.PullRequest, reviews []*github.PullRequestReview) models.PullRequest {
	out := models.PullRequest{
		Number:     pr.GetNumber(),
		Repository: repo,
		Author:     pr.GetUser().GetLogin(),
		CreatedAt:  pr.GetCreatedAt().Time,
		Reviews:    make([]models.Review, 0, len(reviews)),
	}
	if pr.MergedAt != nil {
		t := pr.MergedAt.Time
		out.MergedAt = &t
	}
	if pr.ClosedAt != nil {
		t := pr.ClosedAt.Time
		out.ClosedAt = &t
	}
	for _, review := range reviews {
		out.Reviews = append(out.Reviews, models.Review{
			Reviewer:    review.GetUser().GetLogin(),
			SubmittedAt: review.GetSubmittedAt().Time,
			State:       models.ReviewState(review.GetState()),
		})
	}
	return out
}
