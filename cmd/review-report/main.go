package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"review-report/internal/config"
	"review-report/internal/metrics"
	"review-report/internal/models"
	"review-report/internal/monthrange"
	"review-report/internal/report"
	"review-report/internal/source"
)

func main() {
	// Logs go to stderr; stdout carries only the rendered report so the
	// scheduler can redirect it into an artifact.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	teamFlag := flag.String("team", cfg.Team, "Team slug to report on")
	monthsFlag := flag.String("months", cfg.Months, "Month spec: '0' current month, '1' previous, '2-0' last three, '14-2' from 14 to 2 months ago")
	tableFlag := flag.Bool("table", false, "Render the report as tables")
	flag.Parse()

	if *teamFlag == "" || *monthsFlag == "" {
		logger.Error("missing required parameters", "team", *teamFlag, "months", *monthsFlag)
		os.Exit(1)
	}

	spec, err := monthrange.ParseSpec(*monthsFlag)
	if err != nil {
		logger.Error("invalid month specification", "months", *monthsFlag, "error", err)
		os.Exit(1)
	}

	now := time.Now().UTC()
	windows := monthrange.Resolve(spec, now, logger)
	start := windows[0].Start
	end := windows[len(windows)-1].End

	ctx := context.Background()
	client := source.NewClient(ctx, cfg.Token, cfg.Org, cfg.HTTPTimeout, logger)

	logger.Info("fetching pull requests",
		"org", cfg.Org,
		"team", *teamFlag,
		"from", start.Format(time.DateOnly),
		"to", end.Format(time.DateOnly))

	prs, err := client.FetchTeamPullRequests(ctx, *teamFlag, start, end)
	if err != nil {
		logger.Error("fetch failed", "error", err)
		os.Exit(1)
	}

	months, total, err := metrics.Compute(windows, prs)
	if err != nil {
		logger.Error("aggregation failed", "error", err)
		os.Exit(1)
	}

	result := models.Report{
		GeneratedAt:  now,
		Organization: cfg.Org,
		Team:         *teamFlag,
		PeriodStart:  start,
		PeriodEnd:    end,
		Months:       months,
		Total:        total,
	}

	if *tableFlag {
		report.Table(os.Stdout, result)
	} else {
		report.Text(os.Stdout, result)
	}
}
