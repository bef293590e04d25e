// Package monthrange parses month specifications like "1" or "14-2" and
// resolves them into ordered calendar-month windows.
package monthrange

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"review-report/internal/models"
)

// ErrInvalidRange marks a malformed or logically inconsistent month
// specification.
var ErrInvalidRange = errors.New("invalid month range")

// Spec is the parsed form of a month specification. From is the older
// bound (months before the reference month), To the newer one; a single
// month spec has From == To. Invariant after ParseSpec: From >= To >= 0.
type Spec struct {
	From int
	To   int
}

// ParseSpec parses a month specification. The grammar is either a single
// non-negative integer N ("the month N months ago", 0 = current month) or
// "A-B" ("every month from A months ago through B months ago", A >= B >= 0).
func ParseSpec(s string) (Spec, error) {
	parts := strings.Split(s, "-")
	switch len(parts) {
	case 1:
		n, err := parseOffset(parts[0])
		if err != nil {
			return Spec{}, err
		}
		return Spec{From: n, To: n}, nil
	case 2:
		from, err := parseOffset(parts[0])
		if err != nil {
			return Spec{}, err
		}
		to, err := parseOffset(parts[1])
		if err != nil {
			return Spec{}, err
		}
		if from < to {
			return Spec{}, fmt.Errorf("%w: start month %d must be >= end month %d", ErrInvalidRange, from, to)
		}
		return Spec{From: from, To: to}, nil
	default:
		return Spec{}, fmt.Errorf("%w: %q has more than one hyphen", ErrInvalidRange, s)
	}
}

func parseOffset(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a month offset", ErrInvalidRange, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: month offset %d is negative", ErrInvalidRange, n)
	}
	return n, nil
}

// Resolve turns a Spec into contiguous month windows ordered oldest first,
// relative to the month containing now. Windows are anchored at the first
// of the month, so year rollover and day-of-month edge cases never apply.
// Inverted bounds are swapped with a warning rather than rejected, since
// ParseSpec already enforces the user-facing contract.
func Resolve(spec Spec, now time.Time, logger *slog.Logger) []models.MonthWindow {
	if logger == nil {
		logger = slog.Default()
	}
	from, to := spec.From, spec.To
	if from < to {
		logger.Warn("month range bounds inverted, swapping", "from", from, "to", to)
		from, to = to, from
	}

	windows := make([]models.MonthWindow, 0, from-to+1)
	for offset := from; offset >= to; offset-- {
		start := time.Date(now.Year(), now.Month()-time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
		windows = append(windows, models.MonthWindow{
			Year:  start.Year(),
			Month: start.Month(),
			Start: start,
			End:   start.AddDate(0, 1, 0),
		})
	}
	return windows
}
