package report

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Report periods and modes, selected by the query string flag
// "<daily|weekly|monthly>-<summary|comprehensive>".
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"

	ModeSummary       = "summary"
	ModeComprehensive = "comprehensive"
)

// PeriodDays maps a period flag to its lookback window in days.
func PeriodDays(period string) (int, error) {
	switch period {
	case PeriodDaily:
		return 1, nil
	case PeriodWeekly:
		return 7, nil
	case PeriodMonthly:
		return 30, nil
	default:
		return 0, fmt.Errorf("unknown report period %q", period)
	}
}

// ParseFlag splits a "<period>-<mode>" report flag.
func ParseFlag(flag string) (period, mode string, err error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(flag)), "-", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("malformed report flag %q", flag)
	}
	period, mode = parts[0], parts[1]
	if _, err := PeriodDays(period); err != nil {
		return "", "", err
	}
	if mode != ModeSummary && mode != ModeComprehensive {
		return "", "", fmt.Errorf("unknown report mode %q", mode)
	}
	return period, mode, nil
}

// FilterSince keeps records created on or after now minus the window.
func FilterSince(records []Record, now time.Time, days int) []Record {
	cutoff := now.AddDate(0, 0, -days)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if !r.CreatedAt.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// Comprehensive returns per-record detail rows sorted by date descending.
func Comprehensive(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
