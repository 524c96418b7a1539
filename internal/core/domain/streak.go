package domain

import (
	"fmt"
	"sort"
	"time"
)

// StreakSummary is derived on demand and never persisted.
type StreakSummary struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// CalculateStreak counts consecutive logged days ending today, or ending
// yesterday when today has no log yet. dates are YYYY-MM-DD strings; today is
// reduced to its calendar day in its own location.
func CalculateStreak(dates []string, today time.Time) (int, error) {
	days, err := parseDistinctDesc(dates)
	if err != nil {
		return 0, err
	}

	anchor := calendarDay(today)

	// Days after today only show up with clock skew between writers.
	for len(days) > 0 && days[0].After(anchor) {
		days = days[1:]
	}
	if len(days) == 0 {
		return 0, nil
	}

	if latest := days[0]; !latest.Equal(anchor) {
		if daysBetween(latest, anchor) > 1 {
			return 0, nil
		}
		anchor = latest
	}

	streak := 0
	for _, d := range days {
		if d.Equal(anchor) {
			streak++
			anchor = anchor.AddDate(0, 0, -1)
			continue
		}
		if d.Before(anchor) {
			break
		}
	}

	return streak, nil
}

// LongestStreak returns the longest run of consecutive logged days in dates.
func LongestStreak(dates []string) (int, error) {
	days, err := parseDistinctDesc(dates)
	if err != nil {
		return 0, err
	}
	if len(days) == 0 {
		return 0, nil
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i], days[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest, nil
}

func SummarizeStreak(dates []string, today time.Time) (StreakSummary, error) {
	current, err := CalculateStreak(dates, today)
	if err != nil {
		return StreakSummary{}, err
	}
	longest, err := LongestStreak(dates)
	if err != nil {
		return StreakSummary{}, err
	}
	return StreakSummary{Current: current, Longest: longest}, nil
}

func parseDistinctDesc(dates []string) ([]time.Time, error) {
	seen := make(map[time.Time]bool, len(dates))
	days := make([]time.Time, 0, len(dates))

	for _, raw := range dates {
		d, err := time.Parse(DateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedDate, raw)
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})
	return days, nil
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween assumes both values are UTC midnights.
func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
