package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vncsmyrnk/crosswordpolls/internal/core/domain"
	"github.com/vncsmyrnk/crosswordpolls/internal/core/ports"
)

// DateRange returns every UTC day from start to end, both inclusive.
func DateRange(start, end time.Time) []time.Time {
	var days []time.Time
	for day := domain.Day(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

// LatestPollDay is the most recent day whose poll may have closed at now.
func LatestPollDay(now time.Time, pollDurationDays int) time.Time {
	return domain.Day(now.UTC().AddDate(0, 0, -pollDurationDays+1))
}

// MissingDays lists, in ascending order, the days since firstPollDate that
// should have a record at now but are not stored yet.
func MissingDays(ctx context.Context, repo ports.CrosswordRepository, firstPollDate time.Time, pollDurationDays int, now time.Time) ([]time.Time, error) {
	first := domain.Day(firstPollDate)
	last := LatestPollDay(now, pollDurationDays)
	if last.Before(first) {
		return nil, nil
	}

	stored, err := repo.ListPublishedDates(ctx, domain.DayKey(first), domain.DayKey(last))
	if err != nil {
		return nil, fmt.Errorf("failed to list stored dates: %w", err)
	}

	existing := make(map[int64]struct{}, len(stored))
	for _, key := range stored {
		existing[key] = struct{}{}
	}

	var missing []time.Time
	for _, day := range DateRange(first, last) {
		if _, ok := existing[domain.DayKey(day)]; ok {
			continue
		}
		missing = append(missing, day)
	}
	return missing, nil
}
