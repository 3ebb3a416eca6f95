package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vncsmyrnk/crosswordpolls/internal/core/domain"
	"github.com/vncsmyrnk/crosswordpolls/internal/core/ports"
)

// Resolution tells what a search for a day's discussion thread concluded.
type Resolution int

const (
	// ResolutionPending means no thread was found yet but one may still appear.
	ResolutionPending Resolution = iota
	ResolutionFound
	// ResolutionAbsent means the day is past the cutoff and no thread exists.
	ResolutionAbsent
)

func (r Resolution) String() string {
	switch r {
	case ResolutionFound:
		return "found"
	case ResolutionAbsent:
		return "absent"
	default:
		return "pending"
	}
}

const threadTitlePrefix = "NYT"

// Locator finds the daily discussion thread carrying the quality poll.
type Locator struct {
	forum            ports.ForumClient
	trustedAuthors   map[string]struct{}
	pollDurationDays int
}

func NewLocator(forum ports.ForumClient, trustedAuthors []string, pollDurationDays int) *Locator {
	authors := make(map[string]struct{}, len(trustedAuthors))
	for _, a := range trustedAuthors {
		authors[a] = struct{}{}
	}
	return &Locator{
		forum:            forum,
		trustedAuthors:   authors,
		pollDurationDays: pollDurationDays,
	}
}

// SearchQuery is the quoted phrase searched for a given day.
func SearchQuery(day time.Time) string {
	return fmt.Sprintf("NYT %s Discussion", domain.DateString(day))
}

// DoesNotExistCutoff is the instant before which an unfound thread is
// considered never posted.
func DoesNotExistCutoff(now time.Time, pollDurationDays int) time.Time {
	return now.UTC().AddDate(0, 0, -2*pollDurationDays)
}

func (l *Locator) Locate(ctx context.Context, accessToken string, day, now time.Time) (*domain.Thread, Resolution, error) {
	threads, err := l.forum.SearchThreads(ctx, accessToken, SearchQuery(day))
	if err != nil {
		return nil, ResolutionPending, fmt.Errorf("failed to search threads: %w", err)
	}

	if thread := l.Match(threads, day); thread != nil {
		if err := thread.Poll.Validate(); err != nil {
			return nil, ResolutionPending, fmt.Errorf("failed to read poll of %s: %w", thread.URL, err)
		}
		return thread, ResolutionFound, nil
	}

	if day.Before(DoesNotExistCutoff(now, l.pollDurationDays)) {
		return nil, ResolutionAbsent, nil
	}
	return nil, ResolutionPending, nil
}

// Match returns the first thread, in the given order, posted by a trusted
// author for the day and carrying a poll.
func (l *Locator) Match(threads []domain.Thread, day time.Time) *domain.Thread {
	suffix := domain.DateString(day) + " Discussion"
	for i := range threads {
		t := &threads[i]
		if _, ok := l.trustedAuthors[t.Author]; !ok {
			continue
		}
		if !strings.HasPrefix(t.Title, threadTitlePrefix) || !strings.HasSuffix(t.Title, suffix) {
			continue
		}
		if t.Poll == nil {
			continue
		}
		return t
	}
	return nil
}
