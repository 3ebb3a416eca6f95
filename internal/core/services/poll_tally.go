package services

import (
	"fmt"
	"time"

	"github.com/vncsmyrnk/crosswordpolls/internal/core/domain"
)

const (
	OptionExcellent = "Excellent"
	OptionGood      = "Good"
	OptionAverage   = "Average"
	OptionPoor      = "Poor"
	OptionTerrible  = "Terrible"
	OptionNoVote    = "I just want to see the results"

	pollOptionCount = 6
)

// TallyPoll validates a closed quality poll and computes its statistics.
// It returns domain.ErrVotingOpen while voting is still running.
func TallyPoll(poll domain.PollData, now time.Time) (domain.PollTally, error) {
	if !poll.VotingClosed(now) {
		return domain.PollTally{}, domain.ErrVotingOpen
	}

	if len(poll.Options) != pollOptionCount {
		return domain.PollTally{}, fmt.Errorf("%w: got %d options, want %d", domain.ErrInvalidPoll, len(poll.Options), pollOptionCount)
	}

	counts := make(map[string]int64, len(poll.Options))
	for _, opt := range poll.Options {
		if opt.VoteCount == nil {
			continue
		}
		counts[opt.Text] = *opt.VoteCount
	}

	labels := []string{OptionExcellent, OptionGood, OptionAverage, OptionPoor, OptionTerrible, OptionNoVote}
	for _, label := range labels {
		if _, ok := counts[label]; !ok {
			return domain.PollTally{}, fmt.Errorf("%w: missing option %q", domain.ErrInvalidPoll, label)
		}
	}

	t := domain.PollTally{
		Excellent: counts[OptionExcellent],
		Good:      counts[OptionGood],
		Average:   counts[OptionAverage],
		Poor:      counts[OptionPoor],
		Terrible:  counts[OptionTerrible],
		NoVote:    counts[OptionNoVote],
	}
	t.Votes = t.Excellent + t.Good + t.Average + t.Poor + t.Terrible
	if t.Votes == 0 {
		return domain.PollTally{}, domain.ErrNoVotes
	}

	votes := float64(t.Votes)
	percentage := func(n int64) float64 {
		return float64(n) / votes * 100
	}
	t.ExcellentPercentage = percentage(t.Excellent)
	t.GoodPercentage = percentage(t.Good)
	t.AveragePercentage = percentage(t.Average)
	t.PoorPercentage = percentage(t.Poor)
	t.TerriblePercentage = percentage(t.Terrible)

	weighted := 5*t.Excellent + 4*t.Good + 3*t.Average + 2*t.Poor + t.Terrible
	t.AverageRating = float64(weighted) / votes

	return t, nil
}
