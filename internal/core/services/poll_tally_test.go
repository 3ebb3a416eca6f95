package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/crosswordpolls/internal/core/domain"
)

var tallyNow = time.Date(2023, 1, 25, 12, 0, 0, 0, time.UTC)

func closedPoll(options []domain.PollOption) domain.PollData {
	return domain.PollData{VotingEndTimestamp: tallyNow.Add(-time.Hour).UnixMilli(), Options: options}
}

func TestTallyPoll(t *testing.T) {
	tally, err := TallyPoll(closedPoll(qualityOptions(10, 5, 3, 1, 1, 2)), tallyNow)
	require.NoError(t, err)

	assert.Equal(t, int64(20), tally.Votes)
	assert.Equal(t, int64(2), tally.NoVote)
	assert.InDelta(t, 50.0, tally.ExcellentPercentage, 1e-9)
	assert.InDelta(t, 25.0, tally.GoodPercentage, 1e-9)
	assert.InDelta(t, 15.0, tally.AveragePercentage, 1e-9)
	assert.InDelta(t, 5.0, tally.PoorPercentage, 1e-9)
	assert.InDelta(t, 5.0, tally.TerriblePercentage, 1e-9)
	assert.InDelta(t, 4.1, tally.AverageRating, 1e-9)
}

func TestTallyPollOptionOrderIrrelevant(t *testing.T) {
	options := qualityOptions(10, 5, 3, 1, 1, 2)
	reversed := make([]domain.PollOption, len(options))
	for i, opt := range options {
		reversed[len(options)-1-i] = opt
	}

	a, err := TallyPoll(closedPoll(options), tallyNow)
	require.NoError(t, err)
	b, err := TallyPoll(closedPoll(reversed), tallyNow)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestTallyPollInvariants(t *testing.T) {
	cases := [][6]int64{
		{1, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 7, 3},
		{3, 3, 3, 0, 0, 0},
		{123, 77, 41, 9, 13, 500},
	}

	for _, c := range cases {
		tally, err := TallyPoll(closedPoll(qualityOptions(c[0], c[1], c[2], c[3], c[4], c[5])), tallyNow)
		require.NoError(t, err)

		sum := tally.ExcellentPercentage + tally.GoodPercentage + tally.AveragePercentage + tally.PoorPercentage + tally.TerriblePercentage
		assert.InDelta(t, 100.0, sum, 1e-9)
		assert.GreaterOrEqual(t, tally.AverageRating, 1.0)
		assert.LessOrEqual(t, tally.AverageRating, 5.0)
	}
}

func TestTallyPollVotingOpen(t *testing.T) {
	poll := domain.PollData{VotingEndTimestamp: tallyNow.Add(time.Minute).UnixMilli(), Options: qualityOptions(10, 5, 3, 1, 1, 2)}

	_, err := TallyPoll(poll, tallyNow)
	assert.ErrorIs(t, err, domain.ErrVotingOpen)
}

func TestTallyPollVotingEndsExactlyNow(t *testing.T) {
	poll := domain.PollData{VotingEndTimestamp: tallyNow.UnixMilli(), Options: qualityOptions(1, 0, 0, 0, 0, 0)}

	_, err := TallyPoll(poll, tallyNow)
	assert.NoError(t, err)
}

func TestTallyPollInvalid(t *testing.T) {
	renamed := qualityOptions(1, 1, 1, 1, 1, 1)
	renamed[2].Text = "Meh"

	missingCount := qualityOptions(1, 1, 1, 1, 1, 1)
	missingCount[0].VoteCount = nil

	tests := []struct {
		name    string
		options []domain.PollOption
		wantErr error
	}{
		{"five options", qualityOptions(1, 1, 1, 1, 1, 1)[:5], domain.ErrInvalidPoll},
		{"seven options", append(qualityOptions(1, 1, 1, 1, 1, 1), domain.PollOption{Text: "Other", VoteCount: count(1)}), domain.ErrInvalidPoll},
		{"unexpected label", renamed, domain.ErrInvalidPoll},
		{"hidden vote count", missingCount, domain.ErrInvalidPoll},
		{"no opinion votes", qualityOptions(0, 0, 0, 0, 0, 12), domain.ErrNoVotes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TallyPoll(closedPoll(tt.options), tallyNow)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
