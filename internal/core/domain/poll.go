package domain

import (
	"fmt"
	"time"
)

// Thread is a forum search result considered while looking for a day's discussion.
type Thread struct {
	Author string
	Title  string
	URL    string
	Poll   *PollData
}

type PollData struct {
	VotingEndTimestamp int64 // unix milliseconds
	TotalVoteCount     int64
	Options            []PollOption
}

type PollOption struct {
	ID        string
	Text      string
	VoteCount *int64
}

func (p PollData) VotingEnd() time.Time {
	return time.UnixMilli(p.VotingEndTimestamp).UTC()
}

// VotingClosed reports whether the voting window has ended at now.
func (p PollData) VotingClosed(now time.Time) bool {
	return p.VotingEndTimestamp <= now.UnixMilli()
}

// Validate checks the fields a poll must carry before it can be tallied.
func (p PollData) Validate() error {
	if p.VotingEndTimestamp <= 0 {
		return fmt.Errorf("%w: poll has no voting end timestamp", ErrDecode)
	}
	return nil
}
