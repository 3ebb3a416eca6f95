package reddit

import (
	"fmt"

	"github.com/vncsmyrnk/crosswordpolls/internal/core/domain"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Error       string `json:"error"`
}

type listing struct {
	Kind string       `json:"kind"`
	Data *listingData `json:"data"`
}

type listingData struct {
	Children []listingChild `json:"children"`
}

type listingChild struct {
	Kind string `json:"kind"`
	Data post   `json:"data"`
}

type post struct {
	Author   string    `json:"author"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	PollData *pollData `json:"poll_data"`
}

type pollData struct {
	VotingEndTimestamp *int64       `json:"voting_end_timestamp"`
	TotalVoteCount     int64        `json:"total_vote_count"`
	Options            []pollOption `json:"options"`
}

type pollOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	VoteCount *int64 `json:"vote_count"`
}

func (l *listing) validate() error {
	if l.Data == nil || l.Data.Children == nil {
		return fmt.Errorf("%w: search listing has no children", domain.ErrDecode)
	}
	return nil
}

func (l *listing) threads() []domain.Thread {
	threads := make([]domain.Thread, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		threads = append(threads, child.Data.toDomain())
	}
	return threads
}

func (p post) toDomain() domain.Thread {
	thread := domain.Thread{
		Author: p.Author,
		Title:  p.Title,
		URL:    p.URL,
	}
	if p.PollData == nil {
		return thread
	}

	// A missing voting end is left at zero and rejected only if this result is matched.
	poll := &domain.PollData{
		TotalVoteCount: p.PollData.TotalVoteCount,
		Options:        make([]domain.PollOption, 0, len(p.PollData.Options)),
	}
	if p.PollData.VotingEndTimestamp != nil {
		poll.VotingEndTimestamp = *p.PollData.VotingEndTimestamp
	}
	for _, opt := range p.PollData.Options {
		poll.Options = append(poll.Options, domain.PollOption{
			ID:        opt.ID,
			Text:      opt.Text,
			VoteCount: opt.VoteCount,
		})
	}
	thread.Poll = poll
	return thread
}
