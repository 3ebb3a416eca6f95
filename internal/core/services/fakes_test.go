package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vncsmyrnk/crosswordpolls/internal/core/domain"
	"github.com/vncsmyrnk/crosswordpolls/internal/core/ports"
)

type memoryRepository struct {
	mu      sync.Mutex
	records map[int64]*domain.Crossword
	listErr error
}

func newMemoryRepository(existing ...*domain.Crossword) *memoryRepository {
	r := &memoryRepository{records: make(map[int64]*domain.Crossword)}
	for _, c := range existing {
		r.records[c.PublishedDate] = c
	}
	return r
}

func (r *memoryRepository) Create(ctx context.Context, crossword *domain.Crossword) error {
	if err := crossword.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[crossword.PublishedDate]; ok {
		return domain.ErrCrosswordExists
	}
	r.records[crossword.PublishedDate] = crossword
	return nil
}

func (r *memoryRepository) ListPublishedDates(ctx context.Context, from, to int64) ([]int64, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var keys []int64
	for key := range r.records {
		if key >= from && key <= to {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (r *memoryRepository) ListAll(ctx context.Context) ([]*domain.Crossword, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domain.Crossword, 0, len(r.records))
	for _, c := range r.records {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].PublishedDate > all[j].PublishedDate })
	return all, nil
}

func (r *memoryRepository) Ping(ctx context.Context) error {
	return r.listErr
}

func (r *memoryRepository) get(day time.Time) *domain.Crossword {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records[domain.DayKey(day)]
}

func (r *memoryRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type fakeForum struct {
	token      string
	tokenErr   error
	threads    map[string][]domain.Thread
	searchErr  error
	tokenCalls int
	queries    []string
}

func (f *fakeForum) AccessToken(ctx context.Context) (string, error) {
	f.tokenCalls++
	return f.token, f.tokenErr
}

func (f *fakeForum) SearchThreads(ctx context.Context, accessToken, query string) ([]domain.Thread, error) {
	f.queries = append(f.queries, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.threads[query], nil
}

type fakeMetadata struct {
	err   error
	calls int
}

func (f *fakeMetadata) FetchMetadata(ctx context.Context, day time.Time) (domain.PuzzleMetadata, error) {
	f.calls++
	if f.err != nil {
		return domain.PuzzleMetadata{}, f.err
	}
	return domain.PuzzleMetadata{Author: "Author " + domain.DateString(day), Editor: "Will Shortz"}, nil
}

type recordingMetrics struct {
	days   map[ports.DayOutcome]int
	runs   int
	runErr error
}

func (m *recordingMetrics) ObserveDay(outcome ports.DayOutcome) {
	if m.days == nil {
		m.days = make(map[ports.DayOutcome]int)
	}
	m.days[outcome]++
}

func (m *recordingMetrics) ObserveRun(report *ports.RunReport, err error) {
	m.runs++
	m.runErr = err
}

func count(n int64) *int64 {
	return &n
}

func qualityOptions(excellent, good, average, poor, terrible, noVote int64) []domain.PollOption {
	return []domain.PollOption{
		{ID: "1", Text: OptionExcellent, VoteCount: count(excellent)},
		{ID: "2", Text: OptionGood, VoteCount: count(good)},
		{ID: "3", Text: OptionAverage, VoteCount: count(average)},
		{ID: "4", Text: OptionPoor, VoteCount: count(poor)},
		{ID: "5", Text: OptionTerrible, VoteCount: count(terrible)},
		{ID: "6", Text: OptionNoVote, VoteCount: count(noVote)},
	}
}

func discussionThread(day time.Time, votingEnd time.Time, options []domain.PollOption) domain.Thread {
	return domain.Thread{
		Author: "AutoModerator",
		Title:  "NYT Monday " + domain.DateString(day) + " Discussion",
		URL:    "https://www.reddit.com/r/crossword/comments/" + domain.DateString(day),
		Poll: &domain.PollData{
			VotingEndTimestamp: votingEnd.UnixMilli(),
			Options:            options,
		},
	}
}
