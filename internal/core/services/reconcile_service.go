package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/crosswordpolls/internal/core/domain"
	"github.com/vncsmyrnk/crosswordpolls/internal/core/ports"
)

// ReconcileDeps wires the collaborators of the reconciliation run.
type ReconcileDeps struct {
	Repository       ports.CrosswordRepository
	Forum            ports.ForumClient
	Metadata         ports.MetadataFetcher
	Metrics          ports.ReconcileMetrics
	Logger           *slog.Logger
	FirstPollDate    time.Time
	PollDurationDays int
	TrustedAuthors   []string
	Clock            func() time.Time
}

type reconcileService struct {
	repo             ports.CrosswordRepository
	forum            ports.ForumClient
	metadata         ports.MetadataFetcher
	locator          *Locator
	metrics          ports.ReconcileMetrics
	logger           *slog.Logger
	firstPollDate    time.Time
	pollDurationDays int
	clock            func() time.Time
}

func NewReconcileService(deps ReconcileDeps) ports.ReconcileService {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Metrics == nil {
		deps.Metrics = noopMetrics{}
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	return &reconcileService{
		repo:             deps.Repository,
		forum:            deps.Forum,
		metadata:         deps.Metadata,
		locator:          NewLocator(deps.Forum, deps.TrustedAuthors, deps.PollDurationDays),
		metrics:          deps.Metrics,
		logger:           deps.Logger,
		firstPollDate:    deps.FirstPollDate,
		pollDurationDays: deps.PollDurationDays,
		clock:            deps.Clock,
	}
}

// Reconcile fills in every missing day it can resolve. Day-level failures are
// logged and counted in the report; only failing to list stored days or to
// authenticate against the forum aborts the run.
func (s *reconcileService) Reconcile(ctx context.Context) (report *ports.RunReport, err error) {
	now := s.clock().UTC()
	report = &ports.RunReport{
		RunID:    uuid.NewString(),
		Now:      now,
		Outcomes: make(map[ports.DayOutcome]int),
	}
	defer func() { s.metrics.ObserveRun(report, err) }()

	logger := s.logger.With("run_id", report.RunID)

	days, err := MissingDays(ctx, s.repo, s.firstPollDate, s.pollDurationDays, now)
	if err != nil {
		return report, fmt.Errorf("failed to compute missing days: %w", err)
	}
	report.Missing = len(days)
	logger.Info("missing days computed", "count", len(days))
	if len(days) == 0 {
		return report, nil
	}

	accessToken, err := s.forum.AccessToken(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to obtain forum access token: %w", err)
	}

	for _, day := range days {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		outcome := s.reconcileDay(ctx, logger.With("date", domain.DateString(day)), accessToken, day, now)
		report.Outcomes[outcome]++
		s.metrics.ObserveDay(outcome)
	}

	logger.Info("reconciliation finished", "missing", report.Missing, "resolved", report.Resolved())
	return report, nil
}

func (s *reconcileService) reconcileDay(ctx context.Context, logger *slog.Logger, accessToken string, day, now time.Time) ports.DayOutcome {
	thread, resolution, err := s.locator.Locate(ctx, accessToken, day, now)
	if err != nil {
		logger.Error("failed to locate discussion thread", "error", err)
		return ports.OutcomeFailed
	}

	switch resolution {
	case ResolutionPending:
		logger.Info("discussion thread not found yet")
		return ports.OutcomePendingThread
	case ResolutionAbsent:
		return s.store(ctx, logger, day, ports.OutcomeRecordedEmpty, func(meta domain.PuzzleMetadata) *domain.Crossword {
			return domain.NewCrosswordWithoutPoll(day, meta)
		})
	}

	tally, err := TallyPoll(*thread.Poll, now)
	switch {
	case errors.Is(err, domain.ErrVotingOpen):
		logger.Info("poll voting still open", "voting_end", thread.Poll.VotingEnd())
		return ports.OutcomePendingPoll
	case errors.Is(err, domain.ErrInvalidPoll):
		logger.Warn("poll rejected", "url", thread.URL, "error", err)
		return ports.OutcomeInvalidPoll
	case err != nil:
		logger.Error("failed to tally poll", "error", err)
		return ports.OutcomeFailed
	}

	return s.store(ctx, logger, day, ports.OutcomeRecorded, func(meta domain.PuzzleMetadata) *domain.Crossword {
		return domain.NewCrosswordWithPoll(day, meta, thread.URL, tally)
	})
}

func (s *reconcileService) store(ctx context.Context, logger *slog.Logger, day time.Time, outcome ports.DayOutcome, build func(domain.PuzzleMetadata) *domain.Crossword) ports.DayOutcome {
	meta, err := s.metadata.FetchMetadata(ctx, day)
	if err != nil {
		logger.Error("failed to fetch puzzle metadata", "error", err)
		return ports.OutcomeFailed
	}

	crossword := build(meta)
	if err := s.repo.Create(ctx, crossword); err != nil {
		if errors.Is(err, domain.ErrCrosswordExists) {
			logger.Warn("crossword recorded concurrently, skipping")
			return ports.OutcomeAlreadyStored
		}
		logger.Error("failed to store crossword", "error", err)
		return ports.OutcomeFailed
	}

	attrs := []any{"poll_exists", crossword.PollExists, "author", crossword.Author}
	if crossword.PollExists {
		attrs = append(attrs, "votes", *crossword.Votes, "average_rating", *crossword.AverageRating)
	}
	logger.Info("inserted crossword", attrs...)
	return outcome
}

type noopMetrics struct{}

func (noopMetrics) ObserveDay(ports.DayOutcome) {}
func (noopMetrics) ObserveRun(*ports.RunReport, error) {}
