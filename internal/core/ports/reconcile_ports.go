package ports

import (
	"context"
	"time"
)

// DayOutcome is the terminal state of one missing day within a run.
type DayOutcome string

const (
	OutcomeRecorded      DayOutcome = "recorded"
	OutcomeRecordedEmpty DayOutcome = "recorded_without_poll"
	OutcomePendingPoll   DayOutcome = "pending_poll"
	OutcomePendingThread DayOutcome = "pending_thread"
	OutcomeInvalidPoll   DayOutcome = "invalid_poll"
	OutcomeAlreadyStored DayOutcome = "already_stored"
	OutcomeFailed        DayOutcome = "failed"
)

type RunReport struct {
	RunID    string
	Now      time.Time
	Missing  int
	Outcomes map[DayOutcome]int
}

// Resolved counts the days that have a record after the run.
func (r *RunReport) Resolved() int {
	return r.Outcomes[OutcomeRecorded] + r.Outcomes[OutcomeRecordedEmpty] + r.Outcomes[OutcomeAlreadyStored]
}

type ReconcileService interface {
	Reconcile(ctx context.Context) (*RunReport, error)
}

// ReconcileMetrics receives one observation per processed day and per run.
type ReconcileMetrics interface {
	ObserveDay(outcome DayOutcome)
	ObserveRun(report *RunReport, err error)
}
