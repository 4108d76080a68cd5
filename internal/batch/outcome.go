package batch

import (
	"time"

	"spool/internal/manifest"
)

// Status is the terminal state of one job.
type Status int

const (
	StatusSucceeded Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// ReasonCancelled is the skip reason recorded for jobs overtaken by
// run cancellation.
const ReasonCancelled = "cancelled"

// Outcome is the terminal result of one job. Err is set only for
// failures; Reason only for skips.
type Outcome struct {
	Job     manifest.Job
	Status  Status
	Reason  string
	Err     error
	Elapsed time.Duration
}

// Summary aggregates a finished run. It is finalized when the last
// outcome arrives and never mutated afterwards.
type Summary struct {
	RunID    string
	Started  time.Time
	Elapsed  time.Duration
	Outcomes []Outcome
}

// Counts tallies outcomes by terminal status.
func (s *Summary) Counts() (succeeded, skipped, failed int) {
	for _, outcome := range s.Outcomes {
		switch outcome.Status {
		case StatusSucceeded:
			succeeded++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return succeeded, skipped, failed
}

// NonSuccesses returns every skipped or failed outcome with enough
// context (manifest, line, identifier) to fix the manifest and re-run.
func (s *Summary) NonSuccesses() []Outcome {
	var out []Outcome
	for _, outcome := range s.Outcomes {
		if outcome.Status != StatusSucceeded {
			out = append(out, outcome)
		}
	}
	return out
}
