package live

import (
	"time"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/runner"
)

// TrialRow holds UI state for a single trial of the current evaluation.
type TrialRow struct {
	Index      int
	Stimulus   string
	Status     runner.TrialEventType
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// StatusCounts aggregates trial counts by status bucket.
type StatusCounts struct {
	Running      int
	Parsing      int
	Done         int
	Correct      int
	Incorrect    int
	ParseError   int
	RuntimeError int
}

// State captures the live UI state for a run.
type State struct {
	RunID          string
	ExperimentID   string
	ExperimentType string
	ModelID        string
	Model          string
	Evaluations    int
	Evaluation     int
	Switches       int
	StartedAt      time.Time
	LastEvent      string
	Rows           []TrialRow
	Counts         StatusCounts
}
