package live

import "github.com/kenneds6/LLM-cognitive-flexibility/internal/runner"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventExperimentStart signals the start of an experiment.
	EventExperimentStart
	// EventTrial delivers a trial status update.
	EventTrial
	// EventExperimentEnd signals experiment completion.
	EventExperimentEnd
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind             EventKind
	RunID            string
	ExperimentID     string
	ExperimentType   string
	ModelID          string
	Model            string
	Evaluations      int
	ExperimentStatus string
	ExperimentError  string
	Trial            runner.TrialEvent
}
