package runner

import "time"

// TrialEventType identifies a trial status update for observers.
type TrialEventType string

const (
	// TrialRunning marks an active model call.
	TrialRunning TrialEventType = "running"
	// TrialParsing marks parsing the model response.
	TrialParsing TrialEventType = "parsing"
	// TrialCorrect marks a correct answer.
	TrialCorrect TrialEventType = "correct"
	// TrialIncorrect marks an incorrect answer.
	TrialIncorrect TrialEventType = "incorrect"
	// TrialParseError marks a reply the parser could not interpret.
	TrialParseError TrialEventType = "parse_error"
	// TrialRuntimeError marks a provider or transport failure.
	TrialRuntimeError TrialEventType = "runtime_error"
	// TrialRuleSwitch marks a hidden rule change after a streak.
	TrialRuleSwitch TrialEventType = "rule_switch"
)

// TrialEvent carries a single status update for a trial.
type TrialEvent struct {
	ExperimentID string
	Evaluation   int
	Trial        int
	Stimulus     string
	Type         TrialEventType
	Reply        string
	Error        string
	EmittedAt    time.Time
}

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run.
	OnRunStart(runID string)
	// OnExperimentStart signals the start of an experiment.
	OnExperimentStart(experimentID string, experimentType string, modelID string, model string, evaluations int)
	// OnTrialEvent delivers a trial status update.
	OnTrialEvent(event TrialEvent)
	// OnExperimentEnd signals experiment completion.
	OnExperimentEnd(experimentID string, status string, err string)
	// OnRunEnd signals run completion.
	OnRunEnd(results Results)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) OnRunStart(string)                                     {}
func (NopObserver) OnExperimentStart(string, string, string, string, int) {}
func (NopObserver) OnTrialEvent(TrialEvent)                               {}
func (NopObserver) OnExperimentEnd(string, string, string)                {}
func (NopObserver) OnRunEnd(Results)                                      {}
