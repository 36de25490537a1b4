package runner

import "time"

// Results is the full output of one run, serialized to results.json.
type Results struct {
	RunID       string             `json:"run_id"`
	StartedAt   time.Time          `json:"started_at"`
	FinishedAt  time.Time          `json:"finished_at"`
	Experiments []ExperimentResult `json:"experiments"`
	Summary     RunSummary         `json:"summary"`
}

// ExperimentResult aggregates the evaluations of one configured experiment.
type ExperimentResult struct {
	ExperimentID string             `json:"experiment_id"`
	Type         string             `json:"type"`
	ModelID      string             `json:"model_id"`
	Model        string             `json:"model"`
	Rule         string             `json:"rule,omitempty"`
	SwitchAfter  int                `json:"successes_before_switch"`
	Status       string             `json:"status"`
	Error        string             `json:"error,omitempty"`
	Evaluations  []EvaluationResult `json:"evaluations"`
	Summary      ExperimentSummary  `json:"summary"`
}

// EvaluationResult is the outcome of one fresh test instance.
type EvaluationResult struct {
	Evaluation int           `json:"evaluation"`
	Accuracy   float64       `json:"accuracy"`
	Score      int           `json:"score"`
	Trials     int           `json:"trials"`
	Switches   int           `json:"switches"`
	Records    []TrialRecord `json:"records,omitempty"`
}

// TrialRecord captures one stimulus-response exchange. Rule is the hidden
// rule or task active when the stimulus was presented.
type TrialRecord struct {
	Trial      int      `json:"trial"`
	Stimulus   string   `json:"stimulus"`
	Options    []string `json:"options,omitempty"`
	Rule       string   `json:"rule,omitempty"`
	Reply      string   `json:"reply"`
	Response   string   `json:"response,omitempty"`
	Correct    bool     `json:"correct"`
	ParseError string   `json:"parse_error,omitempty"`
}

// ExperimentSummary holds accuracy aggregates across evaluations.
type ExperimentSummary struct {
	Evaluations  int     `json:"evaluations"`
	MeanAccuracy float64 `json:"mean_accuracy"`
	MeanScore    float64 `json:"mean_score"`
	TotalTrials  int     `json:"total_trials"`
	ParseErrors  int     `json:"parse_errors"`
}

// RunSummary counts experiment outcomes for the whole run.
type RunSummary struct {
	ExperimentsTotal  int `json:"experiments_total"`
	ExperimentsPassed int `json:"experiments_passed"`
	ExperimentsFailed int `json:"experiments_failed"`
	TrialsTotal       int `json:"trials_total"`
}

// Experiment statuses.
const (
	StatusCompleted = "completed"
	StatusError     = "error"
)

// summarizeExperiment computes per-experiment aggregates.
func summarizeExperiment(evaluations []EvaluationResult) ExperimentSummary {
	summary := ExperimentSummary{Evaluations: len(evaluations)}
	for _, evaluation := range evaluations {
		summary.MeanAccuracy += evaluation.Accuracy
		summary.MeanScore += float64(evaluation.Score)
		summary.TotalTrials += evaluation.Trials
		for _, record := range evaluation.Records {
			if record.ParseError != "" {
				summary.ParseErrors++
			}
		}
	}
	if len(evaluations) > 0 {
		summary.MeanAccuracy /= float64(len(evaluations))
		summary.MeanScore /= float64(len(evaluations))
	}
	return summary
}

// summarize counts outcomes across experiments.
func summarize(experiments []ExperimentResult) RunSummary {
	summary := RunSummary{ExperimentsTotal: len(experiments)}
	for _, experiment := range experiments {
		switch experiment.Status {
		case StatusCompleted:
			summary.ExperimentsPassed++
		default:
			summary.ExperimentsFailed++
		}
		summary.TrialsTotal += experiment.Summary.TotalTrials
	}
	return summary
}
