package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// flatEvaluation is the historical per-experiment record layout consumed by
// the stats command.
type flatEvaluation struct {
	Evaluation int     `json:"evaluation"`
	Accuracy   float64 `json:"accuracy"`
	Score      int     `json:"score"`
	Trials     int     `json:"trials"`
}

// WriteRunOutputs writes results.json, the flat per-experiment files, and the
// conversation transcripts under the run directory.
func WriteRunOutputs(results Results, outputDir string) (OutputPaths, error) {
	if outputDir == "" {
		return OutputPaths{}, fmt.Errorf("output directory is required")
	}
	paths, err := NewOutputPaths(outputDir, results.RunID)
	if err != nil {
		return OutputPaths{}, err
	}
	if err := os.MkdirAll(paths.RunDir(), 0o755); err != nil {
		return OutputPaths{}, fmt.Errorf("create output dir: %w", err)
	}
	if err := writeJSON(paths.ResultsPath(), results); err != nil {
		return OutputPaths{}, err
	}
	for _, experiment := range results.Experiments {
		flat := make([]flatEvaluation, 0, len(experiment.Evaluations))
		for _, evaluation := range experiment.Evaluations {
			flat = append(flat, flatEvaluation{
				Evaluation: evaluation.Evaluation,
				Accuracy:   evaluation.Accuracy,
				Score:      evaluation.Score,
				Trials:     evaluation.Trials,
			})
		}
		if err := writeJSON(paths.ExperimentPath(experiment.Type, experiment.ModelID), flat); err != nil {
			return OutputPaths{}, err
		}
	}
	if err := os.MkdirAll(paths.LogsDir(), 0o755); err != nil {
		return OutputPaths{}, fmt.Errorf("create logs dir: %w", err)
	}
	if err := writeTranscripts(paths.LogsDir(), results); err != nil {
		return OutputPaths{}, err
	}
	return paths, nil
}

// writeJSON writes a payload as pretty JSON.
func writeJSON(path string, payload any) error {
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeTranscripts writes one plain-text log per experiment with every
// stimulus, reply, and verdict.
func writeTranscripts(logsDir string, results Results) error {
	for _, experiment := range results.Experiments {
		var builder strings.Builder
		fmt.Fprintf(&builder, "experiment: %s\ntype: %s\nmodel: %s\n", experiment.ExperimentID, experiment.Type, experiment.Model)
		if experiment.Rule != "" {
			fmt.Fprintf(&builder, "rule: %s\n", experiment.Rule)
		}
		for _, evaluation := range experiment.Evaluations {
			fmt.Fprintf(&builder, "\n--- evaluation %d ---\n", evaluation.Evaluation)
			for _, record := range evaluation.Records {
				fmt.Fprintf(&builder, "trial %d: %s\n", record.Trial, record.Stimulus)
				for i, option := range record.Options {
					fmt.Fprintf(&builder, "  option %d: %s\n", i+1, option)
				}
				fmt.Fprintf(&builder, "  reply: %s\n", record.Reply)
				switch {
				case record.ParseError != "":
					fmt.Fprintf(&builder, "  verdict: parse error (%s)\n", record.ParseError)
				case record.Correct:
					fmt.Fprintf(&builder, "  verdict: correct\n")
				default:
					fmt.Fprintf(&builder, "  verdict: incorrect\n")
				}
			}
			fmt.Fprintf(&builder, "accuracy: %.4f score: %d trials: %d\n",
				evaluation.Accuracy, evaluation.Score, evaluation.Trials)
		}
		path := filepath.Join(logsDir, sanitizeFileComponent(experiment.ExperimentID)+".log")
		if err := os.WriteFile(path, []byte(builder.String()), 0o644); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}
	}
	return nil
}
