package runner

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputPaths describes filesystem locations for run outputs.
type OutputPaths struct {
	Root  string
	RunID string
}

// NewOutputPaths validates and constructs output paths metadata.
func NewOutputPaths(root, runID string) (OutputPaths, error) {
	if strings.TrimSpace(root) == "" {
		return OutputPaths{}, fmt.Errorf("output root is empty")
	}
	if strings.TrimSpace(runID) == "" {
		return OutputPaths{}, fmt.Errorf("run ID is empty")
	}
	return OutputPaths{
		Root:  root,
		RunID: runID,
	}, nil
}

// RunDir returns the directory for a specific run.
func (o OutputPaths) RunDir() string {
	return filepath.Join(o.Root, o.RunID)
}

// ResultsPath returns the path to results.json.
func (o OutputPaths) ResultsPath() string {
	return filepath.Join(o.RunDir(), "results.json")
}

// ExperimentPath returns the flat per-experiment results file, named so that
// historical runs of the same experiment and model sort together.
func (o OutputPaths) ExperimentPath(experimentType, modelID string) string {
	name := fmt.Sprintf("%s_%s_%s.json", experimentType, sanitizeFileComponent(modelID), o.RunID)
	return filepath.Join(o.RunDir(), name)
}

// ReportPath returns the path to the HTML report.
func (o OutputPaths) ReportPath() string {
	return filepath.Join(o.RunDir(), "report.html")
}

// LogsDir returns the path for conversation transcripts.
func (o OutputPaths) LogsDir() string {
	return filepath.Join(o.RunDir(), "logs")
}

// sanitizeFileComponent replaces path separators in model names such as
// "meta-llama/Llama-3-70b".
func sanitizeFileComponent(value string) string {
	value = strings.ReplaceAll(value, string(filepath.Separator), "-")
	return strings.ReplaceAll(value, "/", "-")
}
