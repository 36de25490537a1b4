package cucumber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/cli"
	"github.com/kenneds6/LLM-cognitive-flexibility/internal/runner"
)

type featureState struct {
	workDir     string
	configPath  string
	previousWD  string
	stdout      bytes.Buffer
	stderr      bytes.Buffer
	exitCode    int
	initialized bool
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a workspace with a valid configuration$`, state.aWorkspaceWithValidConfig)
	ctx.Step(`^the config is invalid$`, state.theConfigIsInvalid)
	ctx.Step(`^a recorded run with results$`, state.aRecordedRun)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
	ctx.Step(`^the output contains "([^"]+)"$`, state.theOutputContains)
	ctx.Step(`^the exit code is zero$`, state.theExitCodeIsZero)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the error message points to the invalid field$`, state.theErrorMessagePointsToInvalidField)
	ctx.Step(`^a report file exists for the run$`, state.aReportFileExists)
}

func (s *featureState) reset() {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.initialized = false
}

func (s *featureState) cleanup() {
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
	}
	if s.workDir != "" {
		_ = os.RemoveAll(s.workDir)
	}
}

func (s *featureState) aWorkspaceWithValidConfig() error {
	if s.initialized {
		return nil
	}
	dir, err := os.MkdirTemp("", "cogflex-feature-*")
	if err != nil {
		return fmt.Errorf("create temp workspace: %w", err)
	}
	s.workDir = dir
	s.configPath = filepath.Join(dir, ".cogflex.yml")

	if err := s.writeConfig(validConfigYAML()); err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working dir: %w", err)
	}
	s.previousWD = wd
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	s.initialized = true
	return nil
}

func (s *featureState) theConfigIsInvalid() error {
	if err := s.aWorkspaceWithValidConfig(); err != nil {
		return err
	}
	return s.writeConfig(invalidConfigYAML())
}

func (s *featureState) aRecordedRun() error {
	if err := s.aWorkspaceWithValidConfig(); err != nil {
		return err
	}
	runID := "20250101T000000Z-abcdef123456"
	runDir := filepath.Join(s.workDir, "results", runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return fmt.Errorf("create run dir: %w", err)
	}

	type evaluation struct {
		Evaluation int     `json:"evaluation"`
		Accuracy   float64 `json:"accuracy"`
		Score      int     `json:"score"`
		Trials     int     `json:"trials"`
	}
	evaluations := []evaluation{
		{Evaluation: 1, Accuracy: 0.6, Score: 6, Trials: 10},
		{Evaluation: 2, Accuracy: 0.8, Score: 8, Trials: 10},
	}
	flat, err := json.Marshal(evaluations)
	if err != nil {
		return fmt.Errorf("marshal evaluations: %w", err)
	}
	flatPath := filepath.Join(runDir, "wcst_gpt-4_"+runID+".json")
	if err := os.WriteFile(flatPath, flat, 0o644); err != nil {
		return fmt.Errorf("write flat results: %w", err)
	}

	results := runner.Results{
		RunID: runID,
		Experiments: []runner.ExperimentResult{
			{
				ExperimentID: "wcst-standard",
				Type:         "wcst",
				ModelID:      "gpt-4",
				Model:        "gpt-4",
				SwitchAfter:  6,
				Status:       runner.StatusCompleted,
				Evaluations: []runner.EvaluationResult{
					{Evaluation: 1, Accuracy: 0.6, Score: 6, Trials: 10},
					{Evaluation: 2, Accuracy: 0.8, Score: 8, Trials: 10},
				},
			},
		},
	}
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(filepath.Join(runDir, "results.json"), payload, 0o644); err != nil {
		return fmt.Errorf("write results.json: %w", err)
	}
	return nil
}

func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "cogflex" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			command := strings.TrimSpace(cell.Value)
			if command == "" {
				continue
			}
			if !strings.Contains(output, command) {
				return fmt.Errorf("expected command %q in output", command)
			}
		}
	}
	return nil
}

func (s *featureState) theOutputContains(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("expected %q in output, got %q", text, s.stdout.String())
	}
	return nil
}

func (s *featureState) theExitCodeIsZero() error {
	if s.exitCode != 0 {
		return fmt.Errorf("expected zero exit code, got %d (stderr: %s)", s.exitCode, s.stderr.String())
	}
	return nil
}

func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected non-zero exit code")
	}
	return nil
}

func (s *featureState) theErrorMessagePointsToInvalidField() error {
	errOutput := s.stderr.String()
	if !strings.Contains(errOutput, "version") {
		return fmt.Errorf("expected error to mention version, got %q", errOutput)
	}
	return nil
}

func (s *featureState) aReportFileExists() error {
	runDir := filepath.Join(s.workDir, "results", "20250101T000000Z-abcdef123456")
	reportPath := filepath.Join(runDir, "report.html")
	info, err := os.Stat(reportPath)
	if err != nil {
		return fmt.Errorf("report not found: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("report path is a directory")
	}
	return nil
}

func (s *featureState) writeConfig(contents string) error {
	if s.configPath == "" {
		return fmt.Errorf("config path is not set")
	}
	if err := os.WriteFile(s.configPath, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func validConfigYAML() string {
	return `version: 1
output_dir: "./results"

models:
  - id: gpt-4
    provider: "openai"
    model: "gpt-4"
    temperature: 0.7

default_model: "gpt-4"

experiments:
  - id: wcst-standard
    type: wcst
    evaluations: 2
    trials: 5
`
}

func invalidConfigYAML() string {
	return `version: 2
output_dir: "./results"

models:
  - id: gpt-4
    provider: "openai"
    model: "gpt-4"

default_model: "gpt-4"

experiments:
  - id: wcst-standard
    type: wcst
`
}
