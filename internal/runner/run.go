package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/model"
	"github.com/kenneds6/LLM-cognitive-flexibility/internal/pacing"
	"github.com/kenneds6/LLM-cognitive-flexibility/internal/spec"
)

// ProviderFactory builds a provider for a configured model.
type ProviderFactory func(modelConfig spec.ModelConfig) (model.Provider, error)

// RunDependencies holds injectable collaborators for a run.
type RunDependencies struct {
	ProviderFactory ProviderFactory
	RunID           func() (string, error)
	Now             func() time.Time
	Limiter         pacing.Limiter
	Observer        RunObserver
	Seed            func() int64
}

// RunParams describes a single invocation of the run command.
type RunParams struct {
	OutputDir     string
	ModelOverride string
	APIKey        string
	Selectors     []ExperimentSelector
	Verbose       bool
	VerboseWriter io.Writer
	NoColor       bool
	Deps          RunDependencies
}

// Run executes the selected experiments and returns the collected results.
// Experiment-level failures are recorded in the results rather than aborting
// the run; only context cancellation stops it early.
func Run(ctx context.Context, cfg spec.Config, params RunParams) (Results, error) {
	runID, err := ensureRunID(params.Deps.RunID)
	if err != nil {
		return Results{}, err
	}
	now := params.Deps.Now
	if now == nil {
		now = time.Now
	}
	params.Deps.Now = now
	startedAt := now()

	experimentRuns, err := planExperimentRuns(cfg, params.Selectors, params.ModelOverride)
	if err != nil {
		return Results{}, err
	}

	providerFactory := params.Deps.ProviderFactory
	if providerFactory == nil {
		providerFactory = DefaultProviderFactory(params.APIKey)
	}
	limiter := params.Deps.Limiter
	if limiter == nil {
		limiter = pacing.FromConfig(cfg.Pacing)
	}
	observer := params.Deps.Observer
	if observer == nil {
		observer = NopObserver{}
	}
	seed := params.Deps.Seed
	if seed == nil {
		seed = func() int64 { return now().UnixNano() }
	}

	observer.OnRunStart(runID)
	logVerbose(params.Verbose, params.VerboseWriter, params.NoColor, styleDefault,
		"run %s: %d experiment(s)", runID, len(experimentRuns))

	experiments := make([]ExperimentResult, 0, len(experimentRuns))
	for _, run := range experimentRuns {
		if ctx.Err() != nil {
			return Results{}, ctx.Err()
		}
		observer.OnExperimentStart(run.Experiment.ID, run.Experiment.Type, run.Model.ID, run.Model.Model, run.Experiment.Evaluations)
		logVerbose(params.Verbose, params.VerboseWriter, params.NoColor, styleExperiment,
			"experiment %s (%s) on %s", run.Experiment.ID, run.Experiment.Type, run.Model.ID)

		result := runExperiment(ctx, run, providerFactory, limiter, observer, seed, params)

		observer.OnExperimentEnd(result.ExperimentID, result.Status, result.Error)
		if result.Status == StatusCompleted {
			logVerbose(params.Verbose, params.VerboseWriter, params.NoColor, styleMetrics,
				"experiment %s: mean accuracy %.4f over %d evaluation(s)",
				result.ExperimentID, result.Summary.MeanAccuracy, result.Summary.Evaluations)
		} else {
			logVerbose(params.Verbose, params.VerboseWriter, params.NoColor, styleError,
				"experiment %s failed: %s", result.ExperimentID, result.Error)
		}
		experiments = append(experiments, result)
	}

	finishedAt := now()
	results := Results{
		RunID:       runID,
		StartedAt:   startedAt,
		FinishedAt:  finishedAt,
		Experiments: experiments,
		Summary:     summarize(experiments),
	}
	observer.OnRunEnd(results)
	return results, nil
}

// RunAndWrite executes the run and persists its outputs.
func RunAndWrite(ctx context.Context, cfg spec.Config, params RunParams) (Results, OutputPaths, error) {
	results, err := Run(ctx, cfg, params)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}
	outputDir := params.OutputDir
	if strings.TrimSpace(outputDir) == "" {
		outputDir = cfg.OutputDir
	}
	paths, err := WriteRunOutputs(results, outputDir)
	if err != nil {
		return results, OutputPaths{}, err
	}
	return results, paths, nil
}

// experimentRun pairs an experiment with its resolved model.
type experimentRun struct {
	Experiment spec.ExperimentConfig
	Model      spec.ModelConfig
}

// planExperimentRuns resolves selectors and model overrides against the
// configuration, preserving configuration order.
func planExperimentRuns(cfg spec.Config, selectors []ExperimentSelector, modelOverride string) ([]experimentRun, error) {
	if err := ValidateSelectors(cfg, selectors); err != nil {
		return nil, err
	}
	modelByID := make(map[string]spec.ModelConfig, len(cfg.Models))
	for _, modelConfig := range cfg.Models {
		modelByID[modelConfig.ID] = modelConfig
	}

	selectedModel := map[string]string{}
	selected := map[string]bool{}
	for _, selector := range selectors {
		selected[selector.ExperimentID] = true
		if selector.ModelID != "" {
			selectedModel[selector.ExperimentID] = selector.ModelID
		}
	}

	runs := make([]experimentRun, 0, len(cfg.Experiments))
	for _, experiment := range cfg.Experiments {
		if len(selectors) > 0 && !selected[experiment.ID] {
			continue
		}
		modelID := modelOverride
		if modelID == "" {
			if selectorModel, ok := selectedModel[experiment.ID]; ok {
				modelID = selectorModel
			} else {
				modelID = experiment.Model
			}
		}
		modelConfig, ok := modelByID[modelID]
		if !ok {
			return nil, fmt.Errorf("unknown model id %q", modelID)
		}
		runs = append(runs, experimentRun{Experiment: experiment, Model: modelConfig})
	}
	return runs, nil
}

// runExperiment dispatches on experiment type.
func runExperiment(
	ctx context.Context,
	run experimentRun,
	providerFactory ProviderFactory,
	limiter pacing.Limiter,
	observer RunObserver,
	seed func() int64,
	params RunParams,
) ExperimentResult {
	result := ExperimentResult{
		ExperimentID: run.Experiment.ID,
		Type:         run.Experiment.Type,
		ModelID:      run.Model.ID,
		Model:        run.Model.Model,
		Rule:         run.Experiment.Rule,
		SwitchAfter:  run.Experiment.SuccessesBeforeSwitch,
	}

	provider, err := providerFactory(run.Model)
	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		return result
	}

	task := experimentTask{
		run:      run,
		provider: provider,
		limiter:  limiter,
		observer: observer,
		seed:     seed,
		params:   params,
	}

	var evaluations []EvaluationResult
	switch run.Experiment.Type {
	case "wcst", "wcst_component":
		evaluations, err = task.runWCST(ctx)
	case "lnt", "lnt_component":
		evaluations, err = task.runLNT(ctx)
	default:
		err = fmt.Errorf("unsupported experiment type %q", run.Experiment.Type)
	}

	result.Evaluations = evaluations
	result.Summary = summarizeExperiment(evaluations)
	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		return result
	}
	result.Status = StatusCompleted
	return result
}

// experimentTask carries shared state across the evaluations of one experiment.
type experimentTask struct {
	run      experimentRun
	provider model.Provider
	limiter  pacing.Limiter
	observer RunObserver
	seed     func() int64
	params   RunParams
}

// evaluationSeed derives a per-evaluation seed. Configured seeds make reruns
// reproducible; otherwise each evaluation gets a fresh one.
func (t experimentTask) evaluationSeed(evaluation int) int64 {
	if t.run.Experiment.Seed != 0 {
		return t.run.Experiment.Seed + int64(evaluation)
	}
	return t.seed()
}

// DefaultProviderFactory builds providers with keys from the environment,
// unless an explicit key overrides them.
func DefaultProviderFactory(apiKey string) ProviderFactory {
	return func(modelConfig spec.ModelConfig) (model.Provider, error) {
		key := strings.TrimSpace(apiKey)
		if key == "" {
			key = strings.TrimSpace(os.Getenv(apiKeyEnvVar(modelConfig.Provider)))
		}
		if key == "" {
			return nil, fmt.Errorf("no api key for provider %q: set %s or pass --api-key", modelConfig.Provider, apiKeyEnvVar(modelConfig.Provider))
		}
		return model.FromConfig(modelConfig, key, nil)
	}
}

// apiKeyEnvVar maps a provider to its key environment variable.
func apiKeyEnvVar(provider string) string {
	switch provider {
	case "deepinfra":
		return "DEEPINFRA_API_KEY"
	case "gemini":
		return "GEMINI_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

// ensureRunID uses the provided generator or falls back to NewRunID.
func ensureRunID(generator func() (string, error)) (string, error) {
	if generator != nil {
		return generator()
	}
	return NewRunID()
}
