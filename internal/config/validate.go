package config

import (
	"fmt"
	"strings"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/spec"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// supportedProviders lists accepted model providers.
var supportedProviders = map[string]struct{}{
	"openai":    {},
	"deepinfra": {},
	"gemini":    {},
}

// experimentRules lists the rules valid for each component experiment type.
var experimentRules = map[string][]string{
	"wcst_component": {"shape", "color", "number"},
	"lnt_component":  {"letter", "number"},
}

// Validate checks a config for correctness.
func Validate(cfg *spec.Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if strings.TrimSpace(cfg.OutputDir) == "" {
		add("output_dir", "is required")
	}

	modelIDs := validateModels(cfg, add)

	defaultModel := strings.TrimSpace(cfg.DefaultModel)
	if defaultModel == "" {
		add("default_model", "is required")
	} else if _, ok := modelIDs[defaultModel]; !ok {
		add("default_model", fmt.Sprintf("unknown model %q", defaultModel))
	}

	if cfg.Pacing.RequestsPerMinute < 0 {
		add("pacing.requests_per_minute", "must be >= 0")
	}

	validateExperiments(cfg, modelIDs, add)

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// validateModels checks model entries and returns the set of model IDs.
func validateModels(cfg *spec.Config, add func(field, message string)) map[string]struct{} {
	modelIDs := map[string]struct{}{}
	if len(cfg.Models) == 0 {
		add("models", "at least one model is required")
	}
	for i, model := range cfg.Models {
		fieldPrefix := fmt.Sprintf("models[%d]", i)
		id := strings.TrimSpace(model.ID)
		if id == "" {
			add(fieldPrefix+".id", "is required")
		} else if _, exists := modelIDs[id]; exists {
			add("models.id", fmt.Sprintf("duplicate id %q", id))
		} else {
			modelIDs[id] = struct{}{}
		}
		provider := strings.TrimSpace(model.Provider)
		if provider == "" {
			add(fieldPrefix+".provider", "is required")
		} else if _, ok := supportedProviders[provider]; !ok {
			add(fieldPrefix+".provider", fmt.Sprintf("unsupported provider %q", model.Provider))
		}
		if strings.TrimSpace(model.Model) == "" {
			add(fieldPrefix+".model", "is required")
		}
		if model.Temperature < 0 || model.Temperature > 2 {
			add(fieldPrefix+".temperature", "must be between 0 and 2")
		}
		if model.MaxTokens < 0 {
			add(fieldPrefix+".max_tokens", "must be >= 0")
		}
		if model.RetryAttempts < 0 {
			add(fieldPrefix+".retry_attempts", "must be >= 0")
		}
		if model.RetryDelayMs < 0 {
			add(fieldPrefix+".retry_delay_ms", "must be >= 0")
		}
	}
	return modelIDs
}

// validateExperiments checks experiment entries against known models and types.
func validateExperiments(cfg *spec.Config, modelIDs map[string]struct{}, add func(field, message string)) {
	experimentIDs := map[string]struct{}{}
	if len(cfg.Experiments) == 0 {
		add("experiments", "at least one experiment is required")
	}
	for i, experiment := range cfg.Experiments {
		fieldPrefix := fmt.Sprintf("experiments[%d]", i)
		id := strings.TrimSpace(experiment.ID)
		if id == "" {
			add(fieldPrefix+".id", "is required")
		} else if _, exists := experimentIDs[id]; exists {
			add("experiments.id", fmt.Sprintf("duplicate id %q", id))
		} else {
			experimentIDs[id] = struct{}{}
		}

		experimentType := strings.TrimSpace(experiment.Type)
		switch experimentType {
		case "wcst", "lnt":
			if strings.TrimSpace(experiment.Rule) != "" {
				add(fieldPrefix+".rule", fmt.Sprintf("must be empty for type %q", experimentType))
			}
		case "wcst_component", "lnt_component":
			rule := strings.TrimSpace(experiment.Rule)
			if rule == "" {
				add(fieldPrefix+".rule", "is required for component experiments")
			} else if !containsString(experimentRules[experimentType], rule) {
				add(fieldPrefix+".rule", fmt.Sprintf("unsupported rule %q for type %q", rule, experimentType))
			}
		case "":
			add(fieldPrefix+".type", "is required")
		default:
			add(fieldPrefix+".type", fmt.Sprintf("unsupported type %q", experiment.Type))
		}

		model := strings.TrimSpace(experiment.Model)
		if model == "" {
			add(fieldPrefix+".model", "is required")
		} else if _, ok := modelIDs[model]; !ok {
			add(fieldPrefix+".model", fmt.Sprintf("unknown model %q", model))
		}
		if experiment.Evaluations < 0 {
			add(fieldPrefix+".evaluations", "must be >= 0")
		}
		if experiment.Trials < 0 {
			add(fieldPrefix+".trials", "must be >= 0")
		}
		if experiment.SuccessesBeforeSwitch < 0 {
			add(fieldPrefix+".successes_before_switch", "must be >= 0")
		}
		if experiment.Seed < 0 {
			add(fieldPrefix+".seed", "must be >= 0")
		}
	}
}

// containsString reports whether values includes target.
func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
