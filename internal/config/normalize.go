package config

import "github.com/kenneds6/LLM-cognitive-flexibility/internal/spec"

// Defaults applied during normalization.
const (
	DefaultEvaluations           = 8
	DefaultTrials                = 25
	DefaultSuccessesBeforeSwitch = 6
	DefaultMaxTokens             = 100
	DefaultRetryAttempts         = 3
	DefaultRetryDelayMs          = 1000
)

func Normalize(cfg *spec.Config) {
	if cfg.DefaultModel == "" && len(cfg.Models) == 1 {
		cfg.DefaultModel = cfg.Models[0].ID
	}
	for i := range cfg.Models {
		if cfg.Models[i].MaxTokens == 0 {
			cfg.Models[i].MaxTokens = DefaultMaxTokens
		}
		if cfg.Models[i].RetryAttempts == 0 {
			cfg.Models[i].RetryAttempts = DefaultRetryAttempts
		}
		if cfg.Models[i].RetryDelayMs == 0 {
			cfg.Models[i].RetryDelayMs = DefaultRetryDelayMs
		}
	}
	for i := range cfg.Experiments {
		if cfg.Experiments[i].Model == "" {
			cfg.Experiments[i].Model = cfg.DefaultModel
		}
		if cfg.Experiments[i].Evaluations == 0 {
			cfg.Experiments[i].Evaluations = DefaultEvaluations
		}
		if cfg.Experiments[i].Trials == 0 {
			cfg.Experiments[i].Trials = DefaultTrials
		}
		if cfg.Experiments[i].SuccessesBeforeSwitch == 0 {
			cfg.Experiments[i].SuccessesBeforeSwitch = DefaultSuccessesBeforeSwitch
		}
	}
}
