package config

import (
	"github.com/kenneds6/LLM-cognitive-flexibility/internal/spec"
)

// validConfig returns a minimal config used by validation tests.
func validConfig() spec.Config {
	return spec.Config{
		Version:   1,
		OutputDir: "./results",
		Models: []spec.ModelConfig{
			{
				ID:          "gpt-4",
				Provider:    "openai",
				Model:       "gpt-4",
				Temperature: 0.7,
				MaxTokens:   100,
			},
		},
		DefaultModel: "gpt-4",
		Experiments: []spec.ExperimentConfig{
			{
				ID:                    "wcst-standard",
				Type:                  "wcst",
				Model:                 "gpt-4",
				Evaluations:           8,
				Trials:                25,
				SuccessesBeforeSwitch: 6,
			},
		},
	}
}
