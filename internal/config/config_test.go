package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/spec"
)

func TestValidateAcceptsValidConfig(t *testing.T) {
	cfg := validConfig()
	if err := Validate(&cfg); err != nil {
		t.Fatalf("expected config to validate, got %v", err)
	}
}

func TestValidateDetectsDuplicateModelIDs(t *testing.T) {
	cfg := validConfig()
	cfg.Models = append(cfg.Models, cfg.Models[0])

	err := Validate(&cfg)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(validationErr.Issues) == 0 {
		t.Fatalf("expected issues, got none")
	}
}

func TestValidateMissingOutputDir(t *testing.T) {
	cfg := validConfig()
	cfg.OutputDir = ""

	err := Validate(&cfg)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "output_dir") {
		t.Fatalf("expected output_dir issue, got %q", err.Error())
	}
}

func TestValidateUnsupportedProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Models[0].Provider = "anthropic"

	err := Validate(&cfg)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "unsupported provider") {
		t.Fatalf("expected provider issue, got %q", err.Error())
	}
}

func TestValidateUnknownDefaultModel(t *testing.T) {
	cfg := validConfig()
	cfg.DefaultModel = "missing"

	err := Validate(&cfg)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "unknown model") {
		t.Fatalf("expected unknown model issue, got %q", err.Error())
	}
}

func TestValidateUnknownExperimentType(t *testing.T) {
	cfg := validConfig()
	cfg.Experiments[0].Type = "stroop"

	err := Validate(&cfg)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "unsupported type") {
		t.Fatalf("expected type issue, got %q", err.Error())
	}
}

func TestValidateComponentRequiresRule(t *testing.T) {
	cfg := validConfig()
	cfg.Experiments[0].Type = "wcst_component"

	err := Validate(&cfg)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "rule") {
		t.Fatalf("expected rule issue, got %q", err.Error())
	}
}

func TestValidateComponentRejectsForeignRule(t *testing.T) {
	cfg := validConfig()
	cfg.Experiments[0].Type = "lnt_component"
	cfg.Experiments[0].Rule = "shape"

	err := Validate(&cfg)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "unsupported rule") {
		t.Fatalf("expected rule issue, got %q", err.Error())
	}
}

func TestValidateStandardRejectsPinnedRule(t *testing.T) {
	cfg := validConfig()
	cfg.Experiments[0].Rule = "color"

	err := Validate(&cfg)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "must be empty") {
		t.Fatalf("expected rule issue, got %q", err.Error())
	}
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	payload := `version: 1
output_dir: "./results"
models:
  - id: gpt-4
    provider: openai
    model: gpt-4
    temperature: 0.7
default_model: gpt-4
experiments:
  - id: lnt-standard
    type: lnt
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if cfg.Experiments[0].Model != "gpt-4" {
		t.Fatalf("expected experiment model to inherit default, got %q", cfg.Experiments[0].Model)
	}
	if cfg.Experiments[0].Trials != DefaultTrials {
		t.Fatalf("expected default trials, got %d", cfg.Experiments[0].Trials)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	payload := `version: 1
output_dir: ""
models:
  - id: gpt-4
    provider: openai
    model: gpt-4
default_model: gpt-4
experiments:
  - id: wcst-standard
    type: wcst
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected load to fail on invalid config")
	}
}

func TestNormalizeExperimentDefaults(t *testing.T) {
	cfg := spec.Config{
		Version:   1,
		OutputDir: "./results",
		Models: []spec.ModelConfig{
			{ID: "gemini-1.5-pro", Provider: "gemini", Model: "gemini-1.5-pro"},
		},
		Experiments: []spec.ExperimentConfig{
			{ID: "wcst-standard", Type: "wcst"},
		},
	}

	Normalize(&cfg)

	if cfg.DefaultModel != "gemini-1.5-pro" {
		t.Fatalf("expected default model to be set, got %q", cfg.DefaultModel)
	}
	if cfg.Experiments[0].Model != "gemini-1.5-pro" {
		t.Fatalf("expected experiment model to inherit default, got %q", cfg.Experiments[0].Model)
	}
	if cfg.Experiments[0].Evaluations != DefaultEvaluations {
		t.Fatalf("expected default evaluations, got %d", cfg.Experiments[0].Evaluations)
	}
	if cfg.Experiments[0].SuccessesBeforeSwitch != DefaultSuccessesBeforeSwitch {
		t.Fatalf("expected default switch threshold, got %d", cfg.Experiments[0].SuccessesBeforeSwitch)
	}
	if cfg.Models[0].RetryAttempts != DefaultRetryAttempts {
		t.Fatalf("expected default retry attempts, got %d", cfg.Models[0].RetryAttempts)
	}
}
