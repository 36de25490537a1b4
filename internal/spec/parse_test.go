package spec

import "testing"

// TestParseConfigValid verifies valid config parsing succeeds.
func TestParseConfigValid(t *testing.T) {
	data := []byte(`version: 1
output_dir: "./results"
models:
  - id: gpt-4
    provider: openai
    model: gpt-4
    temperature: 0.7
    max_tokens: 100
default_model: gpt-4
experiments:
  - id: wcst-standard
    type: wcst
    evaluations: 8
    trials: 25
    successes_before_switch: 6
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if cfg.DefaultModel != "gpt-4" {
		t.Fatalf("expected default model gpt-4, got %q", cfg.DefaultModel)
	}
	if len(cfg.Experiments) != 1 || cfg.Experiments[0].Type != "wcst" {
		t.Fatalf("unexpected experiments: %+v", cfg.Experiments)
	}
}

// TestParseConfigUnknownField verifies unknown fields are rejected.
func TestParseConfigUnknownField(t *testing.T) {
	data := []byte(`version: 1
output_dir: "./results"
unknown: true
`)
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected parse error for unknown field")
	}
}

// TestParseConfigRejectsMultipleDocs verifies multiple YAML docs are rejected.
func TestParseConfigRejectsMultipleDocs(t *testing.T) {
	data := []byte("version: 1\n---\nversion: 1\n")
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected parse error for multiple documents")
	}
}
