package config

import (
	"fmt"
	"os"
)

const defaultConfig = `version: 1
output_dir: "./results"

models:
  - id: gpt-4
    provider: "openai"
    model: "gpt-4"
    temperature: 0.7
    max_tokens: 100
    retry_attempts: 3
    retry_delay_ms: 1000

default_model: "gpt-4"

pacing:
  requests_per_minute: 0

experiments:
  - id: wcst-standard
    type: wcst
    evaluations: 8
    trials: 25
    successes_before_switch: 6
  - id: lnt-standard
    type: lnt
    evaluations: 8
    trials: 25
    successes_before_switch: 6
`

// Scaffold writes a default config file, refusing to overwrite.
func Scaffold(specPath, outputDir string) error {
	if specPath == "" {
		return fmt.Errorf("spec path is required")
	}
	if info, err := os.Stat(specPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("spec path %q is a directory", specPath)
		}
		return fmt.Errorf("spec file already exists at %q", specPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat spec file: %w", err)
	}

	content := defaultConfig
	if outputDir != "" && outputDir != DefaultOutputDir {
		rendered, err := renderScaffoldConfig(outputDir)
		if err != nil {
			return fmt.Errorf("render scaffold config: %w", err)
		}
		content = rendered
	}
	if err := os.WriteFile(specPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write spec file: %w", err)
	}
	return nil
}
