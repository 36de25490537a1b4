package runner

import (
	"fmt"
	"strings"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/spec"
)

// ExperimentSelector picks an experiment to run, optionally overriding the
// model it runs against.
type ExperimentSelector struct {
	ExperimentID string
	ModelID      string
}

// ParseSelector parses "experiment" or "experiment@model".
func ParseSelector(value string) (ExperimentSelector, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ExperimentSelector{}, fmt.Errorf("selector is empty")
	}
	parts := strings.SplitN(trimmed, "@", 2)
	selector := ExperimentSelector{ExperimentID: strings.TrimSpace(parts[0])}
	if selector.ExperimentID == "" {
		return ExperimentSelector{}, fmt.Errorf("selector %q has no experiment id", value)
	}
	if len(parts) == 2 {
		selector.ModelID = strings.TrimSpace(parts[1])
		if selector.ModelID == "" {
			return ExperimentSelector{}, fmt.Errorf("selector %q has no model id after @", value)
		}
	}
	return selector, nil
}

// ParseSelectors parses a list of selector arguments.
func ParseSelectors(values []string) ([]ExperimentSelector, error) {
	selectors := make([]ExperimentSelector, 0, len(values))
	for _, value := range values {
		selector, err := ParseSelector(value)
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, selector)
	}
	return selectors, nil
}

// ValidateSelectors checks selectors against configured experiments and models.
func ValidateSelectors(cfg spec.Config, selectors []ExperimentSelector) error {
	experimentIDs := make(map[string]bool, len(cfg.Experiments))
	for _, experiment := range cfg.Experiments {
		experimentIDs[experiment.ID] = true
	}
	modelIDs := make(map[string]bool, len(cfg.Models))
	for _, modelConfig := range cfg.Models {
		modelIDs[modelConfig.ID] = true
	}
	for _, selector := range selectors {
		if !experimentIDs[selector.ExperimentID] {
			return fmt.Errorf("unknown experiment id %q", selector.ExperimentID)
		}
		if selector.ModelID != "" && !modelIDs[selector.ModelID] {
			return fmt.Errorf("unknown model id %q", selector.ModelID)
		}
	}
	return nil
}
