package analysis

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// experimentTypes in prefix-match order: component variants first so their
// underscore does not match the plain type.
var experimentTypes = []string{"wcst_component", "lnt_component", "wcst", "lnt"}

// GroupedEvaluations collects every evaluation of one experiment type on one
// model across runs.
type GroupedEvaluations struct {
	Experiment  string
	Model       string
	Runs        int
	Evaluations []Evaluation
}

// LoadDir walks an output directory and groups flat experiment result files
// by experiment type and model.
func LoadDir(dir string) ([]GroupedEvaluations, error) {
	type groupKey struct {
		experiment string
		model      string
	}
	groups := map[groupKey]*GroupedEvaluations{}

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		experiment, model, ok := parseResultName(entry.Name())
		if !ok {
			return nil
		}
		evaluations, err := loadEvaluations(path)
		if err != nil {
			return err
		}
		key := groupKey{experiment: experiment, model: model}
		group, exists := groups[key]
		if !exists {
			group = &GroupedEvaluations{Experiment: experiment, Model: model}
			groups[key] = group
		}
		group.Runs++
		group.Evaluations = append(group.Evaluations, evaluations...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]GroupedEvaluations, 0, len(groups))
	for _, group := range groups {
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Experiment != out[j].Experiment {
			return out[i].Experiment < out[j].Experiment
		}
		return out[i].Model < out[j].Model
	})
	return out, nil
}

// parseResultName splits "wcst_gpt-4_20250101T000000Z-ab12.json" into type
// and model.
func parseResultName(name string) (experiment, model string, ok bool) {
	if !strings.HasSuffix(name, ".json") {
		return "", "", false
	}
	stem := strings.TrimSuffix(name, ".json")
	for _, experimentType := range experimentTypes {
		prefix := experimentType + "_"
		if !strings.HasPrefix(stem, prefix) {
			continue
		}
		rest := strings.TrimPrefix(stem, prefix)
		cut := strings.LastIndex(rest, "_")
		if cut <= 0 {
			return "", "", false
		}
		return experimentType, rest[:cut], true
	}
	return "", "", false
}

// loadEvaluations reads one flat results file.
func loadEvaluations(path string) ([]Evaluation, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	var evaluations []Evaluation
	if err := json.Unmarshal(payload, &evaluations); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return evaluations, nil
}

// StatsFromDir loads and aggregates every result file under dir.
func StatsFromDir(dir string, successesBeforeSwitch int) ([]ModelStats, error) {
	groups, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	stats := make([]ModelStats, 0, len(groups))
	for _, group := range groups {
		stats = append(stats, Compute(group.Experiment, group.Model, group.Runs, group.Evaluations, successesBeforeSwitch))
	}
	return stats, nil
}
