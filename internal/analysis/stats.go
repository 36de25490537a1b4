// Package analysis aggregates experiment result files into per-model
// statistics and compares them against theoretical ceiling accuracies.
package analysis

import "math"

// Evaluation is one row of a flat experiment results file.
type Evaluation struct {
	Evaluation int     `json:"evaluation"`
	Accuracy   float64 `json:"accuracy"`
	Score      int     `json:"score"`
	Trials     int     `json:"trials"`
}

// ModelStats summarizes all evaluations of one experiment type on one model.
type ModelStats struct {
	Experiment   string  `json:"experiment"`
	Model        string  `json:"model"`
	Runs         int     `json:"runs"`
	Evaluations  int     `json:"evaluations"`
	MeanAccuracy float64 `json:"mean_accuracy"`
	StdAccuracy  float64 `json:"std_accuracy"`
	MinAccuracy  float64 `json:"min_accuracy"`
	MaxAccuracy  float64 `json:"max_accuracy"`
	MeanScore    float64 `json:"mean_score"`
	StdScore     float64 `json:"std_score"`
	AvgTrials    float64 `json:"avg_trials"`
	Bound        float64 `json:"bound"`
}

// Compute aggregates evaluations into statistics. The bound assumes the
// default streak threshold unless the caller knows better.
func Compute(experiment, model string, runs int, evaluations []Evaluation, successesBeforeSwitch int) ModelStats {
	stats := ModelStats{
		Experiment:  experiment,
		Model:       model,
		Runs:        runs,
		Evaluations: len(evaluations),
		Bound:       Bound(RuleCount(experiment), successesBeforeSwitch),
	}
	if len(evaluations) == 0 {
		return stats
	}

	accuracies := make([]float64, 0, len(evaluations))
	scores := make([]float64, 0, len(evaluations))
	trials := 0.0
	stats.MinAccuracy = evaluations[0].Accuracy
	stats.MaxAccuracy = evaluations[0].Accuracy
	for _, evaluation := range evaluations {
		accuracies = append(accuracies, evaluation.Accuracy)
		scores = append(scores, float64(evaluation.Score))
		trials += float64(evaluation.Trials)
		stats.MinAccuracy = math.Min(stats.MinAccuracy, evaluation.Accuracy)
		stats.MaxAccuracy = math.Max(stats.MaxAccuracy, evaluation.Accuracy)
	}
	stats.MeanAccuracy = mean(accuracies)
	stats.StdAccuracy = std(accuracies, stats.MeanAccuracy)
	stats.MeanScore = mean(scores)
	stats.StdScore = std(scores, stats.MeanScore)
	stats.AvgTrials = trials / float64(len(evaluations))
	return stats
}

// RuleCount returns how many hidden rules an experiment type cycles through.
// Component tasks pin a single rule.
func RuleCount(experiment string) int {
	switch experiment {
	case "wcst":
		return 3
	case "lnt":
		return 2
	default:
		return 1
	}
}

// Bound is the theoretical ceiling accuracy for a perfect rule-inferring
// subject: with k rules and a switch every s successes, one trial per switch
// is spent rediscovering the rule in the worst case, giving s/(s+k-1).
func Bound(rules, successesBeforeSwitch int) float64 {
	if rules <= 1 {
		return 1
	}
	s := float64(successesBeforeSwitch)
	return s / (s + float64(rules) - 1)
}

func mean(values []float64) float64 {
	total := 0.0
	for _, value := range values {
		total += value
	}
	return total / float64(len(values))
}

// std is the population standard deviation.
func std(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, value := range values {
		delta := value - mean
		total += delta * delta
	}
	return math.Sqrt(total / float64(len(values)))
}
