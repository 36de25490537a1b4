package runner

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/lnt"
	"github.com/kenneds6/LLM-cognitive-flexibility/internal/model"
)

// runLNT runs the configured number of sequence classification evaluations.
func (t experimentTask) runLNT(ctx context.Context) ([]EvaluationResult, error) {
	pinned := t.run.Experiment.Type == "lnt_component"
	evaluations := make([]EvaluationResult, 0, t.run.Experiment.Evaluations)

	for evaluation := 1; evaluation <= t.run.Experiment.Evaluations; evaluation++ {
		cfg := lnt.Config{
			Trials:                t.run.Experiment.Trials,
			SuccessesBeforeSwitch: t.run.Experiment.SuccessesBeforeSwitch,
		}
		rng := rand.New(rand.NewSource(t.evaluationSeed(evaluation)))
		test, err := lnt.New(cfg, rng)
		if err != nil {
			return evaluations, err
		}
		if pinned {
			test.PinTask(lnt.Task(t.run.Experiment.Rule))
		}

		session := model.NewSession(t.provider, lntSystemPromptFor(test.Task(), pinned))
		records := make([]TrialRecord, 0, cfg.Trials)

		for trial := 0; trial < cfg.Trials; trial++ {
			if err := t.limiter.Wait(ctx); err != nil {
				return evaluations, err
			}

			sequence := test.GenerateSequence()
			t.emit(evaluation, trial, sequence, TrialRunning, "", "")

			reply, err := session.Send(ctx, lntTrialPrompt(sequence))
			if err != nil {
				t.emit(evaluation, trial, sequence, TrialRuntimeError, "", err.Error())
				return evaluations, fmt.Errorf("evaluation %d trial %d: %w", evaluation, trial+1, err)
			}

			record := TrialRecord{
				Trial:    trial + 1,
				Stimulus: sequence,
				Rule:     string(test.Task()),
				Reply:    reply,
			}
			t.emit(evaluation, trial, sequence, TrialParsing, reply, "")

			response, err := model.ExtractClassification(reply)
			if err != nil {
				record.ParseError = err.Error()
				records = append(records, record)
				t.emit(evaluation, trial, sequence, TrialParseError, reply, err.Error())
				continue
			}
			record.Response = response

			switchesBefore := len(test.Switches())
			correct, err := test.EvaluateResponse(sequence, response)
			if err != nil {
				return evaluations, err
			}
			record.Correct = correct
			records = append(records, record)

			if correct {
				t.emit(evaluation, trial, sequence, TrialCorrect, reply, "")
				session.AddFeedback(feedbackCorrect)
			} else {
				t.emit(evaluation, trial, sequence, TrialIncorrect, reply, "")
				session.AddFeedback(feedbackIncorrect)
			}
			if len(test.Switches()) > switchesBefore {
				t.emit(evaluation, trial, sequence, TrialRuleSwitch, "", "")
			}
		}

		perf := test.Performance()
		evaluations = append(evaluations, EvaluationResult{
			Evaluation: evaluation,
			Accuracy:   perf.Accuracy,
			Score:      perf.Score,
			Trials:     perf.Trials,
			Switches:   len(test.Switches()),
			Records:    records,
		})
	}
	return evaluations, nil
}
