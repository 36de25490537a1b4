package runner

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/model"
	"github.com/kenneds6/LLM-cognitive-flexibility/internal/wcst"
)

// runWCST runs the configured number of card sorting evaluations. Each
// evaluation starts a fresh deck and a fresh conversation.
func (t experimentTask) runWCST(ctx context.Context) ([]EvaluationResult, error) {
	pinned := t.run.Experiment.Type == "wcst_component"
	evaluations := make([]EvaluationResult, 0, t.run.Experiment.Evaluations)

	for evaluation := 1; evaluation <= t.run.Experiment.Evaluations; evaluation++ {
		cfg := wcst.DefaultConfig()
		cfg.Trials = t.run.Experiment.Trials
		cfg.SuccessesBeforeSwitch = t.run.Experiment.SuccessesBeforeSwitch

		rng := rand.New(rand.NewSource(t.evaluationSeed(evaluation)))
		test, err := wcst.New(cfg, rng)
		if err != nil {
			return evaluations, err
		}
		if pinned {
			test.PinRule(wcst.Rule(t.run.Experiment.Rule))
		}

		session := model.NewSession(t.provider, wcstSystemPromptFor(test.Rule(), pinned))
		records := make([]TrialRecord, 0, cfg.Trials)

		for trial := 0; trial < cfg.Trials; trial++ {
			if err := t.limiter.Wait(ctx); err != nil {
				return evaluations, err
			}

			card := test.Card(trial)
			options := test.Options(card)
			stimulus := card.String()
			t.emit(evaluation, trial, stimulus, TrialRunning, "", "")

			reply, err := session.Send(ctx, wcstTrialPrompt(card, options))
			if err != nil {
				t.emit(evaluation, trial, stimulus, TrialRuntimeError, "", err.Error())
				return evaluations, fmt.Errorf("evaluation %d trial %d: %w", evaluation, trial+1, err)
			}

			record := TrialRecord{
				Trial:    trial + 1,
				Stimulus: stimulus,
				Options:  formatOptions(options),
				Rule:     string(test.Rule()),
				Reply:    reply,
			}
			t.emit(evaluation, trial, stimulus, TrialParsing, reply, "")

			choice, err := model.ExtractChoice(reply, len(options))
			if err != nil {
				record.ParseError = err.Error()
				records = append(records, record)
				t.emit(evaluation, trial, stimulus, TrialParseError, reply, err.Error())
				continue
			}
			record.Response = fmt.Sprintf("option %d", choice+1)

			switchesBefore := len(test.Switches())
			correct, err := test.EvaluateChoice(card, choice, options)
			if err != nil {
				return evaluations, err
			}
			record.Correct = correct
			records = append(records, record)

			if correct {
				t.emit(evaluation, trial, stimulus, TrialCorrect, reply, "")
				session.AddFeedback(feedbackCorrect)
			} else {
				t.emit(evaluation, trial, stimulus, TrialIncorrect, reply, "")
				session.AddFeedback(feedbackIncorrect)
			}
			if len(test.Switches()) > switchesBefore {
				t.emit(evaluation, trial, stimulus, TrialRuleSwitch, "", "")
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

// emit sends a trial event to the observer.
func (t experimentTask) emit(evaluation, trial int, stimulus string, eventType TrialEventType, reply, errText string) {
	now := t.params.Deps.Now
	event := TrialEvent{
		ExperimentID: t.run.Experiment.ID,
		Evaluation:   evaluation,
		Trial:        trial + 1,
		Stimulus:     stimulus,
		Type:         eventType,
		Reply:        reply,
		Error:        errText,
	}
	if now != nil {
		event.EmittedAt = now()
	}
	t.observer.OnTrialEvent(event)
}

// formatOptions renders option cards for the trial record.
func formatOptions(options []wcst.Card) []string {
	formatted := make([]string, 0, len(options))
	for _, option := range options {
		formatted = append(formatted, option.String())
	}
	return formatted
}
