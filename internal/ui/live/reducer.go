package live

import (
	"fmt"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/runner"
)

// Reduce applies a trial event to the UI state. A new evaluation clears the
// trial table.
func Reduce(state State, event runner.TrialEvent) State {
	if event.Evaluation != state.Evaluation {
		state.Evaluation = event.Evaluation
		state.Rows = nil
		state.Switches = 0
	}
	state = ensureRow(state, event)
	state = applyTrialEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow grows the state rows to include the target trial.
func ensureRow(state State, event runner.TrialEvent) State {
	index := event.Trial - 1
	if index < 0 {
		return state
	}
	if index < len(state.Rows) {
		return state
	}
	rows := make([]TrialRow, index+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = TrialRow{Index: i}
	}
	state.Rows = rows
	return state
}

// applyTrialEvent updates a row with the given event.
func applyTrialEvent(state State, event runner.TrialEvent) State {
	index := event.Trial - 1
	if index < 0 || index >= len(state.Rows) {
		return state
	}
	row := state.Rows[index]
	if row.Stimulus == "" {
		row.Stimulus = event.Stimulus
	}
	switch event.Type {
	case runner.TrialRuleSwitch:
		state.Switches++
	default:
		row.Status = event.Type
		if event.Type == runner.TrialRunning && row.StartedAt.IsZero() {
			row.StartedAt = event.EmittedAt
		}
		if isTerminalStatus(event.Type) {
			if !event.EmittedAt.IsZero() {
				row.FinishedAt = event.EmittedAt
			}
			row.Error = event.Error
		}
	}
	state.Rows[index] = row
	return state
}

// isTerminalStatus reports whether a status is final.
func isTerminalStatus(status runner.TrialEventType) bool {
	switch status {
	case runner.TrialCorrect,
		runner.TrialIncorrect,
		runner.TrialParseError,
		runner.TrialRuntimeError:
		return true
	default:
		return false
	}
}

// recount recomputes status counts for the current rows.
func recount(rows []TrialRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case runner.TrialRunning:
			counts.Running++
		case runner.TrialParsing:
			counts.Parsing++
		case runner.TrialCorrect:
			counts.Done++
			counts.Correct++
		case runner.TrialIncorrect:
			counts.Done++
			counts.Incorrect++
		case runner.TrialParseError:
			counts.Done++
			counts.ParseError++
		case runner.TrialRuntimeError:
			counts.Done++
			counts.RuntimeError++
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event runner.TrialEvent) string {
	switch event.Type {
	case runner.TrialRuleSwitch:
		return fmt.Sprintf("rule switched after trial %d", event.Trial)
	case runner.TrialRuntimeError:
		return fmt.Sprintf("trial %d runtime error: %s", event.Trial, event.Error)
	case runner.TrialParseError:
		return fmt.Sprintf("trial %d parse error: %s", event.Trial, event.Error)
	case runner.TrialCorrect, runner.TrialIncorrect:
		return fmt.Sprintf("trial %d %s", event.Trial, event.Type)
	}
	return ""
}
