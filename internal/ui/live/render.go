package live

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	elapsed := ""
	if !state.StartedAt.IsZero() {
		elapsed = now.Sub(state.StartedAt).Round(100 * time.Millisecond).String()
	}
	line := "Run " + state.RunID
	if elapsed != "" {
		line += " | Elapsed: " + elapsed
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the status counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Running: " + fmtInt(counts.Running) +
		" Done: " + fmtInt(counts.Done) +
		" Correct: " + fmtInt(counts.Correct) +
		" Incorrect: " + fmtInt(counts.Incorrect) +
		" ParseErr: " + fmtInt(counts.ParseError) +
		" Error: " + fmtInt(counts.RuntimeError) +
		" Switches: " + fmtInt(state.Switches)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderExperimentLine renders the current experiment line.
func renderExperimentLine(state State, noColor bool) string {
	if state.ExperimentID == "" {
		return ""
	}
	line := "Experiment " + state.ExperimentID + " (" + state.ExperimentType + ")"
	if state.ModelID != "" || state.Model != "" {
		line += " | " + state.ModelID + " / " + state.Model
	}
	if state.Evaluations > 0 {
		line += " | Evaluation " + fmtInt(state.Evaluation) + "/" + fmtInt(state.Evaluations)
	}
	return stylize(line, noColor, lipgloss.Color("240"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
